package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sigval/internal/infra/logging"
	"sigval/internal/infra/policyfile"
)

func NewPoliciesCmd() *cobra.Command {
	var policyFile, policyDir string
	cmd := &cobra.Command{
		Use:   "policies",
		Short: "List the available validation policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			policies, err := policyfile.Load(policyFile, policyDir, logging.NewNop())
			if err != nil {
				return err
			}
			for _, name := range policies.Names() {
				policy, err := policies.Policy(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", policy.Name, policy.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&policyFile, "policy-file", "", "policy YAML file to load")
	cmd.Flags().StringVar(&policyDir, "policy-dir", "", "directory of policy YAML files to load")
	return cmd
}
