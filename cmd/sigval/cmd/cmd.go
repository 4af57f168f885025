package cmd

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// errNotValid makes the process exit non-zero without printing an error
// when the document was validated but is not VALID.
var errNotValid = errors.New("document is not valid")

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sigval",
		Short:         "Validate digital signatures against a validation policy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(NewValidateCmd())
	root.AddCommand(NewPoliciesCmd())
	return root
}

func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errNotValid) {
			root.PrintErrln("error:", err)
		}
		return 1
	}
	return 0
}
