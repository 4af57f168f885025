package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"sigval/internal/domain"
	"sigval/internal/infra/codec"
	"sigval/internal/infra/logging"
	"sigval/internal/infra/policyfile"
	"sigval/internal/usecase"
)

type validateOptions struct {
	in         string
	out        string
	policy     string
	policyFile string
	policyDir  string
	at         string
	parallel   bool
	detail     bool
	verbose    bool
}

func NewValidateCmd() *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a diagnostic data file and print the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.in, "in", "", "diagnostic data JSON file")
	flags.StringVar(&opts.out, "out", "", "report output path (default stdout)")
	flags.StringVar(&opts.policy, "policy", "", "policy name (default: the embedded policy)")
	flags.StringVar(&opts.policyFile, "policy-file", "", "policy YAML file to load")
	flags.StringVar(&opts.policyDir, "policy-dir", "", "directory of policy YAML files to load")
	flags.StringVar(&opts.at, "time", "", "validation time (RFC3339, default now)")
	flags.BoolVar(&opts.parallel, "parallel", false, "validate signatures concurrently")
	flags.BoolVar(&opts.detail, "detail", false, "include the validation trace")
	flags.BoolVar(&opts.verbose, "verbose", false, "debug logging to stderr")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func runValidate(cmd *cobra.Command, opts *validateOptions) error {
	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	logger, err := logging.New(level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	payload, err := os.ReadFile(opts.in)
	if err != nil {
		return errors.Wrap(err, "read diagnostic data")
	}
	diag, err := codec.DecodeDiagnosticData(payload)
	if err != nil {
		return err
	}
	policies, err := policyfile.Load(opts.policyFile, opts.policyDir, logger)
	if err != nil {
		return err
	}
	policy, err := policies.Policy(opts.policy)
	if err != nil {
		return err
	}
	at := time.Now().UTC()
	if opts.at != "" {
		if at, err = time.Parse(time.RFC3339, opts.at); err != nil {
			return errors.Wrap(err, "parse --time")
		}
	}

	result, err := usecase.NewEngine(logger, opts.parallel).Validate(context.Background(), diag, policy, at)
	if err != nil {
		return err
	}
	rec := domain.ValidationRecord{
		PolicyName: policy.Name,
		CreatedAt:  time.Now().UTC(),
		Report:     result.Report,
	}
	if opts.detail {
		rec.Trace = result.Trace
	}
	data, err := codec.EncodeRecord(rec)
	if err != nil {
		return err
	}
	if opts.out != "" {
		if err := os.WriteFile(opts.out, append(data, '\n'), 0o644); err != nil {
			return errors.Wrap(err, "write report")
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	}

	printSummary(cmd, result.Report)
	if result.Report.Global.Indication != domain.IndicationValid {
		return errNotValid
	}
	return nil
}

func printSummary(cmd *cobra.Command, report *domain.SimpleReport) {
	g := report.Global
	cmd.PrintErrf("indication=%s", g.Indication)
	if g.SubIndication != "" {
		cmd.PrintErrf(" sub_indication=%s", g.SubIndication)
	}
	cmd.PrintErrf(" valid=%d/%d policy=%s\n", g.ValidSignaturesCount, g.SignaturesCount, report.Policy.Name)
	for _, sig := range report.Signatures {
		line := "signature=" + sig.ID + " indication=" + string(sig.Indication)
		if sig.SubIndication != "" {
			line += " sub_indication=" + string(sig.SubIndication)
		}
		if sig.SignedBy != "" {
			line += " signed_by=" + strings.ReplaceAll(sig.SignedBy, " ", "_")
		}
		cmd.PrintErrln(line)
	}
}
