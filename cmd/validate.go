package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/nikogura/folio/pkg/builder"
	"github.com/nikogura/folio/pkg/lint"
	"github.com/nikogura/folio/pkg/profile"
	"github.com/nikogura/folio/pkg/session"
	"github.com/nikogura/folio/pkg/source"
	"github.com/nikogura/folio/pkg/template"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var validateSample string

//nolint:gochecknoglobals // Cobra boilerplate
var validateCmd = &cobra.Command{
	Use:   "validate <template>",
	Short: "Check a template for markup that will not render",
	Long: `Check a template file or URL for unmatched blocks and malformed tags,
which are copied into the output literally, and confirm that a standard
Handlebars parser accepts it.

With --sample resume or --sample portfolio, every path the template reads
is also checked against that workflow's sample data.

Example:
  folio validate my-resume.html --sample resume`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateSample, "sample", "", "Check paths against sample data: resume or portfolio")
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var src string
	src, err = source.FetchWithContext(ctx, args[0])
	if err != nil {
		err = errors.Wrap(err, "failed to read template")
		return err
	}

	var sample template.Record
	switch validateSample {
	case "":
	case session.WorkflowResume:
		sample = builder.ResumeRecord(profile.SampleResume(), builder.Options{})
	case session.WorkflowPortfolio:
		sample = builder.PortfolioRecord(profile.SamplePortfolio(), builder.Options{})
	default:
		err = errors.Errorf("invalid sample '%s': must be '%s' or '%s'", validateSample, session.WorkflowResume, session.WorkflowPortfolio)
		return err
	}

	report := lint.Check(src, sample)
	printReport(report)

	if !report.Clean() {
		err = errors.Errorf("template %s has problems", args[0])
		return err
	}

	return err
}

func printReport(report lint.Report) {
	if getVerbose() {
		fmt.Printf("Paths read (%d):\n", len(report.Paths))
		for _, path := range report.Paths {
			fmt.Printf("  %s\n", path)
		}
	}

	for _, diag := range report.Diagnostics {
		fmt.Printf("%s\n", diag)
	}

	if report.HandlebarsError != "" {
		fmt.Printf("handlebars: %s\n", report.HandlebarsError)
	}

	for _, path := range report.Missing {
		fmt.Printf("missing from sample data: %s\n", path)
	}

	if report.Clean() {
		fmt.Println("OK")
	}
}
