package cmd

import (
	"fmt"
	"os"

	"github.com/nikogura/folio/pkg/profile"
	"github.com/nikogura/folio/pkg/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var sampleOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var sampleCmd = &cobra.Command{
	Use:   "sample <resume|portfolio>",
	Short: "Write sample profile data to start from",
	Long: `Write sample resume or portfolio data. The format follows the output
file extension: .yaml/.yml for YAML, anything else for JSON.

Example:
  folio sample portfolio --output portfolio.yaml
  folio sample resume > resume.json`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{session.WorkflowResume, session.WorkflowPortfolio},
	RunE:      runSample,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().StringVarP(&sampleOutput, "output", "o", "", "Output file (default stdout as JSON)")
}

func runSample(cmd *cobra.Command, args []string) (err error) {
	var sample any
	switch args[0] {
	case session.WorkflowResume:
		sample = profile.SampleResume()
	case session.WorkflowPortfolio:
		sample = profile.SamplePortfolio()
	default:
		err = errors.Errorf("unknown sample %q: must be %s or %s", args[0], session.WorkflowResume, session.WorkflowPortfolio)
		return err
	}

	var data []byte
	data, err = profile.Marshal(sampleOutput, sample)
	if err != nil {
		return err
	}

	if sampleOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	err = os.WriteFile(sampleOutput, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write sample: %s", sampleOutput)
		return err
	}

	fmt.Printf("Sample %s data saved at: %s\n", args[0], sampleOutput)
	return err
}
