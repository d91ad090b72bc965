package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/nikogura/folio/pkg/builder"
	"github.com/nikogura/folio/pkg/config"
	"github.com/nikogura/folio/pkg/profile"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var portfolioOutputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var portfolioTemplate string

//nolint:gochecknoglobals // Cobra boilerplate
var portfolioCSS string

//nolint:gochecknoglobals // Cobra boilerplate
var portfolioJS string

//nolint:gochecknoglobals // Cobra boilerplate
var portfolioHeadings map[string]string

//nolint:gochecknoglobals // Cobra boilerplate
var portfolioCmd = &cobra.Command{
	Use:   "portfolio <data>",
	Short: "Generate a single-page portfolio site",
	Long: `Generate a self-contained portfolio page from a JSON or YAML profile.

The stylesheet and script are inlined into the page. Replace them with
--css and --js, or replace the whole page with --template.

Example:
  folio portfolio portfolio.json
  folio portfolio portfolio.yaml --css theme.css --output-dir site`,
	Args: cobra.ExactArgs(1),
	RunE: runPortfolio,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(portfolioCmd)
	portfolioCmd.Flags().StringVar(&portfolioOutputDir, "output-dir", "", "Output directory (default from config)")
	portfolioCmd.Flags().StringVar(&portfolioTemplate, "template", "", "HTML template file or URL (default built in)")
	portfolioCmd.Flags().StringVar(&portfolioCSS, "css", "", "Stylesheet file or URL to inline (default built in)")
	portfolioCmd.Flags().StringVar(&portfolioJS, "js", "", "Script file or URL to inline (default built in)")
	portfolioCmd.Flags().StringToStringVar(&portfolioHeadings, "heading", nil, "Override a section heading, e.g. --heading contact=\"say hello\"")
}

func runPortfolio(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	if getVerbose() {
		fmt.Printf("Loading portfolio from: %s\n", args[0])
	}

	var portfolio profile.Portfolio
	portfolio, err = profile.LoadPortfolio(args[0])
	if err != nil {
		err = errors.Wrap(err, "failed to load portfolio")
		return err
	}

	if getVerbose() {
		fmt.Printf("Loaded %d experience, %d education and %d project entries\n",
			len(portfolio.Experience), len(portfolio.Education), len(portfolio.Projects))
	}

	var opts builder.Options
	opts, err = builderOptions(ctx, portfolioTemplate, portfolioCSS, portfolioJS, portfolioHeadings)
	if err != nil {
		return err
	}

	var html string
	html, err = builder.PortfolioHTML(portfolio, opts)
	if err != nil {
		return err
	}

	outDir := getOutputDir(portfolioOutputDir, cfg.Defaults.OutputDir)
	err = writeOutput(html, outputPath(outDir, portfolio.PersonalInfo.Name, "-portfolio.html"))
	return err
}
