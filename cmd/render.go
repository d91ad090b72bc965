package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nikogura/folio/pkg/profile"
	"github.com/nikogura/folio/pkg/source"
	"github.com/nikogura/folio/pkg/template"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var renderOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var renderCmd = &cobra.Command{
	Use:   "render <template> <data>",
	Short: "Render any template against a JSON or YAML data file",
	Long: `Render a template file (or URL) against a data file.

Supported markup:
  {{name}} {{a.b.c}}             escaped value lookup
  {{#if path}}...{{/if}}          conditional section
  {{#each list}}...{{/each}}      repeated section; {{this}} and {{this.field}}

Placeholders that cannot be resolved are left in the output unchanged.

Example:
  folio render page.html data.json
  folio render https://example.com/page.html data.yaml --output page-out.html`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (default stdout)")
}

func runRender(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var src string
	src, err = source.FetchWithContext(ctx, args[0])
	if err != nil {
		err = errors.Wrap(err, "failed to read template")
		return err
	}

	var data map[string]any
	data, err = profile.LoadData(args[1])
	if err != nil {
		err = errors.Wrap(err, "failed to load data")
		return err
	}

	tmpl := template.Parse(src)
	if getVerbose() {
		// Stdout may carry the rendered page, so diagnostics go to stderr.
		fmt.Fprintf(os.Stderr, "Template reads %d paths\n", len(tmpl.Paths()))
		for _, diag := range tmpl.Diagnostics() {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", diag)
		}
	}

	err = writeOutput(tmpl.Execute(template.RecordFromMap(data)), renderOutput)
	return err
}
