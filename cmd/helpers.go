package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikogura/folio/pkg/builder"
	"github.com/nikogura/folio/pkg/renderer"
	"github.com/nikogura/folio/pkg/source"
	"github.com/pkg/errors"
)

func getOutputDir(flagValue, configValue string) (outDir string) {
	outDir = flagValue
	if outDir == "" {
		outDir = configValue
	}
	return outDir
}

// readOptional fetches a file or URL, returning "" when input is empty.
func readOptional(ctx context.Context, input, what string) (content string, err error) {
	if input == "" {
		return content, err
	}

	if getVerbose() {
		fmt.Printf("Reading %s from: %s\n", what, input)
	}

	content, err = source.FetchWithContext(ctx, input)
	if err != nil {
		err = errors.Wrapf(err, "failed to read %s", what)
		return content, err
	}

	return content, err
}

func builderOptions(ctx context.Context, templatePath, cssPath, jsPath string, headings map[string]string) (opts builder.Options, err error) {
	opts.Headings = headings

	opts.Template, err = readOptional(ctx, templatePath, "template")
	if err != nil {
		return opts, err
	}

	opts.CSS, err = readOptional(ctx, cssPath, "stylesheet")
	if err != nil {
		return opts, err
	}

	opts.JS, err = readOptional(ctx, jsPath, "script")
	if err != nil {
		return opts, err
	}

	return opts, err
}

// writeOutput writes content to path, or to stdout when path is empty or "-".
func writeOutput(content, path string) (err error) {
	if path == "" || path == "-" {
		_, err = fmt.Fprint(os.Stdout, content)
		return err
	}

	err = renderer.WriteHTML(content, path)
	if err != nil {
		return err
	}

	fmt.Printf("Saved: %s\n", path)
	return err
}

func outputPath(outDir, name, suffix string) (path string) {
	path = filepath.Join(outDir, renderer.SanitizeFilename(name)+suffix)
	return path
}
