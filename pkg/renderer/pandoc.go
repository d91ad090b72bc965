package renderer

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
)

// RenderPDF converts markdown to PDF using pandoc. The LaTeX template and
// class file are optional; when classPath is set its directory is added to
// TEXINPUTS. An empty engine leaves the choice to pandoc.
func RenderPDF(markdownPath, outputPath, templatePath, classPath, engine string) (err error) {
	err = RenderPDFWithContext(context.Background(), markdownPath, outputPath, templatePath, classPath, engine)
	return err
}

// RenderPDFWithContext is RenderPDF bound to a context. Cancelling ctx kills pandoc.
func RenderPDFWithContext(ctx context.Context, markdownPath, outputPath, templatePath, classPath, engine string) (err error) {
	err = checkPandocExists(ctx)
	if err != nil {
		return err
	}

	err = validateFiles(nonEmpty(markdownPath, templatePath, classPath)...)
	if err != nil {
		return err
	}

	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	cmd := exec.CommandContext(ctx, "pandoc", pandocArgs(markdownPath, outputPath, templatePath, engine)...)

	if classPath != "" {
		classDir := filepath.Dir(classPath)
		texinputs := classDir + ":" + os.Getenv("TEXINPUTS")
		cmd.Env = append(os.Environ(), "TEXINPUTS="+texinputs)
	}

	var output []byte
	output, err = cmd.CombinedOutput()
	if err != nil {
		err = errors.Wrapf(err, "pandoc failed: %s", string(output))
		return err
	}

	return err
}

func pandocArgs(markdownPath, outputPath, templatePath, engine string) (args []string) {
	args = []string{
		"-f", "markdown",
		"-t", "pdf",
		"-o", outputPath,
	}

	if templatePath != "" {
		args = append(args, "--template", templatePath)
	}

	if engine != "" {
		args = append(args, "--pdf-engine="+engine)
	}

	args = append(args, "--number-sections=false", markdownPath)

	return args
}

// checkPandocExists verifies pandoc is installed.
func checkPandocExists(ctx context.Context) (err error) {
	cmd := exec.CommandContext(ctx, "pandoc", "--version")
	err = cmd.Run()
	if err != nil {
		err = errors.New("pandoc not found in PATH (install pandoc to generate PDFs)")
		return err
	}
	return err
}

// validateFiles checks that required files exist.
func validateFiles(paths ...string) (err error) {
	for _, path := range paths {
		_, err = os.Stat(path)
		if os.IsNotExist(err) {
			err = errors.Errorf("file not found: %s", path)
			return err
		}
	}
	return err
}

func nonEmpty(paths ...string) (kept []string) {
	for _, path := range paths {
		if path != "" {
			kept = append(kept, path)
		}
	}
	return kept
}
