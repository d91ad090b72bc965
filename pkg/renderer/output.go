package renderer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"
)

// WriteHTML writes a rendered page to a file. The file is replaced
// atomically, so readers never observe a half-written page.
func WriteHTML(content, outputPath string) (err error) {
	err = writeFile(content, outputPath)
	if err != nil {
		err = errors.Wrapf(err, "failed to write HTML file: %s", outputPath)
		return err
	}

	return err
}

// WriteMarkdown writes markdown content to a file.
func WriteMarkdown(content, outputPath string) (err error) {
	err = writeFile(content, outputPath)
	if err != nil {
		err = errors.Wrapf(err, "failed to write markdown file: %s", outputPath)
		return err
	}

	return err
}

func writeFile(content, outputPath string) (err error) {
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = atomic.WriteFile(outputPath, strings.NewReader(content))
	if err != nil {
		return err
	}

	// atomic renames a 0600 temp file into place.
	err = os.Chmod(outputPath, 0644) //nolint:gosec // rendered pages are public output
	if err != nil {
		err = errors.Wrapf(err, "failed to set permissions on %s", outputPath)
		return err
	}

	return err
}

// CleanupMarkdown removes markdown files after PDF generation.
func CleanupMarkdown(paths ...string) (err error) {
	for _, path := range paths {
		err = os.Remove(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to remove markdown file: %s", path)
			return err
		}
	}
	return err
}
