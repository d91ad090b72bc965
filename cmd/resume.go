package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/nikogura/folio/pkg/builder"
	"github.com/nikogura/folio/pkg/config"
	"github.com/nikogura/folio/pkg/profile"
	"github.com/nikogura/folio/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var resumeOutputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var resumeTemplate string

//nolint:gochecknoglobals // Cobra boilerplate
var resumeMarkdownTemplate string

//nolint:gochecknoglobals // Cobra boilerplate
var resumePDF bool

//nolint:gochecknoglobals // Cobra boilerplate
var resumeKeepMarkdown bool

//nolint:gochecknoglobals // Cobra boilerplate
var resumeHeadings map[string]string

//nolint:gochecknoglobals // Cobra boilerplate
var resumeCmd = &cobra.Command{
	Use:   "resume <data>",
	Short: "Generate a resume from a JSON or YAML profile",
	Long: `Generate a resume as HTML, and optionally as PDF via pandoc.

The PDF path renders the resume to markdown first and hands it to pandoc
with the LaTeX template and class file from the config, when set.

Example:
  folio resume resume.yaml
  folio resume resume.json --pdf --output-dir ~/Documents
  folio resume resume.json --heading experience="work history"`,
	Args: cobra.ExactArgs(1),
	RunE: runResume,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(resumeCmd)
	resumeCmd.Flags().StringVar(&resumeOutputDir, "output-dir", "", "Output directory (default from config)")
	resumeCmd.Flags().StringVar(&resumeTemplate, "template", "", "HTML template file or URL (default built in)")
	resumeCmd.Flags().StringVar(&resumeMarkdownTemplate, "markdown-template", "", "Markdown template file or URL for --pdf (default built in)")
	resumeCmd.Flags().BoolVar(&resumePDF, "pdf", false, "Also render a PDF with pandoc")
	resumeCmd.Flags().BoolVar(&resumeKeepMarkdown, "keep-markdown", false, "Keep the markdown file after PDF generation")
	resumeCmd.Flags().StringToStringVar(&resumeHeadings, "heading", nil, "Override a section heading, e.g. --heading summary=profile")
}

func runResume(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	if getVerbose() {
		fmt.Printf("Loading resume from: %s\n", args[0])
	}

	var resume profile.Resume
	resume, err = profile.LoadResume(args[0])
	if err != nil {
		err = errors.Wrap(err, "failed to load resume")
		return err
	}

	var opts builder.Options
	opts, err = builderOptions(ctx, resumeTemplate, "", "", resumeHeadings)
	if err != nil {
		return err
	}

	var html string
	html, err = builder.ResumeHTML(resume, opts)
	if err != nil {
		return err
	}

	outDir := getOutputDir(resumeOutputDir, cfg.Defaults.OutputDir)
	err = writeOutput(html, outputPath(outDir, resume.PersonalInfo.Name, "-resume.html"))
	if err != nil {
		return err
	}

	if !resumePDF {
		return err
	}

	opts.Template, err = readOptional(ctx, resumeMarkdownTemplate, "markdown template")
	if err != nil {
		return err
	}

	err = writeResumePDF(ctx, resume, opts, outDir, cfg.Pandoc)
	return err
}

func writeResumePDF(ctx context.Context, resume profile.Resume, opts builder.Options, outDir string, pandoc config.PandocConfig) (err error) {
	var markdown string
	markdown, err = builder.ResumeMarkdown(resume, opts)
	if err != nil {
		return err
	}

	resumeMD := outputPath(outDir, resume.PersonalInfo.Name, "-resume.md")
	resumePDFPath := outputPath(outDir, resume.PersonalInfo.Name, "-resume.pdf")

	if getVerbose() {
		fmt.Println("Writing markdown file...")
	}

	err = renderer.WriteMarkdown(markdown, resumeMD)
	if err != nil {
		err = errors.Wrap(err, "failed to write resume markdown")
		return err
	}

	if getVerbose() {
		fmt.Println("Rendering PDF...")
	}

	err = renderer.RenderPDFWithContext(ctx, resumeMD, resumePDFPath, pandoc.TemplatePath, pandoc.ClassFile, pandoc.Engine)
	if err != nil {
		fmt.Printf("Resume markdown saved at: %s\n", resumeMD)
		err = errors.Wrap(err, "failed to render resume PDF")
		return err
	}

	fmt.Printf("Resume PDF saved at: %s\n", resumePDFPath)

	if !resumeKeepMarkdown {
		cleanupErr := renderer.CleanupMarkdown(resumeMD)
		if cleanupErr != nil {
			fmt.Printf("Warning: Failed to clean up markdown files: %v\n", cleanupErr)
		}
	}

	return err
}
