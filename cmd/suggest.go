package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nikogura/folio/pkg/config"
	"github.com/nikogura/folio/pkg/llm"
	"github.com/nikogura/folio/pkg/profile"
	"github.com/nikogura/folio/pkg/session"
	"github.com/nikogura/folio/pkg/source"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var suggestContext string

//nolint:gochecknoglobals // Cobra boilerplate
var suggestWorkflow string

//nolint:gochecknoglobals // Cobra boilerplate
var suggestTitle string

//nolint:gochecknoglobals // Cobra boilerplate
var suggestCompany string

//nolint:gochecknoglobals // Cobra boilerplate
var suggestDescription string

//nolint:gochecknoglobals // Cobra boilerplate
var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask the configured AI provider for text suggestions",
	Long: `Ask the configured AI provider (Gemini by default, or Anthropic) to draft
or improve text. The API key comes from ai.api_key in the config,
FOLIO_AI_API_KEY or GEMINI_API_KEY.

--context takes a file or URL, such as a job posting, whose text is
added to the prompt.`,
}

//nolint:gochecknoglobals // Cobra boilerplate
var suggestSummaryCmd = &cobra.Command{
	Use:   "summary <data>",
	Short: "Draft a professional summary from a resume or portfolio file",
	Long: `Draft a professional summary from a resume or portfolio file.

Example:
  folio suggest summary resume.yaml
  folio suggest summary portfolio.json --workflow portfolio --context https://example.com/job`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggestSummary,
}

//nolint:gochecknoglobals // Cobra boilerplate
var suggestDescriptionCmd = &cobra.Command{
	Use:   "description",
	Short: "Improve a position or project description",
	Long: `Improve a position or project description.

Example:
  folio suggest description --title "Platform Engineer" --company Acme --description "ran the k8s clusters"`,
	Args: cobra.NoArgs,
	RunE: runSuggestDescription,
}

//nolint:gochecknoglobals // Cobra boilerplate
var suggestPromptCmd = &cobra.Command{
	Use:   "prompt <text>",
	Short: "Send a free-form prompt",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSuggestPrompt,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.AddCommand(suggestSummaryCmd, suggestDescriptionCmd, suggestPromptCmd)
	suggestCmd.PersistentFlags().StringVar(&suggestContext, "context", "", "File or URL with extra context, e.g. a job posting")

	suggestSummaryCmd.Flags().StringVar(&suggestWorkflow, "workflow", session.WorkflowResume, "Data file kind: resume or portfolio")

	suggestDescriptionCmd.Flags().StringVar(&suggestTitle, "title", "", "Position or project title")
	suggestDescriptionCmd.Flags().StringVar(&suggestCompany, "company", "", "Company, if any")
	suggestDescriptionCmd.Flags().StringVar(&suggestDescription, "description", "", "Current description")
	_ = suggestDescriptionCmd.MarkFlagRequired("description")
}

func newSuggestClient() (client *llm.Client, err error) {
	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return client, err
	}

	client = cfg.NewLLMClient()
	if !client.Configured() {
		err = errors.Wrap(llm.ErrNotConfigured, "set ai.api_key, FOLIO_AI_API_KEY or GEMINI_API_KEY")
		return client, err
	}

	if getVerbose() {
		fmt.Printf("Using %s model %s\n", client.Provider(), client.Model())
	}

	return client, err
}

func readContext(ctx context.Context) (text string, err error) {
	if suggestContext == "" {
		return text, err
	}

	if getVerbose() {
		fmt.Printf("Fetching context from: %s\n", suggestContext)
	}

	text, err = source.FetchText(ctx, suggestContext)
	if err != nil {
		err = errors.Wrap(err, "failed to fetch context")
		return text, err
	}

	return text, err
}

func runSuggestSummary(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	var req llm.SummaryRequest
	req, err = summaryRequest(suggestWorkflow, args[0])
	if err != nil {
		return err
	}

	req.JobDescription, err = readContext(ctx)
	if err != nil {
		return err
	}

	var client *llm.Client
	client, err = newSuggestClient()
	if err != nil {
		return err
	}

	var summary string
	summary, err = client.SuggestSummary(ctx, req)
	if err != nil {
		return err
	}

	fmt.Println(summary)
	return err
}

func summaryRequest(workflow, path string) (req llm.SummaryRequest, err error) {
	switch workflow {
	case session.WorkflowResume:
		var resume profile.Resume
		resume, err = profile.LoadResume(path)
		if err != nil {
			err = errors.Wrap(err, "failed to load resume")
			return req, err
		}
		req.Name = resume.PersonalInfo.Name
		req.Role = resume.PersonalInfo.Role
		req.Skills = resume.AreaOfExpertise
		for _, exp := range resume.Experience {
			req.Experience = append(req.Experience, exp.Title+" at "+exp.Company)
		}
	case session.WorkflowPortfolio:
		var portfolio profile.Portfolio
		portfolio, err = profile.LoadPortfolio(path)
		if err != nil {
			err = errors.Wrap(err, "failed to load portfolio")
			return req, err
		}
		req.Name = portfolio.PersonalInfo.Name
		req.Role = portfolio.PersonalInfo.Role
		for _, skill := range portfolio.AboutMe.Skills {
			req.Skills = append(req.Skills, skill.Name)
		}
		for _, exp := range portfolio.Experience {
			req.Experience = append(req.Experience, exp.Position+" at "+exp.Company)
		}
	default:
		err = errors.Errorf("invalid workflow '%s': must be '%s' or '%s'", workflow, session.WorkflowResume, session.WorkflowPortfolio)
	}

	return req, err
}

func runSuggestDescription(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	req := llm.DescriptionRequest{
		Title:       suggestTitle,
		Company:     suggestCompany,
		Description: suggestDescription,
	}

	req.Context, err = readContext(ctx)
	if err != nil {
		return err
	}

	var client *llm.Client
	client, err = newSuggestClient()
	if err != nil {
		return err
	}

	var description string
	description, err = client.ImproveDescription(ctx, req)
	if err != nil {
		return err
	}

	fmt.Println(description)
	return err
}

func runSuggestPrompt(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	prompt := strings.Join(args, " ")

	var extra string
	extra, err = readContext(ctx)
	if err != nil {
		return err
	}
	if extra != "" {
		prompt += "\n\nContext:\n" + extra
	}

	var client *llm.Client
	client, err = newSuggestClient()
	if err != nil {
		return err
	}

	var text string
	text, err = client.GenerateContent(ctx, prompt)
	if err != nil {
		return err
	}

	fmt.Println(text)
	return err
}
