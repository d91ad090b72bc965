// Package builder assembles resume and portfolio documents from profile data
// and the page templates.
package builder

import (
	_ "embed"
	"strings"

	"github.com/nikogura/folio/pkg/profile"
	"github.com/nikogura/folio/pkg/template"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//nolint:gochecknoglobals // embedded assets
var (
	//go:embed templates/resume.html
	resumeHTMLTemplate string
	//go:embed templates/resume.md
	resumeMarkdownTemplate string
	//go:embed templates/portfolio.html
	portfolioHTMLTemplate string
	//go:embed templates/portfolio.css
	portfolioCSS string
	//go:embed templates/portfolio.js
	portfolioJS string
)

// Options customizes document generation. All fields are optional.
type Options struct {
	// Template replaces the embedded page template.
	Template string
	// CSS and JS replace the embedded portfolio stylesheet and script.
	// They are inserted without escaping and must come from the operator.
	CSS string
	JS  string
	// Headings overrides section headings by key. Headings are title-cased.
	Headings map[string]string
}

// DefaultResumeHeadings returns the resume section headings.
func DefaultResumeHeadings() (headings map[string]string) {
	headings = map[string]string{
		"summary":           "professional summary",
		"area_of_expertise": "area of expertise",
		"key_achievements":  "key achievements",
		"experience":        "professional experience",
		"education":         "education",
		"projects":          "projects",
		"additional":        "additional information",
	}
	return headings
}

// DefaultPortfolioHeadings returns the portfolio section headings.
func DefaultPortfolioHeadings() (headings map[string]string) {
	headings = map[string]string{
		"about":      "about me",
		"skills":     "skills",
		"experience": "experience",
		"education":  "education",
		"projects":   "projects",
		"contact":    "get in touch",
	}
	return headings
}

// DefaultTemplate returns the embedded template for a workflow and format.
// Known names are resume.html, resume.md, portfolio.html, portfolio.css and portfolio.js.
func DefaultTemplate(name string) (content string, err error) {
	switch name {
	case "resume.html":
		content = resumeHTMLTemplate
	case "resume.md":
		content = resumeMarkdownTemplate
	case "portfolio.html":
		content = portfolioHTMLTemplate
	case "portfolio.css":
		content = portfolioCSS
	case "portfolio.js":
		content = portfolioJS
	default:
		err = errors.Errorf("unknown template %q", name)
	}
	return content, err
}

// ResumeHTML renders a resume as a standalone HTML page.
func ResumeHTML(r profile.Resume, opts Options) (html string, err error) {
	err = r.Validate()
	if err != nil {
		err = errors.Wrap(err, "invalid resume")
		return html, err
	}

	html = template.Render(pick(opts.Template, resumeHTMLTemplate), ResumeRecord(r, opts))
	return html, err
}

// ResumeMarkdown renders a resume as markdown for the PDF pipeline.
func ResumeMarkdown(r profile.Resume, opts Options) (markdown string, err error) {
	err = r.Validate()
	if err != nil {
		err = errors.Wrap(err, "invalid resume")
		return markdown, err
	}

	markdown = template.Render(pick(opts.Template, resumeMarkdownTemplate), ResumeRecord(r, opts))
	markdown = collapseBlankLines(markdown)
	return markdown, err
}

// PortfolioHTML renders a portfolio as a standalone HTML page.
func PortfolioHTML(p profile.Portfolio, opts Options) (html string, err error) {
	err = p.Validate()
	if err != nil {
		err = errors.Wrap(err, "invalid portfolio")
		return html, err
	}

	html = template.Render(pick(opts.Template, portfolioHTMLTemplate), PortfolioRecord(p, opts))
	return html, err
}

// ResumeRecord is the data record the resume templates render against:
// the resume fields plus headings and contact_line.
func ResumeRecord(r profile.Resume, opts Options) (data template.Record) {
	data = r.Record()
	data["headings"] = headingsValue(DefaultResumeHeadings(), opts.Headings)
	data["contact_line"] = template.String(ContactLine(r.PersonalInfo))
	return data
}

// PortfolioRecord is the data record the portfolio template renders against:
// the portfolio fields plus headings, the three pre-rendered timelines and
// the stylesheet and script.
func PortfolioRecord(p profile.Portfolio, opts Options) (data template.Record) {
	data = p.Record()
	data["headings"] = headingsValue(DefaultPortfolioHeadings(), opts.Headings)
	data["education_timeline"] = timeline(educationFragment, data["education"])
	data["experience_timeline"] = timeline(experienceFragment, data["experience"])
	data["projects_timeline"] = timeline(projectFragment, data["projects"])
	data["css_content"] = template.Raw(pick(opts.CSS, portfolioCSS))
	data["js_content"] = template.Raw(pick(opts.JS, portfolioJS))
	return data
}

// ContactLine joins the non-empty contact fields with " | ".
func ContactLine(info profile.ResumeContact) (line string) {
	parts := make([]string, 0, 6)
	for _, part := range []string{info.Location, info.Email, info.Phone, info.LinkedIn, info.GitHub, info.Website} {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}

	line = strings.Join(parts, " | ")
	return line
}

func headingsValue(defaults, overrides map[string]string) (v template.Value) {
	caser := cases.Title(language.English)

	record := make(template.Record, len(defaults))
	for key, heading := range defaults {
		if override, ok := overrides[key]; ok && override != "" {
			heading = override
		}
		record[key] = template.String(caser.String(heading))
	}

	v = template.Map(record)
	return v
}

func pick(override, fallback string) (s string) {
	s = fallback
	if override != "" {
		s = override
	}
	return s
}

// collapseBlankLines reduces runs of blank lines to one and trims the ends.
func collapseBlankLines(s string) (out string) {
	lines := strings.Split(s, "\n")
	kept := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		kept = append(kept, line)
	}

	out = strings.TrimSpace(strings.Join(kept, "\n")) + "\n"
	return out
}
