// Package lint checks page templates before they are deployed.
package lint

import (
	"strings"

	"github.com/aymerick/raymond"
	"github.com/nikogura/folio/pkg/template"
)

// Report is the result of checking one template.
type Report struct {
	// Diagnostics lists markup that the renderer will copy through literally.
	Diagnostics []template.Diagnostic `json:"diagnostics"`
	// Paths lists every data path the template reads.
	Paths []string `json:"paths"`
	// HandlebarsError is set when a standard Handlebars parser rejects the
	// template, meaning it would not render elsewhere.
	HandlebarsError string `json:"handlebars_error,omitempty"`
	// Missing lists paths not present in the sample record, when one is given.
	Missing []string `json:"missing,omitempty"`
}

// Clean reports whether the template has no diagnostics and parses as Handlebars.
func (r Report) Clean() (ok bool) {
	ok = len(r.Diagnostics) == 0 && r.HandlebarsError == "" && len(r.Missing) == 0
	return ok
}

// Check lints src. When sample is non-nil, root paths that do not resolve
// against it are reported as missing; loop-local "this" paths are skipped.
func Check(src string, sample template.Record) (report Report) {
	tmpl := template.Parse(src)

	report.Diagnostics = tmpl.Diagnostics()
	report.Paths = tmpl.Paths()

	_, err := raymond.Parse(src)
	if err != nil {
		report.HandlebarsError = err.Error()
	}

	if sample != nil {
		for _, path := range report.Paths {
			if isLocal(path) {
				continue
			}
			if _, found := sample.Lookup(path); !found {
				report.Missing = append(report.Missing, path)
			}
		}
	}

	return report
}

func isLocal(path string) (ok bool) {
	ok = path == "this" || strings.HasPrefix(path, "this.")
	return ok
}
