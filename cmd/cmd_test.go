package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikogura/folio/pkg/profile"
	"github.com/nikogura/folio/pkg/session"
)

func TestGetOutputDir(t *testing.T) {
	if got := getOutputDir("flag", "config"); got != "flag" {
		t.Errorf("Expected flag value, got %s", got)
	}

	if got := getOutputDir("", "config"); got != "config" {
		t.Errorf("Expected config value, got %s", got)
	}
}

func TestOutputPath(t *testing.T) {
	got := outputPath("out", "Ada Lovelace", "-resume.html")
	want := filepath.Join("out", "ada-lovelace-resume.html")
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func writeSample(t *testing.T, name string, v any) (path string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), name)

	data, err := profile.Marshal(path, v)
	if err != nil {
		t.Fatalf("Failed to marshal sample: %v", err)
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write sample: %v", err)
	}

	return path
}

func TestSummaryRequestResume(t *testing.T) {
	resume := profile.SampleResume()
	path := writeSample(t, "resume.yaml", resume)

	req, err := summaryRequest(session.WorkflowResume, path)
	if err != nil {
		t.Fatalf("Failed to build summary request: %v", err)
	}

	if req.Name != resume.PersonalInfo.Name {
		t.Errorf("Expected name %s, got %s", resume.PersonalInfo.Name, req.Name)
	}

	if len(req.Experience) != len(resume.Experience) {
		t.Fatalf("Expected %d experience entries, got %d", len(resume.Experience), len(req.Experience))
	}

	if len(req.Experience) > 0 && !strings.Contains(req.Experience[0], " at ") {
		t.Errorf("Expected 'title at company', got %s", req.Experience[0])
	}
}

func TestSummaryRequestPortfolio(t *testing.T) {
	portfolio := profile.SamplePortfolio()
	path := writeSample(t, "portfolio.json", portfolio)

	req, err := summaryRequest(session.WorkflowPortfolio, path)
	if err != nil {
		t.Fatalf("Failed to build summary request: %v", err)
	}

	if len(req.Skills) != len(portfolio.AboutMe.Skills) {
		t.Errorf("Expected %d skills, got %d", len(portfolio.AboutMe.Skills), len(req.Skills))
	}
}

func TestSummaryRequestInvalidWorkflow(t *testing.T) {
	_, err := summaryRequest("cover-letter", "unused.json")
	if err == nil {
		t.Error("Expected error for unknown workflow, got nil")
	}
}

func TestWriteOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "page.html")

	err := writeOutput("<p>hi</p>", path)
	if err != nil {
		t.Fatalf("Failed to write output: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	if string(data) != "<p>hi</p>" {
		t.Errorf("Expected written content, got %q", string(data))
	}
}

func TestRenderVerboseWritesDiagnosticsToStderr(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "page.html")
	dataPath := filepath.Join(dir, "data.json")

	err := os.WriteFile(tmplPath, []byte("<h1>{{name}}</h1>{{#if open}}"), 0600)
	if err != nil {
		t.Fatalf("Failed to write template: %v", err)
	}
	err = os.WriteFile(dataPath, []byte(`{"name": "Ada"}`), 0600)
	if err != nil {
		t.Fatalf("Failed to write data: %v", err)
	}

	oldVerbose, oldOutput := verbose, renderOutput
	oldStdout, oldStderr := os.Stdout, os.Stderr
	defer func() {
		verbose, renderOutput = oldVerbose, oldOutput
		os.Stdout, os.Stderr = oldStdout, oldStderr
	}()
	verbose, renderOutput = true, ""

	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout, os.Stderr = outW, errW

	err = runRender(renderCmd, []string{tmplPath, dataPath})
	_ = outW.Close()
	_ = errW.Close()
	os.Stdout, os.Stderr = oldStdout, oldStderr
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	stdout, _ := io.ReadAll(outR)
	stderr, _ := io.ReadAll(errR)

	if string(stdout) != "<h1>Ada</h1>{{#if open}}" {
		t.Errorf("Expected only the page on stdout, got %q", string(stdout))
	}
	if !strings.Contains(string(stderr), "Warning: 1:18: unterminated block {{#if open}}") {
		t.Errorf("Expected diagnostic on stderr, got %q", string(stderr))
	}
}
