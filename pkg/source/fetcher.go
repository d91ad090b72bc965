// Package source loads templates, data records and prompt context from a
// file path or an http(s) URL.
package source

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const fetchTimeout = 30 * time.Second

// Fetch retrieves text from a file or URL.
func Fetch(input string) (content string, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	content, err = FetchWithContext(ctx, input)
	return content, err
}

// FetchWithContext retrieves text from a file or URL. Content is returned
// unchanged, so HTML templates survive the trip.
func FetchWithContext(ctx context.Context, input string) (content string, err error) {
	if IsURL(input) {
		content, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch from URL: %s", input)
			return content, err
		}
		return content, err
	}

	content, err = fetchFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch from file: %s", input)
		return content, err
	}

	return content, err
}

// FetchText retrieves a document and reduces it to plain text, dropping
// markup along with script and style bodies. It is used for AI prompt context
// such as a job posting.
func FetchText(ctx context.Context, input string) (text string, err error) {
	var content string
	content, err = FetchWithContext(ctx, input)
	if err != nil {
		return text, err
	}

	text = stripBasicHTML(content)
	if text == "" {
		err = errors.Errorf("content from %s is empty after processing", input)
		return text, err
	}

	return text, err
}

// IsURL reports whether input is an http or https URL.
func IsURL(input string) (ok bool) {
	parsedURL, urlErr := url.Parse(input)
	ok = urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https")
	return ok
}

func fetchFromFile(path string) (content string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return content, err
	}

	content = string(data)
	if content == "" {
		err = errors.New("file is empty")
		return content, err
	}

	return content, err
}

func fetchFromURL(ctx context.Context, urlStr string) (content string, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}

	req.Header.Set("User-Agent", "folio/1.0")

	client := &http.Client{
		Timeout: fetchTimeout,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	var bodyBytes []byte
	bodyBytes, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return content, err
	}

	content = string(bodyBytes)
	if content == "" {
		err = errors.New("fetched content is empty")
		return content, err
	}

	return content, err
}

// stripBasicHTML removes tags, plus script and style elements with their content.
func stripBasicHTML(html string) (text string) {
	text = removeTagAndContent(html, "script")
	text = removeTagAndContent(text, "style")

	inTag := false
	result := strings.Builder{}
	for _, char := range text {
		switch {
		case char == '<':
			inTag = true
		case char == '>':
			inTag = false
		case !inTag:
			result.WriteRune(char)
		}
	}

	text = strings.Join(strings.Fields(result.String()), " ")

	return text
}

func removeTagAndContent(html, tag string) (result string) {
	result = html
	openTag := "<" + tag
	closeTag := "</" + tag + ">"

	for {
		startIdx := strings.Index(result, openTag)
		if startIdx == -1 {
			break
		}

		endIdx := strings.Index(result[startIdx:], closeTag)
		if endIdx == -1 {
			break
		}

		endIdx += startIdx + len(closeTag)
		result = result[:startIdx] + result[endIdx:]
	}

	return result
}
