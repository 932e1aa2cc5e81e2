// Package jd loads job descriptions from files, URLs or standard input.
package jd

import (
	"context"
	"html"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// Stdin is the input name that reads the job description from standard input.
	Stdin = "-"
	// MaxBytes caps how much of a job description is read.
	MaxBytes = 100000
	// UserAgent identifies job description requests.
	UserAgent = "alanna/1.0"
)

// Fetcher retrieves job descriptions.
type Fetcher struct {
	httpClient *http.Client
	stdin      io.Reader
}

// NewFetcher creates a fetcher reading "-" from stdin.
func NewFetcher(stdin io.Reader) (f *Fetcher) {
	if stdin == nil {
		stdin = os.Stdin
	}
	f = &Fetcher{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		stdin: stdin,
	}
	return f
}

// Fetch retrieves a job description with a 30 second deadline.
func Fetch(input string) (content string, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	content, err = NewFetcher(nil).Fetch(ctx, input)
	return content, err
}

// Fetch retrieves the job description named by input: "-" for stdin, an http(s) URL, or a file path.
func (f *Fetcher) Fetch(ctx context.Context, input string) (content string, err error) {
	switch {
	case input == Stdin:
		content, err = readText(f.stdin)
		if err != nil {
			err = errors.Wrap(err, "failed to read JD from stdin")
		}
		return content, err

	case isURL(input):
		content, err = f.fetchURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch JD from URL: %s", input)
		}
		return content, err
	}

	var file *os.File
	file, err = os.Open(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch JD from file: %s", input)
		return content, err
	}
	defer file.Close()

	content, err = readText(file)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch JD from file: %s", input)
		return content, err
	}

	return content, err
}

func isURL(input string) (ok bool) {
	parsed, err := url.Parse(input)
	ok = err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https")
	return ok
}

// readText reads up to MaxBytes and rejects blank input.
func readText(r io.Reader) (content string, err error) {
	var data []byte
	data, err = io.ReadAll(io.LimitReader(r, MaxBytes))
	if err != nil {
		err = errors.Wrap(err, "read failed")
		return content, err
	}

	content = strings.TrimSpace(string(data))
	if content == "" {
		err = errors.New("job description is empty")
		return content, err
	}

	return content, err
}

// fetchURL downloads a page and reduces it to text.
func (f *Fetcher) fetchURL(ctx context.Context, target string) (content string, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}
	req.Header.Set("User-Agent", UserAgent)

	var resp *http.Response
	resp, err = f.httpClient.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	var page string
	page, err = readText(resp.Body)
	if err != nil {
		return content, err
	}

	content = StripHTML(page)
	if content == "" {
		err = errors.New("fetched content is empty after processing")
		return content, err
	}

	return content, err
}

// StripHTML reduces markup to text. Script and style bodies are dropped, tags become spaces
// and entities are decoded. Runs of spaces and blank lines collapse.
func StripHTML(page string) (text string) {
	page = hiddenElement.ReplaceAllString(page, " ")

	var b strings.Builder
	inTag := false
	for _, char := range page {
		switch {
		case char == '<':
			inTag = true
		case char == '>':
			inTag = false
			b.WriteByte(' ')
		case !inTag:
			b.WriteRune(char)
		}
	}

	lines := []string{}
	for line := range strings.Lines(html.UnescapeString(b.String())) {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}

	text = strings.Join(lines, "\n")
	return text
}

// hiddenElement matches script and style spans, including one left unclosed at the end.
//
//nolint:gochecknoglobals // Compiled once
var hiddenElement = regexp.MustCompile(`(?is)<(script|style)\b.*?(</(script|style)\s*>|$)`)
