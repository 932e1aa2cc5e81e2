// Package tailor turns a job description and a master content table into a trimmed table and cover letter.
package tailor

import (
	"context"
	"strings"

	"github.com/JTMarcu/project-alanna/pkg/llm"
	"github.com/JTMarcu/project-alanna/pkg/resume"
	"github.com/pkg/errors"
)

// ErrNoTable is returned when a reply does not contain the table header.
var ErrNoTable = errors.Errorf("response has no %q header", llm.TableMarker)

// Result is a tailored table and its cover letter.
type Result struct {
	Rows []resume.ContentRow
	// Table is Rows formatted as CSV.
	Table  string
	Letter string
	// Raw is the unmodified model reply.
	Raw string
}

// Tailor asks completer for a table fitted to jd, then parses and backfills it.
func Tailor(ctx context.Context, completer llm.Completer, jd, masterCSV string, defaults []resume.ContentRow) (result Result, err error) {
	prompt := llm.BuildTailorPrompt(jd, masterCSV)

	result.Raw, err = completer.Complete(ctx, prompt)
	if err != nil {
		err = errors.Wrap(err, "tailoring request failed")
		return result, err
	}

	var table string
	table, result.Letter, err = SplitResponse(result.Raw)
	if err != nil {
		return result, err
	}

	var rows []resume.ContentRow
	rows, err = resume.Parse(strings.NewReader(table))
	if err != nil {
		err = errors.Wrap(err, "failed to parse tailored table")
		return result, err
	}

	result.Rows = Backfill(rows, defaults)

	result.Table, err = resume.Format(result.Rows)
	if err != nil {
		return result, err
	}

	return result, err
}

// SplitResponse separates the table from the cover letter in a model reply.
//
// The table starts at the header line. The letter starts at the first line after the table
// that begins with "Dear ". A reply without a letter yields an empty letter.
func SplitResponse(text string) (table, letter string, err error) {
	text = stripCodeFences(text)

	start := strings.Index(text, llm.TableMarker)
	if start < 0 {
		err = ErrNoTable
		return table, letter, err
	}
	rest := text[start:]

	end := letterStart(rest)
	if end < 0 {
		table = strings.TrimSpace(rest)
		return table, letter, err
	}

	table = strings.TrimSpace(rest[:end])
	letter = strings.TrimSpace(rest[end:])
	return table, letter, err
}

// letterStart returns the offset of the first line opening with the letter marker, or -1.
func letterStart(text string) (offset int) {
	for line := range strings.Lines(text) {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), llm.LetterMarker) {
			offset += len(line) - len(strings.TrimLeft(line, " \t"))
			return offset
		}
		offset += len(line)
	}
	offset = -1
	return offset
}

// stripCodeFences drops markdown fence lines such as ```csv.
func stripCodeFences(text string) (cleaned string) {
	var b strings.Builder
	for line := range strings.Lines(text) {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		b.WriteString(line)
	}
	cleaned = b.String()
	return cleaned
}

// Backfill appends each default personal_info row whose subsection the table lacks.
func Backfill(rows, defaults []resume.ContentRow) (filled []resume.ContentRow) {
	present := map[string]bool{}
	for _, row := range rows {
		if row.Section == resume.SectionPersonalInfo && strings.TrimSpace(row.Content) != "" {
			present[row.Subsection] = true
		}
	}

	filled = append(filled, rows...)
	for _, def := range defaults {
		if present[def.Subsection] {
			continue
		}
		present[def.Subsection] = true
		filled = append(filled, resume.ContentRow{
			Section:    resume.SectionPersonalInfo,
			Subsection: def.Subsection,
			Content:    def.Content,
		})
	}

	return filled
}
