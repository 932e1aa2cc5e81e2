package resume

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Header columns of the content table.
const (
	ColumnSection    = "section"
	ColumnSubsection = "subsection"
	ColumnContent    = "content"
)

// Header is the canonical header line of a content table.
const Header = ColumnSection + "," + ColumnSubsection + "," + ColumnContent

// Load reads a content table from a CSV file.
func Load(path string) (rows []ContentRow, err error) {
	var file *os.File
	file, err = os.Open(path)
	if err != nil {
		err = &InputFormatError{Path: path, Reason: "cannot open file", Err: err}
		return rows, err
	}
	defer file.Close()

	rows, err = parse(file, path)
	return rows, err
}

// Parse reads a content table from CSV text.
func Parse(r io.Reader) (rows []ContentRow, err error) {
	rows, err = parse(r, "")
	return rows, err
}

func parse(r io.Reader, path string) (rows []ContentRow, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Read header
	var header []string
	header, err = reader.Read()
	if errors.Is(err, io.EOF) {
		err = &InputFormatError{Path: path, Reason: "table is empty"}
		return rows, err
	}
	if err != nil {
		err = &InputFormatError{Path: path, Reason: "cannot read header", Err: err}
		return rows, err
	}

	var columns map[string]int
	columns, err = headerColumns(header)
	if err != nil {
		err = &InputFormatError{Path: path, Reason: "bad header", Err: err}
		return rows, err
	}

	// Read records
	for {
		var record []string
		record, err = reader.Read()
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if err != nil {
			err = &InputFormatError{Path: path, Reason: "cannot parse record", Err: err}
			return rows, err
		}

		if blankRecord(record) {
			continue
		}

		rows = append(rows, ContentRow{
			Section:    Section(strings.TrimSpace(field(record, columns[ColumnSection]))),
			Subsection: strings.TrimSpace(field(record, columns[ColumnSubsection])),
			Content:    field(record, columns[ColumnContent]),
		})
	}

	if len(rows) == 0 {
		err = &InputFormatError{Path: path, Reason: "table has no rows"}
		return rows, err
	}

	return rows, err
}

// headerColumns maps the required column names to their indexes.
func headerColumns(header []string) (columns map[string]int, err error) {
	columns = make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		name = strings.ToLower(strings.TrimSpace(name))
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	for _, required := range []string{ColumnSection, ColumnSubsection, ColumnContent} {
		if _, ok := columns[required]; !ok {
			err = errors.Errorf("missing column %q (want %q)", required, Header)
			return columns, err
		}
	}

	return columns, err
}

func field(record []string, index int) (value string) {
	if index < len(record) {
		value = record[index]
	}
	return value
}

func blankRecord(record []string) (blank bool) {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return blank
		}
	}
	blank = true
	return blank
}

// WriteCSV writes rows as a content table with header.
func WriteCSV(w io.Writer, rows []ContentRow) (err error) {
	writer := csv.NewWriter(w)

	err = writer.Write([]string{ColumnSection, ColumnSubsection, ColumnContent})
	if err != nil {
		err = errors.Wrap(err, "failed to write table header")
		return err
	}

	for _, row := range rows {
		err = writer.Write([]string{string(row.Section), row.Subsection, row.Content})
		if err != nil {
			err = errors.Wrap(err, "failed to write table row")
			return err
		}
	}

	writer.Flush()
	err = writer.Error()
	if err != nil {
		err = errors.Wrap(err, "failed to flush table")
		return err
	}

	return err
}

// Format renders rows as CSV text.
func Format(rows []ContentRow) (text string, err error) {
	var buf bytes.Buffer
	err = WriteCSV(&buf, rows)
	if err != nil {
		return text, err
	}
	text = buf.String()
	return text, err
}
