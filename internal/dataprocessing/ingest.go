package dataprocessing

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"tmdbcli/internal/errors"
	"tmdbcli/pkg/contracts/domain"
)

const (
	delimiter = ','
	utf8BOM   = "\uFEFF"
)

// RawRow is one physical CSV record as tokenised from the file
type RawRow struct {
	Line   int
	Fields []string
}

// RawTable is the result of ingesting a raw dataset file
type RawTable struct {
	Source string
	// Lengths holds the field count of every record in file order, header included.
	Lengths    []int
	Width      int
	Header     []string
	Rows       []RawRow
	Unreadable int
}

// Schema maps column names to their index in the header
type Schema map[string]int

// NewSchema indexes a header
func NewSchema(header []string) Schema {
	s := make(Schema, len(header))
	for i, name := range header {
		s[name] = i
	}
	return s
}

// Field returns the value of column in fields, or "" if absent
func (s Schema) Field(fields []string, column string) string {
	i, ok := s[column]
	if !ok || i >= len(fields) {
		return ""
	}
	return fields[i]
}

// Ingest reads the CSV file at path. Open and read failures are IO errors;
// a header that does not match the dataset columns is a SCHEMA error.
func Ingest(path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("open", path, err)
	}
	defer f.Close()

	table, err := ReadRaw(f, path)
	if err != nil {
		return nil, err
	}

	if err := ValidateHeader(table); err != nil {
		return nil, err
	}
	return table, nil
}

// recordReader is the part of *csv.Reader that ReadRaw consumes
type recordReader interface {
	Read() ([]string, error)
	FieldPos(field int) (line, column int)
}

// ReadRaw tokenises r leniently and derives the canonical width.
// A record the tokeniser rejects is counted as unreadable and kept as an
// empty row, which the repairer pads to the canonical width.
func ReadRaw(r io.Reader, source string) (*RawTable, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	return readRecords(reader, source)
}

func readRecords(reader recordReader, source string) (*RawTable, error) {
	table := &RawTable{Source: source}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !stderrors.As(err, &parseErr) {
				return nil, errors.NewIOError("read", source, err)
			}
			table.Unreadable++
			if table.Header != nil {
				table.Rows = append(table.Rows, RawRow{Line: parseErr.StartLine})
			}
			continue
		}

		table.Lengths = append(table.Lengths, len(record))
		if table.Header == nil {
			record[0] = strings.TrimPrefix(record[0], utf8BOM)
			table.Header = record
			continue
		}

		line, _ := reader.FieldPos(0)
		table.Rows = append(table.Rows, RawRow{Line: line, Fields: record})
	}

	if table.Header == nil {
		return nil, errors.NewIOError("read", source, io.ErrUnexpectedEOF).
			WithContext("reason", "empty file")
	}

	table.Width = CanonicalWidth(table.Lengths)
	return table, nil
}

// CanonicalWidth returns the most frequent length. On a tie the length seen
// first wins. It returns 0 for no lengths.
func CanonicalWidth(lengths []int) int {
	counts := make(map[int]int)
	var order []int
	for _, n := range lengths {
		if counts[n] == 0 {
			order = append(order, n)
		}
		counts[n]++
	}

	width, best := 0, 0
	for _, n := range order {
		if counts[n] > best {
			width, best = n, counts[n]
		}
	}
	return width
}

// ValidateHeader checks that the header holds exactly the dataset columns
// and agrees with the canonical width.
func ValidateHeader(table *RawTable) error {
	if len(table.Header) != table.Width {
		return errors.NewSchemaError(table.Source,
			fmt.Sprintf("header has %d columns, canonical width is %d", len(table.Header), table.Width))
	}

	seen := make(map[string]bool, len(table.Header))
	for _, name := range table.Header {
		seen[name] = true
	}

	var missing, unexpected []string
	for _, name := range domain.Columns {
		if !seen[name] {
			missing = append(missing, name)
		}
		delete(seen, name)
	}
	for name := range seen {
		unexpected = append(unexpected, name)
	}
	sort.Strings(unexpected)

	if len(missing) > 0 || len(unexpected) > 0 || len(table.Header) != len(domain.Columns) {
		return errors.NewSchemaError(table.Source, "header does not match dataset columns").
			WithContext("missing", missing).
			WithContext("unexpected", unexpected)
	}
	return nil
}

// joinRecord renders fields back into one CSV line without quoting
func joinRecord(fields []string) string {
	return strings.Join(fields, string(delimiter))
}
