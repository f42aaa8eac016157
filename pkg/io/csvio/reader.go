package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	e "github.com/wdm0006/eprime/pkg/eprime"
	iox "github.com/wdm0006/eprime/pkg/io/ioutils"
)

// FormatError reports an export file whose extension selects no known
// dialect. Only ".txt" (tab-delimited, three-line preamble) and ".csv"
// (comma-delimited, no preamble) exports are recognized.
type FormatError struct {
	Path string
}

func (f *FormatError) Error() string {
	return "file not txt or csv: " + f.Path
}

// Reader loads an exported E-Prime table (the "E-Prime text" export or a
// plain csv) into a string Frame. Empty cells are null.
type Reader struct {
	// repair/warning counters
	shortRecords int
	longRecords  int
}

// dialect returns delimiter and preamble line count for an export path.
func dialect(path string) (delim rune, skip int, err error) {
	switch filepath.Ext(path) {
	case ".txt":
		// The tab-delimited "E-Prime text" export carries a three-line preamble.
		return '\t', 3, nil
	case ".csv":
		return ',', 0, nil
	default:
		return 0, 0, &FormatError{Path: path}
	}
}

// ReadFile reads the export at path into a Frame. The first post-preamble
// record is the header row.
func (r *Reader) ReadFile(path string) (*e.Frame, error) {
	delim, skip, err := dialect(path)
	if err != nil {
		return nil, err
	}
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return r.readAll(rc, delim, skip)
}

func (r *Reader) readAll(in io.Reader, delim rune, skip int) (*e.Frame, error) {
	br := bufio.NewReader(in)
	for i := 0; i < skip; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("export shorter than its %d-line preamble", skip)
			}
			return nil, err
		}
	}

	rr := csv.NewReader(br)
	rr.Comma = delim
	rr.FieldsPerRecord = -1
	rr.LazyQuotes = true

	hdr, err := rr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("export has no header row")
		}
		return nil, err
	}
	names := make([]string, len(hdr))
	for i := range hdr {
		names[i] = strings.ToValidUTF8(strings.TrimSpace(hdr[i]), "?")
	}
	// strip BOM on first header cell if present
	if len(names) > 0 {
		names[0] = strings.TrimPrefix(names[0], "\ufeff")
	}

	f := e.NewFrame(names)
	for {
		rec, err := rr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) > len(names) {
			r.longRecords++
		} else if len(rec) < len(names) {
			r.shortRecords++
		}
		f.AppendNullRow()
		row := f.Rows() - 1
		for i, name := range names {
			if i >= len(rec) {
				continue
			}
			val := strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
			if val == "" {
				continue // empty cell stays null
			}
			_ = f.SetCell(row, name, val)
		}
	}
	return f, nil
}

// Warnings returns a summary string of record-length mismatches seen
// during the last read, or "" if there were none.
func (r *Reader) Warnings() string {
	if r.shortRecords == 0 && r.longRecords == 0 {
		return ""
	}
	parts := []string{}
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	return strings.Join(parts, ", ")
}
