package logio

import (
	"bufio"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	e "github.com/wdm0006/eprime/pkg/eprime"
	iox "github.com/wdm0006/eprime/pkg/io/ioutils"
)

// Default sentinel lines delimiting one trial record in a raw E-Prime log.
const (
	DefaultStartMarker = "*** LogFrame Start ***"
	DefaultEndMarker   = "*** LogFrame End ***"
)

type ReaderOptions struct {
	StartMarker string // default "*** LogFrame Start ***"
	EndMarker   string // default "*** LogFrame End ***"
}

// Reader parses a raw E-Prime log into a Frame: one row per start/end
// delimited block, one column per distinct "key: value" key, columns in
// first-seen order.
type Reader struct {
	opt ReaderOptions
	// warning counters
	markerMismatch bool
	starts, ends   int
}

func NewReader(opt ReaderOptions) *Reader {
	if opt.StartMarker == "" {
		opt.StartMarker = DefaultStartMarker
	}
	if opt.EndMarker == "" {
		opt.EndMarker = DefaultEndMarker
	}
	return &Reader{opt: opt}
}

// ReadFile opens path (gzip transparent, "-" for stdin) and parses it.
func (r *Reader) ReadFile(path string) (*e.Frame, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	var lines []string
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, SanitizeLine(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return r.Parse(lines), nil
}

// Parse materializes a Frame from sanitized lines.
func (r *Reader) Parse(lines []string) *e.Frame {
	var starts, ends []int
	for i, line := range lines {
		switch line {
		case r.opt.StartMarker:
			starts = append(starts, i)
		case r.opt.EndMarker:
			ends = append(ends, i)
		}
	}
	r.starts, r.ends = len(starts), len(ends)
	if len(starts) != len(ends) || (len(starts) > 0 && len(ends) > 0 && starts[0] >= ends[0]) {
		r.markerMismatch = true
	}
	n := len(starts)
	if len(ends) < n {
		n = len(ends)
	}

	// Unify headers: union of keys across all blocks, first-seen order.
	var headers []string
	seen := make(map[string]bool)
	blocks := make([][]string, n)
	for i := 0; i < n; i++ {
		lo, hi := starts[i]+1, ends[i]
		if hi < lo {
			// out-of-order pair (end before start): empty block
			hi = lo
		}
		blocks[i] = lines[lo:hi]
		for _, kv := range blocks[i] {
			key, _, ok := splitKeyValue(kv)
			if !ok {
				continue
			}
			if !seen[key] {
				seen[key] = true
				headers = append(headers, key)
			}
		}
	}

	f := e.NewFrame(headers)
	for i := 0; i < n; i++ {
		f.AppendNullRow()
		for _, kv := range blocks[i] {
			key, val, ok := splitKeyValue(kv)
			if !ok {
				continue
			}
			// duplicate key within a block: last occurrence wins
			_ = f.SetCell(i, key, val)
		}
	}
	return f
}

// Warnings returns a summary of structural problems seen during the last
// parse, or "" if there were none. Marker mismatches are not fatal; the
// table is built from the matched pairs.
func (r *Reader) Warnings() string {
	if !r.markerMismatch {
		return ""
	}
	return fmt.Sprintf("block starts and ends do not match up (starts=%d, ends=%d)", r.starts, r.ends)
}

// splitKeyValue splits a "key: value" line on the first colon. The value
// keeps trailing whitespace but loses leading whitespace. Lines without a
// colon are not key-value lines.
func splitKeyValue(line string) (key, val string, ok bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", false
	}
	return line[:i], strings.TrimLeft(line[i+1:], " \t"), true
}

// SanitizeLine strips control characters and non-ASCII artifacts left by
// the exporter's permissive encoding, plus any trailing CR.
func SanitizeLine(s string) string {
	s = strings.TrimRight(s, "\r\n")
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return r
		}
		if r >= utf8.RuneSelf || !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, s)
}
