package logio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseTwoBlocks(t *testing.T) {
	r := NewReader(ReaderOptions{})
	f := r.Parse([]string{
		DefaultStartMarker,
		"k1: 1",
		"k2: 2",
		DefaultEndMarker,
		DefaultStartMarker,
		"k1: 3",
		DefaultEndMarker,
	})
	if w := r.Warnings(); w != "" {
		t.Fatalf("unexpected warning: %q", w)
	}
	if f.Rows() != 2 {
		t.Fatalf("rows=%d", f.Rows())
	}
	if cols := f.Columns(); len(cols) != 2 || cols[0] != "k1" || cols[1] != "k2" {
		t.Fatalf("columns: %v", cols)
	}
	k1, _ := f.ColumnByName("k1")
	k2, _ := f.ColumnByName("k2")
	if v, _ := k1.Get(0); v != "1" {
		t.Fatalf("k1[0]=%q", v)
	}
	if v, _ := k1.Get(1); v != "3" {
		t.Fatalf("k1[1]=%q", v)
	}
	if v, _ := k2.Get(0); v != "2" {
		t.Fatalf("k2[0]=%q", v)
	}
	if !k2.IsNull(1) {
		t.Fatal("k2 missing in second block should be null")
	}
}

func TestParseHeaderOrderIsFirstSeen(t *testing.T) {
	r := NewReader(ReaderOptions{})
	f := r.Parse([]string{
		DefaultStartMarker, "b: 1", "a: 2", DefaultEndMarker,
		DefaultStartMarker, "c: 3", "a: 4", DefaultEndMarker,
	})
	cols := f.Columns()
	want := []string{"b", "a", "c"}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("columns: %v, want %v", cols, want)
		}
	}
}

func TestParseMismatchedMarkers(t *testing.T) {
	r := NewReader(ReaderOptions{})
	// 3 starts, 2 ends: usable blocks = 2, warning, no failure.
	f := r.Parse([]string{
		DefaultStartMarker, "k: 1", DefaultEndMarker,
		DefaultStartMarker, "k: 2", DefaultEndMarker,
		DefaultStartMarker, "k: 3",
	})
	if f.Rows() != 2 {
		t.Fatalf("rows=%d", f.Rows())
	}
	if r.Warnings() == "" {
		t.Fatal("expected a marker mismatch warning")
	}
}

func TestParseEndBeforeStartWarns(t *testing.T) {
	r := NewReader(ReaderOptions{})
	r.Parse([]string{DefaultEndMarker, DefaultStartMarker, "k: 1", DefaultEndMarker})
	if r.Warnings() == "" {
		t.Fatal("expected a warning when the first end precedes the first start")
	}
}

func TestParseDuplicateKeyLastWins(t *testing.T) {
	r := NewReader(ReaderOptions{})
	f := r.Parse([]string{DefaultStartMarker, "k: first", "k: second", DefaultEndMarker})
	if len(f.Columns()) != 1 {
		t.Fatalf("columns: %v", f.Columns())
	}
	col, _ := f.ColumnByName("k")
	if v, _ := col.Get(0); v != "second" {
		t.Fatalf("got %q", v)
	}
}

func TestParseValueKeepsSecondColon(t *testing.T) {
	r := NewReader(ReaderOptions{})
	f := r.Parse([]string{DefaultStartMarker, "SessionTime: 10:42:03", DefaultEndMarker})
	col, _ := f.ColumnByName("SessionTime")
	if v, _ := col.Get(0); v != "10:42:03" {
		t.Fatalf("got %q", v)
	}
}

func TestParseSkipsLinesWithoutColon(t *testing.T) {
	r := NewReader(ReaderOptions{})
	f := r.Parse([]string{DefaultStartMarker, "stray prose", "k: v", "", DefaultEndMarker})
	if len(f.Columns()) != 1 || f.Columns()[0] != "k" {
		t.Fatalf("columns: %v", f.Columns())
	}
}

func TestParseEmptyInput(t *testing.T) {
	r := NewReader(ReaderOptions{})
	f := r.Parse(nil)
	if f.Rows() != 0 || f.Cols() != 0 {
		t.Fatalf("rows=%d cols=%d", f.Rows(), f.Cols())
	}
	if r.Warnings() != "" {
		t.Fatalf("unexpected warning: %q", r.Warnings())
	}
}

func TestSanitizeLine(t *testing.T) {
	cases := []struct{ in, want string }{
		{"k: v\r", "k: v"},
		{"k:\tv", "k:\tv"},
		{"k: caf\xc3\xa9", "k: caf"}, // non-ASCII dropped
		{"k: a\x00\x07b", "k: ab"},   // control chars dropped
		{"\xff\xfe", ""},             // invalid UTF-8 dropped, not an error
		{"*** LogFrame Start ***\r", "*** LogFrame Start ***"},
	}
	for _, c := range cases {
		if got := SanitizeLine(c.in); got != c.want {
			t.Fatalf("SanitizeLine(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subj0001_task-0.txt")
	content := "noise before\r\n" +
		DefaultStartMarker + "\r\n" +
		"Subject: 1\r\n" +
		"Trial.RT: 532\r\n" +
		DefaultEndMarker + "\r\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	r := NewReader(ReaderOptions{})
	f, err := r.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Rows() != 1 {
		t.Fatalf("rows=%d", f.Rows())
	}
	col, ok := f.ColumnByName("Trial.RT")
	if !ok {
		t.Fatalf("columns: %v", f.Columns())
	}
	if v, _ := col.Get(0); v != "532" {
		t.Fatalf("got %q", v)
	}
}

func TestCustomMarkers(t *testing.T) {
	r := NewReader(ReaderOptions{StartMarker: "BEGIN", EndMarker: "END"})
	f := r.Parse([]string{"BEGIN", "k: v", "END"})
	if f.Rows() != 1 {
		t.Fatalf("rows=%d", f.Rows())
	}
}
