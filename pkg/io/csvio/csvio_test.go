package csvio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	e "github.com/wdm0006/eprime/pkg/eprime"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadTxtSkipsPreamble(t *testing.T) {
	path := write(t, "subj0001_task-0.txt",
		"preamble 1\npreamble 2\npreamble 3\n"+
			"Subject\tTrial.RT\n"+
			"1\t532\n"+
			"1\t\n")
	var r Reader
	f, err := r.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Rows() != 2 {
		t.Fatalf("rows=%d", f.Rows())
	}
	if cols := f.Columns(); cols[0] != "Subject" || cols[1] != "Trial.RT" {
		t.Fatalf("columns: %v", cols)
	}
	rt, _ := f.ColumnByName("Trial.RT")
	if v, _ := rt.Get(0); v != "532" {
		t.Fatalf("got %q", v)
	}
	if !rt.IsNull(1) {
		t.Fatal("empty cell should be null")
	}
}

func TestReadCSVNoPreamble(t *testing.T) {
	path := write(t, "export.csv", "a,b\n1,2\n")
	var r Reader
	f, err := r.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Rows() != 1 {
		t.Fatalf("rows=%d", f.Rows())
	}
	col, _ := f.ColumnByName("b")
	if v, _ := col.Get(0); v != "2" {
		t.Fatalf("got %q", v)
	}
}

func TestReadUnknownExtension(t *testing.T) {
	path := write(t, "export.dat", "a,b\n")
	var r Reader
	_, err := r.ReadFile(path)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestReadShortPreamble(t *testing.T) {
	path := write(t, "short.txt", "only one line\n")
	var r Reader
	if _, err := r.ReadFile(path); err == nil {
		t.Fatal("expected error for truncated preamble")
	}
}

func TestReadRaggedRecordsWarn(t *testing.T) {
	path := write(t, "ragged.csv", "a,b\n1\n1,2,3\n")
	var r Reader
	f, err := r.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Rows() != 2 {
		t.Fatalf("rows=%d", f.Rows())
	}
	w := r.Warnings()
	if !strings.Contains(w, "short_records=1") || !strings.Contains(w, "long_records=1") {
		t.Fatalf("warnings: %q", w)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	f := e.NewFrame([]string{"k1", "k2"})
	f.AppendNullRow()
	f.AppendNullRow()
	_ = f.SetCell(0, "k1", "1")
	_ = f.SetCell(0, "k2", "2")
	_ = f.SetCell(1, "k1", "3")
	// k2 row 1 stays null

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteAll(path, f, WriterOptions{}); err != nil {
		t.Fatal(err)
	}

	var r Reader
	back, err := r.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Rows() != 2 {
		t.Fatalf("rows=%d", back.Rows())
	}
	k2, _ := back.ColumnByName("k2")
	if v, _ := k2.Get(0); v != "2" {
		t.Fatalf("got %q", v)
	}
	if !k2.IsNull(1) {
		t.Fatal("null cell should survive the round trip as null")
	}
}

func TestWriteCommaInValue(t *testing.T) {
	f := e.NewFrame([]string{"c"})
	f.AppendNullRow()
	_ = f.SetCell(0, "c", "a,b")
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteAll(path, f, WriterOptions{}); err != nil {
		t.Fatal(err)
	}
	var r Reader
	back, err := r.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := back.ColumnByName("c")
	if v, _ := col.Get(0); v != "a,b" {
		t.Fatalf("got %q", v)
	}
}
