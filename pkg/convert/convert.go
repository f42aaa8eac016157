// Package convert holds the top-level conversion operations for E-Prime
// experiment output:
//
//  1. EtextToRCSV: reduces an exported "E-Prime text" file to csv using a
//     task-specific list of headers. Export the edat file with Unicode
//     turned off.
//  2. TextToCSV: converts the text file written on successful completion
//     of an experiment run to csv. Its output is the easiest place to
//     work out the columns to merge/rename for a task param file.
//  3. TextToRCSV: converts the same text file straight to the reduced
//     csv, using the task param file. The result should be
//     indistinguishable from EtextToRCSV without the manual export step.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	e "github.com/wdm0006/eprime/pkg/eprime"
	"github.com/wdm0006/eprime/pkg/io/csvio"
	"github.com/wdm0006/eprime/pkg/io/jsonlio"
	"github.com/wdm0006/eprime/pkg/io/logio"
	"github.com/wdm0006/eprime/pkg/io/parquetio"
	"github.com/wdm0006/eprime/pkg/params"
	"github.com/wdm0006/eprime/pkg/transform/backfill"
	"github.com/wdm0006/eprime/pkg/transform/reduce"
)

// Diag receives non-fatal structural warnings. Defaults to stderr.
var Diag io.Writer = os.Stderr

// readLog parses a raw experiment log and backfills singleton metadata
// columns.
func readLog(ctx context.Context, textFile string) (*e.Frame, error) {
	rdr := logio.NewReader(logio.ReaderOptions{})
	f, err := rdr.ReadFile(textFile)
	if err != nil {
		return nil, err
	}
	if w := rdr.Warnings(); w != "" {
		fmt.Fprintln(Diag, "warning:", w)
	}
	return (&backfill.Singleton{}).Apply(ctx, f)
}

// TextToCSV converts a raw experiment log to csv, one row per log frame.
// Returns the path written.
func TextToCSV(ctx context.Context, textFile, outFile string) (string, error) {
	f, err := readLog(ctx, textFile)
	if err != nil {
		return "", err
	}
	if err := csvio.WriteAll(outFile, f, csvio.WriterOptions{}); err != nil {
		return "", err
	}
	return outFile, nil
}

// TextToJSONL converts a raw experiment log to one JSON object per frame.
func TextToJSONL(ctx context.Context, textFile, outFile string) (string, error) {
	f, err := readLog(ctx, textFile)
	if err != nil {
		return "", err
	}
	if err := jsonlio.WriteAll(outFile, f); err != nil {
		return "", err
	}
	return outFile, nil
}

// TextToParquet converts a raw experiment log to a Parquet file.
func TextToParquet(ctx context.Context, textFile, outFile string) (string, error) {
	f, err := readLog(ctx, textFile)
	if err != nil {
		return "", err
	}
	if err := parquetio.WriteAll(outFile, f); err != nil {
		return "", err
	}
	return outFile, nil
}

// TextToRCSV converts a raw experiment log to the reduced csv described
// by paramFile. edatFile is only read for its suffix, which selects the
// rename mapping (column names shifted between edat and edat2 versions
// of the presentation software). Rows all-null across the configured
// null columns are dropped before the header reduction.
func TextToRCSV(ctx context.Context, textFile, edatFile, paramFile, outFile string) (string, error) {
	p, err := params.Load(paramFile)
	if err != nil {
		return "", err
	}
	f, err := readLog(ctx, textFile)
	if err != nil {
		return "", err
	}

	pl := e.NewPipeline()
	if ren := p.Renames(edatFile); len(ren) > 0 {
		pl.Add(&reduce.Rename{Mapping: ren})
	}
	// Destinations sorted for deterministic application order.
	dests := make([]string, 0, len(p.MergeCols))
	for dest := range p.MergeCols {
		dests = append(dests, dest)
	}
	sort.Strings(dests)
	for _, dest := range dests {
		pl.Add(&reduce.Merge{Dest: dest, Sources: p.MergeCols[dest]})
	}
	if p.RemNulls {
		pl.Add(&reduce.DropAllNull{Columns: p.NullCols})
	}
	pl.Add(&reduce.Select{Columns: p.Headers})

	out, err := pl.Run(ctx, f)
	if err != nil {
		return "", err
	}
	if err := csvio.WriteAll(outFile, out, csvio.WriterOptions{}); err != nil {
		return "", err
	}
	return outFile, nil
}

// EtextToRCSV reduces an exported "E-Prime text" (or csv) table to the
// columns named in paramFile. The null filter here runs after the
// reduction, over the kept columns only. An empty outFile derives
// "<input stem>.csv".
func EtextToRCSV(ctx context.Context, inFile, paramFile, outFile string) (string, error) {
	p, err := params.Load(paramFile)
	if err != nil {
		return "", err
	}
	var rdr csvio.Reader
	f, err := rdr.ReadFile(inFile)
	if err != nil {
		return "", err
	}
	if w := rdr.Warnings(); w != "" {
		fmt.Fprintln(Diag, "warning:", w)
	}

	pl := e.NewPipeline()
	pl.Add(&reduce.Select{Columns: p.Headers})
	if p.RemNulls {
		// after the reduction the kept headers are the whole column set
		pl.Add(&reduce.DropAllNull{Columns: p.Headers})
	}
	out, err := pl.Run(ctx, f)
	if err != nil {
		return "", err
	}

	if outFile == "" {
		outFile = strings.TrimSuffix(inFile, filepath.Ext(inFile)) + ".csv"
	}
	if err := csvio.WriteAll(outFile, out, csvio.WriterOptions{}); err != nil {
		return "", err
	}
	return outFile, nil
}
