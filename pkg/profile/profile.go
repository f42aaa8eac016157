// Package profile summarizes a parsed experiment table column by column.
// Running it on a full conversion is the quickest way to work out which
// columns to rename, merge, and keep when authoring a task param file.
package profile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	e "github.com/wdm0006/eprime/pkg/eprime"
)

type NumStats struct {
	Min  float64
	Max  float64
	Sum  float64
	Seen int
}

type ColumnProfile struct {
	Name     string
	Count    int // non-null cells
	Nulls    int
	Distinct int
	Freqs    map[string]int
	// Num is set when every non-null cell parses as a number.
	Num *NumStats
}

// Describe profiles every column of the frame.
func Describe(f *e.Frame) []ColumnProfile {
	out := make([]ColumnProfile, 0, f.Cols())
	for _, name := range f.Columns() {
		col, _ := f.ColumnByName(name)
		cp := ColumnProfile{Name: name, Freqs: make(map[string]int)}
		num := &NumStats{Min: 0, Max: 0}
		numeric := true
		for i := 0; i < col.Len(); i++ {
			v, ok := col.Get(i)
			if !ok {
				cp.Nulls++
				continue
			}
			cp.Count++
			cp.Freqs[v]++
			if !numeric {
				continue
			}
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				numeric = false
				continue
			}
			if num.Seen == 0 || x < num.Min {
				num.Min = x
			}
			if num.Seen == 0 || x > num.Max {
				num.Max = x
			}
			num.Sum += x
			num.Seen++
		}
		cp.Distinct = len(cp.Freqs)
		if numeric && num.Seen > 0 {
			cp.Num = num
		}
		out = append(out, cp)
	}
	return out
}

// ReportText renders a profile the way you would want to read it in a
// terminal: one line per column, top values for low-cardinality columns.
func ReportText(profiles []ColumnProfile, topK int) string {
	var b strings.Builder
	b.WriteString("Profile Summary\n")
	for _, cp := range profiles {
		b.WriteString(fmt.Sprintf("- %s: count=%d nulls=%d distinct=%d", cp.Name, cp.Count, cp.Nulls, cp.Distinct))
		if cp.Num != nil {
			mean := cp.Num.Sum / float64(cp.Num.Seen)
			b.WriteString(fmt.Sprintf(" min=%.6g max=%.6g mean=%.6g", cp.Num.Min, cp.Num.Max, mean))
		}
		b.WriteString("\n")
		if topK <= 0 || len(cp.Freqs) == 0 || len(cp.Freqs) > 20 {
			continue
		}
		type kv struct {
			k string
			v int
		}
		arr := make([]kv, 0, len(cp.Freqs))
		for k, v := range cp.Freqs {
			arr = append(arr, kv{k, v})
		}
		sort.Slice(arr, func(i, j int) bool {
			if arr[i].v != arr[j].v {
				return arr[i].v > arr[j].v
			}
			return arr[i].k < arr[j].k
		})
		n := topK
		if n > len(arr) {
			n = len(arr)
		}
		for i := 0; i < n; i++ {
			b.WriteString(fmt.Sprintf("    %q: %d\n", arr[i].k, arr[i].v))
		}
	}
	return b.String()
}
