package jsonlio

import (
	"bufio"
	"encoding/json"

	e "github.com/wdm0006/eprime/pkg/eprime"
	iox "github.com/wdm0006/eprime/pkg/io/ioutils"
)

// WriteAll writes a Frame as one JSON object per line. Null cells are
// omitted from the object.
func WriteAll(path string, f *e.Frame) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	w := bufio.NewWriter(out)
	enc := json.NewEncoder(w)
	for r := 0; r < f.Rows(); r++ {
		m := map[string]any{}
		for _, name := range f.Columns() {
			col, _ := f.ColumnByName(name)
			if v, ok := col.Get(r); ok {
				m[name] = v
			}
		}
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return w.Flush()
}
