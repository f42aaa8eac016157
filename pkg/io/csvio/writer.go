package csvio

import (
	"encoding/csv"

	e "github.com/wdm0006/eprime/pkg/eprime"
	iox "github.com/wdm0006/eprime/pkg/io/ioutils"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll writes a Frame to a CSV file with a header row and no index
// column. Null cells serialize as empty fields.
func WriteAll(path string, f *e.Frame, opt WriterOptions) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}

	hdr := f.Columns()
	if err := w.Write(hdr); err != nil {
		return err
	}

	row := make([]string, len(hdr))
	for r := 0; r < f.Rows(); r++ {
		for c, name := range hdr {
			row[c] = ""
			col, _ := f.ColumnByName(name)
			if v, ok := col.Get(r); ok {
				row[c] = v
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
