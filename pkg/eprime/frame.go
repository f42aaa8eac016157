package eprime

// Frame is a columnar container for tabular experiment data. E-Prime log
// values are fundamentally text, so every column is a nullable string
// column; a cell is either a string (possibly empty) or null.
type Frame struct {
	cols  []*Column
	index map[string]int // name -> col index
	nrows int
}

// Column is an ordered, nullable string column.
type Column struct {
	name  string
	data  []string
	nulls []bool
}

func NewColumn(name string, n int) *Column {
	c := &Column{name: name, data: make([]string, n), nulls: make([]bool, n)}
	for i := range c.nulls {
		c.nulls[i] = true
	}
	return c
}

func (c *Column) Name() string             { return c.name }
func (c *Column) Len() int                 { return len(c.data) }
func (c *Column) IsNull(i int) bool        { return c.nulls[i] }
func (c *Column) SetNull(i int)            { c.data[i] = ""; c.nulls[i] = true }
func (c *Column) Get(i int) (string, bool) { return c.data[i], !c.nulls[i] }
func (c *Column) Set(i int, v string)      { c.data[i] = v; c.nulls[i] = false }
func (c *Column) AppendNull()              { c.data = append(c.data, ""); c.nulls = append(c.nulls, true) }
func (c *Column) Append(v string)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

// NewFrame builds an empty frame with the given column names, in order.
func NewFrame(names []string) *Frame {
	f := &Frame{cols: make([]*Column, len(names)), index: make(map[string]int)}
	for i, name := range names {
		f.cols[i] = NewColumn(name, 0)
		f.index[name] = i
	}
	return f
}

func (f *Frame) Rows() int { return f.nrows }
func (f *Frame) Cols() int { return len(f.cols) }

// Columns returns the column names in frame order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.name
	}
	return names
}

func (f *Frame) ColumnByName(name string) (*Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// AddColumn appends a new all-null column and returns it. If a column with
// that name already exists it is returned unchanged.
func (f *Frame) AddColumn(name string) *Column {
	if i, ok := f.index[name]; ok {
		return f.cols[i]
	}
	c := NewColumn(name, f.nrows)
	f.index[name] = len(f.cols)
	f.cols = append(f.cols, c)
	return c
}

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		c.AppendNull()
	}
	f.nrows++
}

// SetCell sets a single cell value by column name (row must exist).
func (f *Frame) SetCell(row int, name, v string) error {
	i, ok := f.index[name]
	if !ok {
		return &MissingColumnError{Column: name}
	}
	f.cols[i].Set(row, v)
	return nil
}

// Rename renames columns per the mapping. Old names not present in the
// frame are ignored, matching the permissive rename of the source format's
// task configs.
func (f *Frame) Rename(mapping map[string]string) {
	for old, nw := range mapping {
		i, ok := f.index[old]
		if !ok {
			continue
		}
		delete(f.index, old)
		f.cols[i].name = nw
		f.index[nw] = i
	}
}

// Select returns a fresh frame holding exactly the named columns, in that
// order. A name absent from the frame is a MissingColumnError.
func (f *Frame) Select(names []string) (*Frame, error) {
	out := &Frame{cols: make([]*Column, 0, len(names)), index: make(map[string]int), nrows: f.nrows}
	for _, name := range names {
		i, ok := f.index[name]
		if !ok {
			return nil, &MissingColumnError{Column: name}
		}
		src := f.cols[i]
		dst := &Column{name: name, data: append([]string(nil), src.data...), nulls: append([]bool(nil), src.nulls...)}
		out.index[name] = len(out.cols)
		out.cols = append(out.cols, dst)
	}
	return out, nil
}

// FilterRows returns a fresh frame keeping only rows for which keep
// returns true.
func (f *Frame) FilterRows(keep func(row int) bool) *Frame {
	out := &Frame{cols: make([]*Column, len(f.cols)), index: make(map[string]int)}
	for i, c := range f.cols {
		out.cols[i] = NewColumn(c.name, 0)
		out.index[c.name] = i
	}
	for r := 0; r < f.nrows; r++ {
		if !keep(r) {
			continue
		}
		for i, c := range f.cols {
			if v, ok := c.Get(r); ok {
				out.cols[i].Append(v)
			} else {
				out.cols[i].AppendNull()
			}
		}
		out.nrows++
	}
	return out
}
