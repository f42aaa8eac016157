package reduce

import (
	"context"

	e "github.com/wdm0006/eprime/pkg/eprime"
)

// Rename renames columns per the mapping. Old names the frame does not
// have are ignored, so one mapping can cover several export variants.
type Rename struct {
	Mapping map[string]string
}

func (t *Rename) Name() string { return "rename" }

func (t *Rename) Apply(ctx context.Context, f *e.Frame) (*e.Frame, error) {
	f.Rename(t.Mapping)
	return f, nil
}
