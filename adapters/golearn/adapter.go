// Package golearn converts parsed experiment tables into
// github.com/sjwhitworth/golearn/base DenseInstances, so behavioral data
// (reaction times, accuracies, conditions) can feed golearn models
// without a csv round-trip.
package golearn

import (
	"strconv"

	"github.com/sjwhitworth/golearn/base"

	e "github.com/wdm0006/eprime/pkg/eprime"
)

// ToDenseInstances converts a Frame into golearn DenseInstances. Columns
// whose every non-null cell parses as a number become float attributes;
// everything else is categorical. Null cells are left unset.
func ToDenseInstances(f *e.Frame) (*base.DenseInstances, error) {
	names := f.Columns()
	attrs := make([]base.Attribute, len(names))
	for i, name := range names {
		col, _ := f.ColumnByName(name)
		if isNumeric(col) {
			attrs[i] = base.NewFloatAttribute(name)
		} else {
			ca := new(base.CategoricalAttribute)
			ca.SetName(name)
			attrs[i] = ca
		}
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}

	for r := 0; r < f.Rows(); r++ {
		for c, name := range names {
			col, _ := f.ColumnByName(name)
			v, ok := col.Get(r)
			if !ok {
				continue
			}
			if _, isFloat := attrs[c].(*base.FloatAttribute); isFloat {
				x, _ := strconv.ParseFloat(v, 64)
				inst.Set(specs[c], r, base.PackFloatToBytes(x))
			} else {
				inst.Set(specs[c], r, attrs[c].GetSysValFromString(v))
			}
		}
	}
	return inst, nil
}

func isNumeric(col *e.Column) bool {
	seen := false
	for i := 0; i < col.Len(); i++ {
		v, ok := col.Get(i)
		if !ok {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}
