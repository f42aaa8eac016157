package parquetio

import (
	"encoding/json"
	"fmt"

	e "github.com/wdm0006/eprime/pkg/eprime"
	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"
)

func parquetSchemaJSON(names []string) string {
	// Minimal JSON schema for parquet-go's JSONWriter; every column is an
	// optional UTF8 byte array since log cells are text.
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, name := range names {
		sc.Fields = append(sc.Fields, field{
			Tag: "name=" + name + ", repetitiontype=OPTIONAL, type=BYTE_ARRAY, convertedtype=UTF8",
		})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

// WriteAll writes a Frame to a Parquet file. Null cells are absent from
// the row record.
func WriteAll(path string, f *e.Frame) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	names := f.Columns()
	writer, err := pw.NewJSONWriter(parquetSchemaJSON(names), fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	defer func() { _ = writer.WriteStop(); _ = fw.Close() }()
	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(names))
		for _, name := range names {
			col, _ := f.ColumnByName(name)
			if v, ok := col.Get(r); ok {
				rec[name] = v
			}
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("parquet write row: %w", err)
		}
	}
	return nil
}
