package parquetio

import (
	"encoding/json"
	"fmt"
	"time"

	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	j "github.com/wdm0006/imputer/pkg/frame"
)

type jsonField struct {
	Tag string `json:"Tag"`
}

type jsonSchema struct {
	Tag    string      `json:"Tag"`
	Fields []jsonField `json:"Fields"`
}

// schemaJSON builds the JSON schema description used by the JSONWriter.
// Every column is optional so missing cells are written as nulls.
func schemaJSON(s j.Schema) (string, error) {
	sc := jsonSchema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, cs := range s.Columns {
		tag := "name=" + cs.Name + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case j.KindFloat:
			tag += "DOUBLE"
		case j.KindInt:
			tag += "INT64"
		case j.KindBool:
			tag += "BOOLEAN"
		default:
			tag += "UTF8, encoding=PLAIN_DICTIONARY"
		}
		sc.Fields = append(sc.Fields, jsonField{Tag: tag})
	}
	b, err := json.Marshal(sc)
	return string(b), err
}

// WriteAll writes f to a Parquet file. Time cells are stored as RFC3339 strings.
func WriteAll(path string, f *j.Frame) (err error) {
	schema, err := schemaJSON(f.Schema())
	if err != nil {
		return err
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	w, err := pw.NewJSONWriter(schema, fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	defer func() {
		if serr := w.WriteStop(); serr != nil && err == nil {
			err = fmt.Errorf("parquet flush: %w", serr)
		}
		if cerr := fw.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	cols := make([]j.Column, f.Cols())
	for i, cs := range f.Schema().Columns {
		cols[i], _ = f.ColumnByName(cs.Name)
	}
	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(cols))
		for _, col := range cols {
			v, ok := j.Value(col, r)
			if !ok {
				continue
			}
			if t, isTime := v.(time.Time); isTime {
				v = t.Format(time.RFC3339)
			}
			rec[col.Name()] = v
		}
		line, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := w.Write(string(line)); err != nil {
			return fmt.Errorf("parquet write row %d: %w", r, err)
		}
	}
	return nil
}
