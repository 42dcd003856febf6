package frame

import "testing"

func TestSchemaFromRecords(t *testing.T) {
	rows := []map[string]any{
		{"Age": 22.0, "Embarked": "S", "Fare": 7.25, "Alone": true},
		{"Age": nil, "Embarked": nil, "Fare": 71.0, "Alone": false},
		{"Cabin": nil},
	}
	s := SchemaFromRecords(rows)
	want := []struct {
		name string
		kind Kind
	}{
		{"Age", KindInt}, {"Alone", KindBool}, {"Cabin", KindFloat}, {"Embarked", KindString}, {"Fare", KindFloat},
	}
	if len(s.Columns) != len(want) {
		t.Fatalf("got %d columns", len(s.Columns))
	}
	for i, w := range want {
		if s.Columns[i].Name != w.name || s.Columns[i].Type != w.kind {
			t.Fatalf("column %d: got %s/%s, want %s/%s", i, s.Columns[i].Name, s.Columns[i].Type, w.name, w.kind)
		}
	}

	f := NewFrame(s)
	f.AppendNullRow()
	_ = f.SetCellValue(0, "Age", 22.0)
	_ = f.SetCellValue(0, "Fare", "7.5")
	_ = f.SetCellValue(0, "Embarked", nil)
	age, _ := f.ColumnByName("Age")
	if v, ok := Value(age, 0); !ok || v != int64(22) {
		t.Fatalf("got %v", v)
	}
	fare, _ := f.ColumnByName("Fare")
	if FormatValue(fare, 0) != "7.5" {
		t.Fatal("string value not parsed into float column")
	}
	emb, _ := f.ColumnByName("Embarked")
	if !emb.IsNull(0) {
		t.Fatal("nil should be missing")
	}
}
