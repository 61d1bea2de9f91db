package ingest

import (
	"strings"
	"testing"

	apperrors "govista/internal/errors"
)

func TestReadCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"date, region ,sales,active",
		"2024-01-01,North,1200.5,true",
		"2024-01-02,South,,false",
		"2024-01-03,East,900,yes",
	}, "\n")

	r := NewFileReader()
	ds, err := r.ReadCSV(strings.NewReader(csvData), "sales_q1.csv")
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	wantHeaders := []string{"date", "region", "sales", "active"}
	if len(ds.Headers) != len(wantHeaders) {
		t.Fatalf("got %d headers, want %d", len(ds.Headers), len(wantHeaders))
	}
	for i, h := range wantHeaders {
		if ds.Headers[i] != h {
			t.Errorf("header %d = %q, want %q (whitespace trimmed)", i, ds.Headers[i], h)
		}
	}

	if ds.Name != "sales_q1" {
		t.Errorf("Name = %q, want extension stripped", ds.Name)
	}
	if ds.Source != "upload" {
		t.Errorf("Source = %q, want upload", ds.Source)
	}
	if len(ds.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(ds.Rows))
	}
}

func TestReadCSVCellTyping(t *testing.T) {
	csvData := "id,amount,flag,note\nC1001,42.5,true,12 units\n"

	r := NewFileReader()
	ds, err := r.ReadCSV(strings.NewReader(csvData), "typed.csv")
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	row := ds.Rows[0]
	if v, ok := row["amount"].(float64); !ok || v != 42.5 {
		t.Errorf("numeric cell stored as %T %v, want float64 42.5", row["amount"], row["amount"])
	}
	if v, ok := row["flag"].(bool); !ok || !v {
		t.Errorf("boolean cell stored as %T %v, want bool true", row["flag"], row["flag"])
	}
	if _, ok := row["id"].(string); !ok {
		t.Errorf("identifier-shaped cell must stay a string, got %T", row["id"])
	}
	if _, ok := row["note"].(string); !ok {
		t.Errorf("partially numeric cell must stay a string, got %T", row["note"])
	}
}

func TestReadCSVEmptyCellsOmitted(t *testing.T) {
	csvData := "a,b\n1,\n,2\n"

	r := NewFileReader()
	ds, err := r.ReadCSV(strings.NewReader(csvData), "sparse.csv")
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if _, ok := ds.Rows[0]["b"]; ok {
		t.Error("empty cell must be omitted from the row, not stored")
	}
	if _, ok := ds.Rows[1]["a"]; ok {
		t.Error("empty cell must be omitted from the row, not stored")
	}
	if v := ds.Rows[1]["b"]; v != 2.0 {
		t.Errorf("b = %v, want 2", v)
	}
}

func TestReadCSVRaggedRows(t *testing.T) {
	// Rows shorter or longer than the header row must both survive
	csvData := "a,b,c\n1,2\n1,2,3,4\n"

	r := NewFileReader()
	ds, err := r.ReadCSV(strings.NewReader(csvData), "ragged.csv")
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(ds.Rows))
	}
	if len(ds.Rows[0]) != 2 {
		t.Errorf("short row has %d cells, want 2", len(ds.Rows[0]))
	}
	if len(ds.Rows[1]) != 3 {
		t.Errorf("long row must be truncated to the headers, got %d cells", len(ds.Rows[1]))
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	r := NewFileReader()
	_, err := r.ReadCSV(strings.NewReader(""), "empty.csv")
	if err == nil {
		t.Fatal("expected an error for a file with no header row")
	}
	if code := apperrors.GetCode(err); code != apperrors.CodeInvalidInput {
		t.Errorf("code = %s, want %s", code, apperrors.CodeInvalidInput)
	}
}

func TestReadDispatchByExtension(t *testing.T) {
	r := NewFileReader()

	if _, err := r.Read(strings.NewReader("a\n1\n"), "data.CSV"); err != nil {
		t.Errorf("uppercase extension rejected: %v", err)
	}

	_, err := r.Read(strings.NewReader("x"), "data.parquet")
	if err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}
