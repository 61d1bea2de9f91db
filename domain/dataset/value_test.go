package dataset

import "testing"

func TestTryParseNumber(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		want   float64
		wantOK bool
	}{
		{"native float", 42.5, 42.5, true},
		{"native int", 7, 7, true},
		{"numeric string", "123.25", 123.25, true},
		{"padded numeric string", "  42 ", 42, true},
		{"negative string", "-3.5", -3.5, true},
		{"scientific notation", "1e3", 1000, true},
		{"partial match with suffix", "5px", 0, false},
		{"partial match with letters", "12abc", 0, false},
		{"identifier shape", "C1001", 0, false},
		{"empty string", "", 0, false},
		{"boolean", true, 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TryParseNumber(tt.value)
			if ok != tt.wantOK {
				t.Fatalf("TryParseNumber(%v) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("TryParseNumber(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestLooksLikeDate(t *testing.T) {
	tests := []struct {
		value interface{}
		want  bool
	}{
		{"2025-01-15", true},
		{"2025-01-15T10:30:00Z", true}, // leading pattern is enough
		{"  2025-12-01", true},
		{"15/01/2025", false},
		{"not a date", false},
		{20250115, false}, // only strings can be dates
		{nil, false},
	}

	for _, tt := range tests {
		if got := LooksLikeDate(tt.value); got != tt.want {
			t.Errorf("LooksLikeDate(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestCloneDoesNotShareRows(t *testing.T) {
	ds := New("orig", []string{"a"}, []Row{{"a": 1.0}})
	clone := ds.Clone()
	clone.Rows[0]["a"] = 99.0
	clone.Headers = append(clone.Headers, "b")

	if got := ds.Rows[0]["a"]; got != 1.0 {
		t.Errorf("clone mutation leaked into original row: %v", got)
	}
	if len(ds.Headers) != 1 {
		t.Errorf("clone mutation leaked into original headers: %v", ds.Headers)
	}
}

func TestColumnSkipsAbsentCells(t *testing.T) {
	ds := New("d", []string{"a", "b"}, []Row{
		{"a": 1.0, "b": "x"},
		{"a": 2.0},
		{"b": "y"},
	})

	if got := len(ds.Column("b")); got != 2 {
		t.Errorf("Column(b) returned %d values, want 2", got)
	}
}
