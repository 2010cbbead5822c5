package catalog

import (
	"reflect"
	"testing"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		ts      string
		wantErr bool
	}{
		{name: "valid", ts: "20240315143000", wantErr: false},
		{name: "too short", ts: "2024031514300", wantErr: true},
		{name: "too long", ts: "202403151430000", wantErr: true},
		{name: "non numeric", ts: "2024031514300x", wantErr: true},
		{name: "impossible month", ts: "20241315143000", wantErr: true},
		{name: "empty", ts: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTimestamp(tt.ts)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseTimestamp(%q) error = %v, wantErr %v", tt.ts, err, tt.wantErr)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp("20240315143000"); got != "15.03.24 14:30" {
		t.Errorf("FormatTimestamp() = %q, want %q", got, "15.03.24 14:30")
	}
	// A malformed value must come back as-is, not be coerced.
	if got := FormatTimestamp("not-a-timestamp"); got != "not-a-timestamp" {
		t.Errorf("FormatTimestamp() = %q, want the raw input", got)
	}
}

func TestBuildDedup(t *testing.T) {
	records := []Record{
		{Timestamp: "20240315143000", Comment: "a", Source: "/"},
		{Timestamp: "20240316090000", Comment: "b", Source: "/home"},
		{Timestamp: "20240315143000", Comment: "c", Source: "/home"},
	}

	cat, warnings := Build(records)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cat.Len())
	}

	// First record per timestamp wins, first-seen order preserved.
	if cat.At(0).Comment != "a" || cat.At(1).Comment != "b" {
		t.Errorf("dedup order wrong: got [%s %s], want [a b]", cat.At(0).Comment, cat.At(1).Comment)
	}
}

func TestBuildExcludesBadTimestamps(t *testing.T) {
	records := []Record{
		{Timestamp: "garbage", Comment: "bad"},
		{Timestamp: "20240315143000", Comment: "good", Source: "/"},
	}

	cat, warnings := Build(records)
	if cat.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cat.Len())
	}
	if len(warnings) != 1 {
		t.Fatalf("want 1 warning for the bad record, got %d", len(warnings))
	}
	if cat.At(0).Comment != "good" {
		t.Errorf("wrong survivor: %q", cat.At(0).Comment)
	}
}

func TestBuildEmpty(t *testing.T) {
	cat, _ := Build(nil)
	if !cat.Empty() {
		t.Error("Empty() = false for no records")
	}
}

func TestLines(t *testing.T) {
	records := []Record{
		{Timestamp: "20240315143000", Comment: "before upgrade", Source: "/"},
	}
	cat, _ := Build(records)

	want := []string{"15.03.24 14:30 - before upgrade (source: /)"}
	if got := cat.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %v, want %v", got, want)
	}
}
