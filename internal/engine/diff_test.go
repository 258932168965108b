package engine_test

import (
	"testing"

	"github.com/Itecs-company/Obed-micro/internal/engine"
	"github.com/Itecs-company/Obed-micro/internal/model"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"1", true},
		{"false", false},
		{"0", false},
		{"", false},
		{"yes", false},
		{"TRUE", false},
	}
	for _, tt := range tests {
		if got := engine.NormalizeStatus(tt.input); got != tt.want {
			t.Errorf("NormalizeStatus(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDiff(t *testing.T) {
	original := model.Record{
		ID:       7,
		FullName: "Ivanov Ivan",
		Status:   true,
		Date:     date("2026-03-02"),
		Note:     "",
	}

	tests := []struct {
		name string
		edit func(r model.Record) model.Record
		want map[string]any
	}{
		{
			name: "no changes",
			edit: func(r model.Record) model.Record { return r },
			want: map[string]any{},
		},
		{
			name: "note only",
			edit: func(r model.Record) model.Record {
				r.Note = "vegetarian"
				return r
			},
			want: map[string]any{"note": "vegetarian"},
		},
		{
			name: "status only",
			edit: func(r model.Record) model.Record {
				r.Status = false
				return r
			},
			want: map[string]any{"status": false},
		},
		{
			name: "date only",
			edit: func(r model.Record) model.Record {
				r.Date = date("2026-03-05")
				return r
			},
			want: map[string]any{"date": "2026-03-05"},
		},
		{
			name: "name and note",
			edit: func(r model.Record) model.Record {
				r.FullName = "Ivanov I. I."
				r.Note = "moved desks"
				return r
			},
			want: map[string]any{"full_name": "Ivanov I. I.", "note": "moved desks"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Diff(original, tt.edit(original))
			if len(got) != len(tt.want) {
				t.Fatalf("diff = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("diff[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

// Equivalent stringly-typed participation values must not produce a diff
// once normalized.
func TestNormalizedStatusAvoidsFalseDiff(t *testing.T) {
	original := model.Record{ID: 1, FullName: "Ivanov Ivan", Status: true, Date: date("2026-03-02")}
	edited := original
	edited.Status = engine.NormalizeStatus("1")

	if got := engine.Diff(original, edited); len(got) != 0 {
		t.Errorf("diff = %v, want empty after normalization", got)
	}
}
