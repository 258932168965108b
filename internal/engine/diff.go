package engine

import "github.com/Itecs-company/Obed-micro/internal/model"

// NormalizeStatus converts a stringly-typed participation value from a
// UI or flag into a bool. Only "true" and "1" mean participating; this
// normalization must run before any field comparison so that equivalent
// representations never produce a false diff.
func NormalizeStatus(v string) bool {
	return v == "true" || v == "1"
}

// Diff compares every field of edited against original and returns a
// patch containing only the fields whose value differs, keyed by wire
// name. An empty patch means the edit is a no-op.
func Diff(original, edited model.Record) map[string]any {
	patch := map[string]any{}
	if edited.FullName != original.FullName {
		patch["full_name"] = edited.FullName
	}
	if edited.Status != original.Status {
		patch["status"] = edited.Status
	}
	if !edited.Date.Equal(original.Date) {
		patch["date"] = edited.Date.String()
	}
	if edited.Note != original.Note {
		patch["note"] = edited.Note
	}
	return patch
}
