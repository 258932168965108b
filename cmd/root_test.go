package cmd

import "testing"

func TestParseRangeFlags(t *testing.T) {
	start, end, err := parseRangeFlags("", "")
	if err != nil {
		t.Fatalf("parseRangeFlags empty: %v", err)
	}
	if start != nil || end != nil {
		t.Error("empty flags should leave both bounds unset")
	}

	start, end, err = parseRangeFlags("2026-03-01", "")
	if err != nil {
		t.Fatalf("parseRangeFlags from-only: %v", err)
	}
	if start == nil || start.String() != "2026-03-01" {
		t.Errorf("start = %v, want 2026-03-01", start)
	}
	if end != nil {
		t.Error("end should stay unset")
	}

	if _, _, err := parseRangeFlags("01.03.2026", ""); err == nil {
		t.Error("expected error for non-ISO --from")
	}
	if _, _, err := parseRangeFlags("", "bad"); err == nil {
		t.Error("expected error for non-ISO --to")
	}
}
