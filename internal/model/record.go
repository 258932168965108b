package model

// Record is one employee's lunch attendance entry for a single date.
// The id is assigned by the server and stable for the record's lifetime.
type Record struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Status   bool   `json:"status"`
	Date     Date   `json:"date"`
	Note     string `json:"note"`
}

// Totals is the server-computed aggregate for the current date range.
// It is always taken verbatim from the last list response, never derived
// locally from records.
type Totals struct {
	Participants int     `json:"total_participants"`
	Cost         float64 `json:"total_cost"`
}

// Draft is an unsaved new record held client-side until submission.
type Draft struct {
	FullName string `json:"full_name"`
	Status   bool   `json:"status"`
	Date     Date   `json:"date"`
	Note     string `json:"note"`
}

// NewDraft returns a draft with defaults: participating, dated today.
func NewDraft() Draft {
	return Draft{Status: true, Date: Today()}
}
