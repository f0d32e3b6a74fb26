package dtos

// ItemOutcome is the per-record result of a bulk ingestion. Outcomes are
// emitted in input order so the caller can correlate them back to rows.
type ItemOutcome struct {
	Index     int    `json:"index"`
	SourceRef string `json:"sourceRef,omitempty"`
	Success   bool   `json:"success"`
	FlightID  string `json:"flightId,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BatchResult summarizes one collect-all-results run.
type BatchResult struct {
	Outcomes []ItemOutcome `json:"outcomes"`
	Created  int           `json:"created"`
	Failed   int           `json:"failed"`
}
