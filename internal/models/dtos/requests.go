package dtos

// FlightOverrides carries user-supplied corrections applied when approving
// a pending flight. A non-zero field wins over the parsed candidate value.
type FlightOverrides struct {
	DepartureCode string `json:"departureCode,omitempty"`
	ArrivalCode   string `json:"arrivalCode,omitempty"`
	AirlineCode   string `json:"airlineCode,omitempty"`
	FlightNumber  *int   `json:"flightNumber,omitempty"`
	LocalDate     string `json:"localDate,omitempty"`
	OutTime       string `json:"outTime,omitempty"`
	InTime        string `json:"inTime,omitempty"`
	AircraftText  string `json:"aircraftText,omitempty"`
	TailNumber    string `json:"tailNumber,omitempty"`
}

// AddFlightRequest is the payload for single-record flight creation
// (fail-fast mode).
type AddFlightRequest struct {
	DepartureCode string `json:"departureCode"`
	ArrivalCode   string `json:"arrivalCode"`
	AirlineCode   string `json:"airlineCode,omitempty"`
	FlightNumber  *int   `json:"flightNumber,omitempty"`
	LocalDate     string `json:"localDate"`
	OutTime       string `json:"outTime"`
	InTime        string `json:"inTime"`
	OutTimeActual string `json:"outTimeActual,omitempty"`
	InTimeActual  string `json:"inTimeActual,omitempty"`
	AircraftText  string `json:"aircraftText,omitempty"`
	TailNumber    string `json:"tailNumber,omitempty"`
	Comments      string `json:"comments,omitempty"`
}

// BulkApproveRequest approves several pending flights in one call.
type BulkApproveRequest struct {
	PendingIDs []string `json:"pendingIds"`
}
