package constants

// Resolution Error Codes
// These constants define the per-record failure taxonomy for the ingestion
// pipeline. Per-record codes are data, not exceptions: bulk operations
// collect them alongside successes, single-record operations surface them
// as the operation's error.

// Per-record fatal errors
const (
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeAirportNotFound = "AIRPORT_NOT_FOUND"
	ErrCodeAirlineNotFound = "AIRLINE_NOT_FOUND"
	ErrCodeChronology      = "CHRONOLOGY_ERROR"
)

// Infrastructure errors
const (
	ErrCodePersistenceFailure = "PERSISTENCE_FAILURE"
	ErrCodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
)

// Provider client errors (internal to the lookup chain, never surfaced)
const (
	ErrCodeInvalidAPIKey     = "INVALID_API_KEY"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeNetworkError      = "NETWORK_ERROR"
	ErrCodeInvalidDataFormat = "INVALID_DATA_FORMAT"
	ErrCodeResourceNotFound  = "RESOURCE_NOT_FOUND"
)

// Pending flight lifecycle errors
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidState = "INVALID_STATE"
)

// Ingestion errors
const (
	ErrCodeUnknownDialect = "UNKNOWN_DIALECT"
	ErrCodeEmptyUpload    = "EMPTY_UPLOAD"
)

// Error Messages
// Human-readable messages corresponding to error codes

var ResolutionErrorMessages = map[string]string{
	ErrCodeMissingField:    "A mandatory field is missing from the flight record",
	ErrCodeAirportNotFound: "The airport code could not be resolved",
	ErrCodeAirlineNotFound: "The airline code could not be resolved",
	ErrCodeChronology:      "Computed arrival precedes departure",

	ErrCodePersistenceFailure:  "The database transaction could not be completed",
	ErrCodeProviderUnavailable: "No external flight data provider was reachable",

	ErrCodeInvalidAPIKey:     "The provider API key is invalid or has been revoked",
	ErrCodeRateLimited:       "Rate limit exceeded. Please try again later",
	ErrCodeNetworkError:      "Unable to connect to the flight data provider",
	ErrCodeInvalidDataFormat: "The data format is invalid",
	ErrCodeResourceNotFound:  "The requested resource was not found",

	ErrCodeNotFound:     "No matching pending flight in the expected state",
	ErrCodeInvalidState: "The pending flight is not in a state permitting this transition",

	ErrCodeUnknownDialect: "The declared upload dialect is not supported",
	ErrCodeEmptyUpload:    "The uploaded file contained no parseable rows",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := ResolutionErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
