package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/constants"

	"golang.org/x/time/rate"
)

// AeroDataBoxProvider implements FlightStatusProvider against the
// AeroDataBox flight API.
type AeroDataBoxProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Limiter *rate.Limiter
}

// NewAeroDataBoxProvider creates a new AeroDataBox provider
func NewAeroDataBoxProvider(baseURL, apiKey string) *AeroDataBoxProvider {
	return &AeroDataBoxProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Free-tier budget is tight; bulk uploads must not burn it down
		Limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}
}

// Name returns the provider identifier
func (p *AeroDataBoxProvider) Name() string {
	return "aerodatabox"
}

// adbFlight mirrors the slice of the AeroDataBox response we consume
type adbFlight struct {
	Departure adbMovement `json:"departure"`
	Arrival   adbMovement `json:"arrival"`
	Aircraft  struct {
		Reg   string `json:"reg"`
		Model string `json:"model"`
	} `json:"aircraft"`
}

type adbMovement struct {
	Airport struct {
		ICAO string `json:"icao"`
	} `json:"airport"`
	ScheduledTime adbTime `json:"scheduledTime"`
	RevisedTime   adbTime `json:"revisedTime"`
	RunwayTime    adbTime `json:"runwayTime"`
}

type adbTime struct {
	UTC string `json:"utc"`
}

// Search looks up a flight by designator and departure date
func (p *AeroDataBoxProvider) Search(ctx context.Context, airline string, flightNumber int, isoDate string) ([]FlightMatch, error) {
	if p.APIKey == "" {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: "AeroDataBox API key is not configured",
		}
	}
	if airline == "" {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "airline code cannot be empty",
		}
	}

	if err := p.Limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: "rate limiter wait aborted",
			Err:     err,
		}
	}

	endpoint := fmt.Sprintf("/flights/number/%s%d/%s", airline, flightNumber, isoDate)
	var flights []adbFlight
	if err := p.doGET(ctx, endpoint, &flights); err != nil {
		return nil, err
	}

	matches := make([]FlightMatch, 0, len(flights))
	for _, f := range flights {
		m := FlightMatch{
			DepartureICAO: f.Departure.Airport.ICAO,
			ArrivalICAO:   f.Arrival.Airport.ICAO,
			TailNumber:    f.Aircraft.Reg,
		}
		m.OutTime = parseUTC(f.Departure.ScheduledTime.UTC)
		m.OutTimeActual = parseUTC(f.Departure.RevisedTime.UTC)
		m.OffTimeActual = parseUTC(f.Departure.RunwayTime.UTC)
		m.InTime = parseUTC(f.Arrival.ScheduledTime.UTC)
		m.InTimeActual = parseUTC(f.Arrival.RevisedTime.UTC)
		m.OnTimeActual = parseUTC(f.Arrival.RunwayTime.UTC)

		if m.DepartureICAO == "" || m.ArrivalICAO == "" {
			continue
		}
		matches = append(matches, m)
	}

	return matches, nil
}

// doGET performs a GET request with authentication
func (p *AeroDataBoxProvider) doGET(ctx context.Context, endpoint string, result interface{}) error {
	url := p.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	req.Header.Set("X-RapidAPI-Key", p.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if err := p.handleHTTPError(resp, endpoint); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "Failed to decode response",
			Details: string(bodyBytes),
			Err:     err,
		}
	}

	return nil
}

// handleHTTPError converts HTTP errors to ProviderError
func (p *AeroDataBoxProvider) handleHTTPError(resp *http.Response, endpoint string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ProviderError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: fmt.Sprintf("Authentication failed for endpoint %s", endpoint),
			Details: string(bodyBytes),
		}
	case http.StatusNotFound:
		return &ProviderError{
			Code:    constants.ErrCodeResourceNotFound,
			Message: fmt.Sprintf("Resource not found: %s", endpoint),
			Details: string(bodyBytes),
		}
	case http.StatusTooManyRequests:
		return &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Details: string(bodyBytes),
		}
	default:
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("HTTP %d from %s", resp.StatusCode, endpoint),
			Details: string(bodyBytes),
		}
	}
}

// parseUTC parses the provider's "2006-01-02 15:04Z" timestamps, falling
// back to RFC 3339. Nil when absent or malformed.
func parseUTC(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02 15:04Z", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}
