package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/constants"

	"golang.org/x/time/rate"
)

// FlightStatsProvider implements FlightStatusProvider against the Cirium
// FlightStats flex API. It sits second in the chain.
type FlightStatsProvider struct {
	BaseURL string
	AppID   string
	AppKey  string
	Client  *http.Client
	Limiter *rate.Limiter
}

// NewFlightStatsProvider creates a new FlightStats provider
func NewFlightStatsProvider(baseURL, appID, appKey string) *FlightStatsProvider {
	return &FlightStatsProvider{
		BaseURL: baseURL,
		AppID:   appID,
		AppKey:  appKey,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		Limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 10),
	}
}

// Name returns the provider identifier
func (p *FlightStatsProvider) Name() string {
	return "flightstats"
}

type fsResponse struct {
	FlightStatuses []fsFlightStatus `json:"flightStatuses"`
	Appendix       struct {
		Airports []fsAirport `json:"airports"`
	} `json:"appendix"`
}

type fsFlightStatus struct {
	DepartureAirportFsCode string `json:"departureAirportFsCode"`
	ArrivalAirportFsCode   string `json:"arrivalAirportFsCode"`
	OperationalTimes       struct {
		ScheduledGateDeparture fsTime `json:"scheduledGateDeparture"`
		ActualGateDeparture    fsTime `json:"actualGateDeparture"`
		ActualRunwayDeparture  fsTime `json:"actualRunwayDeparture"`
		ScheduledGateArrival   fsTime `json:"scheduledGateArrival"`
		ActualGateArrival      fsTime `json:"actualGateArrival"`
		ActualRunwayArrival    fsTime `json:"actualRunwayArrival"`
	} `json:"operationalTimes"`
	FlightEquipment struct {
		TailNumber        string `json:"tailNumber"`
		ActualEquipmentIataCode string `json:"actualEquipmentIataCode"`
	} `json:"flightEquipment"`
}

type fsTime struct {
	DateUTC string `json:"dateUtc"`
}

type fsAirport struct {
	FsCode string `json:"fs"`
	ICAO   string `json:"icao"`
}

// Search looks up flight statuses by carrier, flight number and departure
// date.
func (p *FlightStatsProvider) Search(ctx context.Context, airline string, flightNumber int, isoDate string) ([]FlightMatch, error) {
	if p.AppID == "" || p.AppKey == "" {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: "FlightStats credentials are not configured",
		}
	}

	parts := strings.Split(isoDate, "-")
	if len(parts) != 3 {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: fmt.Sprintf("invalid ISO date %q", isoDate),
		}
	}

	if err := p.Limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: "rate limiter wait aborted",
			Err:     err,
		}
	}

	endpoint := fmt.Sprintf(
		"/flightstatus/rest/v2/json/flight/status/%s/%d/dep/%s/%s/%s?appId=%s&appKey=%s",
		airline, flightNumber, parts[0], parts[1], parts[2], p.AppID, p.AppKey,
	)

	req, err := http.NewRequestWithContext(ctx, "GET", p.BaseURL+endpoint, nil)
	if err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to read response body",
			Err:     readErr,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("HTTP %d from flightstats", resp.StatusCode),
			Details: string(bodyBytes),
		}
	}

	var parsed fsResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "Failed to decode response",
			Details: string(bodyBytes),
			Err:     err,
		}
	}

	// FlightStats keys statuses by its own airport codes; the appendix
	// maps them to ICAO.
	icaoByFs := make(map[string]string, len(parsed.Appendix.Airports))
	for _, ap := range parsed.Appendix.Airports {
		icaoByFs[ap.FsCode] = ap.ICAO
	}

	matches := make([]FlightMatch, 0, len(parsed.FlightStatuses))
	for _, st := range parsed.FlightStatuses {
		m := FlightMatch{
			DepartureICAO: icaoByFs[st.DepartureAirportFsCode],
			ArrivalICAO:   icaoByFs[st.ArrivalAirportFsCode],
			TailNumber:    st.FlightEquipment.TailNumber,
		}
		ot := st.OperationalTimes
		m.OutTime = parseUTC(ot.ScheduledGateDeparture.DateUTC)
		m.OutTimeActual = parseUTC(ot.ActualGateDeparture.DateUTC)
		m.OffTimeActual = parseUTC(ot.ActualRunwayDeparture.DateUTC)
		m.InTime = parseUTC(ot.ScheduledGateArrival.DateUTC)
		m.InTimeActual = parseUTC(ot.ActualGateArrival.DateUTC)
		m.OnTimeActual = parseUTC(ot.ActualRunwayArrival.DateUTC)

		if m.DepartureICAO == "" || m.ArrivalICAO == "" {
			continue
		}
		matches = append(matches, m)
	}

	return matches, nil
}
