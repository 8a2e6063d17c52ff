package weather

import (
	"fmt"
)

// Kind tags the outcome of a single lookup.
type Kind string

const (
	KindReport            Kind = "report"
	KindMissingCredential Kind = "missing_credential"
	KindHTTPError         Kind = "http_error"
	KindNotFound          Kind = "not_found"
	KindMalformed         Kind = "malformed_response"
	KindUnexpected        Kind = "unexpected_error"
)

// MissingCredentialMessage is shown when no API key was configured.
const MissingCredentialMessage = "Error: WEATHERBIT_API_KEY not found in environment variables. Please add it to your .env file."

// Report is the current-conditions view of one location.
// Temperature, FeelsLike and Humidity hold the provider's numeric literal
// unchanged so they render exactly as received.
type Report struct {
	City          string  `json:"city"`
	Country       string  `json:"country"`
	Temperature   string  `json:"temperatureF"`
	FeelsLike     string  `json:"feelsLikeF"`
	Description   string  `json:"description"`
	WindSpeed     float64 `json:"windSpeedMph"`
	WindDirection string  `json:"windDirection"`
	Humidity      string  `json:"humidityPercent"`
	UVIndex       float64 `json:"uvIndex"`
}

// String renders the five-line report handed to the agent.
func (r Report) String() string {
	return fmt.Sprintf(
		"Weather in %s, %s:\n"+
			"- Temperature: %s°F (Feels like: %s°F)\n"+
			"- Conditions: %s\n"+
			"- Wind: %.1f mph from the %s\n"+
			"- Humidity: %s%%\n"+
			"- UV Index: %.1f",
		r.City, r.Country,
		r.Temperature, r.FeelsLike,
		r.Description,
		r.WindSpeed, r.WindDirection,
		r.Humidity,
		r.UVIndex,
	)
}

// Result is the tagged outcome of Service.Lookup.
type Result struct {
	Kind     Kind
	Location string

	// Report is set only for KindReport.
	Report *Report
	// StatusCode is set only for KindHTTPError.
	StatusCode int
	// Err is the underlying failure for every kind except KindReport.
	Err error
}

// OK reports whether the lookup produced a weather report.
func (r Result) OK() bool {
	return r.Kind == KindReport && r.Report != nil
}

// Message renders the result as the text a language model can act on.
func (r Result) Message() string {
	switch r.Kind {
	case KindReport:
		if r.Report != nil {
			return r.Report.String()
		}
		return "An error occurred: empty weather report"
	case KindMissingCredential:
		return MissingCredentialMessage
	case KindHTTPError:
		return fmt.Sprintf("HTTP error occurred: %v - Check your city name and API key.", r.Err)
	case KindNotFound:
		return fmt.Sprintf("An error occurred: no weather data found for location %q", r.Location)
	default:
		return fmt.Sprintf("An error occurred: %v", r.Err)
	}
}
