package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/i474232898/weather-agent/internal/weather"
)

// DefaultWeatherbitBaseURL is the Weatherbit v2.0 API root.
const DefaultWeatherbitBaseURL = "https://api.weatherbit.io/v2.0"

// WeatherbitProvider implements the weather.Provider interface for Weatherbit.
type WeatherbitProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
}

// WeatherbitOption customizes a WeatherbitProvider.
type WeatherbitOption func(*WeatherbitProvider)

// WithBaseURL points the provider at a different API root.
func WithBaseURL(baseURL string) WeatherbitOption {
	return func(p *WeatherbitProvider) {
		if baseURL != "" {
			p.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func NewWeatherbitProvider(client *http.Client, apiKey string, opts ...WeatherbitOption) *WeatherbitProvider {
	p := &WeatherbitProvider{
		name:    "weatherbit",
		apiKey:  apiKey,
		baseURL: DefaultWeatherbitBaseURL,
		client:  client,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *WeatherbitProvider) Name() string {
	return p.name
}

// observation is one element of the current-conditions "data" array.
// Pointers distinguish an absent field from a zero value.
type observation struct {
	CityName    *string      `json:"city_name" validate:"required"`
	CountryCode *string      `json:"country_code" validate:"required"`
	Temp        *json.Number `json:"temp" validate:"required"`
	AppTemp     *json.Number `json:"app_temp" validate:"required"`
	Weather     *struct {
		Description *string `json:"description" validate:"required"`
	} `json:"weather" validate:"required"`
	WindSpd  *float64     `json:"wind_spd" validate:"required"`
	WindCdir *string      `json:"wind_cdir" validate:"required"`
	RH       *json.Number `json:"rh" validate:"required"`
	UV       *float64     `json:"uv" validate:"required"`
}

// Current fetches current conditions for location in imperial units.
// The location is passed through untouched.
func (p *WeatherbitProvider) Current(ctx context.Context, location string) (weather.Report, error) {
	if p.apiKey == "" {
		return weather.Report{}, weather.ErrMissingCredential
	}

	values := url.Values{}
	values.Set("city", location)
	values.Set("key", p.apiKey)
	values.Set("units", "I") // Fahrenheit, mph

	resp, err := doRequest(ctx, p.client, p.baseURL+"/current", values, "key")
	if err != nil {
		return weather.Report{}, err
	}
	defer resp.Body.Close()

	// Weatherbit answers 204 with an empty body for unknown cities.
	if resp.StatusCode == http.StatusNoContent {
		return weather.Report{}, fmt.Errorf("%w for location %q", weather.ErrNotFound, location)
	}

	var payload struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return weather.Report{}, fmt.Errorf("%w for location %q", weather.ErrNotFound, location)
		}
		return weather.Report{}, fmt.Errorf("decode weatherbit response: %w", err)
	}
	if len(payload.Data) == 0 {
		return weather.Report{}, fmt.Errorf("%w for location %q", weather.ErrNotFound, location)
	}

	var obs observation
	if err := json.Unmarshal(payload.Data[0], &obs); err != nil {
		return weather.Report{}, fmt.Errorf("decode weatherbit observation: %w", err)
	}
	if err := validate.Struct(obs); err != nil {
		return weather.Report{}, missingField(err)
	}

	return weather.Report{
		City:          *obs.CityName,
		Country:       *obs.CountryCode,
		Temperature:   obs.Temp.String(),
		FeelsLike:     obs.AppTemp.String(),
		Description:   *obs.Weather.Description,
		WindSpeed:     *obs.WindSpd,
		WindDirection: *obs.WindCdir,
		Humidity:      obs.RH.String(),
		UVIndex:       *obs.UV,
	}, nil
}
