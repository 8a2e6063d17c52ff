package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"github.com/i474232898/weather-agent/internal/weather"
)

// WeatherToolName is the name the model uses to call the lookup.
const WeatherToolName = "get_weather_data"

const weatherToolDescription = `Fetches current weather data from the Weatherbit API for a specified city.
Args:
	location: the city to look up, passed to the API as given.
Returns:
	a short multi-line weather report, or an error message describing what went wrong.`

type weatherArgs struct {
	Location string `json:"location" jsonschema:"The city to fetch current weather for, e.g. Austin"`
}

type weatherResult struct {
	Result string `json:"result"`
}

// Lookuper is the subset of weather.Service the tool needs.
type Lookuper interface {
	Lookup(ctx context.Context, location string) weather.Result
}

// NewWeatherTool exposes svc as an ADK function tool.
func NewWeatherTool(svc Lookuper) (tool.Tool, error) {
	handler := func(ctx tool.Context, args weatherArgs) (weatherResult, error) {
		return lookup(ctx, svc, args), nil
	}
	t, err := functiontool.New(functiontool.Config{
		Name:        WeatherToolName,
		Description: weatherToolDescription,
	}, handler)
	if err != nil {
		return nil, fmt.Errorf("create %s tool: %w", WeatherToolName, err)
	}
	return t, nil
}

// lookup never fails; errors reach the model as text.
func lookup(ctx context.Context, svc Lookuper, args weatherArgs) weatherResult {
	log.Info().Str("tool", WeatherToolName).Str("location", args.Location).Msg("tool triggered")
	return weatherResult{Result: svc.Lookup(ctx, args.Location).Message()}
}
