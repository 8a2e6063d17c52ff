package httpapi

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-agent/internal/weather"
)

// Lookuper runs a single weather lookup.
type Lookuper interface {
	Lookup(ctx context.Context, location string) weather.Result
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service Lookuper) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-agent",
		})
	})

	v1 := app.Group("/api/v1")

	// The city is forwarded as-is, like the agent tool does; the provider
	// reports bad or empty names.
	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q := parseLocationQuery(c)

		res := service.Lookup(c.UserContext(), q.City)
		return c.Status(statusFor(res.Kind)).JSON(newLookupResponse(res))
	})
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City string
}

func parseLocationQuery(c *fiber.Ctx) locationQuery {
	return locationQuery{City: c.Query("city")}
}

type lookupResponse struct {
	Kind     weather.Kind    `json:"kind"`
	Location string          `json:"location"`
	Message  string          `json:"message"`
	Report   *weather.Report `json:"report,omitempty"`
}

func newLookupResponse(res weather.Result) lookupResponse {
	return lookupResponse{
		Kind:     res.Kind,
		Location: res.Location,
		Message:  res.Message(),
		Report:   res.Report,
	}
}

func statusFor(kind weather.Kind) int {
	switch kind {
	case weather.KindReport:
		return fiber.StatusOK
	case weather.KindNotFound:
		return fiber.StatusNotFound
	case weather.KindMissingCredential:
		return fiber.StatusServiceUnavailable
	case weather.KindHTTPError, weather.KindMalformed:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
