package weather

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Service runs current-conditions lookups against a single provider.
// It holds no mutable state; concurrent calls are independent.
type Service struct {
	provider Provider
}

// NewService creates a new Service.
func NewService(provider Provider) *Service {
	return &Service{
		provider: provider,
	}
}

// Lookup fetches current conditions for location and tags the outcome.
// It never panics and never returns an error: every failure is a Result kind.
func (s *Service) Lookup(ctx context.Context, location string) (res Result) {
	log.Info().Str("location", location).Msg("weather lookup")

	defer func() {
		if r := recover(); r != nil {
			res = Result{
				Kind:     KindUnexpected,
				Location: location,
				Err:      fmt.Errorf("%v", r),
			}
		}
		logResult(res)
	}()

	if s.provider == nil {
		return Result{Kind: KindUnexpected, Location: location, Err: errors.New("no weather provider configured")}
	}

	report, err := s.provider.Current(ctx, location)
	if err != nil {
		return classify(location, err)
	}
	return Result{Kind: KindReport, Location: location, Report: &report}
}

func classify(location string, err error) Result {
	res := Result{Location: location, Err: err}

	var httpErr *HTTPError
	var fieldErr *FieldError
	switch {
	case errors.Is(err, ErrMissingCredential):
		res.Kind = KindMissingCredential
	case errors.As(err, &httpErr):
		res.Kind = KindHTTPError
		res.StatusCode = httpErr.StatusCode
		res.Err = httpErr
	case errors.Is(err, ErrNotFound):
		res.Kind = KindNotFound
	case errors.As(err, &fieldErr):
		res.Kind = KindMalformed
		res.Err = fieldErr
	default:
		res.Kind = KindUnexpected
	}
	return res
}

func logResult(res Result) {
	if res.OK() {
		log.Debug().Str("location", res.Location).Str("kind", string(res.Kind)).Msg("weather lookup succeeded")
		return
	}
	log.Warn().
		Str("location", res.Location).
		Str("kind", string(res.Kind)).
		Int("status", res.StatusCode).
		Err(res.Err).
		Msg("weather lookup failed")
}
