package providers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/i474232898/weather-agent/internal/weather"
)

var errNoHTTPClient = errors.New("http client not configured")

var validate = newValidator()

// newValidator reports field names by their json tag so errors name the
// provider's wire fields.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// doRequest executes a single GET against rawURL with params, bound to ctx.
// Status codes of 400 and above become *weather.HTTPError. There is no retry.
func doRequest(ctx context.Context, client *http.Client, rawURL string, params url.Values, redact ...string) (*http.Response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	u := rawURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		// Transport errors carry the full request URL.
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = redactedURL(rawURL, params, redact...)
		}
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		resp.Body.Close()
		return nil, &weather.HTTPError{
			StatusCode: resp.StatusCode,
			Reason:     http.StatusText(resp.StatusCode),
			URL:        redactedURL(rawURL, params, redact...),
		}
	}
	return resp, nil
}

// redactedURL rebuilds the request URL without the named query parameters.
func redactedURL(rawURL string, params url.Values, keys ...string) string {
	safe := url.Values{}
	for k, v := range params {
		safe[k] = v
	}
	for _, k := range keys {
		safe.Del(k)
	}
	return rawURL + "?" + safe.Encode()
}

// missingField converts a validator failure into a *weather.FieldError naming
// the first offending field.
func missingField(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &weather.FieldError{Field: fieldPath(verrs[0].Namespace())}
	}
	return err
}

// fieldPath drops the root struct name: "observation.weather.description"
// becomes "weather.description".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
