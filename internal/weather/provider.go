package weather

import (
	"context"
)

// Provider abstracts a current-conditions weather source.
//
// Implementations return ErrMissingCredential, ErrNotFound, *HTTPError or
// *FieldError (possibly wrapped) for the failures Service knows how to tag;
// anything else becomes KindUnexpected.
type Provider interface {
	Name() string
	Current(ctx context.Context, location string) (Report, error)
}
