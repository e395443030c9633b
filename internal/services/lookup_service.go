package services

import (
	"context"
	"errors"

	apperrors "secmaster/internal/errors"
	"secmaster/internal/figi"
	"secmaster/internal/logger"
)

// lookupService wraps the OpenFIGI collaborator. Lookup failures are
// non-fatal: the caller degrades to manual form entry.
type lookupService struct {
	client *figi.Client
}

// NewLookupService creates a new LookupServicer.
func NewLookupService(client *figi.Client) LookupServicer {
	return &lookupService{client: client}
}

// LookupIdentifier resolves an ISIN or ticker through the external
// collaborator and normalizes failures into the app error taxonomy.
// Read-only; the registry is never touched.
func (s *lookupService) LookupIdentifier(ctx context.Context, identifier string) (*figi.SecurityAttributes, error) {
	attrs, err := s.client.Lookup(ctx, identifier)
	if err == nil {
		return attrs, nil
	}

	var lookupErr *figi.LookupError
	if errors.As(err, &lookupErr) {
		logger.Named("lookup").Infow("external lookup failed",
			"identifier", identifier,
			"reason", lookupErr.Reason,
			"rate_limited", lookupErr.RateLimited,
		)
		return nil, apperrors.WithMessage(apperrors.ErrExternalLookup, lookupErr.Reason)
	}
	return nil, apperrors.Wrap(apperrors.ErrExternalLookup, err)
}
