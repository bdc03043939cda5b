package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/mstanchev/vaxtrack/internal/model"
	appErr "github.com/mstanchev/vaxtrack/internal/pkg/errors"
	"github.com/mstanchev/vaxtrack/internal/pkg/timeutil"
	"github.com/mstanchev/vaxtrack/internal/repo"
)

const (
	msgMissingOrigin      = "Must submit first location"
	msgMissingDestination = "Must submit second location"
	msgMissingType        = "Must submit vaccine type"
	msgMissingQuantity    = "Must submit vaccine quantity"
	msgNonPositiveQty     = "Must submit positive quantity."
)

type ListingService struct {
	listings *repo.ListingRepo
}

func NewListingService(listings *repo.ListingRepo) *ListingService {
	return &ListingService{listings: listings}
}

func (s *ListingService) ListAll(ctx context.Context, search string) ([]model.ListingWithOwner, error) {
	return s.listings.ListAll(ctx, strings.TrimSpace(search))
}

func (s *ListingService) ListByOwner(ctx context.Context, userID, search string) ([]model.Listing, error) {
	return s.listings.ListByOwner(ctx, userID, strings.TrimSpace(search))
}

// Create validates the form fields in a fixed order (origin,
// destination, type, quantity presence, quantity positivity) and
// surfaces only the first failing check's message. Quantity arrives as
// the raw form value so that a malformed number is reported as a
// validation failure, not a server error.
func (s *ListingService) Create(ctx context.Context, userID, origin, destination, vaccineType, quantity string) (*model.Listing, error) {
	if strings.TrimSpace(origin) == "" {
		return nil, appErr.Validation(msgMissingOrigin)
	}
	if strings.TrimSpace(destination) == "" {
		return nil, appErr.Validation(msgMissingDestination)
	}
	if strings.TrimSpace(vaccineType) == "" {
		return nil, appErr.Validation(msgMissingType)
	}
	quantity = strings.TrimSpace(quantity)
	if quantity == "" {
		return nil, appErr.Validation(msgMissingQuantity)
	}
	qty, err := strconv.ParseInt(quantity, 10, 64)
	if err != nil {
		return nil, appErr.Validation(msgMissingQuantity)
	}
	if qty <= 0 {
		return nil, appErr.Validation(msgNonPositiveQty)
	}
	listing := &model.Listing{
		ID:          newID(),
		Quantity:    qty,
		Origin:      strings.TrimSpace(origin),
		Destination: strings.TrimSpace(destination),
		VaccineType: strings.TrimSpace(vaccineType),
		UserID:      userID,
		Ctime:       timeutil.NowUnix(),
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}
