package addresses

import (
	"context"
	"fmt"

	"github.com/atelierlabs/storefront/internal/validate"
	pkgerrors "github.com/atelierlabs/storefront/pkg/errors"
	"github.com/atelierlabs/storefront/pkg/logger"
	"github.com/atelierlabs/storefront/pkg/shopapi"
)

type addressAPI interface {
	ListAddresses(ctx context.Context) ([]shopapi.Address, error)
	CreateAddress(ctx context.Context, input shopapi.Address) (*shopapi.Address, error)
	UpdateAddress(ctx context.Context, id int64, input shopapi.Address) (*shopapi.Address, error)
	DeleteAddress(ctx context.Context, id int64) error
}

// Service manages the signed-in user's address book.
type Service struct {
	api addressAPI
	log *logger.Logger
}

// NewService builds an address service over the given API client.
func NewService(api addressAPI, log *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{api: api, log: log}, nil
}

// List fetches the address book.
func (s *Service) List(ctx context.Context) ([]shopapi.Address, error) {
	return s.api.ListAddresses(ctx)
}

// DefaultOrFirst returns the default address, or the first one when no
// default is set, or nil for an empty address book. Checkout uses it to
// prefill the delivery form.
func (s *Service) DefaultOrFirst(ctx context.Context) (*shopapi.Address, error) {
	addrs, err := s.api.ListAddresses(ctx)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, nil
	}
	for i := range addrs {
		if addrs[i].IsDefault {
			copied := addrs[i]
			return &copied, nil
		}
	}
	copied := addrs[0]
	return &copied, nil
}

// Create validates and saves a new address.
func (s *Service) Create(ctx context.Context, input shopapi.Address) (*shopapi.Address, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	return s.api.CreateAddress(ctx, input)
}

// Update replaces the address with the given id.
func (s *Service) Update(ctx context.Context, id int64, input shopapi.Address) (*shopapi.Address, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address id is required")
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	return s.api.UpdateAddress(ctx, id, input)
}

// Delete removes the address with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "address id is required")
	}
	return s.api.DeleteAddress(ctx, id)
}
