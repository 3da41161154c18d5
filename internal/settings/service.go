package settings

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/atelierlabs/storefront/pkg/errors"
	"github.com/atelierlabs/storefront/pkg/logger"
	"github.com/atelierlabs/storefront/pkg/shopapi"
	"github.com/shopspring/decimal"
)

type settingsAPI interface {
	GetSiteSettings(ctx context.Context) (*shopapi.SiteSettings, error)
	ListFooterSections(ctx context.Context) ([]shopapi.FooterSection, error)
	ListShippingLocations(ctx context.Context) ([]shopapi.ShippingLocation, error)
}

// Service caches site-wide settings fetched once per session. Refresh drops
// the cache.
type Service struct {
	api settingsAPI
	log *logger.Logger

	mu       sync.Mutex
	settings *shopapi.SiteSettings
	footer   []shopapi.FooterSection
}

// NewService builds a settings service over the given API client.
func NewService(api settingsAPI, log *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{api: api, log: log}, nil
}

// Get returns the site settings, fetching them on first use.
func (s *Service) Get(ctx context.Context) (*shopapi.SiteSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings != nil {
		copied := *s.settings
		return &copied, nil
	}

	settings, err := s.api.GetSiteSettings(ctx)
	if err != nil {
		return nil, err
	}
	s.settings = settings
	copied := *settings
	return &copied, nil
}

// DeliveryCharge returns the global fallback shipping charge.
func (s *Service) DeliveryCharge(ctx context.Context) (decimal.Decimal, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return settings.DeliveryCharge, nil
}

// ReturnWindowDays returns how many days after delivery a return may be
// requested.
func (s *Service) ReturnWindowDays(ctx context.Context) (int, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return 0, err
	}
	return settings.ReturnWindowDays, nil
}

// FooterSections returns the footer link sections, cached after first fetch.
func (s *Service) FooterSections(ctx context.Context) ([]shopapi.FooterSection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.footer != nil {
		out := make([]shopapi.FooterSection, len(s.footer))
		copy(out, s.footer)
		return out, nil
	}

	sections, err := s.api.ListFooterSections(ctx)
	if err != nil {
		return nil, err
	}
	s.footer = sections
	out := make([]shopapi.FooterSection, len(sections))
	copy(out, sections)
	return out, nil
}

// ShippingLocations returns the active shipping locations. Not cached, the
// checkout flow fetches them fresh each time.
func (s *Service) ShippingLocations(ctx context.Context) ([]shopapi.ShippingLocation, error) {
	locations, err := s.api.ListShippingLocations(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipping locations")
	}
	active := make([]shopapi.ShippingLocation, 0, len(locations))
	for _, loc := range locations {
		if loc.IsActive {
			active = append(active, loc)
		}
	}
	return active, nil
}

// Refresh drops all cached state so the next read refetches.
func (s *Service) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.settings = nil
	s.footer = nil
	s.mu.Unlock()
	s.log.Debug(ctx, "settings cache cleared")
}
