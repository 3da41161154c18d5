package settings

import (
	"context"
	"io"
	"testing"

	"github.com/atelierlabs/storefront/pkg/logger"
	"github.com/atelierlabs/storefront/pkg/shopapi"
	"github.com/shopspring/decimal"
)

type stubAPI struct {
	settings      *shopapi.SiteSettings
	settingsCalls int
	footer        []shopapi.FooterSection
	footerCalls   int
	locations     []shopapi.ShippingLocation
	err           error
}

func (s *stubAPI) GetSiteSettings(context.Context) (*shopapi.SiteSettings, error) {
	s.settingsCalls++
	if s.err != nil {
		return nil, s.err
	}
	copied := *s.settings
	return &copied, nil
}

func (s *stubAPI) ListFooterSections(context.Context) ([]shopapi.FooterSection, error) {
	s.footerCalls++
	return s.footer, s.err
}

func (s *stubAPI) ListShippingLocations(context.Context) ([]shopapi.ShippingLocation, error) {
	return s.locations, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "settings-test", Output: io.Discard})
}

func TestGetCachesAfterFirstFetch(t *testing.T) {
	t.Parallel()

	api := &stubAPI{settings: &shopapi.SiteSettings{BrandName: "Atelier", DeliveryCharge: decimal.NewFromInt(60), ReturnWindowDays: 7}}
	svc, err := NewService(api, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		got, err := svc.Get(ctx)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.BrandName != "Atelier" {
			t.Fatalf("unexpected settings %+v", got)
		}
	}
	if api.settingsCalls != 1 {
		t.Fatalf("expected one upstream fetch, got %d", api.settingsCalls)
	}

	charge, err := svc.DeliveryCharge(ctx)
	if err != nil {
		t.Fatalf("delivery charge: %v", err)
	}
	if !charge.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("unexpected charge %s", charge)
	}
	days, err := svc.ReturnWindowDays(ctx)
	if err != nil {
		t.Fatalf("return window: %v", err)
	}
	if days != 7 {
		t.Fatalf("unexpected return window %d", days)
	}
	if api.settingsCalls != 1 {
		t.Fatalf("derived reads must hit the cache, got %d fetches", api.settingsCalls)
	}
}

func TestRefreshDropsCache(t *testing.T) {
	t.Parallel()

	api := &stubAPI{settings: &shopapi.SiteSettings{BrandName: "Atelier"}}
	svc, err := NewService(api, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ctx := context.Background()
	if _, err := svc.Get(ctx); err != nil {
		t.Fatalf("get: %v", err)
	}
	svc.Refresh(ctx)
	if _, err := svc.Get(ctx); err != nil {
		t.Fatalf("get after refresh: %v", err)
	}
	if api.settingsCalls != 2 {
		t.Fatalf("expected refetch after refresh, got %d fetches", api.settingsCalls)
	}
}

func TestShippingLocationsFilterInactive(t *testing.T) {
	t.Parallel()

	api := &stubAPI{locations: []shopapi.ShippingLocation{
		{ID: 1, Name: "Dhaka", Charge: decimal.NewFromInt(60), IsActive: true},
		{ID: 2, Name: "Legacy Zone", Charge: decimal.NewFromInt(90), IsActive: false},
	}}
	svc, err := NewService(api, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.ShippingLocations(context.Background())
	if err != nil {
		t.Fatalf("shipping locations: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Dhaka" {
		t.Fatalf("unexpected locations %+v", got)
	}
}

func TestFooterSectionsCached(t *testing.T) {
	t.Parallel()

	api := &stubAPI{footer: []shopapi.FooterSection{{ID: 1, Name: "Company"}}}
	svc, err := NewService(api, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		sections, err := svc.FooterSections(ctx)
		if err != nil {
			t.Fatalf("footer sections: %v", err)
		}
		if len(sections) != 1 {
			t.Fatalf("unexpected sections %+v", sections)
		}
	}
	if api.footerCalls != 1 {
		t.Fatalf("expected one upstream fetch, got %d", api.footerCalls)
	}
}
