package addresses

import (
	"context"
	"io"
	"testing"

	pkgerrors "github.com/atelierlabs/storefront/pkg/errors"
	"github.com/atelierlabs/storefront/pkg/logger"
	"github.com/atelierlabs/storefront/pkg/shopapi"
)

type stubAPI struct {
	addresses []shopapi.Address
	err       error
	deletedID int64
}

func (s *stubAPI) ListAddresses(context.Context) ([]shopapi.Address, error) {
	return s.addresses, s.err
}

func (s *stubAPI) CreateAddress(_ context.Context, input shopapi.Address) (*shopapi.Address, error) {
	if s.err != nil {
		return nil, s.err
	}
	input.ID = int64(len(s.addresses) + 1)
	s.addresses = append(s.addresses, input)
	return &input, nil
}

func (s *stubAPI) UpdateAddress(_ context.Context, id int64, input shopapi.Address) (*shopapi.Address, error) {
	input.ID = id
	return &input, s.err
}

func (s *stubAPI) DeleteAddress(_ context.Context, id int64) error {
	s.deletedID = id
	return s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "addresses-test", Output: io.Discard})
}

func validAddress() shopapi.Address {
	return shopapi.Address{
		StreetAddress: "12 Lake Road",
		City:          "Dhaka",
		State:         "Dhaka",
		PostalCode:    "1212",
		Country:       "Bangladesh",
	}
}

func TestDefaultOrFirstPrefersDefault(t *testing.T) {
	t.Parallel()

	api := &stubAPI{addresses: []shopapi.Address{
		{ID: 1, StreetAddress: "First St"},
		{ID: 2, StreetAddress: "Home St", IsDefault: true},
	}}
	svc, err := NewService(api, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.DefaultOrFirst(context.Background())
	if err != nil {
		t.Fatalf("default or first: %v", err)
	}
	if got == nil || got.ID != 2 {
		t.Fatalf("expected default address, got %+v", got)
	}
}

func TestDefaultOrFirstFallsBackToFirst(t *testing.T) {
	t.Parallel()

	api := &stubAPI{addresses: []shopapi.Address{
		{ID: 1, StreetAddress: "First St"},
		{ID: 2, StreetAddress: "Second St"},
	}}
	svc, err := NewService(api, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.DefaultOrFirst(context.Background())
	if err != nil {
		t.Fatalf("default or first: %v", err)
	}
	if got == nil || got.ID != 1 {
		t.Fatalf("expected first address, got %+v", got)
	}
}

func TestDefaultOrFirstEmptyBook(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubAPI{}, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	got, err := svc.DefaultOrFirst(context.Background())
	if err != nil {
		t.Fatalf("default or first: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for empty book, got %+v", got)
	}
}

func TestCreateRejectsIncompleteAddress(t *testing.T) {
	t.Parallel()

	api := &stubAPI{}
	svc, err := NewService(api, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	incomplete := validAddress()
	incomplete.City = ""
	_, err = svc.Create(context.Background(), incomplete)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["city"] != "is required" {
		t.Fatalf("expected per-field message for city, got %+v", typed.Details())
	}
	if len(api.addresses) != 0 {
		t.Fatal("incomplete address must not reach the server")
	}
}

func TestCreateAndDelete(t *testing.T) {
	t.Parallel()

	api := &stubAPI{}
	svc, err := NewService(api, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	created, err := svc.Create(context.Background(), validAddress())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id, got %+v", created)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if api.deletedID != created.ID {
		t.Fatalf("expected delete for id %d, got %d", created.ID, api.deletedID)
	}

	if err := svc.Delete(context.Background(), 0); err == nil {
		t.Fatal("zero id must be rejected")
	}
}
