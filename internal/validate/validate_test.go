package validate

import (
	"testing"

	pkgerrors "github.com/atelierlabs/storefront/pkg/errors"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"min=18"`
}

func TestStructPassesValidInput(t *testing.T) {
	t.Parallel()

	if err := Struct(sample{Name: "Amina", Email: "amina@example.com", Age: 30}); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	t.Parallel()

	err := Struct(sample{Email: "not-an-email", Age: 12})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("unexpected details %+v", typed.Details())
	}
	if details["name"] != "is required" {
		t.Fatalf("expected json field name, got %+v", details)
	}
	if details["email"] != "must be a valid email" {
		t.Fatalf("unexpected email message %+v", details)
	}
	if details["age"] != "must be at least 18" {
		t.Fatalf("unexpected age message %+v", details)
	}
}
