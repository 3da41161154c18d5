package shopapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	pkgerrors "github.com/atelierlabs/storefront/pkg/errors"
)

func TestListReviewsFiltersByProductSlug(t *testing.T) {
	t.Parallel()

	router, server := newStubAPI(t)
	router.Get("/reviews/", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("product_slug"); got != "wool coat" {
			t.Errorf("unexpected product_slug %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "user_name": "ines", "rating": 5, "comment": "Lovely.", "created_at": "2026-08-01T10:00:00Z"},
			{"id": 2, "user_name": "marco", "rating": 3, "comment": "Runs small.", "created_at": "2026-08-02T09:30:00Z"},
		})
	})

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	reviews, err := client.ListReviews(context.Background(), "wool coat")
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
	if reviews[0].UserName != "ines" || reviews[0].Rating != 5 {
		t.Fatalf("unexpected first review %+v", reviews[0])
	}
}

func TestCreateReviewPostsPayload(t *testing.T) {
	t.Parallel()

	router, server := newStubAPI(t)
	router.Post("/reviews/", func(w http.ResponseWriter, r *http.Request) {
		var payload ReviewInput
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.ProductSlug != "wool-coat" || payload.Rating != 4 {
			t.Errorf("unexpected payload %+v", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id": 7, "user_name": "ines", "rating": 4, "comment": payload.Comment,
		})
	})

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	review, err := client.CreateReview(context.Background(), ReviewInput{
		ProductSlug: "wool-coat",
		Rating:      4,
		Comment:     "Good weight for autumn.",
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if review.ID != 7 || review.Rating != 4 {
		t.Fatalf("unexpected review %+v", review)
	}
}

func TestCreateReviewSurfacesPurchaseCheck(t *testing.T) {
	t.Parallel()

	router, server := newStubAPI(t)
	router.Post("/reviews/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"error": "You can only review products you have purchased.",
		})
	})

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.CreateReview(context.Background(), ReviewInput{ProductSlug: "wool-coat", Rating: 5})
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if typed.Message() != "You can only review products you have purchased." {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}
