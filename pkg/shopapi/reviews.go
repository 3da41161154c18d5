package shopapi

import (
	"context"
	"net/url"
)

// ListReviews fetches the reviews for one product, newest first. An empty
// slug lists every review.
func (c *Client) ListReviews(ctx context.Context, productSlug string) ([]Review, error) {
	path := "reviews/"
	if productSlug != "" {
		path += "?product_slug=" + url.QueryEscape(productSlug)
	}
	var reviews []Review
	if err := c.getList(ctx, "list_reviews", path, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview files a review. The server rejects non-purchasers and
// duplicate reviews.
func (c *Client) CreateReview(ctx context.Context, input ReviewInput) (*Review, error) {
	var review Review
	if err := c.post(ctx, "create_review", "reviews/", input, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
