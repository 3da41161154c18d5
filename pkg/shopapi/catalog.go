package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"

	pkgerrors "github.com/atelierlabs/storefront/pkg/errors"
)

// getList decodes either a bare JSON array or a DRF-paginated
// `{"results": [...]}` envelope into out.
func (c *Client) getList(ctx context.Context, op, path string, out any) error {
	var raw json.RawMessage
	if err := c.get(ctx, op, path, &raw); err != nil {
		return err
	}
	data := bytes.TrimSpace(raw)
	if len(data) > 0 && data[0] == '{' {
		var envelope struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(data, &envelope); err == nil && envelope.Results != nil {
			data = envelope.Results
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode "+op+" response")
	}
	return nil
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getList(ctx, "list_products", "products/", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches one product by slug, including its gallery images.
func (c *Client) GetProduct(ctx context.Context, slug string) (*Product, error) {
	var product Product
	if err := c.get(ctx, "get_product", "products/"+url.PathEscape(slug)+"/", &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCategories fetches categories with their nested subcategories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.getList(ctx, "list_categories", "categories/", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListBanners fetches the homepage banners.
func (c *Client) ListBanners(ctx context.Context) ([]Banner, error) {
	var banners []Banner
	if err := c.getList(ctx, "list_banners", "banners/", &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

// ListFooterSections fetches the footer chrome with nested links.
func (c *Client) ListFooterSections(ctx context.Context) ([]FooterSection, error) {
	var sections []FooterSection
	if err := c.getList(ctx, "list_footer_sections", "footer-sections/", &sections); err != nil {
		return nil, err
	}
	return sections, nil
}
