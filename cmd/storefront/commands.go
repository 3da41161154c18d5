package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/atelierlabs/storefront/internal/catalog"
	"github.com/atelierlabs/storefront/internal/checkout"
	"github.com/atelierlabs/storefront/pkg/shopapi"
)

const usage = `usage: storefront <command> [flags]

catalog:
  products [--category slug] [--subcategory slug] [--search term]
  product <slug>
  categories
  reviews <slug>
  review-add <slug> --rating n [--comment ..]

cart:
  cart
  cart-add <slug> [--qty n] [--size s] [--color c]
  cart-set <variant-key> <qty>
  cart-remove <variant-key>
  cart-clear

checkout:
  coupon <code>
  coupon-clear
  shipping
  shipping-select <location-id>
  quote
  order-place --name .. --email .. --phone .. --address1 .. --city .. --state .. --postal .. --country .. [--address2 ..] [--coupon code] [--location id]

account:
  login <email> <password>
  register <email> <password> [--first ..] [--last ..]
  logout
  whoami
  addresses

orders:
  orders
  order <id>
  order-cancel <id>
  returns
  return-request <id> --reason ..
`

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "products":
		return a.cmdProducts(ctx, rest)
	case "product":
		return a.cmdProduct(ctx, rest)
	case "categories":
		return a.cmdCategories(ctx)
	case "reviews":
		return a.cmdReviews(ctx, rest)
	case "review-add":
		return a.cmdReviewAdd(ctx, rest)
	case "cart":
		return a.cmdCartShow(ctx)
	case "cart-add":
		return a.cmdCartAdd(ctx, rest)
	case "cart-set":
		return a.cmdCartSet(ctx, rest)
	case "cart-remove":
		return a.cmdCartRemove(ctx, rest)
	case "cart-clear":
		return a.cart.Clear(ctx)
	case "coupon":
		return a.cmdCoupon(ctx, rest)
	case "coupon-clear":
		a.checkout.ClearCoupon()
		return nil
	case "shipping":
		return a.cmdShipping(ctx)
	case "shipping-select":
		return a.cmdShippingSelect(ctx, rest)
	case "quote":
		return a.cmdQuote(ctx)
	case "order-place":
		return a.cmdOrderPlace(ctx, rest)
	case "login":
		return a.cmdLogin(ctx, rest)
	case "register":
		return a.cmdRegister(ctx, rest)
	case "logout":
		return a.auth.Logout(ctx)
	case "whoami":
		return a.cmdWhoami(ctx)
	case "addresses":
		return a.cmdAddresses(ctx)
	case "orders":
		return a.cmdOrders(ctx)
	case "order":
		return a.cmdOrder(ctx, rest)
	case "order-cancel":
		return a.cmdOrderCancel(ctx, rest)
	case "returns":
		return a.cmdReturns(ctx)
	case "return-request":
		return a.cmdReturnRequest(ctx, rest)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	category := fs.String("category", "", "filter by category slug")
	subcategory := fs.String("subcategory", "", "filter by subcategory slug")
	search := fs.String("search", "", "match against name and description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := a.catalog.ListProducts(ctx, catalog.Filter{
		CategorySlug:    *category,
		SubcategorySlug: *subcategory,
		Search:          *search,
	})
	if err != nil {
		return err
	}
	for _, p := range products {
		stock := "in stock"
		if !catalog.CanAddToCart(&p) {
			stock = "unavailable"
		}
		fmt.Printf("%-30s %10s  %s  (%s)\n", p.Slug, p.Price.StringFixed(2), p.Name, stock)
	}
	return nil
}

func (a *app) cmdProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: product <slug>")
	}
	p, err := a.catalog.GetProduct(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s\n%s\nprice: %s  stock: %d\n", p.Name, p.Description, p.Price.StringFixed(2), p.Stock)
	if len(p.Sizes) > 0 {
		fmt.Println("sizes:", strings.Join(p.Sizes, ", "))
	}
	if len(p.Colors) > 0 {
		fmt.Println("colors:", strings.Join(p.Colors, ", "))
	}
	return nil
}

func (a *app) cmdReviews(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: reviews <slug>")
	}
	reviews, err := a.catalog.Reviews(ctx, args[0])
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Println("no reviews yet")
		return nil
	}
	for _, r := range reviews {
		fmt.Printf("%-16s %d/5  %s\n", r.UserName, r.Rating, r.Comment)
	}
	fmt.Printf("average: %.1f from %d reviews\n", catalog.AverageRating(reviews), len(reviews))
	return nil
}

func (a *app) cmdReviewAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("review-add", flag.ContinueOnError)
	rating := fs.Int("rating", 0, "rating from 1 to 5")
	comment := fs.String("comment", "", "review text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: review-add <slug> --rating n [--comment ..]")
	}

	review, err := a.catalog.AddReview(ctx, shopapi.ReviewInput{
		ProductSlug: fs.Arg(0),
		Rating:      *rating,
		Comment:     *comment,
	})
	if err != nil {
		return err
	}
	fmt.Printf("review #%d submitted\n", review.ID)
	return nil
}

func (a *app) cmdCategories(ctx context.Context) error {
	cats, err := a.catalog.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range cats {
		fmt.Println(c.Slug)
		for _, sub := range c.Subcategories {
			fmt.Println("  " + sub.Slug)
		}
	}
	return nil
}

func (a *app) cmdCartShow(_ context.Context) error {
	lines := a.cart.Lines()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	for _, line := range lines {
		variant := ""
		if line.Size != "" || line.Color != "" {
			variant = fmt.Sprintf(" [%s %s]", line.Size, line.Color)
		}
		fmt.Printf("%-24s %s%s x%d = %s\n", line.Key, line.Name, variant, line.Quantity, line.LineTotal().StringFixed(2))
	}
	fmt.Printf("items: %d  subtotal: %s\n", a.cart.ItemCount(), a.cart.Subtotal().StringFixed(2))
	return nil
}

func (a *app) cmdCartAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart-add", flag.ContinueOnError)
	qty := fs.Int("qty", 1, "quantity to add")
	size := fs.String("size", "", "selected size")
	color := fs.String("color", "", "selected color")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: cart-add <slug> [--qty n] [--size s] [--color c]")
	}

	product, err := a.catalog.GetProduct(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	if !catalog.CanAddToCart(product) {
		return fmt.Errorf("%s is out of stock", product.Slug)
	}
	if err := a.cart.Add(ctx, product, *qty, *size, *color); err != nil {
		return err
	}
	return a.cmdCartShow(ctx)
}

func (a *app) cmdCartSet(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: cart-set <variant-key> <qty>")
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}
	if err := a.cart.SetQuantity(ctx, args[0], qty); err != nil {
		return err
	}
	return a.cmdCartShow(ctx)
}

func (a *app) cmdCartRemove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cart-remove <variant-key>")
	}
	if err := a.cart.Remove(ctx, args[0]); err != nil {
		return err
	}
	return a.cmdCartShow(ctx)
}

func (a *app) cmdCoupon(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: coupon <code>")
	}
	applied, err := a.checkout.ApplyCoupon(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("applied %s (%s %s)\n", applied.Code, applied.DiscountType, applied.DiscountValue)
	return a.cmdQuote(ctx)
}

func (a *app) cmdShipping(ctx context.Context) error {
	locations, err := a.settings.ShippingLocations(ctx)
	if err != nil {
		return err
	}
	for _, loc := range locations {
		fmt.Printf("%4d  %-24s %s\n", loc.ID, loc.Name, loc.Charge.StringFixed(2))
	}
	return nil
}

func (a *app) cmdShippingSelect(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: shipping-select <location-id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid location id %q", args[0])
	}
	if err := a.selectShippingByID(ctx, id); err != nil {
		return err
	}
	return a.cmdQuote(ctx)
}

func (a *app) selectShippingByID(ctx context.Context, id int64) error {
	locations, err := a.settings.ShippingLocations(ctx)
	if err != nil {
		return err
	}
	for i := range locations {
		if locations[i].ID == id {
			a.checkout.SelectShipping(&locations[i])
			return nil
		}
	}
	return fmt.Errorf("unknown shipping location %d", id)
}

func (a *app) cmdQuote(ctx context.Context) error {
	quote, err := a.checkout.Quote(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("subtotal: %s\nshipping: %s\ndiscount: %s\ntotal:    %s\n",
		quote.Subtotal.StringFixed(2), quote.Shipping.StringFixed(2),
		quote.Discount.StringFixed(2), quote.Total.StringFixed(2))
	return nil
}

func (a *app) cmdOrderPlace(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("order-place", flag.ContinueOnError)
	name := fs.String("name", "", "recipient full name")
	email := fs.String("email", "", "contact email")
	phone := fs.String("phone", "", "contact phone")
	address1 := fs.String("address1", "", "address line 1")
	address2 := fs.String("address2", "", "address line 2")
	city := fs.String("city", "", "city")
	state := fs.String("state", "", "state")
	postal := fs.String("postal", "", "postal code")
	country := fs.String("country", "", "country")
	coupon := fs.String("coupon", "", "coupon code to apply before placing")
	location := fs.Int64("location", 0, "shipping location id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// The process exits after each command, so coupon and shipping choices
	// made in earlier invocations are gone. Apply them here, in the same
	// run that places the order.
	if *coupon != "" {
		if _, err := a.checkout.ApplyCoupon(ctx, *coupon); err != nil {
			return err
		}
	}
	if *location != 0 {
		if err := a.selectShippingByID(ctx, *location); err != nil {
			return err
		}
	}

	order, err := a.checkout.PlaceOrder(ctx, checkout.Recipient{
		FullName:     *name,
		Email:        *email,
		Phone:        *phone,
		AddressLine1: *address1,
		AddressLine2: *address2,
		City:         *city,
		State:        *state,
		PostalCode:   *postal,
		Country:      *country,
	})
	if err != nil {
		return err
	}
	fmt.Printf("order #%d placed, total %s\n", order.ID, order.TotalPrice.StringFixed(2))
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login <email> <password>")
	}
	user, err := a.auth.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s\n", user.Email)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: register <email> <password> [--first ..] [--last ..]")
	}

	user, err := a.auth.Register(ctx, shopapi.RegisterInput{
		Email:     fs.Arg(0),
		Password:  fs.Arg(1),
		FirstName: *first,
		LastName:  *last,
	})
	if err != nil {
		return err
	}
	fmt.Printf("account created for %s\n", user.Email)
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	if !a.auth.IsAuthenticated() {
		fmt.Println("not signed in")
		return nil
	}
	user := a.auth.User()
	if user == nil {
		refreshed, err := a.auth.RefreshProfile(ctx)
		if err != nil {
			return err
		}
		user = refreshed
	}
	fmt.Printf("%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	return nil
}

func (a *app) cmdAddresses(ctx context.Context) error {
	addrs, err := a.addresses.List(ctx)
	if err != nil {
		return err
	}
	for _, addr := range addrs {
		marker := " "
		if addr.IsDefault {
			marker = "*"
		}
		fmt.Printf("%s %4d  %s, %s %s, %s\n", marker, addr.ID, addr.StreetAddress, addr.City, addr.PostalCode, addr.Country)
	}
	return nil
}

func (a *app) cmdOrders(ctx context.Context) error {
	list, err := a.orders.List(ctx)
	if err != nil {
		return err
	}
	for _, o := range list {
		fmt.Printf("#%-6d %-10s %10s  %s\n", o.ID, o.Status, o.TotalPrice.StringFixed(2), o.CreatedAt)
	}
	return nil
}

func (a *app) cmdOrder(ctx context.Context, args []string) error {
	id, err := parseOrderID(args)
	if err != nil {
		return err
	}
	order, err := a.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("order #%d  %s\n", order.ID, order.Status)
	for _, item := range order.Items {
		fmt.Printf("  %s x%d @ %s\n", item.ProductName, item.Quantity, item.Price.StringFixed(2))
	}
	fmt.Printf("shipping: %s  discount: %s  total: %s\n",
		order.ShippingPrice.StringFixed(2), order.DiscountAmount.StringFixed(2), order.TotalPrice.StringFixed(2))

	eligible, err := a.orders.ReturnEligible(ctx, order)
	if err == nil && eligible {
		fmt.Println("eligible for return")
	}
	return nil
}

func (a *app) cmdOrderCancel(ctx context.Context, args []string) error {
	id, err := parseOrderID(args)
	if err != nil {
		return err
	}
	order, err := a.orders.Cancel(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("order #%d is now %s\n", order.ID, order.Status)
	return nil
}

func (a *app) cmdReturns(ctx context.Context) error {
	list, err := a.orders.ListReturns(ctx)
	if err != nil {
		return err
	}
	for _, r := range list {
		fmt.Printf("#%-6d order #%-6d %-10s %s\n", r.ID, r.OrderID, r.Status, r.Reason)
	}
	return nil
}

func (a *app) cmdReturnRequest(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("return-request", flag.ContinueOnError)
	reason := fs.String("reason", "", "why the order is being returned")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseOrderID(fs.Args())
	if err != nil {
		return err
	}
	request, err := a.orders.RequestReturn(ctx, id, *reason)
	if err != nil {
		return err
	}
	fmt.Printf("return #%d filed for order #%d\n", request.ID, request.OrderID)
	return nil
}

func parseOrderID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("an order id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid order id %q", args[0])
	}
	return id, nil
}
