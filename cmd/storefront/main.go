package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/nikolayk812/storefront/internal/app"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/notify"
	"github.com/nikolayk812/storefront/internal/pricing"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	run()
	os.Exit(exitCode)
}

// exitCode is set by fail so deferred cleanup in run still happens.
var exitCode int

var commandsWithID = map[string]bool{"add": true, "remove": true, "qty": true, "wish": true, "unwish": true}

func run() {
	ctx := context.Background()
	logg := logger.New(logger.Options{Name: "storefront"})

	cmd := flag.String("cmd", "catalog", "command: catalog|cart|add|remove|qty|clear|wishlist|wish|unwish|checkout")
	configFile := flag.String("config", "config.yaml", "yaml config file")
	showMetrics := flag.Bool("metrics", false, "print counters collected during the command")

	id := flag.Int64("id", 0, "product id (add, remove, qty, wish, unwish)")
	qty := flag.Int("qty", 1, "quantity (qty)")

	category := flag.String("category", "", "category filter (catalog)")
	brand := flag.String("brand", "", "brand filter (catalog)")
	priceRange := flag.String("range", "", "price range filter (catalog): under-10000|10000-20000|20000-30000|30000-50000|above-50000")

	promo := flag.String("promo", "", "promo code (checkout)")
	fullName := flag.String("name", "", "full name (checkout)")
	email := flag.String("email", "", "email (checkout)")
	phone := flag.String("phone", "", "phone (checkout)")
	country := flag.String("country", "Bangladesh", "country (checkout)")
	city := flag.String("city", "", "city (checkout)")
	state := flag.String("state", "", "state or division (checkout)")
	zip := flag.String("zip", "", "zip code (checkout)")
	delivery := flag.String("delivery", string(checkout.DeliveryHome), "delivery method (checkout): delivery|pickup")
	agree := flag.Bool("agree", false, "agree to the terms and conditions (checkout)")

	flag.Parse()

	if commandsWithID[*cmd] && *id <= 0 {
		fail("missing -id for %s", *cmd)
		return
	}

	src := config.DefaultSources()
	src.ConfigFile = *configFile
	cfg, err := config.Load(src)
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		Name:   "storefront",
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})

	ctx = logg.WithFields(ctx, map[string]any{
		"cmd":     *cmd,
		"backend": cfg.Storage.Backend,
	})

	reg := prometheus.NewRegistry()
	session, err := app.NewSession(ctx, cfg, logg, reg)
	requireResource(ctx, logg, "session", err)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := session.Close(closeCtx); err != nil {
			logg.Error(ctx, "session close failed", err)
		}
		if *showMetrics {
			printMetrics(reg)
		}
	}()

	logg.Debug(ctx, "storefront ready")

	switch *cmd {
	case "catalog":
		r, err := catalog.ParsePriceRange(*priceRange)
		if err != nil {
			fail("invalid -range: %v", err)
			return
		}
		printProducts(session.Catalog.Filter(catalog.Filter{Category: *category, Brand: *brand, PriceRange: r}), session)

	case "cart":
		printCart(session)

	case "add":
		out, err := session.AddToCart(ctx, *id)
		if err != nil {
			fail("add failed: %v", err)
			return
		}
		printOutcome(out)
		printCart(session)

	case "remove":
		printOutcome(session.Cart.RemoveItem(ctx, *id))
		printCart(session)

	case "qty":
		printOutcome(session.Cart.SetQuantity(ctx, *id, *qty))
		printCart(session)

	case "clear":
		printOutcome(session.Cart.Clear(ctx))

	case "wishlist":
		printWishlist(session)

	case "wish":
		p, ok := session.Catalog.Find(*id)
		if !ok {
			fail("wish failed: product[%d]: %v", *id, catalog.ErrProductNotFound)
			return
		}
		printOutcome(session.Wishlist.AddItem(ctx, p.Item()))

	case "unwish":
		printOutcome(session.Wishlist.RemoveItem(ctx, *id))

	case "checkout":
		order, err := session.Checkout.PlaceOrder(ctx, checkout.ShippingDetails{
			FullName:       *fullName,
			Email:          *email,
			Phone:          *phone,
			Country:        *country,
			City:           *city,
			State:          *state,
			ZipCode:        *zip,
			DeliveryMethod: checkout.DeliveryMethod(*delivery),
			AgreeToTerms:   *agree,
		}, *promo)
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			fail("your cart is empty")
			return
		case errors.Is(err, checkout.ErrInvalidShipping):
			fields := checkout.InvalidFields(err)
			if slices.Contains(fields, "AgreeToTerms") {
				fail("Please agree to the Terms and Conditions")
				return
			}
			fail("check shipping details: %s", strings.Join(fields, ", "))
			return
		case err != nil:
			fail("checkout failed: %v", err)
			return
		}
		printOrder(order)

	default:
		fail("unknown -cmd value: %s", *cmd)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exitCode = 1
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: storefront -cmd <command> [flags]\n\n")
		flag.PrintDefaults()
	}
}

func printOutcome(out domain.Outcome) {
	if msg := notify.Message(out); msg != "" {
		fmt.Println(msg)
	}
}

func printProducts(products []domain.Product, s *app.Session) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tNAME\tPRICE\tWAS\tOFF\tRATING\t")
	for _, p := range products {
		mark := ""
		if s.Wishlist.Contains(p.ID) {
			mark = " *"
		}
		fmt.Fprintf(w, "%d\t%s%s\t%s\t%s\t%d%%\t%.1f\t\n",
			p.ID, p.Name, mark,
			pricing.Format(p.Price), pricing.Format(p.OriginalPrice),
			pricing.DiscountPercent(p.Price, p.OriginalPrice), p.Rating)
	}
}

func printCart(s *app.Session) {
	lines := s.Cart.Lines()
	if len(lines) == 0 {
		fmt.Println("Your cart is empty")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tPRICE\tLINE TOTAL\t")
	for _, l := range lines {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t\n", l.ID, l.Name, l.Quantity, pricing.Format(l.Price), pricing.Format(pricing.LineTotal(l)))
	}
	_ = w.Flush()

	printSummary(s.CartSummary(), "Delivery")
}

func printSummary(sum pricing.Summary, feeLabel string) {
	fmt.Printf("Items:     %d\n", sum.ItemCount)
	fmt.Printf("Subtotal:  %s\n", pricing.Format(sum.Subtotal))
	fmt.Printf("Discount: -%s\n", pricing.Format(sum.Discount))
	fmt.Printf("%-10s %s\n", feeLabel+":", pricing.Format(sum.Shipping))
	fmt.Printf("Total:     %s\n", pricing.Format(sum.Total))
}

func printWishlist(s *app.Session) {
	entries := s.Wishlist.Entries()
	if len(entries) == 0 {
		fmt.Println("Your wishlist is empty")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tNAME\tPRICE\tIN CART\t")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t\n", e.ID, e.Name, pricing.Format(e.Price), s.Cart.Quantity(e.ID))
	}
}

func printOrder(o checkout.Order) {
	fmt.Printf("Order %s placed at %s\n", o.ID, o.PlacedAt.Format(time.RFC1123))
	fmt.Printf("Ship to: %s, %s, %s %s, %s (%s)\n", o.Shipping.FullName, o.Shipping.City, o.Shipping.State, o.Shipping.ZipCode, o.Shipping.Country, o.Shipping.DeliveryMethod)
	if o.PromoCode != "" {
		fmt.Printf("Promo code: %s\n", o.PromoCode)
	}
	printSummary(o.Summary, "Shipping")
}

func printMetrics(reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		fmt.Fprintf(os.Stderr, "metrics gather failed: %v\n", err)
		return
	}

	var out []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			out = append(out, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(out)

	for _, line := range out {
		fmt.Println(line)
	}
}
