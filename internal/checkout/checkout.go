package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/pricing"
	"golang.org/x/text/currency"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidShipping = errors.New("shipping details are not valid")
	ErrEmptyPromoCode  = errors.New("promo code is empty")
)

type DeliveryMethod string

const (
	DeliveryHome   DeliveryMethod = "delivery"
	DeliveryPickup DeliveryMethod = "pickup"
)

// ShippingDetails is the checkout form. An empty DeliveryMethod means home delivery,
// and the order is refused until the terms are accepted.
type ShippingDetails struct {
	FullName       string         `validate:"required,min=2"`
	Email          string         `validate:"required,email"`
	Phone          string         `validate:"required,min=6,max=20"`
	Country        string         `validate:"required"`
	City           string         `validate:"required"`
	State          string         `validate:"required"`
	ZipCode        string         `validate:"required,alphanum,min=3,max=10"`
	DeliveryMethod DeliveryMethod `validate:"oneof=delivery pickup"`
	AgreeToTerms   bool           `validate:"required"`
}

type Order struct {
	ID        uuid.UUID
	Lines     []domain.CartLine
	Summary   pricing.Summary
	PromoCode string
	Shipping  ShippingDetails
	PlacedAt  time.Time
}

// CartReader is the part of the cart checkout depends on.
type CartReader interface {
	Lines() []domain.CartLine
	Clear(ctx context.Context) domain.Outcome
}

type Service struct {
	cart     CartReader
	policy   pricing.Policy
	unit     currency.Unit
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
}

func NewService(cart CartReader, unit currency.Unit, policy pricing.Policy, log *logger.Logger) *Service {
	return &Service{
		cart:     cart,
		policy:   policy,
		unit:     unit,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
		now:      time.Now,
	}
}

// PlaceOrder prices the current cart, empties it and returns the order.
// Nothing is charged.
func (s *Service) PlaceOrder(ctx context.Context, details ShippingDetails, promoCode string) (Order, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	details = normalize(details)
	if err := s.validate.StructCtx(ctx, details); err != nil {
		return Order{}, fmt.Errorf("%w: %w", ErrInvalidShipping, err)
	}

	order := Order{
		ID:        uuid.New(),
		Lines:     lines,
		Summary:   pricing.Summarize(lines, s.unit, s.policy),
		PromoCode: strings.TrimSpace(promoCode),
		Shipping:  details,
		PlacedAt:  s.now().UTC(),
	}

	s.cart.Clear(ctx)

	ctx = s.log.WithFields(ctx, map[string]any{
		"order_id": order.ID.String(),
		"items":    order.Summary.ItemCount,
		"total":    order.Summary.Total.Amount.String(),
	})
	s.log.Info(ctx, "order placed")

	return order, nil
}

// ApplyPromoCode accepts any non-blank code. Codes carry no discount.
func ApplyPromoCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrEmptyPromoCode
	}
	return code, nil
}

// InvalidFields lists the struct fields that failed validation in err.
func InvalidFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func normalize(d ShippingDetails) ShippingDetails {
	d.FullName = strings.TrimSpace(d.FullName)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Country = strings.TrimSpace(d.Country)
	d.City = strings.TrimSpace(d.City)
	d.State = strings.TrimSpace(d.State)
	d.ZipCode = strings.TrimSpace(d.ZipCode)
	d.DeliveryMethod = DeliveryMethod(strings.ToLower(strings.TrimSpace(string(d.DeliveryMethod))))
	if d.DeliveryMethod == "" {
		d.DeliveryMethod = DeliveryHome
	}
	return d
}
