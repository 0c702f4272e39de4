package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Pageblan/Carepulse/internal/cart"
)

var (
	ErrEmptyCart   = errors.New("cart is empty, nothing to checkout")
	ErrBadLineItem = errors.New("bad line item")
)

const (
	SuccessPath = "/checkout/success"
	CancelPath  = "/checkout/cancel?canceled=true"

	defaultCurrency     = "kes"
	defaultShippingRate = "shr_standard"
)

// SessionRequest mirrors the payment provider's hosted-session schema.
type SessionRequest struct {
	SubmitType               string            `json:"submit_type"`
	Mode                     string            `json:"mode"`
	PaymentMethodTypes       []string          `json:"payment_method_types"`
	BillingAddressCollection string            `json:"billing_address_collection"`
	ShippingOptions          []ShippingOption  `json:"shipping_options"`
	LineItems                []SessionLineItem `json:"line_items"`
	SuccessURL               string            `json:"success_url"`
	CancelURL                string            `json:"cancel_url"`
}

type ShippingOption struct {
	ShippingRate string `json:"shipping_rate"`
}

type SessionLineItem struct {
	PriceData          PriceData          `json:"price_data"`
	AdjustableQuantity AdjustableQuantity `json:"adjustable_quantity"`
	Quantity           int                `json:"quantity"`
}

type PriceData struct {
	Currency    string      `json:"currency"`
	ProductData ProductData `json:"product_data"`
	// UnitAmount is the price in currency minor units. Cart prices are
	// already integral minor units, so no rounding happens here; the one
	// documented rounding rule lives in the money package at ingestion.
	UnitAmount int64 `json:"unit_amount"`
}

type ProductData struct {
	Name string `json:"name"`
}

type AdjustableQuantity struct {
	Enabled bool `json:"enabled"`
	Minimum int  `json:"minimum"`
}

// Builder turns a cart snapshot into a provider session request.
type Builder struct {
	Currency     string
	ShippingRate string
}

func NewBuilder(currency, shippingRate string) Builder {
	if currency == "" {
		currency = defaultCurrency
	}
	if shippingRate == "" {
		shippingRate = defaultShippingRate
	}
	return Builder{Currency: currency, ShippingRate: shippingRate}
}

// BuildSessionRequest maps cart items to provider line items, preserving
// cart iteration order. An empty cart is rejected rather than submitted
// as a zero-item payment.
func (b Builder) BuildSessionRequest(items []cart.LineItem, origin string) (*SessionRequest, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	lineItems := make([]SessionLineItem, 0, len(items))
	for _, item := range items {
		if item.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: %q has negative unit price", ErrBadLineItem, item.ID)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: %q has non-positive quantity", ErrBadLineItem, item.ID)
		}
		lineItems = append(lineItems, SessionLineItem{
			PriceData: PriceData{
				Currency:    b.Currency,
				ProductData: ProductData{Name: item.Name},
				UnitAmount:  item.UnitPrice,
			},
			AdjustableQuantity: AdjustableQuantity{Enabled: true, Minimum: 1},
			Quantity:           item.Quantity,
		})
	}

	origin = strings.TrimSuffix(origin, "/")
	return &SessionRequest{
		SubmitType:               "pay",
		Mode:                     "payment",
		PaymentMethodTypes:       []string{"card"},
		BillingAddressCollection: "auto",
		ShippingOptions:          []ShippingOption{{ShippingRate: b.ShippingRate}},
		LineItems:                lineItems,
		SuccessURL:               origin + SuccessPath,
		CancelURL:                origin + CancelPath,
	}, nil
}
