package http

import (
	"time"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/order"
)

// ItemRequest is one cart line as posted by the storefront. price is the unit
// price in minor currency units.
type ItemRequest struct {
	ID       string `json:"id" validate:"required,max=128"`
	Name     string `json:"name" validate:"required,max=256"`
	Price    int64  `json:"price" validate:"gte=0"`
	Quantity int    `json:"quantity" validate:"gte=1,lte=1000"`
	ImageURL string `json:"imageUrl,omitempty" validate:"omitempty,max=2048"`
}

// AddressRequest is the shipping form. Fields may be blank while the shopper
// is still filling it in.
type AddressRequest struct {
	Name       string `json:"name" validate:"max=256"`
	Address    string `json:"address" validate:"max=512"`
	City       string `json:"city" validate:"max=256"`
	PostalCode string `json:"postalCode" validate:"max=32"`
	Country    string `json:"country" validate:"max=8"`
}

// CartRequest stages the cart summary.
type CartRequest struct {
	Items []ItemRequest `json:"items" validate:"required,min=1,dive"`
	Total int64         `json:"total" validate:"gte=0"`
}

// ConfirmRequest carries whatever the payment provider echoed back. Every
// field is optional; absent fields keep their staged value.
type ConfirmRequest struct {
	Items           []ItemRequest   `json:"items" validate:"omitempty,dive"`
	Total           *int64          `json:"total" validate:"omitempty,gte=0"`
	ShippingAddress *AddressRequest `json:"shippingAddress"`
}

type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	OrderID   string `json:"orderId"`
}

type ItemResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Subtotal int64  `json:"subtotal"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type AddressResponse struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// OrderResponse mirrors the stored order record with the derived fields filled in.
type OrderResponse struct {
	SessionID         string          `json:"sessionId"`
	OrderID           string          `json:"orderId"`
	TrackingNumber    string          `json:"trackingNumber"`
	Items             []ItemResponse  `json:"items"`
	Total             int64           `json:"total"`
	ShippingAddress   AddressResponse `json:"shippingAddress"`
	ShippingStatus    string          `json:"shippingStatus"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
	CreatedAt         time.Time       `json:"createdAt"`
	IsValidAddress    bool            `json:"isValidAddress"`
}

type ErrorResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

func (r ItemRequest) toDomain() (order.Item, error) {
	return order.NewItem(r.ID, r.Name, r.Price, r.Quantity, r.ImageURL)
}

func itemsToDomain(requests []ItemRequest) ([]order.Item, error) {
	items := make([]order.Item, 0, len(requests))
	for _, r := range requests {
		item, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r AddressRequest) toDomain() order.ShippingAddress {
	return order.NewShippingAddress(r.Name, r.Address, r.City, r.PostalCode, r.Country)
}

// toDraft turns the provider payload into a draft holding only the fields present.
func (r ConfirmRequest) toDraft() (order.Draft, error) {
	var draft order.Draft
	if r.Items != nil {
		items, err := itemsToDomain(r.Items)
		if err != nil {
			return order.Draft{}, err
		}
		draft = draft.WithItems(items)
	}
	if r.Total != nil {
		draft = draft.WithTotal(*r.Total)
	}
	if r.ShippingAddress != nil {
		draft = draft.WithAddress(r.ShippingAddress.toDomain())
	}
	return draft, nil
}

func toOrderResponse(o queries.OrderResponse) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ItemResponse{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.UnitPrice,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal,
			ImageURL: item.ImageURL,
		})
	}

	return OrderResponse{
		SessionID:      o.SessionID,
		OrderID:        o.OrderID,
		TrackingNumber: o.TrackingNumber,
		Items:          items,
		Total:          o.Total,
		ShippingAddress: AddressResponse{
			Name:       o.ShippingAddress.Name,
			Address:    o.ShippingAddress.AddressLine,
			City:       o.ShippingAddress.City,
			PostalCode: o.ShippingAddress.PostalCode,
			Country:    o.ShippingAddress.Country,
		},
		ShippingStatus:    o.ShippingStatus.String(),
		EstimatedDelivery: o.EstimatedDelivery,
		CreatedAt:         o.CreatedAt,
		IsValidAddress:    o.IsValidAddress,
	}
}
