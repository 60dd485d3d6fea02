package queries

import (
	"time"

	"storefront/internal/core/domain/model/order"
)

// OrderResponse is the read model of a finalized order.
type OrderResponse struct {
	SessionID         string
	OrderID           string
	TrackingNumber    string
	Items             []ItemResponse
	Total             int64
	ShippingAddress   AddressResponse
	ShippingStatus    order.Status
	EstimatedDelivery time.Time
	CreatedAt         time.Time
	IsValidAddress    bool
}

type ItemResponse struct {
	ID        string
	Name      string
	UnitPrice int64
	Quantity  int
	Subtotal  int64
	ImageURL  string
}

type AddressResponse struct {
	Name        string
	AddressLine string
	City        string
	PostalCode  string
	Country     string
}

// NewOrderResponse flattens o into its read model.
func NewOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemResponse{
			ID:        item.ID(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice(),
			Quantity:  item.Quantity(),
			Subtotal:  item.Subtotal(),
			ImageURL:  item.ImageURL(),
		})
	}

	address := o.ShippingAddress()
	return OrderResponse{
		SessionID:      o.SessionID().String(),
		OrderID:        o.OrderID(),
		TrackingNumber: o.TrackingNumber(),
		Items:          items,
		Total:          o.Total(),
		ShippingAddress: AddressResponse{
			Name:        address.Name(),
			AddressLine: address.AddressLine(),
			City:        address.City(),
			PostalCode:  address.PostalCode(),
			Country:     address.Country(),
		},
		ShippingStatus:    o.ShippingStatus(),
		EstimatedDelivery: o.EstimatedDelivery(),
		CreatedAt:         o.CreatedAt(),
		IsValidAddress:    o.IsValidAddress(),
	}
}
