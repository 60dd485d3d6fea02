package orderrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderDTO is the persisted JSON shape of a finalized order. Derived fields
// (orderId, trackingNumber, isValidAddress) are written for readers of the raw
// record and ignored on load.
type OrderDTO struct {
	OrderID           string     `json:"orderId"`
	Items             []ItemDTO  `json:"items"`
	Total             int64      `json:"total"`
	ShippingAddress   AddressDTO `json:"shippingAddress"`
	ShippingStatus    string     `json:"shippingStatus"`
	TrackingNumber    string     `json:"trackingNumber"`
	EstimatedDelivery string     `json:"estimatedDelivery"`
	CreatedAt         string     `json:"createdAt"`
	IsValidAddress    bool       `json:"isValidAddress"`
}

// ItemDTO is one order line. price is the unit price in minor units.
type ItemDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// AddressDTO is the shipping address; "address" holds the street line.
type AddressDTO struct {
	Name        string `json:"name"`
	AddressLine string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		OrderID:           o.OrderID(),
		Items:             itemsFromDomain(o.Items()),
		Total:             o.Total(),
		ShippingAddress:   addressFromDomain(o.ShippingAddress()),
		ShippingStatus:    o.ShippingStatus().String(),
		TrackingNumber:    o.TrackingNumber(),
		EstimatedDelivery: formatTime(o.EstimatedDelivery()),
		CreatedAt:         formatTime(o.CreatedAt()),
		IsValidAddress:    o.IsValidAddress(),
	}
}

// toDomain restores the order. An unreadable cached status or estimate is kept
// as Unknown or zero; the next refresh replaces it.
func toDomain(sessionID kernel.SessionID, dto OrderDTO) (*order.Order, error) {
	createdAt, err := parseTime(dto.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("createdAt: %w", err)
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	status, _ := order.StatusFromString(dto.ShippingStatus)
	estimate, _ := parseTime(dto.EstimatedDelivery)

	return order.RestoreOrder(
		sessionID,
		items,
		dto.ShippingAddress.toDomain(),
		dto.Total,
		status,
		estimate,
		createdAt,
	)
}

func itemsFromDomain(items []order.Item) []ItemDTO {
	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, ItemDTO{
			ID:       item.ID(),
			Name:     item.Name(),
			Price:    item.UnitPrice(),
			Quantity: item.Quantity(),
			ImageURL: item.ImageURL(),
		})
	}
	return dtos
}

func itemsToDomain(dtos []ItemDTO) ([]order.Item, error) {
	items := make([]order.Item, 0, len(dtos))
	for i, dto := range dtos {
		item, err := order.NewItem(dto.ID, dto.Name, dto.Price, dto.Quantity, dto.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func addressFromDomain(a order.ShippingAddress) AddressDTO {
	return AddressDTO{
		Name:        a.Name(),
		AddressLine: a.AddressLine(),
		City:        a.City(),
		PostalCode:  a.PostalCode(),
		Country:     a.Country(),
	}
}

func (a AddressDTO) toDomain() order.ShippingAddress {
	return order.NewShippingAddress(a.Name, a.AddressLine, a.City, a.PostalCode, a.Country)
}

func marshal(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
