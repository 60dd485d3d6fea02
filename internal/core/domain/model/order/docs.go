// Package order provides the order record of the storefront and the rules that
// derive its shipping state.
//
// The package includes:
//   - Order: the canonical record of a completed purchase, keyed by session ID
//   - Item, ShippingAddress: the purchased lines and the delivery destination
//   - Draft: the partial writes collected across checkout steps
//   - Status, DeriveStatus, DeriveEstimatedDelivery: shipping status as a pure
//     function of creation time and the current time
//   - ChangedEvent: the notification emitted when a record is written
//
// Key business rules:
//   - The order ID and tracking number are derived from the last six characters
//     of the session ID and are not globally unique
//   - createdAt is set once and never overwritten
//   - The shipping status never regresses for a fixed createdAt:
//     Processing -> Shipped -> InTransit -> Delivered
//   - Only orders with items, a positive matching total and a complete address
//     are displayable
package order
