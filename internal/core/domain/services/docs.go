// Package services provides domain services that combine several order values
// into one decision.
//
// The package includes:
//   - OrderAssembler: merges the partial writes staged during checkout into a
//     finalized order, validating completeness, the total and the deployment's
//     acceptance policy
//
// Assembly failures are reported through sentinel errors (ErrIncompleteOrder,
// ErrTotalMismatch, ErrTotalOutOfRange, ErrUnsupportedCountry) so callers can
// choose between redirecting the shopper and showing a validation message.
package services
