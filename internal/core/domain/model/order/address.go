package order

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// ShippingAddress is the delivery destination collected at the shipping step.
//
// An address may be incomplete while the checkout is in progress; IsComplete
// tells whether every field is filled, and Validate additionally enforces the
// deployment's supported country.
type ShippingAddress struct {
	name        string
	addressLine string
	city        string
	postalCode  string
	country     string
}

// NewShippingAddress builds an address from raw form values, trimming
// surrounding whitespace. It never fails; completeness is checked separately.
func NewShippingAddress(name, addressLine, city, postalCode, country string) ShippingAddress {
	return ShippingAddress{
		name:        strings.TrimSpace(name),
		addressLine: strings.TrimSpace(addressLine),
		city:        strings.TrimSpace(city),
		postalCode:  strings.TrimSpace(postalCode),
		country:     strings.TrimSpace(country),
	}
}

func (a ShippingAddress) Name() string        { return a.name }
func (a ShippingAddress) AddressLine() string { return a.addressLine }
func (a ShippingAddress) City() string        { return a.city }
func (a ShippingAddress) PostalCode() string  { return a.postalCode }
func (a ShippingAddress) Country() string     { return a.country }

// IsComplete reports whether all five fields are non-empty.
func (a ShippingAddress) IsComplete() bool {
	return a.missingFields() == nil
}

// Validate returns one ValueIsRequiredError per missing field and, when the
// country is present, a ValueIsInvalidError if it differs from supportedCountry.
// The country comparison is case-sensitive.
func (a ShippingAddress) Validate(supportedCountry string) error {
	problems := a.missingFields()
	if a.country != "" && a.country != supportedCountry {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"country", fmt.Errorf("%q is not supported, expected %q", a.country, supportedCountry)))
	}
	return errors.Join(problems...)
}

func (a ShippingAddress) missingFields() []error {
	var missing []error
	for _, field := range []struct {
		name  string
		value string
	}{
		{"name", a.name},
		{"address", a.addressLine},
		{"city", a.city},
		{"postalCode", a.postalCode},
		{"country", a.country},
	} {
		if field.value == "" {
			missing = append(missing, errs.NewValueIsRequiredError(field.name))
		}
	}
	return missing
}
