package order

import (
	"slices"
	"time"
)

// Draft collects the partial writes of one checkout attempt before the order
// is assembled. Each field is independently set; an unset field is different
// from a field set to its zero value.
//
// Drafts are values: every With* method returns a modified copy.
type Draft struct {
	items    []Item
	hasItems bool

	address    ShippingAddress
	hasAddress bool

	total    int64
	hasTotal bool

	createdAt    time.Time
	hasCreatedAt bool
}

// WithItems returns a copy of the draft with items set.
func (d Draft) WithItems(items []Item) Draft {
	d.items = slices.Clone(items)
	d.hasItems = true
	return d
}

// WithAddress returns a copy of the draft with the shipping address set.
func (d Draft) WithAddress(address ShippingAddress) Draft {
	d.address = address
	d.hasAddress = true
	return d
}

// WithTotal returns a copy of the draft with the total set.
func (d Draft) WithTotal(total int64) Draft {
	d.total = total
	d.hasTotal = true
	return d
}

// WithCreatedAt returns a copy of the draft carrying a creation time that an
// earlier writer already recorded.
func (d Draft) WithCreatedAt(createdAt time.Time) Draft {
	d.createdAt = createdAt
	d.hasCreatedAt = true
	return d
}

// Items returns the staged items and whether they were set.
func (d Draft) Items() ([]Item, bool) {
	return slices.Clone(d.items), d.hasItems
}

// Address returns the staged address and whether it was set.
func (d Draft) Address() (ShippingAddress, bool) {
	return d.address, d.hasAddress
}

// Total returns the staged total and whether it was set.
func (d Draft) Total() (int64, bool) {
	return d.total, d.hasTotal
}

// CreatedAt returns the previously recorded creation time, if any.
func (d Draft) CreatedAt() (time.Time, bool) {
	return d.createdAt, d.hasCreatedAt
}

// Merge overlays later on d field by field: any field set in later wins,
// fields unset in later keep d's value.
func (d Draft) Merge(later Draft) Draft {
	merged := d
	if later.hasItems {
		merged = merged.WithItems(later.items)
	}
	if later.hasAddress {
		merged = merged.WithAddress(later.address)
	}
	if later.hasTotal {
		merged = merged.WithTotal(later.total)
	}
	if later.hasCreatedAt {
		merged = merged.WithCreatedAt(later.createdAt)
	}
	return merged
}
