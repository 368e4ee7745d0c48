package kernel

import (
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// AddressMaxLength bounds the length of a street address line.
const AddressMaxLength = 500

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address. Addresses must be created via NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is an immutable value object holding a street address line, such as a
// garage pickup location or a customer delivery location. The zero value is
// invalid and will fail validation.
type Address struct {
	value string
	guard guard.ConstructorGuard
}

// NewAddress creates an Address from a non-empty address line.
// Surrounding whitespace is trimmed. Returns an error for empty or
// oversized input.
func NewAddress(value string) (Address, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}
	if len(value) > AddressMaxLength {
		return Address{}, errs.NewValueIsOutOfRangeError("address length", len(value), 1, AddressMaxLength)
	}

	return Address{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Address was properly constructed via NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// String returns the address line. Implements fmt.Stringer.
func (a Address) String() string {
	return a.value
}

// IsEqual compares two addresses for exact equality of their address lines.
func (a Address) IsEqual(other Address) bool {
	return a.value == other.value
}
