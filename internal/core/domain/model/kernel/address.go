package kernel

import (
	"errors"
	"strings"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrStreetAddressIsNotConstructed is returned by Validate on a zero-value StreetAddress.
var ErrStreetAddressIsNotConstructed = errors.New("StreetAddress must be created via NewStreetAddress")

// StreetAddress is the delivery address of an order. It carries its own id so it can be stored
// in its own row, but two addresses are equal when street, postal code and city match.
type StreetAddress struct {
	id         UUID
	street     string
	postalCode string
	city       string

	guard guard.ConstructorGuard
}

// NewStreetAddress validates that every part of the address is present.
//
// Example:
//
//	addr, err := kernel.NewStreetAddress(kernel.NewUUID(), "Baker Street 221b", "NW1 6XE", "London")
func NewStreetAddress(id UUID, street, postalCode, city string) (StreetAddress, error) {
	a := StreetAddress{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		a.setID(id),
		a.setStreet(street),
		a.setPostalCode(postalCode),
		a.setCity(city),
	); err != nil {
		return StreetAddress{}, err
	}
	return a, nil
}

func (a StreetAddress) ID() UUID           { return a.id }
func (a StreetAddress) Street() string     { return a.street }
func (a StreetAddress) PostalCode() string { return a.postalCode }
func (a StreetAddress) City() string       { return a.city }

// IsEqual ignores the id.
func (a StreetAddress) IsEqual(other StreetAddress) bool {
	return a.street == other.street && a.postalCode == other.postalCode && a.city == other.city
}

func (a StreetAddress) Validate() error {
	return a.guard.Validate(ErrStreetAddressIsNotConstructed)
}

func (a *StreetAddress) setID(id UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *StreetAddress) setStreet(street string) error {
	if strings.TrimSpace(street) == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *StreetAddress) setPostalCode(postalCode string) error {
	if strings.TrimSpace(postalCode) == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}
	a.postalCode = postalCode
	return nil
}

func (a *StreetAddress) setCity(city string) error {
	if strings.TrimSpace(city) == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}
