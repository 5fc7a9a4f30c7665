package restaurant

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Product is a catalog entry, or a reference to one when only the id is known.
type Product struct {
	id    kernel.ProductID
	name  string
	price kernel.Money
}

// NewProduct creates a confirmed catalog product.
func NewProduct(id kernel.ProductID, name string, price kernel.Money) (Product, error) {
	p := Product{}
	if err := errors.Join(
		p.setID(id),
		p.setName(name),
	); err != nil {
		return Product{}, err
	}
	p.price = price
	return p, nil
}

// NewProductReference creates an unconfirmed product carrying only its id, as received in an
// order creation command.
func NewProductReference(id kernel.ProductID) (Product, error) {
	p := Product{}
	if err := p.setID(id); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (p Product) ID() kernel.ProductID { return p.id }
func (p Product) Name() string         { return p.name }
func (p Product) Price() kernel.Money  { return p.price }

// IsEqual compares products by id.
func (p Product) IsEqual(other Product) bool {
	return p.id == other.id
}

// Confirm returns the reference updated with the catalog entry's name and price.
func (p Product) Confirm(name string, price kernel.Money) Product {
	p.name = name
	p.price = price
	return p
}

func (p *Product) setID(id kernel.ProductID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}
