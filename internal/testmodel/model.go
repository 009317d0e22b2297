// Package testmodel holds annotated host types with their generated binders.
package testmodel

import "errors"

//go:generate go run github.com/viant/epoxy/cmd/epoxygen .

// Status is an order state.
type Status string

const (
	StatusOpen    Status = "OPEN"
	StatusShipped Status = "SHIPPED"
	StatusClosed  Status = "CLOSED"
)

// Priority is encoded by constant name.
type Priority int

const (
	Low Priority = iota
	Normal
	Urgent
)

// Money is an amount in the order currency.
type Money float64

// Entity carries identity shared by persisted models.
type Entity struct {
	ID      int64  `epoxy:"id"`
	Version *int32 `epoxy:"version,optional"`
}

// Order is a customer order.
//
//epoxy:complete Validate
type Order struct {
	Entity
	Customer string            `epoxy:"customer"`
	Status   Status            `epoxy:"status"`
	Priority *Priority         `epoxy:"priority,optional"`
	Total    Money             `epoxy:"total"`
	Discount *Money            `epoxy:"discount,optional"`
	Notes    []string          `epoxy:"notes,optional"`
	Matrix   [][]float64       `epoxy:"matrix,optional"`
	Cube     [][][]int32       `epoxy:"cube,optional"`
	Items    []*Item           `epoxy:"items"`
	Labels   map[string]string `epoxy:"labels,optional"`
	Extra    interface{}       `epoxy:"extra,optional"`
	Weight   float32           `epoxy:"weight,optional"`
	Paid     bool              `epoxy:"paid" nullable:"true"`

	Raw []byte
}

// Validate runs once all members are decoded.
func (o *Order) Validate(raw []byte) error {
	if o.Customer == "" {
		return errors.New("customer is required")
	}
	o.Raw = raw
	return nil
}

// Item is an order line.
type Item struct {
	SKU      string `epoxy:"sku"`
	Quantity uint16 `epoxy:"qty"`
	Price    *Money `epoxy:"price,optional"`
}

// Shipment extends an order through a pointer embedding.
type Shipment struct {
	*Order
	Carrier string `epoxy:"carrier"`
}

// Node is a recursive tree.
type Node struct {
	Name     string           `epoxy:"name"`
	Children []*Node          `epoxy:"children,optional"`
	Index    map[string]*Node `epoxy:"index,optional"`
}
