// Package restaurant holds the ordering service's read model of a restaurant: whether it
// currently accepts orders and the catalog of products with their current prices.
//
// The catalog is the source of truth for product names and prices at order creation time.
// An order item starts with a product reference (id only) and is confirmed against the
// catalog before the order is initialized.
package restaurant
