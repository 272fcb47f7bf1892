// Package cart implements the checkout cart: a set of priced lines for a
// single restaurant, and the totals derived from it.
//
// Totals are computed from the lines on every call:
//
//	subtotal = Σ unit price × quantity
//	tax      = round(subtotal × 0.08, 2)
//	total    = subtotal + tax + restaurant delivery fee
//
// The minimum-order rule compares the subtotal, never the total, with the
// restaurant's minimum order amount.
package cart
