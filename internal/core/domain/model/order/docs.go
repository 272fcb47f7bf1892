// Package order holds the Order aggregate created at checkout, its
// immutable items, the fulfillment Status and the partial Change records
// pushed by the fulfillment side.
//
// Business rules:
//   - Σ item total price equals the order subtotal
//   - total = subtotal + tax + delivery fee, tax = round(subtotal × 8%, 2)
//   - money fields never change after placement
//   - a Change carries only the columns that changed; absent keys leave the
//     current value untouched
package order
