// Package kernel holds the value objects shared by every aggregate:
// identifiers (UUID), money (Money, backed by shopspring/decimal) and the
// structured delivery address (Address).
//
// All values are immutable and validated on construction; zero values are
// rejected by Validate where that matters for persistence.
package kernel
