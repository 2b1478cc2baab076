package model

import (
	"github.com/shopspring/decimal"
)

// NaN is the text written for an amount that could not be parsed.
const NaN = "NaN"

// Transaction is one statement line item taken from a single :61: line.
type Transaction struct {
	Date        string              // raw YYMMDD, not validated
	Amount      decimal.NullDecimal // Valid=false when the source text is not numeric
	Description string
}

// Batch is an ordered list of transactions in input line order.
type Batch []Transaction

// AmountString returns the amount as text, or NaN for an unparsable amount.
func (t Transaction) AmountString() string {
	if !t.Amount.Valid {
		return NaN
	}
	return t.Amount.Decimal.String()
}

// Equal reports whether all three fields match. Two NaN amounts compare equal.
func (t Transaction) Equal(o Transaction) bool {
	if t.Date != o.Date || t.Description != o.Description {
		return false
	}
	if t.Amount.Valid != o.Amount.Valid {
		return false
	}
	return !t.Amount.Valid || t.Amount.Decimal.Equal(o.Amount.Decimal)
}

// Equal reports whether both batches hold equal transactions in the same order.
func (b Batch) Equal(o Batch) bool {
	if len(b) != len(o) {
		return false
	}
	for i := range b {
		if !b[i].Equal(o[i]) {
			return false
		}
	}
	return true
}
