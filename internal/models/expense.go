package models

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Expense is one shared expense recorded in a group. Expenses are immutable.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Payer is the user ID of the member who paid.
	Payer string `json:"payer"`

	// Amount is the full amount paid. Always positive.
	Amount decimal.Decimal `json:"amount"`

	// Description is free text entered by the payer.
	Description string `json:"description"`

	// SplitWith holds the other members sharing the expense.
	// It never contains the payer; the payer always takes one share.
	SplitWith []string `json:"split_with"`

	// PerPerson is Amount / (len(SplitWith)+1) rounded to 2 decimal places.
	PerPerson decimal.Decimal `json:"per_person"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}

// Participants returns the payer followed by SplitWith.
func (e Expense) Participants() []string {
	return append([]string{e.Payer}, e.SplitWith...)
}

// Clone returns a copy of the expense that shares no slices with e.
func (e Expense) Clone() Expense {
	e.SplitWith = slices.Clone(e.SplitWith)
	return e
}
