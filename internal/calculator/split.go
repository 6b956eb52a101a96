// Package calculator derives per-member balances from a group's expenses.
package calculator

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places money values are rounded to.
const Places = 2

var (
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrNoParticipants    = errors.New("must split with at least one other member")
	ErrTooPrecise        = errors.New("amount cannot have more than 2 decimal places")
	ErrShareTooSmall     = errors.New("amount too small to split")
)

// PerPerson computes the equal share of amount for the payer plus others
// co-participants: round(amount / (others+1), 2).
//
// Rounding is half away from zero, which for the positive amounts accepted
// here is round-half-up: 10.005 -> 10.01, 100/3 -> 33.33.
func PerPerson(amount decimal.Decimal, others int) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	if others < 1 {
		return decimal.Zero, ErrNoParticipants
	}
	if !amount.Equal(amount.Round(Places)) {
		return decimal.Zero, ErrTooPrecise
	}

	share := amount.DivRound(decimal.NewFromInt(int64(others+1)), Places)
	if !share.IsPositive() {
		return decimal.Zero, ErrShareTooSmall
	}
	return share, nil
}

// PayerShare is what the payer effectively bears of an expense: the amount
// minus what the others owe. It absorbs the rounding residue so that the
// shares of all participants always add up to the amount.
func PayerShare(amount, perPerson decimal.Decimal, others int) decimal.Decimal {
	return amount.Sub(perPerson.Mul(decimal.NewFromInt(int64(others))))
}
