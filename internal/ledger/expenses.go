package ledger

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/godutch/internal/calculator"
	"github.com/mmynk/godutch/internal/models"
)

// AddExpense records an expense paid by payer and shared equally between the
// payer and every member of splitWith.
//
// The expense is validated against the group's current members inside the
// group's atomic update; on any validation failure nothing is written and
// an ErrInvalidExpense error is returned.
//
// Besides a non-positive amount, an empty or duplicated split and a payer
// listed in splitWith, two more amounts are refused: an amount with more
// than two decimal places (10.005) and one whose equal share would round
// below one cent (0.01 split three ways).
func (l *Ledger) AddExpense(ctx context.Context, code, payer string, amount decimal.Decimal, description string, splitWith []string) (models.Expense, error) {
	code = NormalizeCode(code)
	if err := l.requireRegistered(ctx, code); err != nil {
		return models.Expense{}, err
	}

	if len(splitWith) == 0 {
		return models.Expense{}, invalidExpense(calculator.ErrNoParticipants.Error())
	}
	seen := make(map[string]bool, len(splitWith))
	for _, uid := range splitWith {
		if uid == payer {
			return models.Expense{}, invalidExpense("split must not include the payer")
		}
		if seen[uid] {
			return models.Expense{}, invalidExpense("member listed twice: " + models.ShortID(uid))
		}
		seen[uid] = true
	}

	perPerson, err := calculator.PerPerson(amount, len(splitWith))
	if err != nil {
		return models.Expense{}, invalidExpense(err.Error())
	}

	expense := models.Expense{
		ID:          uuid.New().String(),
		Payer:       payer,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		SplitWith:   append([]string(nil), splitWith...),
		PerPerson:   perPerson,
		CreatedAt:   l.now().Unix(),
	}

	err = l.store.UpdateGroup(ctx, code, func(g *models.Group) error {
		if !g.IsMember(payer) {
			return invalidExpense("payer is not a member of the group")
		}
		for _, uid := range splitWith {
			if !g.IsMember(uid) {
				return invalidExpense("not a member of the group: " + models.ShortID(uid))
			}
		}
		g.Expenses = append(g.Expenses, expense)
		return nil
	})
	if err != nil {
		return models.Expense{}, classify(err)
	}

	return expense, nil
}

// ListExpenses returns the group's expenses in insertion order.
func (l *Ledger) ListExpenses(ctx context.Context, code string) ([]models.Expense, error) {
	group, err := l.Group(ctx, code)
	if err != nil {
		return nil, err
	}

	expenses := make([]models.Expense, len(group.Expenses))
	for i, e := range group.Expenses {
		expenses[i] = e.Clone()
	}
	return expenses, nil
}
