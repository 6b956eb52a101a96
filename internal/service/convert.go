package service

import (
	"github.com/mmynk/godutch/internal/calculator"
	"github.com/mmynk/godutch/internal/models"
	"github.com/mmynk/godutch/pkg/api"
)

func toAPIUser(id models.Identity) *api.User {
	return &api.User{
		ID:        id.ID,
		DeviceID:  id.DeviceID,
		CreatedAt: id.CreatedAt,
	}
}

func toAPIGroup(g *models.Group) *api.Group {
	return &api.Group{
		Code:         g.Code,
		Creator:      g.Creator,
		Members:      append([]string{}, g.Members...),
		ExpenseCount: int32(len(g.Expenses)),
		CreatedAt:    g.CreatedAt,
	}
}

func toAPIExpense(e models.Expense) *api.Expense {
	return &api.Expense{
		ID:          e.ID,
		Payer:       e.Payer,
		Amount:      e.Amount.StringFixed(calculator.Places),
		Description: e.Description,
		SplitWith:   append([]string{}, e.SplitWith...),
		PerPerson:   e.PerPerson.StringFixed(calculator.Places),
		CreatedAt:   e.CreatedAt,
	}
}

func toAPIBalance(b calculator.MemberBalance) *api.Balance {
	return &api.Balance{
		UserID: b.Member,
		Paid:   b.Paid.StringFixed(calculator.Places),
		Owed:   b.Owed.StringFixed(calculator.Places),
		Net:    b.Net.StringFixed(calculator.Places),
	}
}

func toAPITransfer(t calculator.Transfer) *api.Transfer {
	return &api.Transfer{
		From:   t.From,
		To:     t.To,
		Amount: t.Amount.StringFixed(calculator.Places),
	}
}
