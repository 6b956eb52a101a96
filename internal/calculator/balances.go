package calculator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/godutch/internal/models"
)

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	Member string
	Paid   decimal.Decimal // Total amount paid across all expenses
	Owed   decimal.Decimal // Total of this member's shares
	Net    decimal.Decimal // Positive = owed money, Negative = owes money
}

// Transfer is a suggested payment that would move balances towards zero.
type Transfer struct {
	From   string // Member who owes
	To     string // Member who is owed
	Amount decimal.Decimal
}

// ComputeBalances derives the balance of every member from the expense history.
//
// Algorithm:
//   - every member starts at zero, in member order
//   - for each expense: each member in SplitWith owes PerPerson
//   - the payer bears PayerShare and is credited Amount - PayerShare
//
// The sum of all Net values is always exactly zero. The payer is credited
// len(SplitWith)*PerPerson rather than Amount-PerPerson, so when the share
// was rounded the payer nets up to a cent less than the naive formula:
// 100 split three ways gives the payer +66.66, not +66.67.
// Expenses that reference someone outside members are rejected.
func ComputeBalances(members []string, expenses []models.Expense) ([]MemberBalance, error) {
	balances := make([]MemberBalance, len(members))
	index := make(map[string]int, len(members))
	for i, m := range members {
		balances[i] = MemberBalance{Member: m}
		index[m] = i
	}

	for _, e := range expenses {
		payer, ok := index[e.Payer]
		if !ok {
			return nil, fmt.Errorf("expense %s: payer %s is not a member", e.ID, e.Payer)
		}

		for _, uid := range e.SplitWith {
			i, ok := index[uid]
			if !ok {
				return nil, fmt.Errorf("expense %s: participant %s is not a member", e.ID, uid)
			}
			balances[i].Owed = balances[i].Owed.Add(e.PerPerson)
		}

		balances[payer].Paid = balances[payer].Paid.Add(e.Amount)
		balances[payer].Owed = balances[payer].Owed.Add(PayerShare(e.Amount, e.PerPerson, len(e.SplitWith)))
	}

	for i := range balances {
		balances[i].Net = balances[i].Paid.Sub(balances[i].Owed)
	}

	return balances, nil
}

// Map returns the net balances keyed by member.
func Map(balances []MemberBalance) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		m[b.Member] = b.Net
	}
	return m
}

// Total returns the sum of all net balances. It is zero for any valid history.
func Total(balances []MemberBalance) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.Net)
	}
	return sum
}

// SuggestTransfers matches debtors with creditors to show who could pay whom.
// Nothing is recorded; the result is a view over the balances.
//
// Greedy algorithm: the largest debt is matched with the largest credit,
// ties broken by member id so the output is deterministic.
func SuggestTransfers(balances []MemberBalance) []Transfer {
	type entry struct {
		member string
		amount decimal.Decimal
	}

	var creditors, debtors []entry
	for _, b := range balances {
		switch b.Net.Sign() {
		case 1:
			creditors = append(creditors, entry{b.Member, b.Net})
		case -1:
			debtors = append(debtors, entry{b.Member, b.Net.Neg()})
		}
	}

	byAmount := func(s []entry) func(i, j int) bool {
		return func(i, j int) bool {
			if c := s[i].amount.Cmp(s[j].amount); c != 0 {
				return c > 0
			}
			return s[i].member < s[j].member
		}
	}
	sort.Slice(creditors, byAmount(creditors))
	sort.Slice(debtors, byAmount(debtors))

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].amount, creditors[j].amount)
		transfers = append(transfers, Transfer{
			From:   debtors[i].member,
			To:     creditors[j].member,
			Amount: amount,
		})

		debtors[i].amount = debtors[i].amount.Sub(amount)
		creditors[j].amount = creditors[j].amount.Sub(amount)

		if debtors[i].amount.IsZero() {
			i++
		}
		if creditors[j].amount.IsZero() {
			j++
		}
	}

	return transfers
}
