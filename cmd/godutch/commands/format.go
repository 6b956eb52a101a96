package commands

import (
	"fmt"
	"strings"

	money "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/mmynk/godutch/internal/models"
)

// formatMoney renders amount in the given ISO currency, e.g. ₹1,234.50.
func formatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// displayName shows "You" for the caller and the short id for everyone else.
func displayName(userID, self string) string {
	if userID == self {
		return "You"
	}
	return models.ShortID(userID)
}

// resolveMembers maps each reference to a member id. A reference is either
// a full member id or a suffix that matches exactly one member.
func resolveMembers(members, refs []string) ([]string, error) {
	resolved := make([]string, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}

		var matches []string
		for _, m := range members {
			if m == ref {
				matches = []string{m}
				break
			}
			if strings.HasSuffix(m, ref) {
				matches = append(matches, m)
			}
		}

		switch len(matches) {
		case 0:
			return nil, fmt.Errorf("no group member matches %q", ref)
		case 1:
			resolved = append(resolved, matches[0])
		default:
			return nil, fmt.Errorf("%q matches %d members; use a longer id", ref, len(matches))
		}
	}
	return resolved, nil
}
