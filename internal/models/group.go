package models

import "slices"

// Group is the full record of a group: its creator, members and expenses.
// A group exclusively owns its member list and expense list.
type Group struct {
	// Code is the short human-shareable group code (5 uppercase alphanumerics).
	Code string `json:"code"`

	// Creator is the user ID of the member who created the group.
	// Only the creator may delete the group.
	Creator string `json:"creator"`

	// Members is the ordered set of member user IDs.
	// Insertion order is kept for display; members are only ever appended.
	Members []string `json:"members"`

	// Expenses is the append-only list of expenses, in insertion order.
	Expenses []Expense `json:"expenses"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}

// IsMember reports whether userID belongs to the group.
func (g *Group) IsMember(userID string) bool {
	return slices.Contains(g.Members, userID)
}

// Clone returns a deep copy of the group.
func (g *Group) Clone() *Group {
	c := *g
	c.Members = slices.Clone(g.Members)
	c.Expenses = make([]Expense, len(g.Expenses))
	for i, e := range g.Expenses {
		c.Expenses[i] = e.Clone()
	}
	return &c
}
