// Package models defines the core domain models for godutch.
//
// # Models
//
//   - Identity: a registered principal, keyed in the registry by its credential id
//   - Registry: the single identity/registry record (credentials and active group codes)
//   - Group: a group record owning its ordered member list and expense list
//   - Expense: one immutable shared expense inside a group
//
// Balances are never stored; they are derived from a group's expenses by
// the calculator package.
//
// # Design Principles
//
//  1. **Explicit payer share**: Expense.SplitWith never contains the payer.
//     The full participant set is derived by Expense.Participants.
//  2. **Decimal amounts**: all money values are decimal.Decimal, never float64.
//  3. **No shared references**: groups own their members and expenses by value,
//     relationships are expressed as ID strings.
package models
