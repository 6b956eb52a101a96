package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/godutch/internal/models"
)

func expense(payer, amount string, splitWith ...string) models.Expense {
	a := decimal.RequireFromString(amount)
	pp, err := PerPerson(a, len(splitWith))
	if err != nil {
		panic(err)
	}
	return models.Expense{ID: payer + "-" + amount, Payer: payer, Amount: a, SplitWith: splitWith, PerPerson: pp}
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name     string
		members  []string
		expenses []models.Expense
		want     map[string]string
	}{
		{
			name:    "no expenses - everyone at zero",
			members: []string{"U1", "U2", "U3"},
			want:    map[string]string{"U1": "0", "U2": "0", "U3": "0"},
		},
		{
			name:     "two members, payer splits 100",
			members:  []string{"U1", "U2"},
			expenses: []models.Expense{expense("U1", "100", "U2")},
			want:     map[string]string{"U1": "50", "U2": "-50"},
		},
		{
			name:     "three-way split of 90",
			members:  []string{"U1", "U2", "U3"},
			expenses: []models.Expense{expense("U1", "90", "U2", "U3")},
			want:     map[string]string{"U1": "60", "U2": "-30", "U3": "-30"},
		},
		{
			name:     "member outside the split stays at zero",
			members:  []string{"U1", "U2", "U3"},
			expenses: []models.Expense{expense("U2", "40", "U3")},
			want:     map[string]string{"U1": "0", "U2": "20", "U3": "-20"},
		},
		{
			name:    "expenses in both directions net out",
			members: []string{"U1", "U2"},
			expenses: []models.Expense{
				expense("U1", "100", "U2"),
				expense("U2", "60", "U1"),
			},
			want: map[string]string{"U1": "20", "U2": "-20"},
		},
		{
			name:     "rounding residue stays with the payer",
			members:  []string{"U1", "U2", "U3"},
			expenses: []models.Expense{expense("U1", "100", "U2", "U3")},
			want:     map[string]string{"U1": "66.66", "U2": "-33.33", "U3": "-33.33"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, err := ComputeBalances(tt.members, tt.expenses)
			if err != nil {
				t.Fatalf("ComputeBalances() error = %v", err)
			}

			if len(balances) != len(tt.members) {
				t.Fatalf("expected %d balances, got %d", len(tt.members), len(balances))
			}
			for i, b := range balances {
				if b.Member != tt.members[i] {
					t.Errorf("balance %d: member = %s, want %s (member order)", i, b.Member, tt.members[i])
				}
			}

			got := Map(balances)
			for member, want := range tt.want {
				if !got[member].Equal(decimal.RequireFromString(want)) {
					t.Errorf("%s balance = %s, want %s", member, got[member], want)
				}
			}

			if !Total(balances).IsZero() {
				t.Errorf("balances sum to %s, want 0", Total(balances))
			}
		})
	}
}

func TestComputeBalances_PaidAndOwed(t *testing.T) {
	balances, err := ComputeBalances([]string{"U1", "U2", "U3"}, []models.Expense{expense("U1", "90", "U2", "U3")})
	if err != nil {
		t.Fatalf("ComputeBalances() error = %v", err)
	}

	u1 := balances[0]
	if !u1.Paid.Equal(decimal.NewFromInt(90)) {
		t.Errorf("U1 paid = %s, want 90", u1.Paid)
	}
	if !u1.Owed.Equal(decimal.NewFromInt(30)) {
		t.Errorf("U1 owed = %s, want 30", u1.Owed)
	}
	if !balances[1].Paid.IsZero() {
		t.Errorf("U2 paid = %s, want 0", balances[1].Paid)
	}
}

func TestComputeBalances_UnknownMember(t *testing.T) {
	_, err := ComputeBalances([]string{"U1"}, []models.Expense{expense("U1", "10", "ghost")})
	if err == nil {
		t.Error("expected error for participant outside the group")
	}

	_, err = ComputeBalances([]string{"U1"}, []models.Expense{expense("ghost", "10", "U1")})
	if err == nil {
		t.Error("expected error for payer outside the group")
	}
}

func TestComputeBalances_Deterministic(t *testing.T) {
	members := []string{"A", "B", "C", "D"}
	expenses := []models.Expense{
		expense("A", "10.01", "B", "C"),
		expense("B", "77.77", "A", "C", "D"),
		expense("D", "5", "A"),
	}

	first, err := ComputeBalances(members, expenses)
	if err != nil {
		t.Fatalf("ComputeBalances() error = %v", err)
	}
	for range 5 {
		again, err := ComputeBalances(members, expenses)
		if err != nil {
			t.Fatalf("ComputeBalances() error = %v", err)
		}
		for i := range first {
			if !first[i].Net.Equal(again[i].Net) {
				t.Fatalf("member %s: %s != %s", first[i].Member, first[i].Net, again[i].Net)
			}
		}
	}
}

func TestSuggestTransfers(t *testing.T) {
	balances, err := ComputeBalances([]string{"U1", "U2", "U3"}, []models.Expense{
		expense("U1", "90", "U2", "U3"),
		expense("U2", "30", "U3"),
	})
	if err != nil {
		t.Fatalf("ComputeBalances() error = %v", err)
	}
	// U1 +60, U2 -30+15 = -15, U3 -30-15 = -45

	transfers := SuggestTransfers(balances)
	if len(transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %d: %+v", len(transfers), transfers)
	}

	if transfers[0].From != "U3" || transfers[0].To != "U1" || !transfers[0].Amount.Equal(decimal.NewFromInt(45)) {
		t.Errorf("transfer 0 = %+v, want U3 -> U1 45", transfers[0])
	}
	if transfers[1].From != "U2" || transfers[1].To != "U1" || !transfers[1].Amount.Equal(decimal.NewFromInt(15)) {
		t.Errorf("transfer 1 = %+v, want U2 -> U1 15", transfers[1])
	}
}

func TestSuggestTransfers_AllSettled(t *testing.T) {
	balances, _ := ComputeBalances([]string{"U1", "U2"}, nil)
	if transfers := SuggestTransfers(balances); len(transfers) != 0 {
		t.Errorf("expected no transfers, got %+v", transfers)
	}
}
