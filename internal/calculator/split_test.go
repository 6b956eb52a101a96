package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPerPerson(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		others  int
		want    string
		wantErr error
	}{
		{name: "three-way split", amount: "90", others: 2, want: "30"},
		{name: "two-way split", amount: "100", others: 1, want: "50"},
		{name: "repeating fraction rounds down", amount: "100", others: 2, want: "33.33"},
		{name: "two thirds rounds up", amount: "200", others: 2, want: "66.67"},
		{name: "exact half cent rounds up", amount: "0.05", others: 1, want: "0.03"},
		{name: "half cent on larger amount", amount: "20.01", others: 1, want: "10.01"},
		{name: "zero amount", amount: "0", others: 1, wantErr: ErrNonPositiveAmount},
		{name: "negative amount", amount: "-10", others: 1, wantErr: ErrNonPositiveAmount},
		{name: "nobody to split with", amount: "10", others: 0, wantErr: ErrNoParticipants},
		{name: "sub-cent amount", amount: "10.001", others: 1, wantErr: ErrTooPrecise},
		{name: "share rounds to zero", amount: "0.01", others: 3, wantErr: ErrShareTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PerPerson(decimal.RequireFromString(tt.amount), tt.others)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("PerPerson() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PerPerson() unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("PerPerson() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPayerShare(t *testing.T) {
	// 100 split three ways: others owe 33.33 each, payer bears 33.34
	got := PayerShare(decimal.NewFromInt(100), decimal.RequireFromString("33.33"), 2)
	if !got.Equal(decimal.RequireFromString("33.34")) {
		t.Errorf("PayerShare() = %s, want 33.34", got)
	}

	// 200 split three ways: others owe 66.67 each, payer bears 66.66
	got = PayerShare(decimal.NewFromInt(200), decimal.RequireFromString("66.67"), 2)
	if !got.Equal(decimal.RequireFromString("66.66")) {
		t.Errorf("PayerShare() = %s, want 66.66", got)
	}
}
