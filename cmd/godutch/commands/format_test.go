package commands

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"50", "INR", "₹50.00"},
		{"1234.5", "INR", "₹1,234.50"},
		{"-33.33", "INR", "-₹33.33"},
		{"10.25", "USD", "$10.25"},
		{"0", "INR", "₹0.00"},
	}

	for _, tt := range tests {
		got := formatMoney(decimal.RequireFromString(tt.amount), tt.currency)
		assert.Equal(t, tt.want, got, "formatMoney(%s, %s)", tt.amount, tt.currency)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "You", displayName("11111111-aaaa-bbbb-cccc-0123456789ab", "11111111-aaaa-bbbb-cccc-0123456789ab"))
	assert.Equal(t, "456789ab", displayName("11111111-aaaa-bbbb-cccc-0123456789ab", "someone-else"))
}

func TestResolveMembers(t *testing.T) {
	members := []string{
		"aaaaaaaa-0000-0000-0000-000000001111",
		"bbbbbbbb-0000-0000-0000-000000002222",
		"cccccccc-0000-0000-0000-000000003222",
	}

	got, err := resolveMembers(members, []string{"00001111", members[1]})
	require.NoError(t, err)
	assert.Equal(t, []string{members[0], members[1]}, got)

	got, err = resolveMembers(members, []string{"3222"})
	require.NoError(t, err)
	assert.Equal(t, []string{members[2]}, got)

	_, err = resolveMembers(members, []string{"222"})
	assert.ErrorContains(t, err, "matches 2 members")

	_, err = resolveMembers(members, []string{"9999"})
	assert.ErrorContains(t, err, "no group member")
}
