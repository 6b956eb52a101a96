package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	var c Codec
	in := &AddExpenseRequest{Code: "AB12C", Amount: "12.50", Description: "Lunch", SplitWith: []string{"u2"}}

	data, err := c.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"AB12C","amount":"12.50","description":"Lunch","split_with":["u2"]}`, string(data))

	out := &AddExpenseRequest{}
	require.NoError(t, c.Unmarshal(data, out))
	assert.Equal(t, in, out)
}

func TestCodec_RejectsMalformed(t *testing.T) {
	var c Codec
	tests := map[string]string{
		"unknown field": `{"code":"AB12C","admin":true}`,
		"trailing data": `{"code":"AB12C"} {}`,
		"wrong type":    `{"code":5}`,
		"truncated":     `{"code":"AB`,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, c.Unmarshal([]byte(input), &JoinGroupRequest{}))
		})
	}
}

func TestCodec_EmptyBody(t *testing.T) {
	var c Codec
	assert.NoError(t, c.Unmarshal(nil, &ListGroupsRequest{}))
	assert.Equal(t, CodecName, c.Name())
}
