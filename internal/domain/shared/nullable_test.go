package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullablePayload struct {
	Alias  Nullable[string] `json:"alias"`
	Amount Nullable[int32]  `json:"amount"`
}

func TestNullable_UnmarshalJSON(t *testing.T) {
	var p nullablePayload
	require.NoError(t, json.Unmarshal([]byte(`{"alias": null}`), &p))

	assert.True(t, p.Alias.Set)
	assert.Nil(t, p.Alias.Value)
	assert.False(t, p.Amount.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"amount": 500}`), &p))
	assert.True(t, p.Amount.Set)
	assert.Equal(t, int32(500), *p.Amount.Value)
}

func TestNullable_Apply(t *testing.T) {
	old := "old"
	field := &old

	Nullable[string]{}.Apply(&field)
	assert.Equal(t, "old", *field)

	Present("new").Apply(&field)
	assert.Equal(t, "new", *field)

	Null[string]().Apply(&field)
	assert.Nil(t, field)
}
