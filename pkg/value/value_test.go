package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Int(3), Float(3)))
	assert.True(t, Equal(String("a"), String("a")))
	assert.False(t, Equal(String("a"), Int(1)))
	assert.True(t, Equal(Null(), Null()))
	assert.False(t, Equal(Null(), Bool(false)))
}

func TestAsDisplayString(t *testing.T) {
	assert.Equal(t, "", Null().AsDisplayString())
	assert.Equal(t, "true", Bool(true).AsDisplayString())
	list := List([]Value{String("a"), String("b")})
	assert.Equal(t, "a; b", list.AsDisplayString())
}

func TestJSONRoundTrip(t *testing.T) {
	v := List([]Value{String("a"), Int(2), Bool(true), Null()})

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var out Value
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, Equal(v, out))
}

func TestFromAny(t *testing.T) {
	assert.Equal(t, Bool(true), FromAny(true))
	assert.Equal(t, String("x"), FromAny("x"))
	assert.True(t, Equal(Int(3), FromAny(3.0)))
	assert.True(t, Equal(Float(3.5), FromAny(3.5)))
}
