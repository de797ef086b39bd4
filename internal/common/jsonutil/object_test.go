package jsonutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_PreservesKeyOrder(t *testing.T) {
	var o Object
	require.NoError(t, json.Unmarshal([]byte(`{"zeta":1,"alpha":{"x":[1,2]},"mid":null}`), &o))
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, o.Keys())

	v, ok := o.Get("alpha")
	require.True(t, ok)
	assert.JSONEq(t, `{"x":[1,2]}`, string(v))
	assert.True(t, o.Has("mid"))
	assert.False(t, o.Has("missing"))
}

func TestObject_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	var o Object
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":2,"a":3}`), &o))
	assert.Equal(t, []string{"a", "b"}, o.Keys())
	v, _ := o.Get("a")
	assert.Equal(t, "3", string(v))
}

func TestObject_RejectsNonObject(t *testing.T) {
	for _, doc := range []string{`[1,2]`, `"x"`, `3`} {
		var o Object
		assert.Error(t, json.Unmarshal([]byte(doc), &o), doc)
	}
}

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(nil))
	assert.True(t, IsNull(json.RawMessage(" null ")))
	assert.False(t, IsNull(json.RawMessage("0")))
}
