package ptrie

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueRoundTrip(t *testing.T) {
	t.Parallel()
	for _, v := range []Value{
		Int32Value(-2333),
		Int64Value(math.MaxInt64),
		Float64Value(1.5),
		BoolValue(true),
		StringValue("hello"),
		BytesValue([]byte{0x00, 0xff, 0x10}),
	} {
		b, err := json.Marshal(v)
		require.NoError(t, err, "%v", v)
		var back Value
		err = json.Unmarshal(b, &back)
		require.NoError(t, err, "%v", v)
		require.True(t, v.Equal(back), "%v came back as %v", v, back)
		require.Equal(t, v.Kind(), back.Kind())
	}
}

func TestValueEqual(t *testing.T) {
	t.Parallel()
	assert.True(t, Int32Value(1).Equal(Int32Value(1)))
	assert.False(t, Int32Value(1).Equal(Int32Value(2)))
	// same payload, different kind
	assert.False(t, Int32Value(1).Equal(Int64Value(1)))
	assert.True(t, BytesValue([]byte("ab")).Equal(BytesValue([]byte("ab"))))
	assert.False(t, BytesValue([]byte("ab")).Equal(BytesValue([]byte("ac"))))
	assert.True(t, Value{}.Equal(Value{}))
	assert.False(t, Value{}.Equal(BoolValue(false)))
}

func TestValueAccessorsRejectOtherKinds(t *testing.T) {
	t.Parallel()
	v := StringValue("x")
	_, ok := v.Int32()
	assert.False(t, ok)
	_, ok = v.Bytes()
	assert.False(t, ok)
	s, ok := v.StringValue()
	assert.True(t, ok)
	assert.Equal(t, "x", s)
	assert.Equal(t, KindString, v.Kind())
	assert.Equal(t, KindInvalid, Value{}.Kind())
}
