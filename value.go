package ptrie

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Kind identifies the payload type held in a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt32
	KindInt64
	KindFloat64
	KindBool
	KindString
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	}
	return "invalid"
}

// Value is a closed tagged union over the payload kinds the trie can
// store. The zero Value holds nothing. Values are shared by reference
// when the node housing them is copied, never duplicated.
type Value struct {
	kind Kind
	num  uint64
	str  string
	blob []byte
}

func Int32Value(v int32) Value   { return Value{kind: KindInt32, num: uint64(uint32(v))} }
func Int64Value(v int64) Value   { return Value{kind: KindInt64, num: uint64(v)} }
func Float64Value(v float64) Value {
	return Value{kind: KindFloat64, num: math.Float64bits(v)}
}
func BoolValue(v bool) Value {
	var n uint64
	if v {
		n = 1
	}
	return Value{kind: KindBool, num: n}
}
func StringValue(v string) Value { return Value{kind: KindString, str: v} }

// BytesValue shares the given slice; the caller must not modify it
// afterward.
func BytesValue(v []byte) Value { return Value{kind: KindBytes, blob: v} }

// Kind returns the kind of payload the Value holds, KindInvalid for the
// zero Value.
func (v Value) Kind() Kind { return v.kind }

func (v Value) Int32() (int32, bool) {
	if v.kind != KindInt32 {
		return 0, false
	}
	return int32(uint32(v.num)), true
}

func (v Value) Int64() (int64, bool) {
	if v.kind != KindInt64 {
		return 0, false
	}
	return int64(v.num), true
}

func (v Value) Float64() (float64, bool) {
	if v.kind != KindFloat64 {
		return 0, false
	}
	return math.Float64frombits(v.num), true
}

func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.num != 0, true
}

func (v Value) StringValue() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v Value) Bytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return v.blob, true
}

// Equal reports whether both values hold the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindBytes:
		return bytes.Equal(v.blob, o.blob)
	default:
		return v.num == o.num
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindInt32:
		n, _ := v.Int32()
		return fmt.Sprintf("Int32(%d)", n)
	case KindInt64:
		n, _ := v.Int64()
		return fmt.Sprintf("Int64(%d)", n)
	case KindFloat64:
		f, _ := v.Float64()
		return fmt.Sprintf("Float64(%v)", f)
	case KindBool:
		b, _ := v.Bool()
		return fmt.Sprintf("Bool(%v)", b)
	case KindString:
		return fmt.Sprintf("String(%q)", v.str)
	case KindBytes:
		return fmt.Sprintf("Bytes(%x)", v.blob)
	}
	return "Invalid"
}

// wire form for the default JSON node codec.
type valueWire struct {
	Kind  string   `json:"k"`
	Int   *int64   `json:"i,omitempty"`
	Float *float64 `json:"f,omitempty"`
	Bool  *bool    `json:"b,omitempty"`
	Str   *string  `json:"s,omitempty"`
	Blob  []byte   `json:"d,omitempty"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	w := valueWire{Kind: v.kind.String()}
	switch v.kind {
	case KindInt32, KindInt64:
		n := int64(v.num)
		if v.kind == KindInt32 {
			n = int64(int32(uint32(v.num)))
		}
		w.Int = &n
	case KindFloat64:
		f := math.Float64frombits(v.num)
		w.Float = &f
	case KindBool:
		b := v.num != 0
		w.Bool = &b
	case KindString:
		w.Str = &v.str
	case KindBytes:
		w.Blob = v.blob
	default:
		return nil, fmt.Errorf("cannot marshal value of kind %v", v.kind)
	}
	return json.Marshal(w)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var w valueWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	switch w.Kind {
	case "int32":
		if w.Int == nil {
			return fmt.Errorf("int32 value missing payload")
		}
		*v = Int32Value(int32(*w.Int))
	case "int64":
		if w.Int == nil {
			return fmt.Errorf("int64 value missing payload")
		}
		*v = Int64Value(*w.Int)
	case "float64":
		if w.Float == nil {
			return fmt.Errorf("float64 value missing payload")
		}
		*v = Float64Value(*w.Float)
	case "bool":
		if w.Bool == nil {
			return fmt.Errorf("bool value missing payload")
		}
		*v = BoolValue(*w.Bool)
	case "string":
		if w.Str == nil {
			return fmt.Errorf("string value missing payload")
		}
		*v = StringValue(*w.Str)
	case "bytes":
		*v = BytesValue(w.Blob)
	default:
		return fmt.Errorf("unknown value kind %q", w.Kind)
	}
	return nil
}
