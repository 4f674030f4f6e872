package core

import "fmt"

// Kind tags the variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is a tagged scalar, the only shapes a column may hold: string,
// integer, float, boolean, or null. The zero Value is null.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

// Null returns the null Value.
func Null() Value { return Value{} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a float.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind reports which variant the value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string variant and whether the value holds one.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsInt returns the integer variant and whether the value holds one.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsFloat returns the float variant and whether the value holds one.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// AsBool returns the boolean variant and whether the value holds one.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// Driver lowers the value to the scalar handed to the database driver.
func (v Value) Driver() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// FromDriver lifts a scalar returned by the driver into a Value. It accepts
// exactly the types database/sql produces for the supported backend plus the
// smaller integer widths mock drivers hand back; anything else is an error.
// No coercion is performed beyond []byte to string.
func FromDriver(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(v), nil
	case []byte:
		return String(string(v)), nil
	case int64:
		return Int(v), nil
	case int:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case float64:
		return Float(v), nil
	case bool:
		return Bool(v), nil
	default:
		return Null(), fmt.Errorf("%w: %T", ErrBadDriverValue, raw)
	}
}
