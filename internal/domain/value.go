package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind tags the runtime kind of a Value. KindInteger and KindText are
// also the two declarable column types.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInteger
	KindText
)

// String returns the SQL spelling of the kind.
func (k ValueKind) String() string {
	switch k {
	case KindInteger:
		return "INT"
	case KindText:
		return "TEXT"
	default:
		return "NULL"
	}
}

// Value is one typed cell. The zero value is NULL.
type Value struct {
	Kind ValueKind
	Int  int64  // set when Kind == KindInteger
	Text string // set when Kind == KindText
}

// NewInteger creates an INT value.
func NewInteger(v int64) Value { return Value{Kind: KindInteger, Int: v} }

// NewText creates a TEXT value.
func NewText(s string) Value { return Value{Kind: KindText, Text: s} }

// Null creates a NULL value.
func Null() Value { return Value{} }

// IsNull reports whether the value is NULL.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// AssignableTo reports whether the value can be stored in a column of the
// given type. NULL is assignable to any column.
func (v Value) AssignableTo(t ValueKind) bool {
	return v.Kind == KindNull || v.Kind == t
}

// Equal reports SQL equality. NULL equals only NULL; comparing INT to TEXT
// is a semantic error.
func (v Value) Equal(o Value) (bool, error) {
	if v.IsNull() || o.IsNull() {
		return v.IsNull() && o.IsNull(), nil
	}
	if v.Kind != o.Kind {
		return false, ErrSemantic("cannot compare %s to %s", v.Kind, o.Kind)
	}
	if v.Kind == KindInteger {
		return v.Int == o.Int, nil
	}
	return v.Text == o.Text, nil
}

// Compare orders two values of the same kind and returns -1, 0, or 1.
// INT orders numerically, TEXT lexicographically by bytes. Ordering NULL
// or mixed kinds is a semantic error.
func (v Value) Compare(o Value) (int, error) {
	if v.IsNull() || o.IsNull() {
		return 0, ErrSemantic("cannot order NULL values")
	}
	if v.Kind != o.Kind {
		return 0, ErrSemantic("cannot compare %s to %s", v.Kind, o.Kind)
	}
	if v.Kind == KindInteger {
		switch {
		case v.Int < o.Int:
			return -1, nil
		case v.Int > o.Int:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return strings.Compare(v.Text, o.Text), nil
}

// String renders the value the way the CLI prints cells.
func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindText:
		return v.Text
	default:
		return "NULL"
	}
}

// MarshalJSON encodes the value as a plain JSON scalar: null, number, or
// string.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindInteger:
		return json.Marshal(v.Int)
	case KindText:
		return json.Marshal(v.Text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a plain JSON scalar back into a value.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = NewText(s)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value must be null, an integer, or a string: %w", err)
	}
	*v = NewInteger(n)
	return nil
}
