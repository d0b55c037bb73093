package geo

// Kind identifies the variant held by a Value.
type Kind uint8

// Value kinds, one per JSON type.
const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "unknown"
}

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Value is a decoded JSON value. Object members keep their document order,
// which generic map decoding would lose.
type Value struct {
	Kind    Kind
	Bool    bool
	Number  float64
	String  string
	Items   []Value
	Members []Member
}

// Convenience constructors, mostly used when building values by hand in tests.

func NullValue() Value { return Value{Kind: Null} }
func BoolValue(b bool) Value { return Value{Kind: Bool, Bool: b} }
func NumberValue(n float64) Value { return Value{Kind: Number, Number: n} }
func StringValue(s string) Value { return Value{Kind: String, String: s} }
func ArrayValue(items ...Value) Value { return Value{Kind: Array, Items: items} }

// ObjectValue builds an object from members in the given order.
func ObjectValue(members ...Member) Value {
	return Value{Kind: Object, Members: members}
}

// Get returns the first member named key. ok is false when v is not an
// object or has no such member.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != Object {
		return Value{}, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Len returns the number of array items or object members, and 0 for scalars.
func (v Value) Len() int {
	switch v.Kind {
	case Array:
		return len(v.Items)
	case Object:
		return len(v.Members)
	}
	return 0
}

// Equal reports deep equality. Numbers compare by value, so 1 and 1.0 are equal.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}

	switch v.Kind {
	case Null:
		return true
	case Bool:
		return v.Bool == o.Bool
	case Number:
		return v.Number == o.Number
	case String:
		return v.String == o.String
	case Array:
		if len(v.Items) != len(o.Items) {
			return false
		}
		for i := range v.Items {
			if !v.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(v.Members) != len(o.Members) {
			return false
		}
		for _, m := range v.Members {
			ov, ok := o.Get(m.Key)
			if !ok || !m.Value.Equal(ov) {
				return false
			}
		}
		return true
	}

	return false
}
