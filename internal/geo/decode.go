package geo

import (
	"errors"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseError reports input that is not well-formed JSON.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "invalid JSON: " + e.Reason
}

// Decode parses data into a Value tree, keeping object member order.
func Decode(data []byte) (Value, error) {
	iter := json.BorrowIterator(data)
	defer json.ReturnIterator(iter)

	d := decoder{iter: iter}
	root, ok := d.value()
	if !ok {
		return Value{}, d.fail()
	}

	// A number running to the end of input is the only value that legitimately
	// leaves io.EOF behind; anything else hitting EOF was truncated.
	if iter.Error == io.EOF && root.Kind != Number {
		return Value{}, &ParseError{Reason: "unexpected end of input"}
	}
	if iter.Error != nil && iter.Error != io.EOF {
		return Value{}, d.fail()
	}

	// Only whitespace may follow; reaching the end sets io.EOF.
	if iter.Error == nil {
		iter.WhatIsNext()
		if iter.Error == nil {
			return Value{}, &ParseError{Reason: "trailing data after top-level value"}
		}
	}

	return root, nil
}

type decoder struct {
	iter   *jsoniter.Iterator
	reason string
}

func (d *decoder) fail() error {
	reason := d.reason
	switch {
	case d.iter.Error != nil && d.iter.Error != io.EOF:
		reason = d.iter.Error.Error()
	case reason == "":
		reason = "unexpected end of input"
	}
	return &ParseError{Reason: reason}
}

func (d *decoder) ok() bool {
	return d.iter.Error == nil || d.iter.Error == io.EOF
}

func (d *decoder) value() (Value, bool) {
	switch d.iter.WhatIsNext() {
	case jsoniter.NilValue:
		d.iter.ReadNil()
		return NullValue(), d.ok()

	case jsoniter.BoolValue:
		b := d.iter.ReadBool()
		return BoolValue(b), d.ok()

	case jsoniter.NumberValue:
		raw := string(d.iter.ReadNumber())
		if !d.ok() {
			return Value{}, false
		}
		return d.number(raw)

	case jsoniter.StringValue:
		s := d.iter.ReadString()
		return StringValue(s), d.iter.Error == nil

	case jsoniter.ArrayValue:
		items := []Value{}
		good := d.iter.ReadArrayCB(func(*jsoniter.Iterator) bool {
			item, ok := d.value()
			if !ok {
				return false
			}
			items = append(items, item)
			return true
		})
		return ArrayValue(items...), good && d.iter.Error == nil

	case jsoniter.ObjectValue:
		members := []Member{}
		seen := map[string]int{}
		good := d.iter.ReadObjectCB(func(_ *jsoniter.Iterator, key string) bool {
			item, ok := d.value()
			if !ok {
				return false
			}
			// A repeated key keeps its first position and takes the last value.
			if i, dup := seen[key]; dup {
				members[i].Value = item
				return true
			}
			seen[key] = len(members)
			members = append(members, Member{Key: key, Value: item})
			return true
		})
		return ObjectValue(members...), good && d.iter.Error == nil
	}

	if d.iter.Error == nil {
		d.reason = "unexpected character"
	}
	return Value{}, false
}

// number converts a number token. Values beyond float64 range become ±Inf
// rather than failing, they are well-formed JSON.
func (d *decoder) number(raw string) (Value, bool) {
	if !wellFormedNumber(raw) {
		d.reason = "invalid number " + strconv.Quote(raw)
		return Value{}, false
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		d.reason = err.Error()
		return Value{}, false
	}
	return NumberValue(n), true
}

// wellFormedNumber checks the JSON number grammar:
// -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
func wellFormedNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}

	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return false
	}

	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}

	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
