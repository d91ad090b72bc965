package template

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindNull is the zero Value: missing or explicitly null data.
	KindNull Kind = iota
	// KindString holds a string scalar.
	KindString
	// KindNumber holds a numeric scalar.
	KindNumber
	// KindBool holds a boolean scalar.
	KindBool
	// KindRecord holds a nested mapping.
	KindRecord
	// KindList holds a sequence of values.
	KindList
	// KindRaw holds a pre-rendered HTML fragment inserted without escaping.
	KindRaw
)

// String returns the kind name.
func (k Kind) String() (name string) {
	switch k {
	case KindNull:
		name = "null"
	case KindString:
		name = "string"
	case KindNumber:
		name = "number"
	case KindBool:
		name = "bool"
	case KindRecord:
		name = "record"
	case KindList:
		name = "list"
	case KindRaw:
		name = "raw"
	default:
		name = "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return name
}

// Record is a mapping from keys to values. It is the data record handed to Render.
type Record map[string]Value

// Value is a tagged variant over the shapes a data record may contain.
// The zero Value is Null.
type Value struct {
	kind   Kind
	str    string
	num    float64
	flag   bool
	record Record
	list   []Value
}

// Null returns the null value.
func Null() (v Value) {
	return v
}

// String wraps a string scalar.
func String(s string) (v Value) {
	v = Value{kind: KindString, str: s}
	return v
}

// Number wraps a numeric scalar.
func Number(n float64) (v Value) {
	v = Value{kind: KindNumber, num: n}
	return v
}

// Int wraps an integer scalar.
func Int(n int) (v Value) {
	v = Number(float64(n))
	return v
}

// Bool wraps a boolean scalar.
func Bool(b bool) (v Value) {
	v = Value{kind: KindBool, flag: b}
	return v
}

// Map wraps a record.
func Map(r Record) (v Value) {
	v = Value{kind: KindRecord, record: r}
	return v
}

// List wraps a sequence of values.
func List(items ...Value) (v Value) {
	v = Value{kind: KindList, list: items}
	return v
}

// Strings wraps a string slice as a list of string scalars.
func Strings(items []string) (v Value) {
	values := make([]Value, len(items))
	for i, item := range items {
		values[i] = String(item)
	}
	v = List(values...)
	return v
}

// Raw wraps an HTML fragment that is inserted verbatim.
// Only fragments assembled from already escaped pieces may be passed here.
func Raw(html string) (v Value) {
	v = Value{kind: KindRaw, str: html}
	return v
}

// Kind reports the variant held by v.
func (v Value) Kind() (k Kind) {
	return v.kind
}

// IsScalar reports whether v is a string, number or bool.
func (v Value) IsScalar() (ok bool) {
	ok = v.kind == KindString || v.kind == KindNumber || v.kind == KindBool
	return ok
}

// Record returns the nested mapping, or nil when v is not a record.
func (v Value) Record() (r Record) {
	if v.kind == KindRecord {
		r = v.record
	}
	return r
}

// Items returns the list items, or nil when v is not a list.
func (v Value) Items() (items []Value) {
	if v.kind == KindList {
		items = v.list
	}
	return items
}

// Text returns the unescaped string form of a scalar or raw value.
// Null, records and lists have no string form and yield "".
func (v Value) Text() (s string) {
	switch v.kind {
	case KindString, KindRaw:
		s = v.str
	case KindNumber:
		s = strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		s = strconv.FormatBool(v.flag)
	}
	return s
}

// Truthy applies the falsy-value convention used by {{#if}}: null, "", false,
// 0 and empty records or lists are falsy; everything else is truthy.
func (v Value) Truthy() (ok bool) {
	switch v.kind {
	case KindString, KindRaw:
		ok = v.str != ""
	case KindNumber:
		ok = v.num != 0
	case KindBool:
		ok = v.flag
	case KindRecord:
		ok = len(v.record) > 0
	case KindList:
		ok = len(v.list) > 0
	}
	return ok
}

// Lookup resolves a dotted path against the record. The second return value
// is false when any segment is missing or traverses a non-record.
func (r Record) Lookup(path string) (v Value, found bool) {
	v, found = lookupSegments(Map(r), splitPath(path))
	return v, found
}

// Keys returns the record keys in sorted order.
func (r Record) Keys() (keys []string) {
	keys = make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lookupSegments(current Value, segments []string) (v Value, found bool) {
	for _, segment := range segments {
		if current.kind != KindRecord {
			return v, false
		}
		var next Value
		next, found = current.record[segment]
		if !found {
			return v, false
		}
		current = next
	}
	v = current
	found = true
	return v, found
}

// FromAny converts decoded JSON or YAML data into a Value. Maps keyed by
// strings become records, slices and arrays become lists, and numeric kinds
// become numbers. Values of any other type are formatted with fmt.
// FromAny never produces a raw value.
func FromAny(data any) (v Value) {
	switch x := data.(type) {
	case nil:
		return v
	case Value:
		v = stripRaw(x)
		return v
	case Record:
		v = stripRaw(Map(x))
		return v
	case string:
		v = String(x)
		return v
	case bool:
		v = Bool(x)
		return v
	case float64:
		v = Number(x)
		return v
	case int:
		v = Int(x)
		return v
	case map[string]any:
		record := make(Record, len(x))
		for key, item := range x {
			record[key] = FromAny(item)
		}
		v = Map(record)
		return v
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = FromAny(item)
		}
		v = List(items...)
		return v
	case fmt.Stringer:
		v = String(x.String())
		return v
	}

	v = fromReflect(reflect.ValueOf(data))
	return v
}

// stripRaw demotes raw values, at any depth, to plain strings.
func stripRaw(in Value) (v Value) {
	switch in.kind {
	case KindRaw:
		v = String(in.str)
	case KindRecord:
		record := make(Record, len(in.record))
		for key, item := range in.record {
			record[key] = stripRaw(item)
		}
		v = Map(record)
	case KindList:
		items := make([]Value, len(in.list))
		for i, item := range in.list {
			items[i] = stripRaw(item)
		}
		v = List(items...)
	default:
		v = in
	}
	return v
}

func fromReflect(rv reflect.Value) (v Value) {
	switch rv.Kind() {
	case reflect.Invalid:
		return v
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return v
		}
		v = fromReflect(rv.Elem())
	case reflect.String:
		v = String(rv.String())
	case reflect.Bool:
		v = Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v = Number(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v = Number(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		v = Number(rv.Float())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			v = List()
			return v
		}
		items := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items[i] = FromAny(rv.Index(i).Interface())
		}
		v = List(items...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			v = String(fmt.Sprint(rv.Interface()))
			return v
		}
		record := make(Record, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			record[iter.Key().String()] = FromAny(iter.Value().Interface())
		}
		v = Map(record)
	default:
		v = String(fmt.Sprint(rv.Interface()))
	}
	return v
}

// RecordFromMap converts a decoded JSON object into a Record.
func RecordFromMap(data map[string]any) (r Record) {
	r = FromAny(data).Record()
	if r == nil {
		r = Record{}
	}
	return r
}
