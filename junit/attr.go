package junit

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// AttrKind is the value type of an attribute.
type AttrKind int

// AttrKind values
const (
	StringKind AttrKind = iota
	IntKind
	FloatKind
)

func (k AttrKind) String() string {
	switch k {
	case IntKind:
		return "integer"
	case FloatKind:
		return "float"
	default:
		return "string"
	}
}

// StringAttr is a string attribute of an element.
type StringAttr string

// Get returns the attribute value and whether it is present.
func (a StringAttr) Get(e Elem) (string, bool) {
	return e.Elem().node.Attr(string(a))
}

// Value returns the attribute value or an empty string.
func (a StringAttr) Value(e Elem) string {
	v, _ := a.Get(e)
	return v
}

// Set ...
func (a StringAttr) Set(e Elem, v string) {
	e.Elem().node.SetAttr(string(a), v)
}

// IntAttr is an integer attribute of an element.
// Reading a missing IntAttr of a test suite or a report recomputes the statistics of the owner once.
type IntAttr string

// Get ...
func (a IntAttr) Get(e Elem) (int, bool) {
	v, ok := e.Elem().lookup(string(a))
	if !ok {
		return 0, false
	}
	return parseInt(v)
}

// Set ...
func (a IntAttr) Set(e Elem, v int) {
	e.Elem().node.SetAttr(string(a), strconv.Itoa(v))
}

// FloatAttr is a float attribute of an element, read with the same recompute rule as IntAttr.
type FloatAttr string

// Get ...
func (a FloatAttr) Get(e Elem) (float64, bool) {
	v, ok := e.Elem().lookup(string(a))
	if !ok {
		return 0, false
	}
	return parseFloat(v)
}

// Set ...
func (a FloatAttr) Set(e Elem, v float64) {
	e.Elem().node.SetAttr(string(a), formatFloat(v))
}

const (
	nameAttr      = StringAttr("name")
	classNameAttr = StringAttr("classname")
	hostnameAttr  = StringAttr("hostname")
	timestampAttr = StringAttr("timestamp")
	messageAttr   = StringAttr("message")
	typeAttr      = StringAttr("type")
	valueAttr     = StringAttr("value")

	timeAttr     = FloatAttr("time")
	testsAttr    = IntAttr("tests")
	failuresAttr = IntAttr("failures")
	errorsAttr   = IntAttr("errors")
	skippedAttr  = IntAttr("skipped")
)

var (
	testCaseKinds = map[string]AttrKind{
		string(timeAttr): FloatKind,
	}
	statisticsKinds = map[string]AttrKind{
		string(timeAttr):     FloatKind,
		string(testsAttr):    IntKind,
		string(failuresAttr): IntKind,
		string(errorsAttr):   IntKind,
		string(skippedAttr):  IntKind,
	}
)

// parseInt accepts integral decimal values too, some runners write tests="3.0".
func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}

	f, ok := parseFloat(s)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// parseFloat ignores grouping separators: "1,000.025" is 1000.025.
func parseFloat(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// formatFloat always writes a fractional part: 2 is "2.0".
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

func toInt(value interface{}) (int, bool) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Uint() > math.MaxInt {
			return 0, false
		}
		return int(v.Uint()), true
	}
	return 0, false
}

func toFloat(value interface{}) (float64, bool) {
	if i, ok := toInt(value); ok {
		return float64(i), true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Uint, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}

func toString(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
