package junit

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bitrise-io/junitparser/xmltree"
)

// Elem is implemented by every value backed by an Element.
type Elem interface {
	Elem() *Element
}

// matcher is implemented by values that define their own equality against a raw node.
// Element.Remove uses it to find the child to remove.
type matcher interface {
	Matches(n *xmltree.Node) bool
}

// Element is the base of every JUnit XML value: a typed view over exactly one tree node.
type Element struct {
	node *xmltree.Node

	// aggregate recomputes the statistics attributes, it is set on test suites and reports.
	aggregate func()
	// kinds declares the value type of the numeric attributes, anything else is a string.
	kinds map[string]AttrKind
}

// NewElement creates an element with a new, detached node.
func NewElement(tag string) *Element {
	return &Element{node: xmltree.New(tag)}
}

// WrapElement returns a generic view over n.
func WrapElement(n *xmltree.Node) *Element {
	return &Element{node: n}
}

// Elem ...
func (e *Element) Elem() *Element {
	return e
}

// Node returns the underlying tree node.
func (e *Element) Node() *xmltree.Node {
	return e.node
}

// Tag ...
func (e *Element) Tag() string {
	return e.node.Tag()
}

// Attribute returns the raw value of any attribute.
func (e *Element) Attribute(name string) (string, bool) {
	return e.node.Attr(name)
}

// SetAttribute sets any attribute by name, checking the value against the declared kind of the attribute.
// Integer attributes accept integer values, float attributes accept integer and float values,
// undeclared attributes are stored as their fmt.Sprint form. A nil value leaves the attribute unchanged.
func (e *Element) SetAttribute(name string, value interface{}) error {
	if value == nil {
		return nil
	}

	switch kind := e.kinds[name]; kind {
	case IntKind:
		i, ok := toInt(value)
		if !ok {
			return &TypeError{Attr: name, Want: kind, Value: value}
		}
		IntAttr(name).Set(e, i)
	case FloatKind:
		f, ok := toFloat(value)
		if !ok {
			return &TypeError{Attr: name, Want: kind, Value: value}
		}
		FloatAttr(name).Set(e, f)
	default:
		StringAttr(name).Set(e, toString(value))
	}
	return nil
}

// RemoveAttribute ...
func (e *Element) RemoveAttribute(name string) {
	e.node.RemoveAttr(name)
}

// Text ...
func (e *Element) Text() string {
	return e.node.Text()
}

// SetText ...
func (e *Element) SetText(text string) {
	e.node.SetText(text)
}

// Append adds child as the last child element. Duplicates are not checked.
func (e *Element) Append(child Elem) {
	e.node.AppendChild(child.Elem().node)
}

// Extend appends every child in order.
func (e *Element) Extend(children ...Elem) {
	for _, child := range children {
		e.Append(child)
	}
}

// Remove removes the first child element with the tag of child that equals child.
// Equality is decided by the Matches method of child's type when it has one,
// and by the canonical serialization otherwise.
func (e *Element) Remove(child Elem) bool {
	target := child.Elem().node
	m, hasMatcher := child.(matcher)

	for _, n := range e.node.ChildrenByTag(target.Tag()) {
		match := n == target
		if !match && hasMatcher {
			match = m.Matches(n)
		} else if !match {
			match = bytes.Equal(n.Canonical(), target.Canonical())
		}

		if match {
			return e.node.RemoveChild(n)
		}
	}
	return false
}

// Bytes returns the compact serialization of the element, without an XML declaration.
func (e *Element) Bytes() []byte {
	return e.node.Bytes()
}

// Hash is the structural hash of the element's subtree.
func (e *Element) Hash() uint64 {
	return e.node.Hash()
}

// String returns a short description: the tag and the attributes ordered by name.
func (e *Element) String() string {
	attrs := e.node.Attrs()
	if len(attrs) == 0 {
		return fmt.Sprintf("<Element '%s'>", e.Tag())
	}

	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].Name < attrs[j].Name
	})

	var parts []string
	for _, a := range attrs {
		parts = append(parts, fmt.Sprintf(`%s="%s"`, a.Name, a.Value))
	}
	return fmt.Sprintf("<Element '%s' %s>", e.Tag(), strings.Join(parts, " "))
}

// Encode writes the UTF-8 XML declaration followed by the element's subtree.
func (e *Element) Encode(w io.Writer, pretty bool) error {
	return encodeDocument(w, e.node, pretty)
}

func encodeDocument(w io.Writer, n *xmltree.Node, pretty bool) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xmltree.Encode(w, n, xmltree.EncodeOptions{Pretty: pretty})
}

// lookup reads an attribute, recomputing the owner's statistics once when it is missing.
func (e *Element) lookup(name string) (string, bool) {
	if v, ok := e.node.Attr(name); ok {
		return v, true
	}
	if e.aggregate == nil {
		return "", false
	}

	e.aggregate()
	return e.node.Attr(name)
}

func (e *Element) childText(tag string) string {
	if n := e.node.FirstChild(tag); n != nil {
		return n.Text()
	}
	return ""
}

func (e *Element) setChildText(tag, text string) {
	n := e.node.FirstChild(tag)
	if n == nil {
		n = xmltree.New(tag)
		e.node.AppendChild(n)
	}
	n.SetText(text)
}
