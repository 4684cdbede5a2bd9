package junit

import (
	"sort"

	"github.com/bitrise-io/junitparser/xmltree"
)

const (
	propertiesTag = "properties"
	propertyTag   = "property"
)

// Property is a name/value annotation of a test suite.
type Property struct {
	*Element
}

// NewProperty ...
func NewProperty(name, value string) *Property {
	p := &Property{Element: NewElement(propertyTag)}
	p.SetName(name)
	p.SetValue(value)
	return p
}

// WrapProperty ...
func WrapProperty(n *xmltree.Node) *Property {
	return &Property{Element: WrapElement(n)}
}

// Name ...
func (p *Property) Name() string {
	return nameAttr.Value(p)
}

// SetName ...
func (p *Property) SetName(name string) {
	nameAttr.Set(p, name)
}

// Value ...
func (p *Property) Value() string {
	return valueAttr.Value(p)
}

// SetValue ...
func (p *Property) SetValue(value string) {
	valueAttr.Set(p, value)
}

// Equal ...
func (p *Property) Equal(other *Property) bool {
	return sameAttr(p, other, string(nameAttr)) && sameAttr(p, other, string(valueAttr))
}

// Matches ...
func (p *Property) Matches(n *xmltree.Node) bool {
	return n.Tag() == propertyTag && p.Equal(WrapProperty(n))
}

// Properties is the property bag of a test suite.
type Properties struct {
	*Element
}

// NewProperties ...
func NewProperties() *Properties {
	return &Properties{Element: NewElement(propertiesTag)}
}

// WrapProperties ...
func WrapProperties(n *xmltree.Node) *Properties {
	return &Properties{Element: WrapElement(n)}
}

// Add ...
func (p *Properties) Add(property *Property) {
	p.Append(property)
}

// AddProperty ...
func (p *Properties) AddProperty(name, value string) *Property {
	property := NewProperty(name, value)
	p.Add(property)
	return property
}

// Items returns the properties in document order.
func (p *Properties) Items() []*Property {
	var items []*Property
	for _, n := range p.node.ChildrenByTag(propertyTag) {
		items = append(items, WrapProperty(n))
	}
	return items
}

// Equal reports whether both bags hold the same name/value pairs, in any order.
func (p *Properties) Equal(other *Properties) bool {
	return equalProperties(p.Items(), other.Items())
}

func equalProperties(a, b []*Property) bool {
	if len(a) != len(b) {
		return false
	}

	a, b = sortedProperties(a), sortedProperties(b)
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func sortedProperties(props []*Property) []*Property {
	sorted := append([]*Property(nil), props...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name() != sorted[j].Name() {
			return sorted[i].Name() > sorted[j].Name()
		}
		return sorted[i].Value() < sorted[j].Value()
	})
	return sorted
}
