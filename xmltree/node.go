package xmltree

// Attr is a single attribute of a Node.
type Attr struct {
	Name  string
	Value string
}

// Node is a generic XML element: a tag, an ordered attribute list, the text before the first child
// and the ordered child elements.
// A Node belongs to at most one parent at a time.
type Node struct {
	tag      string
	attrs    []Attr
	text     string
	children []*Node
	parent   *Node
}

// New ...
func New(tag string, attrs ...Attr) *Node {
	n := &Node{tag: tag}
	for _, a := range attrs {
		n.SetAttr(a.Name, a.Value)
	}
	return n
}

// Tag ...
func (n *Node) Tag() string {
	return n.tag
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr overwrites the named attribute in place or appends it after the existing ones.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.attrs {
		if a.Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// RemoveAttr ...
func (n *Node) RemoveAttr(name string) {
	for i, a := range n.attrs {
		if a.Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}

// Attrs returns a copy of the attributes in document order.
func (n *Node) Attrs() []Attr {
	return append([]Attr(nil), n.attrs...)
}

// Text ...
func (n *Node) Text() string {
	return n.text
}

// SetText ...
func (n *Node) SetText(text string) {
	n.text = text
}

// Parent ...
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a snapshot of the child elements in document order.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// ChildrenByTag returns the child elements with the given tag in document order.
func (n *Node) ChildrenByTag(tag string) []*Node {
	var children []*Node
	for _, c := range n.children {
		if c.tag == tag {
			children = append(children, c)
		}
	}
	return children
}

// FirstChild returns the first child element with the given tag, or nil.
func (n *Node) FirstChild(tag string) *Node {
	for _, c := range n.children {
		if c.tag == tag {
			return c
		}
	}
	return nil
}

// AppendChild adds child as the last child of n.
// A child that already has a parent is detached from it first.
func (n *Node) AppendChild(child *Node) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from n. It reports whether child was found.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Clone returns a deep copy of n without a parent.
func (n *Node) Clone() *Node {
	c := &Node{
		tag:   n.tag,
		attrs: append([]Attr(nil), n.attrs...),
		text:  n.text,
	}
	for _, child := range n.children {
		cc := child.Clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}
