package xmltree

import (
	"bytes"
	"encoding/xml"
	"io"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Indent is the per-level indentation of pretty output.
const Indent = "\t"

// EncodeOptions controls the serialized form of a tree.
type EncodeOptions struct {
	// Pretty indents nested elements by one Indent per level and ends the output with a newline.
	Pretty bool
	// SortAttrs writes attributes ordered by name instead of document order.
	SortAttrs bool
}

// Encode writes n and its subtree to w, without an XML declaration.
func Encode(w io.Writer, n *Node, opts EncodeOptions) error {
	e := xml.NewEncoder(w)
	if opts.Pretty {
		e.Indent("", Indent)
	}

	if err := n.encode(e, opts.SortAttrs); err != nil {
		return err
	}
	if err := e.Flush(); err != nil {
		return err
	}

	if opts.Pretty {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Bytes returns the compact serialization of n in document attribute order.
func (n *Node) Bytes() []byte {
	var buf bytes.Buffer
	// bytes.Buffer writes do not fail, the encoder only rejects invalid names
	_ = Encode(&buf, n, EncodeOptions{})
	return buf.Bytes()
}

// Canonical returns the compact serialization of n with attributes sorted by name,
// so two nodes differing only in attribute order serialize identically.
func (n *Node) Canonical() []byte {
	var buf bytes.Buffer
	_ = Encode(&buf, n, EncodeOptions{SortAttrs: true})
	return buf.Bytes()
}

// Hash is the xxhash of the canonical serialization of n.
func (n *Node) Hash() uint64 {
	return xxhash.Sum64(n.Canonical())
}

func (n *Node) encode(e *xml.Encoder, sortAttrs bool) error {
	attrs := n.attrs
	if sortAttrs {
		attrs = n.Attrs()
		sort.SliceStable(attrs, func(i, j int) bool {
			return attrs[i].Name < attrs[j].Name
		})
	}

	start := xml.StartElement{Name: xml.Name{Local: n.tag}}
	for _, a := range attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}

	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if n.text != "" {
		if err := e.EncodeToken(xml.CharData(n.text)); err != nil {
			return err
		}
	}
	for _, c := range n.children {
		if err := c.encode(e, sortAttrs); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}
