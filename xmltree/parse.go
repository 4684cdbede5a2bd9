package xmltree

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Parse reads a single XML document from r and returns its root element.
// Namespace prefixes are dropped from element tags, attribute names are kept as written.
// Comments, processing instructions and text following a child element are discarded.
// A leading UTF-8 byte order mark is skipped.
// Malformed input is reported with the *xml.SyntaxError of encoding/xml.
func Parse(r io.Reader) (*Node, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(bom, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}

	d := xml.NewDecoder(br)
	d.CharsetReader = charset.NewReaderLabel

	var root *Node
	var stack []*Node
	var names []xml.Name

	syntaxError := func(format string, v ...interface{}) error {
		line, _ := d.InputPos()
		return &xml.SyntaxError{Msg: fmt.Sprintf(format, v...), Line: line}
	}

	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, syntaxError("junk after document element: <%s>", qualified(t.Name))
			}

			n := &Node{tag: t.Name.Local}
			for _, a := range t.Attr {
				n.SetAttr(qualified(a.Name), a.Value)
			}

			if len(stack) == 0 {
				root = n
			} else {
				stack[len(stack)-1].AppendChild(n)
			}
			stack = append(stack, n)
			names = append(names, t.Name)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, syntaxError("unexpected end element </%s>", qualified(t.Name))
			}

			open := names[len(names)-1]
			if open != t.Name {
				return nil, syntaxError("element <%s> closed by </%s>", qualified(open), qualified(t.Name))
			}

			n := stack[len(stack)-1]
			if len(n.children) > 0 && strings.TrimSpace(n.text) == "" {
				n.text = ""
			}
			stack = stack[:len(stack)-1]
			names = names[:len(names)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, syntaxError("character data outside of the document element")
				}
				continue
			}

			n := stack[len(stack)-1]
			if len(n.children) == 0 {
				n.text += string(t)
			}
		}
	}

	if len(stack) > 0 {
		return nil, syntaxError("unexpected EOF: element <%s> is not closed", qualified(names[len(names)-1]))
	}
	if root == nil {
		return nil, syntaxError("no element found")
	}

	return root, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseBytes ...
func ParseBytes(data []byte) (*Node, error) {
	return Parse(bytes.NewReader(data))
}

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}
