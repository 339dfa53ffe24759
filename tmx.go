/* this file reads TMX documents into a small generic element tree.

Attributes are kept as-is so readers can tell absent from present-but-zero;
the two mean different things for object sizes, gids and layer opacity.
*/
package level

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	tagMap         = "map"
	tagTileset     = "tileset"
	tagImage       = "image"
	tagLayer       = "layer"
	tagData        = "data"
	tagTile        = "tile"
	tagObjectGroup = "objectgroup"
	tagObject      = "object"
	tagProperties  = "properties"
	tagProperty    = "property"
)

// node is a single XML element with all of it's attributes & child elements.
// Text content is ignored, TMX only keeps data there for encoded layers
// which we don't support.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []*node    `xml:",any"`
}

// decodeTree reads a whole XML document & returns it's root element.
// Anything after the root element other than whitespace, comments or
// processing instructions is an error.
func decodeTree(r io.Reader) (*node, error) {
	d := xml.NewDecoder(r)

	root := &node{}
	if err := d.Decode(root); err != nil {
		return nil, err
	}

	for {
		tok, err := d.Token()
		if err == io.EOF {
			return root, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return nil, fmt.Errorf("unexpected text after root element")
			}
		default:
			return nil, fmt.Errorf("unexpected %T after root element", tok)
		}
	}
}

// first returns the first direct child with the given tag (or nil)
func (n *node) first(tag string) *node {
	for _, c := range n.Nodes {
		if c.XMLName.Local == tag {
			return c
		}
	}
	return nil
}

// all returns every direct child with the given tag, in document order
func (n *node) all(tag string) []*node {
	found := []*node{}
	for _, c := range n.Nodes {
		if c.XMLName.Local == tag {
			found = append(found, c)
		}
	}
	return found
}

func (n *node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// has returns if the attribute is set at all (even if empty)
func (n *node) has(name string) bool {
	_, ok := n.attr(name)
	return ok
}

// attrString returns the attribute value or `def` if absent
func (n *node) attrString(name, def string) string {
	v, ok := n.attr(name)
	if !ok {
		return def
	}
	return v
}

// attrInt returns the attribute as an int or `def` if absent or malformed.
// Decimal values (Tiled writes object coords as "10.5") are truncated.
func (n *node) attrInt(name string, def int) int {
	v, ok := n.attr(name)
	if !ok {
		return def
	}
	v = strings.TrimSpace(v)

	i, err := strconv.ParseInt(v, 10, 64)
	if err == nil {
		return int(i)
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return int(f)
}

// attrFloat returns the attribute as a float or `def` if absent or malformed.
func (n *node) attrFloat(name string, def float64) float64 {
	v, ok := n.attr(name)
	if !ok {
		return def
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}
