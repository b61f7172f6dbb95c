// Package xmlbridge provides a default implementation of the XML-to-JSON
// capability that XML-shaped decoders (JUnit XML, NUnit/xUnit, Unity) need
// to walk a JSON projection instead of raw XML. XML parsing is treated
// as an external collaborator normally supplied by a
// sibling extension of the host query engine; this package is the
// stand-in a caller wires onto parser.Context when no such sibling
// extension is present, built on encoding/xml rather than a third-party
// XML library (see DESIGN.md).
package xmlbridge

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"
)

// Node is the generic JSON projection of an XML element: its attributes
// (each keyed "@name"), its text content (keyed "#text" when non-blank),
// and its children, keyed by tag name. A tag that repeats under the same
// parent becomes a JSON array; a tag that appears once becomes a bare
// object, mirroring the common XML-to-JSON convention decoders in this
// corpus's domain (JUnit, NUnit) are written against.
type Node map[string]interface{}

// XMLToJSON converts an XML document to its generic JSON projection. It is
// the function installed as parser.Context.XMLToJSON by callers that want
// XML-shaped decoders to work without a real host "xml-to-json" facility.
func XMLToJSON(xmlDoc string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(xmlDoc))

	var rootStart xml.StartElement
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		if se, ok := tok.(xml.StartElement); ok {
			rootStart = se
			break
		}
	}

	root, err := decodeElement(dec, rootStart)
	if err != nil && err != io.EOF {
		return "", err
	}

	wrapped := Node{rootStart.Name.Local: root}
	out, err := json.Marshal(wrapped)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// decodeElement reads tokens until the matching EndElement for start,
// building the generic Node projection of that element's attributes, text,
// and child elements. XMLToJSON calls it once with the root element's
// StartElement to decode the whole document.
func decodeElement(dec *xml.Decoder, start xml.StartElement) (Node, error) {
	node := Node{}
	for _, attr := range start.Attr {
		node["@"+attr.Name.Local] = attr.Value
	}

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return node, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil && err != io.EOF {
				return node, err
			}
			mergeChild(node, t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if txt := strings.TrimSpace(text.String()); txt != "" {
				node["#text"] = txt
			}
			return node, nil
		}
	}
}

// mergeChild adds child under tag, promoting a single existing value into
// a []interface{} the second time the same tag appears under one parent.
func mergeChild(node Node, tag string, child Node) {
	existing, ok := node[tag]
	if !ok {
		node[tag] = child
		return
	}
	if list, ok := existing.([]interface{}); ok {
		node[tag] = append(list, child)
		return
	}
	node[tag] = []interface{}{existing, child}
}
