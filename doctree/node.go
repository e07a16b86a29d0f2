// Package doctree extracts plain text from the content API's rich-text
// document trees.
//
// A document tree is loosely shaped JSON: objects carry a "type" tag,
// "options" and "children", and any container may arrive as a JSON-encoded
// string instead of a parsed value. Node models such a value; Extract walks
// one content root; Parser locates every content root in a payload and
// returns the cleaned text.
package doctree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Kind identifies the variant held by a Node.
type Kind uint8

// Node kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Node is one JSON value of a document tree.
// The zero Node is null.
type Node struct {
	kind Kind
	text string // string value, or number literal
	b    bool
	arr  []Node
	obj  map[string]Node
}

// Decode parses JSON into a Node. Numbers keep their literal text.
func Decode(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Node{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Node{}, fmt.Errorf("unexpected data after top-level value")
	}
	return FromValue(v), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	node, err := Decode(data)
	if err != nil {
		return err
	}
	*n = node
	return nil
}

// FromValue converts a decoded Go value (as produced by encoding/json into
// an any) into a Node. Unsupported types become null.
func FromValue(v any) Node {
	switch v := v.(type) {
	case nil:
		return Node{}
	case Node:
		return v
	case bool:
		return Node{kind: KindBool, b: v}
	case string:
		return Node{kind: KindString, text: v}
	case json.Number:
		return Node{kind: KindNumber, text: v.String()}
	case float64:
		return Node{kind: KindNumber, text: strconv.FormatFloat(v, 'f', -1, 64)}
	case float32:
		return Node{kind: KindNumber, text: strconv.FormatFloat(float64(v), 'f', -1, 32)}
	case int:
		return Node{kind: KindNumber, text: strconv.Itoa(v)}
	case int64:
		return Node{kind: KindNumber, text: strconv.FormatInt(v, 10)}
	case []any:
		arr := make([]Node, len(v))
		for i, item := range v {
			arr[i] = FromValue(item)
		}
		return Node{kind: KindArray, arr: arr}
	case []Node:
		return Node{kind: KindArray, arr: v}
	case map[string]any:
		obj := make(map[string]Node, len(v))
		for k, item := range v {
			obj[k] = FromValue(item)
		}
		return Node{kind: KindObject, obj: obj}
	case map[string]Node:
		return Node{kind: KindObject, obj: v}
	}
	return Node{}
}

// Kind returns the variant held by n.
func (n Node) Kind() Kind { return n.kind }

// IsNull reports whether n is JSON null.
func (n Node) IsNull() bool { return n.kind == KindNull }

// Get returns the value stored under key. ok is false when n is not an
// object or lacks the key.
func (n Node) Get(key string) (Node, bool) {
	if n.kind != KindObject {
		return Node{}, false
	}
	v, ok := n.obj[key]
	return v, ok
}

// Has reports whether n is an object holding key.
func (n Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Items returns the elements of an array node, or nil for other kinds.
func (n Node) Items() []Node {
	if n.kind != KindArray {
		return nil
	}
	return n.arr
}

// Str returns the value of a string node.
func (n Node) Str() (string, bool) {
	if n.kind != KindString {
		return "", false
	}
	return n.text, true
}

// Literal renders a scalar the way it appears in structural markers:
// strings verbatim, numbers as their JSON literal, booleans and null as
// JSON keywords, containers as a short size description.
func (n Node) Literal() string {
	switch n.kind {
	case KindString, KindNumber:
		return n.text
	case KindBool:
		return strconv.FormatBool(n.b)
	case KindNull:
		return "null"
	case KindArray:
		return "[" + strconv.Itoa(len(n.arr)) + " items]"
	}
	return "{" + strconv.Itoa(len(n.obj)) + " keys}"
}

// Type returns the "type" tag of an object node, or "" when absent.
func (n Node) Type() string {
	t, _ := n.Get("type")
	s, _ := t.Str()
	return s
}

// Option returns options[key] of an object node.
func (n Node) Option(key string) (Node, bool) {
	opts, ok := n.Get("options")
	if !ok {
		return Node{}, false
	}
	return opts.Get(key)
}

// Resolve decodes a string node holding JSON-encoded content.
// Nodes of any other kind are returned unchanged.
func (n Node) Resolve() (Node, error) {
	if n.kind != KindString {
		return n, nil
	}
	decoded, err := Decode([]byte(n.text))
	if err != nil {
		return Node{}, fmt.Errorf("decode string-encoded content: %w", err)
	}
	return decoded, nil
}
