package doctree

import (
	"errors"
	"fmt"
	"strconv"
)

// vocabulary lists the element types that open an element walk.
var vocabulary = map[string]bool{
	"p":                true,
	"list":             true,
	"headerblock":      true,
	"warning":          true,
	"opinion":          true,
	"advice":           true,
	"example":          true,
	"moreAbout":        true,
	"reason":           true,
	"operInfo":         true,
	"importantContent": true,
	"fullAnswerHL":     true,
	"documentRoot":     true,
	"phrase":           true,
}

// IsExtractable reports whether typ opens an element walk.
func IsExtractable(typ string) bool { return vocabulary[typ] }

// DecodeError reports string-encoded content that is not valid JSON.
// Path locates the offending node relative to the walked root.
type DecodeError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying JSON error.
func (e *DecodeError) Unwrap() error { return e.Err }

// Extract walks a content root in pre-order and returns its fragments.
//
// Arrays are walked element by element. An object contributes only when its
// type is in the extractable vocabulary or is a bare text node. Such an
// object opens an element walk that visits every descendant regardless of
// its type: numbered phrases and lists emit markers tagged with the opening
// type, and text nodes emit their value.
//
// String nodes are decoded as JSON before being walked. Branches that fail
// to decode contribute nothing; their errors are returned joined, alongside
// the fragments of every healthy branch.
func Extract(root Node, viewType string) ([]Fragment, error) {
	w := &walker{viewType: viewType}
	w.visit(root, "$")
	return w.out, errors.Join(w.errs...)
}

type walker struct {
	viewType string
	out      []Fragment
	errs     []error
}

func (w *walker) resolve(n Node, path string) (Node, bool) {
	resolved, err := n.Resolve()
	if err != nil {
		w.errs = append(w.errs, &DecodeError{Path: path, Err: err})
		return Node{}, false
	}
	return resolved, true
}

func (w *walker) visit(n Node, path string) {
	n, ok := w.resolve(n, path)
	if !ok {
		return
	}
	switch n.Kind() {
	case KindArray:
		for i, item := range n.Items() {
			w.visit(item, index(path, i))
		}
	case KindObject:
		if tag := n.Type(); vocabulary[tag] || tag == "text" {
			w.element(n, tag, path)
		}
	}
}

func (w *walker) element(n Node, tag, path string) {
	switch n.Type() {
	case "phrase", "list":
		if number, ok := n.Option("number"); ok {
			w.out = append(w.out, markerFor(number, w.viewType, tag))
		}
	case "text":
		if value, ok := n.Option("value"); ok {
			if s, ok := value.Str(); ok && s != "" {
				w.out = append(w.out, Fragment{Text: s})
			}
		}
	}

	children, ok := n.Get("children")
	if !ok {
		return
	}
	path += ".children"
	if children, ok = w.resolve(children, path); !ok {
		return
	}
	for i, child := range children.Items() {
		childPath := index(path, i)
		child, ok := w.resolve(child, childPath)
		if !ok || child.Kind() != KindObject {
			continue
		}
		w.element(child, tag, childPath)
	}
}

func index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
