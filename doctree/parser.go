package doctree

import (
	"log/slog"
	"strconv"

	"github.com/fwojciec/jursearch"
)

// Ensure Parser implements jursearch.DocumentParser.
var _ jursearch.DocumentParser = (*Parser)(nil)

// defaultViewType labels content without an options.viewType.
const defaultViewType = "unknown"

// countedViewTypes are numbered per parse call so sibling blocks of the
// same view type stay distinguishable in markers.
var countedViewTypes = map[string]bool{
	"situation": true,
	"searchArt": true,
	"snippet":   true,
}

// excludedTypes are dropped from a body's direct children before walking.
var excludedTypes = map[string]bool{
	"image": true,
	"div":   true,
}

// Parser extracts document text from content API payloads.
// A Parser holds no per-document state and is safe for concurrent use.
type Parser struct {
	logger *slog.Logger
}

// NewParser returns a Parser logging recoverable problems to logger.
// A nil logger discards them.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{logger: logger}
}

// Parse decodes payload and extracts its text. It never fails: a payload
// that is not JSON yields an empty Extraction.
func (p *Parser) Parse(payload []byte) *jursearch.Extraction {
	root, err := Decode(payload)
	if err != nil {
		p.logger.Warn("decode document payload", "err", err)
		return &jursearch.Extraction{}
	}
	return p.ParseNode(root)
}

// ParseNode extracts the text of an already decoded payload.
//
// Content is collected in this order: document.content.snippetsInfo, the
// content body (or the content itself when it has no body), every nested
// document under document.documents, and document.content.snippets.
func (p *Parser) ParseNode(root Node) (ext *jursearch.Extraction) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("parse document", "panic", r)
			ext = &jursearch.Extraction{}
		}
	}()

	s := &parseState{logger: p.logger, counts: make(map[string]int)}
	s.document(root)
	return &jursearch.Extraction{
		Text:      Clean(Join(s.fragments)),
		Fragments: Texts(s.fragments),
	}
}

// Title returns the cleaned document.content.title of payload.
// Returns EINVALID if the payload is malformed or the title is not a
// string, and ENOTFOUND if there is no title.
func (p *Parser) Title(payload []byte) (string, error) {
	root, err := Decode(payload)
	if err != nil {
		return "", jursearch.Errorf(jursearch.EINVALID, "malformed document payload: %v", err)
	}
	return TitleNode(root)
}

// TitleNode is Title over an already decoded payload.
func TitleNode(root Node) (string, error) {
	node := root
	for _, key := range []string{"document", "content", "title"} {
		next, ok := node.Get(key)
		if !ok {
			return "", jursearch.Errorf(jursearch.ENOTFOUND, "document has no %s", key)
		}
		if key != "title" {
			var err error
			if next, err = next.Resolve(); err != nil {
				return "", jursearch.Errorf(jursearch.EINVALID, "malformed %s: %v", key, err)
			}
		}
		node = next
	}
	title, ok := node.Str()
	if !ok {
		return "", jursearch.Errorf(jursearch.EINVALID, "document title is a %s", node.Kind())
	}
	return Clean(title), nil
}

// parseState is owned by a single ParseNode call.
type parseState struct {
	logger    *slog.Logger
	fragments []Fragment
	counts    map[string]int
}

func (s *parseState) document(root Node) {
	doc, ok := s.lookup(root, "document", "document")
	if !ok {
		return
	}
	content, ok := s.lookup(doc, "content", "document.content")
	if !ok || content.Kind() != KindObject {
		return
	}

	if info, ok := content.Get("snippetsInfo"); ok {
		s.snippetsInfo("document.content.snippetsInfo", info)
	}
	s.body("document.content", content)

	if docs, ok := doc.Get("documents"); ok {
		s.guard("document.documents", func() {
			s.subDocuments("document.documents", docs)
		})
	}
	if snippets, ok := content.Get("snippets"); ok {
		s.guard("document.content.snippets", func() {
			s.snippets("document.content.snippets", snippets)
		})
	}
}

// snippetsInfo walks each entry's content under its own view type.
func (s *parseState) snippetsInfo(path string, info Node) {
	info, ok := s.resolve(path, info)
	if !ok {
		return
	}
	for i, entry := range info.Items() {
		entryPath := index(path, i)
		content, ok := s.lookup(entry, "content", entryPath+".content")
		if !ok {
			continue
		}
		s.walk(entryPath, content, viewTypeOf(content))
	}
}

// body extracts a content body. When content has no "body" key the
// content object itself is treated as the body.
func (s *parseState) body(path string, content Node) {
	content, ok := s.resolve(path, content)
	if !ok {
		return
	}
	body := content
	if raw, ok := content.Get("body"); ok {
		path += ".body"
		if body, ok = s.resolve(path, raw); !ok {
			return
		}
	}
	children, ok := s.lookup(body, "children", path+".children")
	if !ok {
		return
	}

	viewType := viewTypeOf(body)
	if countedViewTypes[viewType] {
		s.counts[viewType]++
		viewType += "_" + strconv.Itoa(s.counts[viewType])
	}

	items := children.Items()
	kept := make([]Node, 0, len(items))
	for i, child := range items {
		child, ok := s.resolve(index(path+".children", i), child)
		if !ok {
			continue
		}
		if excludedTypes[child.Type()] {
			continue
		}
		kept = append(kept, child)
	}
	s.walk(path, FromValue(kept), viewType)
}

// subDocuments extracts the body of every nested document, recursively.
func (s *parseState) subDocuments(path string, docs Node) {
	docs, ok := s.resolve(path, docs)
	if !ok {
		return
	}
	for i, doc := range docs.Items() {
		docPath := index(path, i)
		doc, ok := s.resolve(docPath, doc)
		if !ok || doc.Kind() != KindObject {
			continue
		}
		if content, ok := doc.Get("content"); ok {
			s.body(docPath+".content", content)
		}
		if nested, ok := doc.Get("documents"); ok {
			s.subDocuments(docPath+".documents", nested)
		}
	}
}

func (s *parseState) snippets(path string, snippets Node) {
	snippets, ok := s.resolve(path, snippets)
	if !ok {
		return
	}
	for i, snippet := range snippets.Items() {
		snippetPath := index(path, i)
		snippet, ok := s.resolve(snippetPath, snippet)
		if !ok {
			continue
		}
		if content, ok := snippet.Get("content"); ok {
			s.body(snippetPath+".content", content)
		}
	}
}

func (s *parseState) walk(path string, root Node, viewType string) {
	fragments, err := Extract(root, viewType)
	s.fragments = append(s.fragments, fragments...)
	if err != nil {
		s.logger.Warn("extract content", "branch", path, "err", err)
	}
}

// lookup returns n[key], decoding it when string-encoded.
func (s *parseState) lookup(n Node, key, path string) (Node, bool) {
	v, ok := n.Get(key)
	if !ok {
		return Node{}, false
	}
	return s.resolve(path, v)
}

func (s *parseState) resolve(path string, n Node) (Node, bool) {
	resolved, err := n.Resolve()
	if err != nil {
		s.logger.Warn("decode content", "branch", path, "err", err)
		return Node{}, false
	}
	return resolved, true
}

// guard runs a secondary traversal so that a panic inside it only loses
// that traversal's output.
func (s *parseState) guard(path string, fn func()) {
	mark := len(s.fragments)
	defer func() {
		if r := recover(); r != nil {
			s.fragments = s.fragments[:mark]
			s.logger.Warn("traverse content", "branch", path, "panic", r)
		}
	}()
	fn()
}

func viewTypeOf(n Node) string {
	v, ok := n.Option("viewType")
	if !ok {
		return defaultViewType
	}
	if s, ok := v.Str(); ok {
		return s
	}
	return defaultViewType
}
