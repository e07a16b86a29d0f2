package doctree

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	nbsp     = "\u00a0"
	elision  = " ..."
	wsClass  = `[\s\x{0B}\x{1C}-\x{1F}\x{85}\p{Z}]`
	trailing = `[;:]` + wsClass + `*$`
)

var (
	spaceBeforePunct = regexp.MustCompile(wsClass + `+([,.;:)\]])`)
	spaceAfterOpen   = regexp.MustCompile(`([(\[])` + wsClass + `+`)
	spacesAroundNBSP = regexp.MustCompile(` *\x{A0} *`)
	multiSpace       = regexp.MustCompile(` {2,}`)
	trailingPunct    = regexp.MustCompile(trailing)
)

// Clean fixes the whitespace and punctuation artifacts left by joining
// fragments. Rules apply in order:
//
//  1. "&#160;" becomes a space.
//  2. ";..." becomes "; ...".
//  3. Whitespace before , . ; : ) ] is removed.
//  4. Whitespace after ( [ is removed.
//  5. A space is inserted after ; or : unless whitespace or the end follows.
//  6. Spaces touching a non-breaking space merge into it.
//  7. Runs of spaces collapse to one.
//  8. A trailing ; or : (and any whitespace after it) becomes " ...".
//
// Rules 3 to 7 leave a trailing " ..." untouched, so Clean is idempotent.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "&#160;", " ")
	s = strings.ReplaceAll(s, ";...", "; ...")

	head, tail := splitElision(s)
	head = spaceBeforePunct.ReplaceAllString(head, "$1")
	head = spaceAfterOpen.ReplaceAllString(head, "$1")
	head = spaceAfterSeparator(head)
	head = spacesAroundNBSP.ReplaceAllString(head, nbsp)
	s = multiSpace.ReplaceAllString(head+tail, " ")

	if trailingPunct.MatchString(s) {
		s = trailingPunct.ReplaceAllString(s, elision)
		s = multiSpace.ReplaceAllString(s, " ")
	}
	return s
}

// splitElision separates any run of trailing " ..." suffixes from s.
func splitElision(s string) (head, tail string) {
	head = s
	for strings.HasSuffix(head, elision) {
		head = strings.TrimSuffix(head, elision)
	}
	return head, s[len(head):]
}

// spaceAfterSeparator inserts a space after every ; or : that is followed
// by a non-space rune.
func spaceAfterSeparator(s string) string {
	if !strings.ContainsAny(s, ";:") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i, r := range s {
		b.WriteRune(r)
		if r != ';' && r != ':' {
			continue
		}
		next, size := utf8.DecodeRuneInString(s[i+1:])
		if size == 0 || isSpace(next) {
			continue
		}
		b.WriteByte(' ')
	}
	return b.String()
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
