package doctree

import (
	"fmt"
	"strings"
)

// Fragment is one unit produced by a tree walk: either literal text or a
// structural marker carrying numbering metadata.
type Fragment struct {
	Text   string
	Marker bool
}

// markerFor formats the structural marker of a numbered phrase or list.
func markerFor(number Node, viewType, tag string) Fragment {
	return Fragment{
		Text:   fmt.Sprintf("number_%s_view_type_%s_tag_%s", number.Literal(), viewType, tag),
		Marker: true,
	}
}

// IsMarker reports whether text has the shape of a structural marker.
func IsMarker(text string) bool {
	return strings.HasPrefix(text, "number_") && strings.Contains(text, "_view_type_")
}

// Texts returns the text of each fragment, markers included, in order.
func Texts(fragments []Fragment) []string {
	out := make([]string, len(fragments))
	for i, f := range fragments {
		out[i] = f.Text
	}
	return out
}

// Join concatenates the non-marker fragments with a single space.
func Join(fragments []Fragment) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f.Marker || IsMarker(f.Text) {
			continue
		}
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, " ")
}
