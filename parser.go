package jursearch

// Extraction is the plain-text result of parsing one document payload.
type Extraction struct {
	// Text is the cleaned, concatenated document text.
	// Empty when the payload carried nothing extractable or parsing failed.
	Text string `json:"text"`

	// Fragments are the raw extracted fragments in production order,
	// structural markers included. The slice belongs to the caller.
	Fragments []string `json:"fragments,omitempty"`
}

// DocumentParser converts content API document payloads to plain text.
// Implementations must be safe for concurrent use.
type DocumentParser interface {
	// Parse extracts the text of a raw document payload.
	// It never fails; malformed payloads yield an empty Extraction.
	Parse(payload []byte) *Extraction

	// Title returns the cleaned document title.
	// Returns ENOTFOUND if the payload has no title.
	Title(payload []byte) (string, error)
}
