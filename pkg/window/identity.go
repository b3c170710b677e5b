package window

import "strings"

// titleSeparators are tried in order; the first one found splits the title
// and the left segment becomes the identity candidate.
var titleSeparators = []string{" - ", " — ", " | "}

// noiseTokens are generic words that carry no application identity.
var noiseTokens = map[string]struct{}{
	"window":  {},
	"browser": {},
	"client":  {},
}

// Identity returns the string used to deduplicate this window across polls:
// the window class when the backend reported one, otherwise a key derived
// from the title. An empty result means the sample carries no usable
// identity and should be discarded.
func (w *Info) Identity() string {
	if class := strings.TrimSpace(w.Class); class != "" {
		return class
	}
	return DeriveIdentity(w.Title)
}

// DeriveIdentity normalizes a raw window title into an identity key: the
// segment before the first matching separator, trimmed, lower-cased, with
// noise tokens stripped. Deriving an already-derived key is a no-op.
func DeriveIdentity(title string) string {
	for _, sep := range titleSeparators {
		if idx := strings.Index(title, sep); idx >= 0 {
			title = title[:idx]
			break
		}
	}

	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return ""
	}

	fields := strings.Fields(title)
	kept := fields[:0]
	for _, f := range fields {
		if _, noise := noiseTokens[f]; !noise {
			kept = append(kept, f)
		}
	}

	return strings.Join(kept, " ")
}
