package trajectory

import "strings"

// sentenceTerminators end a segment. Newlines separate segments too, so
// paragraph-per-line posts split sensibly.
const sentenceTerminators = ".!?"

// SplitSentences splits raw text into ordered sentence segments. It is
// deliberately forgiving: punctuation-only and emoji-only chunks survive as
// their own segments, runs of terminators collapse, and text without any
// terminator becomes a single segment. Empty or whitespace-only input yields
// no segments.
func SplitSentences(text string) []string {
	segments := []string{}
	var b strings.Builder

	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			segments = append(segments, s)
		}
		b.Reset()
	}

	for _, r := range text {
		if r == '\n' {
			flush()
			continue
		}
		b.WriteRune(r)
		if strings.ContainsRune(sentenceTerminators, r) {
			flush()
		}
	}
	flush()

	// Merge segments that are bare terminator runs ("...", "!?") into the
	// preceding segment instead of classifying punctuation alone.
	merged := segments[:0]
	for _, s := range segments {
		if len(merged) > 0 && strings.Trim(s, sentenceTerminators+" ") == "" {
			merged[len(merged)-1] += s
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
