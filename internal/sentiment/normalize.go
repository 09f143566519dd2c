package sentiment

import (
	"regexp"
	"strings"
)

var (
	urlPattern      = regexp.MustCompile(`http\S+|www\S+`)
	nonAlphaPattern = regexp.MustCompile(`[^a-zA-Z ]`)
)

// Normalize lower-cases text, strips URLs and drops every character outside [a-zA-Z ].
// Whitespace is not collapsed: "I LOVE http://x.com life!!" becomes "i love  life".
func Normalize(text string) string {
	for {
		next := normalizeOnce(text)
		// stripping punctuation can glue "ht!tp" into a new URL-looking run
		if next == text {
			return next
		}
		text = next
	}
}

func normalizeOnce(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	return nonAlphaPattern.ReplaceAllString(text, "")
}
