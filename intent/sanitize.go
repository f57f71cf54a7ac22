package intent

import (
	"regexp"
	"strings"
)

var (
	scriptRe  = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe   = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	handlerRe = regexp.MustCompile(`(?i)\bon[a-z]+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
	tagRe     = regexp.MustCompile(`<[^>]*>`)
	controlRe = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// Sanitize strips markup, scripts, event handlers and control characters
// from raw query text and collapses whitespace. Letter case is preserved
// so entity extraction can see original capitalization.
func Sanitize(raw string) string {
	s := scriptRe.ReplaceAllString(raw, " ")
	s = styleRe.ReplaceAllString(s, " ")
	s = handlerRe.ReplaceAllString(s, " ")
	s = tagRe.ReplaceAllString(s, " ")
	s = controlRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
