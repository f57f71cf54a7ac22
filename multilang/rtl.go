package multilang

import (
	"strings"

	"github.com/docuseek/nlq/core"
)

// Unicode directional marks wrapping embedded right-to-left runs.
const (
	rtlEmbed = "‫" // RIGHT-TO-LEFT EMBEDDING
	popDir   = "‬" // POP DIRECTIONAL FORMATTING
)

// ShouldUseRTL reports whether text needs right-to-left rendering, true
// iff any Arabic run is present.
func (p *Processor) ShouldUseRTL(text string) bool {
	for _, r := range text {
		if isArabicRune(r) {
			return true
		}
	}
	return false
}

// FormatForRTL prepares text for display in a left-to-right context.
// Pure Arabic text is returned unchanged; mixed text has each Arabic run
// wrapped in directional embedding marks, preserving token order.
func (p *Processor) FormatForRTL(text string) string {
	if !p.ShouldUseRTL(text) {
		return text
	}

	detection := p.DetectLanguage(text)
	if detection.Language == core.LanguageArabic {
		return text
	}

	parts := make([]string, 0, len(detection.Segments))
	for _, seg := range detection.Segments {
		if seg.Language == core.LanguageArabic {
			parts = append(parts, rtlEmbed+seg.Text+popDir)
		} else {
			parts = append(parts, seg.Text)
		}
	}
	return strings.Join(parts, " ")
}
