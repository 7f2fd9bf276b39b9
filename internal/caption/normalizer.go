package caption

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultSpamKeywords filters marketing lines out of captions. Matching is
// case-insensitive substring.
var DefaultSpamKeywords = []string{
	"kommentiere", "comment", "link in bio", "follow for more",
	"sichere dir jetzt", "kostenloses erstgespräch",
}

// pictographs covers emoticons, symbols and pictograph blocks plus the wide
// enclosed-characters span. Stripping them removes decoration that only
// confuses the models.
var pictographs = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x24C2, Hi: 0xFFFF, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10000, Hi: 0x1F251, Stride: 1},
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
		{Lo: 0x1F700, Hi: 0x1F77F, Stride: 1},
		{Lo: 0x1F780, Hi: 0x1F7FF, Stride: 1},
		{Lo: 0x1F800, Hi: 0x1F8FF, Stride: 1},
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1},
		{Lo: 0x1FA00, Hi: 0x1FA6F, Stride: 1},
		{Lo: 0x1FA70, Hi: 0x1FAFF, Stride: 1},
	},
}

var (
	tagPattern      = regexp.MustCompile(`[@#][\p{L}\p{N}_]+`)
	bulletPattern   = regexp.MustCompile(`(?m)^[•✅🔹*–-]\s*`)
	blankRunPattern = regexp.MustCompile(`\n\s*\n`)
)

// Normalizer cleans raw captions into a canonical form for the models.
// Normalize is pure and idempotent, so records cleaned by an earlier run
// come out unchanged.
type Normalizer struct {
	spamKeywords []string
}

func NewNormalizer(spamKeywords []string) *Normalizer {
	if len(spamKeywords) == 0 {
		spamKeywords = DefaultSpamKeywords
	}
	lowered := make([]string, len(spamKeywords))
	for i, kw := range spamKeywords {
		lowered[i] = strings.ToLower(kw)
	}
	return &Normalizer{spamKeywords: lowered}
}

func (n *Normalizer) Normalize(raw string) string {
	cleaned := norm.NFKC.String(raw)

	cleaned = strings.Map(func(r rune) rune {
		if unicode.Is(pictographs, r) {
			return -1
		}
		return r
	}, cleaned)

	cleaned = tagPattern.ReplaceAllString(cleaned, "")
	cleaned = n.dropSpamLines(cleaned)
	cleaned = bulletPattern.ReplaceAllString(cleaned, "- ")
	cleaned = blankRunPattern.ReplaceAllString(cleaned, "\n")
	return strings.TrimSpace(cleaned)
}

func (n *Normalizer) dropSpamLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		lower := strings.ToLower(line)
		spam := false
		for _, kw := range n.spamKeywords {
			if strings.Contains(lower, kw) {
				spam = true
				break
			}
		}
		if !spam {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
