package caption

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_StripsEmoji(t *testing.T) {
	n := NewNormalizer(nil)
	out := n.Normalize("Leckere Pasta 🍝😍 zum Abendessen")
	assert.Equal(t, "Leckere Pasta  zum Abendessen", out)
}

func TestNormalize_RemovesTagsAndMentions(t *testing.T) {
	n := NewNormalizer(nil)
	out := n.Normalize("Rezept von @kochkanal #pasta #rezept")
	assert.Equal(t, "Rezept von", out)
}

func TestNormalize_DropsSpamLines(t *testing.T) {
	n := NewNormalizer(nil)
	raw := "Zutaten:\n500 g Mehl\nKommentiere REZEPT für den Link\nLink in Bio!\n2 Eier"
	out := n.Normalize(raw)
	assert.Equal(t, "Zutaten:\n500 g Mehl\n2 Eier", out)
}

func TestNormalize_CustomSpamKeywords(t *testing.T) {
	n := NewNormalizer([]string{"werbung"})
	raw := "Zutaten\nWERBUNG wegen Markennennung\nLink in Bio"
	out := n.Normalize(raw)
	assert.Equal(t, "Zutaten\nLink in Bio", out)
}

func TestNormalize_StandardizesBullets(t *testing.T) {
	n := NewNormalizer(nil)
	raw := "• Mehl\n– Zucker\n* Eier\n- Milch"
	out := n.Normalize(raw)
	assert.Equal(t, "- Mehl\n- Zucker\n- Eier\n- Milch", out)
}

func TestNormalize_CollapsesBlankRuns(t *testing.T) {
	n := NewNormalizer(nil)
	raw := "Zutaten\n\n\n500 g Mehl\n   \n2 Eier"
	out := n.Normalize(raw)
	assert.Equal(t, "Zutaten\n500 g Mehl\n2 Eier", out)
}

func TestNormalize_NFKC(t *testing.T) {
	n := NewNormalizer(nil)
	// fullwidth digits and ligature fold to ASCII
	out := n.Normalize("２５０ g Ｍehl")
	assert.Equal(t, "250 g Mehl", out)
}

func TestNormalize_TrimsWhitespace(t *testing.T) {
	n := NewNormalizer(nil)
	assert.Equal(t, "Mehl", n.Normalize("  \n Mehl \n  "))
}

func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer(nil)
	raw := "• Pasta 🍝 von @kochkanal\n\nKommentiere REZEPT\nZutaten:\n– 400 g Spaghetti"
	once := n.Normalize(raw)
	assert.Equal(t, once, n.Normalize(once))
}

func TestNormalize_Empty(t *testing.T) {
	n := NewNormalizer(nil)
	assert.Equal(t, "", n.Normalize(""))
	assert.Equal(t, "", n.Normalize("🍝😍"))
}
