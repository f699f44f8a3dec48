package extractor

// Instance glyphs as rendered by the game font (private use area).
const (
	Instance1 = "\ue0b1"
	Instance2 = "\ue0b2"
	Instance3 = "\ue0b3"
)

var instanceGlyphs = map[string]string{
	"1": Instance1,
	"2": Instance2,
	"3": Instance3,
}

// NormalizeInstance maps the digits 1-3 to their instance glyph. Any other
// value, including an empty string or a glyph, is returned unchanged.
func NormalizeInstance(v string) string {
	if glyph, ok := instanceGlyphs[v]; ok {
		return glyph
	}
	return v
}
