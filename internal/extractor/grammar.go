package extractor

import (
	"fmt"
	"regexp"
	"strings"
)

// Capture group names shared by all grammars.
const (
	FieldMapName  = "map_name"
	FieldMarkName = "mark_name"
	FieldInstance = "instance_number"
	FieldX        = "x_coord"
	FieldY        = "y_coord"
	FieldLoc      = "loc"
	FieldWorld    = "world_name"
)

// notAvailable is what Bear prints in place of coordinates it does not have.
const notAvailable = "NOT AVAILABLE"

// basePatterns are the fragments referenced from grammar patterns as {NAME}.
// WORD mirrors a Unicode-aware \w; Go's \w only covers ASCII and map names are
// pasted in Japanese, German and French as well. SP does the same for \s so
// that no-break and ideographic spaces separate tokens. Both are class bodies
// and must be wrapped in [...] where used.
var basePatterns = map[string]string{
	"WORD":  `\p{L}\p{Mn}\p{Nd}\p{Pc}`,
	"SP":    `\s\p{Z}`,
	"NUM":   `[\d\.]+`,
	"ARROW": "\ue0bb",
	"GLYPH": Instance1 + "|" + Instance2 + "|" + Instance3,
}

// Grammar is one dialect of pasted sighting lines.
type Grammar struct {
	Name    string
	Pattern string // pattern with {PLACEHOLDER} fragments
	re      *regexp.Regexp
}

// Fields holds a grammar's captures keyed by group name.
type Fields map[string]string

// Grammars in the order they are tried. Order matters: the first match wins.
var Grammars = compileAll([]Grammar{
	// "(Maybe: Storsie) \ue0bbLabyrinthos\ue0b2 ( 17  , 9.6 )"
	{
		Name: "siren",
		Pattern: `^[{SP}]*\(Maybe:[{SP}]*(?P<mark_name>[{WORD}{SP}'\-]+)\)[{SP}]+{ARROW}` +
			`(?P<map_name>[{WORD}{SP}'\-]+)(?P<instance_number>{GLYPH})?[{SP}]\([{SP}]*` +
			`(?P<x_coord>{NUM})[{SP}]*,[{SP}]*(?P<y_coord>{NUM})[{SP}]*\)`,
	},
	// "Raiden [S]: Gamma - Yanxia ( 23.6, 11.4 )"
	{
		Name: "faloop",
		Pattern: `^[{SP}]*(?P<world_name>[{WORD}]+)[{SP}]+\[S\]: ` +
			`(?P<mark_name>[{WORD}'\-](?:[{WORD}{SP}'\-]*[{WORD}'\-])?)[{SP}]*-[{SP}]*` +
			`(?P<map_name>[{WORD}{SP}'\-]+)[{SP}]+\(?(?P<instance_number>[123]?)\)?[{SP}]*\([{SP}]*` +
			`(?P<x_coord>{NUM})[{SP}]*,[{SP}]*(?P<y_coord>{NUM})[{SP}]*\)`,
	},
	// "Labyrinthos ( 16.5 , 16.8 ) Storsie"
	{
		Name: "bear",
		Pattern: `^[{SP}]*(?P<map_name>[{WORD}{SP}'\-]+?)[{SP}]+(?P<instance_number>[123])?[{SP}]*\([{SP}]*` +
			`(?P<loc>(?P<x_coord>{NUM})[{SP}]*,[{SP}]*(?P<y_coord>{NUM})|NOT AVAILABLE)[{SP}]*\)[{SP}]*` +
			`(?P<mark_name>[{WORD}{SP}'\-]+)[{SP}]*$`,
	},
})

func compileAll(grammars []Grammar) []Grammar {
	for i := range grammars {
		grammars[i].re = regexp.MustCompile(expand(grammars[i].Pattern))
	}
	return grammars
}

// expand replaces {NAME} with the matching base pattern.
func expand(pattern string) string {
	result := pattern
	for name, fragment := range basePatterns {
		result = strings.ReplaceAll(result, "{"+name+"}", fragment)
	}
	return result
}

// Expanded returns the compiled regular expression source.
func (g Grammar) Expanded() string {
	return g.re.String()
}

// Match applies the grammar to line and returns its named captures.
// Groups that did not participate in the match are present with an empty value.
func (g Grammar) Match(line string) (Fields, bool) {
	m := g.re.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	fields := make(Fields, len(m))
	for i, name := range g.re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		fields[name] = m[i]
	}
	return fields, true
}

// String renders the captures in group order, for logs.
func (f Fields) String() string {
	keys := []string{FieldWorld, FieldMarkName, FieldMapName, FieldInstance, FieldLoc, FieldX, FieldY}
	var b strings.Builder
	for _, k := range keys {
		v, ok := f[k]
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "(%s:%s)", k, v)
	}
	return b.String()
}
