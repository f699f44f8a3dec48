// Package catalog indexes map locations by every display name they have in
// the supported languages.
package catalog

import (
	"log/slog"
	"sort"

	"golang.org/x/text/language"

	"github.com/DivineRock/ffxiv-coord-importer/internal/model"
)

// DiagnosticKind classifies a row the builder did not insert.
type DiagnosticKind string

const (
	// Collision: the display name was already taken by an earlier row.
	Collision DiagnosticKind = "collision"
	// Gap: the row lacks data needed to build a location.
	Gap DiagnosticKind = "gap"
)

// Diagnostic describes one skipped row.
type Diagnostic struct {
	Kind       DiagnosticKind `json:"kind"`
	Language   string         `json:"language"`
	Name       string         `json:"name"`
	LocationID uint32         `json:"location_id"`
	Existing   uint32         `json:"existing_location_id,omitempty"` // for collisions
}

// Catalog maps display names to locations. It is immutable and safe for
// concurrent use.
type Catalog struct {
	byName      map[string]*model.Location
	byID        map[uint32]map[string]string // names per location, shared with byName
	diagnostics []Diagnostic
}

// Builder accumulates rows into a Catalog. It is not safe for concurrent use.
type Builder struct {
	byName      map[string]*model.Location
	byID        map[uint32]map[string]string
	diagnostics []Diagnostic
	logger      *slog.Logger
	done        bool
}

// NewBuilder returns an empty builder. A nil logger discards output.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{
		byName: make(map[string]*model.Location),
		byID:   make(map[uint32]map[string]string),
		logger: logger,
	}
}

// Add inserts row under its display name unless the name is already present.
// It reports whether the name was inserted. Skipped rows are recorded as
// diagnostics. Add after Finalize is a no-op.
func (b *Builder) Add(lang string, row model.PlaceNameRow) bool {
	if b.done {
		return false
	}

	if row.Name == "" || row.RegionID == 0 {
		b.diagnostics = append(b.diagnostics, Diagnostic{
			Kind: Gap, Language: lang, Name: row.Name, LocationID: row.LocationID,
		})
		b.logger.Warn("skipping place name without region",
			"language", lang, "name", row.Name, "location_id", row.LocationID)
		return false
	}

	if existing, ok := b.byName[row.Name]; ok {
		b.diagnostics = append(b.diagnostics, Diagnostic{
			Kind: Collision, Language: lang, Name: row.Name,
			LocationID: row.LocationID, Existing: existing.ID,
		})
		b.logger.Debug("map name already present",
			"language", lang, "name", row.Name, "location_id", row.LocationID)
		return false
	}

	names, ok := b.byID[row.LocationID]
	if !ok {
		names = make(map[string]string)
		b.byID[row.LocationID] = names
	}
	if _, ok := names[lang]; !ok {
		names[lang] = row.Name
	}

	b.logger.Debug("adding map", "language", lang, "name", row.Name, "location_id", row.LocationID)
	b.byName[row.Name] = &model.Location{
		ID:       row.LocationID,
		RegionID: row.RegionID,
		Names:    names,
	}
	return true
}

// Finalize hands the accumulated entries to an immutable Catalog. The builder
// accepts no further rows.
func (b *Builder) Finalize() *Catalog {
	b.done = true
	c := &Catalog{
		byName:      b.byName,
		byID:        b.byID,
		diagnostics: b.diagnostics,
	}
	b.byName, b.byID, b.diagnostics = nil, nil, nil
	return c
}

// Build indexes tables in the order of langs. Tables for languages outside
// langs are ignored; langs missing a table are logged and skipped.
func Build(langs []language.Tag, tables []model.LanguageTable, logger *slog.Logger) *Catalog {
	b := NewBuilder(logger)

	byLang := make(map[string][]model.LanguageTable, len(tables))
	for _, t := range tables {
		key := CanonicalLanguage(t.Language)
		byLang[key] = append(byLang[key], t)
	}

	for _, tag := range langs {
		key := CanonicalLanguage(tag.String())
		ts, ok := byLang[key]
		if !ok {
			b.logger.Warn("no place names for language", "language", key)
			continue
		}
		delete(byLang, key)
		for _, t := range ts {
			for _, row := range t.Rows {
				b.Add(key, row)
			}
		}
		b.logger.Debug("loaded map data", "language", key)
	}

	for key := range byLang {
		b.logger.Warn("ignoring place names for unsupported language", "language", key)
	}

	return b.Finalize()
}

// CanonicalLanguage normalizes a language code ("EN", "en-us") to its BCP 47
// base form. Unknown codes are returned unchanged.
func CanonicalLanguage(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	base, _ := tag.Base()
	return base.String()
}

// Lookup returns the location with exactly this display name.
func (c *Catalog) Lookup(name string) (model.Location, bool) {
	loc, ok := c.byName[name]
	if !ok {
		return model.Location{}, false
	}
	return clone(loc), true
}

func clone(loc *model.Location) model.Location {
	out := *loc
	out.Names = make(map[string]string, len(loc.Names))
	for k, v := range loc.Names {
		out.Names[k] = v
	}
	return out
}

// PlaceName returns the display name of location id in lang, falling back to
// any language the location has a name in.
func (c *Catalog) PlaceName(id uint32, lang string) (string, bool) {
	names, ok := c.byID[id]
	if !ok {
		return "", false
	}
	if name, ok := names[lang]; ok {
		return name, true
	}
	langs := make([]string, 0, len(names))
	for l := range names {
		langs = append(langs, l)
	}
	if len(langs) == 0 {
		return "", false
	}
	sort.Strings(langs)
	return names[langs[0]], true
}

// Len is the number of indexed display names.
func (c *Catalog) Len() int {
	return len(c.byName)
}

// Locations is the number of distinct locations.
func (c *Catalog) Locations() int {
	return len(c.byID)
}

// Diagnostics returns the rows skipped while building.
func (c *Catalog) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// Count returns how many diagnostics of kind were recorded.
func (c *Catalog) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range c.diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
