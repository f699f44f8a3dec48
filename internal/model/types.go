package model

// PlaceNameRow is one row of a language's place-name table as supplied by the
// catalog source: a display name and the ids it resolves to.
type PlaceNameRow struct {
	Name       string `json:"name" yaml:"name"`
	LocationID uint32 `json:"location_id" yaml:"location_id"`
	RegionID   uint32 `json:"region_id" yaml:"region_id"`
}

// LanguageTable holds every place-name row for one language, in source order.
type LanguageTable struct {
	Language string         `json:"language" yaml:"language"`
	Rows     []PlaceNameRow `json:"rows" yaml:"rows"`
}

// Location is a catalog entry for one in-game map.
type Location struct {
	ID       uint32            `json:"id"`
	RegionID uint32            `json:"region_id"`
	Names    map[string]string `json:"names"` // language -> display name
}

// Sighting is a line reduced to its fields by one of the grammars.
type Sighting struct {
	Line     string  `json:"line"`
	Grammar  string  `json:"grammar"`
	RawMap   string  `json:"raw_map"` // map_name capture before trimming
	MapName  string  `json:"map_name"`
	MarkName string  `json:"mark_name"`
	Instance string  `json:"instance,omitempty"` // empty or one of the instance glyphs
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}
