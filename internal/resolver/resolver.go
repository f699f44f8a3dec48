// Package resolver joins parsed sightings against the location catalog and
// renders the output lines.
package resolver

import (
	"fmt"

	"github.com/DivineRock/ffxiv-coord-importer/internal/maplink"
	"github.com/DivineRock/ffxiv-coord-importer/internal/model"
)

// Locations is the read side of the catalog.
type Locations interface {
	Lookup(name string) (model.Location, bool)
}

// Output is one rendered line, with the data it was built from.
type Output struct {
	Text       string  `json:"text"`
	Resolved   bool    `json:"resolved"`
	Line       string  `json:"line"`
	Grammar    string  `json:"grammar"`
	MapName    string  `json:"map_name"`
	RegionID   uint32  `json:"region_id,omitempty"`
	LocationID uint32  `json:"location_id,omitempty"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Instance   string  `json:"instance,omitempty"`
	Mark       string  `json:"mark"`
}

// Resolver renders sightings.
type Resolver struct {
	Catalog  Locations
	Renderer maplink.Renderer
}

// Resolve looks the sighting's map up by name. Unknown maps produce a
// diagnostic line quoting the input.
func (r *Resolver) Resolve(s model.Sighting) Output {
	out := Output{
		Line:     s.Line,
		Grammar:  s.Grammar,
		MapName:  s.MapName,
		X:        s.X,
		Y:        s.Y,
		Instance: s.Instance,
		Mark:     s.MarkName,
	}

	loc, ok := r.Catalog.Lookup(s.MapName)
	if !ok {
		out.Text = fmt.Sprintf("Input text \"%s\" invalid. Could not find a matching map for %s.", s.Line, s.RawMap)
		return out
	}

	link, coords := r.Renderer.Render(loc.RegionID, loc.ID, s.X, s.Y)
	out.Resolved = true
	out.RegionID = loc.RegionID
	out.LocationID = loc.ID
	out.Text = fmt.Sprintf("%s%s %s (%s)", link, s.Instance, coords, s.MarkName)
	return out
}
