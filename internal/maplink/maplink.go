// Package maplink renders the link and coordinate strings that make up a
// resolved sighting line.
package maplink

import (
	"fmt"
	"strconv"
)

// Arrow is the glyph the game prints in front of a map link.
const Arrow = "\ue0bb"

// Renderer turns a location and a position into a link token and a
// human-readable coordinate string.
type Renderer interface {
	Render(regionID, locationID uint32, x, y float64) (link, coords string)
}

// PlaceNamer resolves a location id to a display name.
type PlaceNamer interface {
	PlaceName(id uint32, lang string) (string, bool)
}

// TextRenderer renders plain-text links: the arrow glyph followed by the place
// name in Language. Without a name it falls back to map#<region>/<location>.
type TextRenderer struct {
	Names    PlaceNamer
	Language string
}

// Render implements Renderer.
func (r TextRenderer) Render(regionID, locationID uint32, x, y float64) (string, string) {
	return r.link(regionID, locationID), Coords(x, y)
}

func (r TextRenderer) link(regionID, locationID uint32) string {
	if r.Names != nil {
		if name, ok := r.Names.PlaceName(locationID, r.Language); ok {
			return Arrow + name
		}
	}
	return fmt.Sprintf("map#%d/%d", regionID, locationID)
}

// Coords formats a position the way the game's map flags do: "( 12.3 , 45.6 )".
func Coords(x, y float64) string {
	return "( " + strconv.FormatFloat(x, 'f', 1, 64) + " , " + strconv.FormatFloat(y, 'f', 1, 64) + " )"
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(regionID, locationID uint32, x, y float64) (string, string)

// Render implements Renderer.
func (f RendererFunc) Render(regionID, locationID uint32, x, y float64) (string, string) {
	return f(regionID, locationID, x, y)
}
