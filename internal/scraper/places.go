package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/DivineRock/ffxiv-coord-importer/internal/model"
)

// Header names accepted for each column, after lowercasing and collapsing
// spaces, dashes and underscores.
var columnAliases = map[string][]string{
	"name":        {"name", "placename", "singular"},
	"location_id": {"locationid", "id", "#", "key"},
	"region_id":   {"regionid", "territory", "territoryid", "region", "map"},
}

// FetchPlaceNames downloads an HTML page and parses its place-name table.
func FetchPlaceNames(ctx context.Context, url string, rl *RateLimiter) ([]model.PlaceNameRow, error) {
	if rl != nil {
		if err := rl.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching place names: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("place names returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing place names HTML: %w", err)
	}

	return ParsePlaceNameTable(doc)
}

// ParsePlaceNameTable extracts rows from the first table whose header names a
// place-name, location-id and region-id column. Cells that do not hold a
// number leave the id at zero, which the catalog reports as a gap.
func ParsePlaceNameTable(doc *goquery.Document) ([]model.PlaceNameRow, error) {
	var rows []model.PlaceNameRow
	found := false

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		cols, ok := headerColumns(table)
		if !ok {
			return true
		}
		found = true

		table.Find("tr").Slice(1, goquery.ToEnd).Each(func(_ int, tr *goquery.Selection) {
			cells := tr.Find("td")
			if cells.Length() == 0 {
				return
			}
			cell := func(col string) string {
				return strings.TrimSpace(cells.Eq(cols[col]).Text())
			}
			rows = append(rows, model.PlaceNameRow{
				Name:       cell("name"),
				LocationID: parseID(cell("location_id")),
				RegionID:   parseID(cell("region_id")),
			})
		})
		return false
	})

	if !found {
		return nil, fmt.Errorf("no place-name table found")
	}
	return rows, nil
}

func headerColumns(table *goquery.Selection) (map[string]int, bool) {
	cols := make(map[string]int, len(columnAliases))
	table.Find("tr").First().Find("th, td").Each(func(i int, th *goquery.Selection) {
		h := normalizeHeader(th.Text())
		for col, aliases := range columnAliases {
			if _, done := cols[col]; done {
				continue
			}
			for _, a := range aliases {
				if h == a {
					cols[col] = i
					return
				}
			}
		}
	})
	return cols, len(cols) == len(columnAliases)
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

func parseID(s string) uint32 {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}
