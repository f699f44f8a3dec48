package resolver

import (
	"log/slog"

	"github.com/DivineRock/ffxiv-coord-importer/internal/extractor"
)

// Stats counts what happened to each line of an import.
type Stats struct {
	Lines        int `json:"lines"`
	Resolved     int `json:"resolved"`
	Unresolved   int `json:"unresolved"`
	Skipped      int `json:"skipped"`
	Unrecognized int `json:"unrecognized"`
	Failed       int `json:"failed"`
}

// ImportResult holds the output lines of one import in input order.
type ImportResult struct {
	Outputs []Output `json:"outputs"`
	Stats   Stats    `json:"stats"`
}

// Texts returns the rendered lines.
func (r ImportResult) Texts() []string {
	texts := make([]string, len(r.Outputs))
	for i, o := range r.Outputs {
		texts[i] = o.Text
	}
	return texts
}

// Importer is the entry point for pasted text. It holds no per-call state and
// may be shared between goroutines as long as its Resolver's collaborators can.
type Importer struct {
	Resolver *Resolver
	Logger   *slog.Logger
}

// NewImporter returns an Importer. A nil logger discards output.
func NewImporter(r *Resolver, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Importer{Resolver: r, Logger: logger}
}

// Import classifies and resolves every line of text. A line that fails never
// stops the lines after it.
func (im *Importer) Import(text string) ImportResult {
	var res ImportResult

	for _, line := range extractor.SplitLines(text) {
		res.Stats.Lines++

		cls, err := extractor.Classify(line)
		if err != nil {
			res.Stats.Failed++
			im.Logger.Error("coordinate capture did not parse", "line", line, "grammar", cls.Grammar, "error", err)
			continue
		}

		switch cls.Kind {
		case extractor.KindUnrecognized:
			res.Stats.Unrecognized++
			im.Logger.Error("unrecognized input line", "line", line)
			continue
		case extractor.KindSkip:
			res.Stats.Skipped++
			im.Logger.Debug("no coordinates available, skipping", "line", line, "grammar", cls.Grammar)
			continue
		}

		im.Logger.Debug("matched line", "grammar", cls.Grammar, "captures", cls.Fields.String())

		out := im.Resolver.Resolve(cls.Sighting)
		if out.Resolved {
			res.Stats.Resolved++
		} else {
			res.Stats.Unresolved++
			im.Logger.Warn("map name not in catalog", "line", line, "map", cls.Sighting.MapName)
		}
		res.Outputs = append(res.Outputs, out)
	}

	return res
}
