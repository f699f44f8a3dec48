package extractor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/DivineRock/ffxiv-coord-importer/internal/model"
)

// ErrCoordinate means a grammar matched but its coordinate capture is not a
// number. The character classes should make this unreachable.
var ErrCoordinate = errors.New("unparseable coordinate")

// Kind is the outcome of classifying a line.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindSighting
	KindSkip
)

func (k Kind) String() string {
	switch k {
	case KindSighting:
		return "sighting"
	case KindSkip:
		return "skip"
	default:
		return "unrecognized"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Result is the classification of a single line.
// Grammar names the grammar that matched, if any; Sighting is set only for
// KindSighting.
type Result struct {
	Kind     Kind           `json:"kind"`
	Grammar  string         `json:"grammar,omitempty"`
	Fields   Fields         `json:"-"`
	Sighting model.Sighting `json:"sighting"`
}

// SplitLines breaks pasted text into trimmed, NFC-normalized, non-empty lines.
func SplitLines(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\r' || r == '\n'
	})
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		lines = append(lines, norm.NFC.String(p))
	}
	return lines
}

// Classify runs the grammars against line in order and converts the first
// match into a sighting.
func Classify(line string) (Result, error) {
	for _, g := range Grammars {
		fields, ok := g.Match(line)
		if !ok {
			continue
		}
		return build(line, g.Name, fields)
	}
	return Result{Kind: KindUnrecognized}, nil
}

func build(line, grammar string, fields Fields) (Result, error) {
	res := Result{Grammar: grammar, Fields: fields}

	if fields[FieldLoc] == notAvailable {
		res.Kind = KindSkip
		return res, nil
	}

	x, err := strconv.ParseFloat(fields[FieldX], 64)
	if err != nil {
		return res, fmt.Errorf("%s x %q: %w", grammar, fields[FieldX], ErrCoordinate)
	}
	y, err := strconv.ParseFloat(fields[FieldY], 64)
	if err != nil {
		return res, fmt.Errorf("%s y %q: %w", grammar, fields[FieldY], ErrCoordinate)
	}

	res.Kind = KindSighting
	res.Sighting = model.Sighting{
		Line:     line,
		Grammar:  grammar,
		RawMap:   fields[FieldMapName],
		MapName:  strings.TrimSpace(fields[FieldMapName]),
		MarkName: fields[FieldMarkName],
		Instance: NormalizeInstance(fields[FieldInstance]),
		X:        x,
		Y:        y,
	}
	return res, nil
}

// Attempt records one grammar's try at a line.
type Attempt struct {
	Grammar  string `json:"grammar"`
	Pattern  string `json:"pattern"`
	Matched  bool   `json:"matched"`
	Captures Fields `json:"captures,omitempty"`
}

// Trace is the full record of classifying one line.
type Trace struct {
	Line     string    `json:"line"`
	Attempts []Attempt `json:"attempts"`
	Result   Result    `json:"result"`
	Err      error     `json:"-"`
}

// ClassifyWithTrace behaves like Classify but tries every grammar and keeps the
// captures of each, so that overlapping dialects can be inspected. The result
// still comes from the first match.
func ClassifyWithTrace(line string) Trace {
	tr := Trace{
		Line:     line,
		Attempts: make([]Attempt, 0, len(Grammars)),
		Result:   Result{Kind: KindUnrecognized},
	}
	decided := false
	for _, g := range Grammars {
		fields, ok := g.Match(line)
		tr.Attempts = append(tr.Attempts, Attempt{
			Grammar:  g.Name,
			Pattern:  g.Expanded(),
			Matched:  ok,
			Captures: fields,
		})
		if ok && !decided {
			decided = true
			tr.Result, tr.Err = build(line, g.Name, fields)
		}
	}
	return tr
}
