package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DivineRock/ffxiv-coord-importer/internal/model"
)

// SourceFile is the on-disk layout of a place-name export:
//
//	languages:
//	  - language: en
//	    rows:
//	      - {name: Labyrinthos, location_id: 695, region_id: 956}
type SourceFile struct {
	Languages []model.LanguageTable `yaml:"languages"`
}

// LoadFile reads per-language place-name tables from a YAML file.
func LoadFile(path string) ([]model.LanguageTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %s: %w", path, err)
	}
	return ParseSource(data)
}

// ParseSource decodes a YAML place-name export.
func ParseSource(data []byte) ([]model.LanguageTable, error) {
	var src SourceFile
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	for i, t := range src.Languages {
		if t.Language == "" {
			return nil, fmt.Errorf("catalog table %d has no language", i)
		}
		src.Languages[i].Language = CanonicalLanguage(t.Language)
	}
	return src.Languages, nil
}
