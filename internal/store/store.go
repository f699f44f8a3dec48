package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/duckdb/duckdb-go/v2"
	_ "modernc.org/sqlite"

	"github.com/DivineRock/ffxiv-coord-importer/internal/model"
)

// Supported drivers and the file each one keeps in the data directory.
var dbFiles = map[string]string{
	"duckdb": "coordimport.duckdb",
	"sqlite": "coordimport.db",
}

// Store persists per-language place-name tables.
type Store struct {
	DB      *sql.DB
	DataDir string
	Driver  string

	sb squirrel.StatementBuilderType
}

// New opens (or creates) a database in the given data directory using driver
// ("duckdb" or "sqlite").
func New(dataDir, driver string) (*Store, error) {
	file, ok := dbFiles[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open(driver, filepath.Join(dataDir, file))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", driver, err)
	}

	s := &Store{
		DB:      db,
		DataDir: dataDir,
		Driver:  driver,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS place_names (
			language TEXT NOT NULL,
			seq INTEGER NOT NULL,
			name TEXT NOT NULL,
			location_id BIGINT NOT NULL,
			region_id BIGINT NOT NULL,
			PRIMARY KEY (language, seq)
		)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration %q: %w", stmt[:40], err)
		}
	}

	return nil
}

// WriteLanguageTable replaces all rows stored for the table's language and
// records where they came from. Row order is preserved.
func (s *Store) WriteLanguageTable(t model.LanguageTable, source string) error {
	if t.Language == "" {
		return fmt.Errorf("language table has no language")
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	del, args, err := s.sb.Delete("place_names").Where(squirrel.Eq{"language": t.Language}).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(del, args...); err != nil {
		return fmt.Errorf("clearing %s: %w", t.Language, err)
	}

	// One prepared statement for all rows; the builder only supplies the SQL.
	ins, _, err := s.sb.Insert("place_names").
		Columns("language", "seq", "name", "location_id", "region_id").
		Values(nil, nil, nil, nil, nil).
		ToSql()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(ins)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, row := range t.Rows {
		if _, err := stmt.Exec(t.Language, i, row.Name, row.LocationID, row.RegionID); err != nil {
			return fmt.Errorf("inserting %s row %d: %w", t.Language, i, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for key, value := range map[string]string{
		"loaded_at:" + t.Language: now,
		"source:" + t.Language:    source,
	} {
		q, args, err := s.sb.Insert("meta").Options("OR REPLACE").
			Columns("key", "value").Values(key, value).ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(q, args...); err != nil {
			return fmt.Errorf("writing meta %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// ReadTables loads every stored language table, languages sorted by code and
// rows in insertion order.
func (s *Store) ReadTables() ([]model.LanguageTable, error) {
	q, args, err := s.sb.Select("language", "name", "location_id", "region_id").
		From("place_names").
		OrderBy("language", "seq").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []model.LanguageTable
	for rows.Next() {
		var lang string
		var row model.PlaceNameRow
		if err := rows.Scan(&lang, &row.Name, &row.LocationID, &row.RegionID); err != nil {
			return nil, err
		}
		if n := len(tables); n == 0 || tables[n-1].Language != lang {
			tables = append(tables, model.LanguageTable{Language: lang})
		}
		last := &tables[len(tables)-1]
		last.Rows = append(last.Rows, row)
	}
	return tables, rows.Err()
}

// LanguageStatus summarizes one stored language.
type LanguageStatus struct {
	Language string `json:"language"`
	Rows     int    `json:"rows"`
	LoadedAt string `json:"loaded_at,omitempty"`
	Source   string `json:"source,omitempty"`
}

// Status returns row counts and load metadata per language, sorted by code.
func (s *Store) Status() ([]LanguageStatus, error) {
	q, args, err := s.sb.Select("language", "COUNT(*)").
		From("place_names").
		GroupBy("language").
		OrderBy("language").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LanguageStatus
	for rows.Next() {
		var ls LanguageStatus
		if err := rows.Scan(&ls.Language, &ls.Rows); err != nil {
			return nil, err
		}
		out = append(out, ls)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].LoadedAt = s.meta("loaded_at:" + out[i].Language)
		out[i].Source = s.meta("source:" + out[i].Language)
	}
	return out, nil
}

// RowCount returns the number of stored place-name rows.
func (s *Store) RowCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM place_names").Scan(&n)
	return n
}

func (s *Store) meta(key string) string {
	q, args, err := s.sb.Select("value").From("meta").Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return ""
	}
	var v sql.NullString
	s.DB.QueryRow(q, args...).Scan(&v)
	return v.String
}
