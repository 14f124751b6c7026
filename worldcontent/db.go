package worldcontent

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/lieuweberg/bungie-go"
	"github.com/pkg/errors"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a table has no row for a hash.
var ErrNotFound = errors.New("definition not found")

// Table names are entity type names, which are interpolated into queries.
var tableName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// DB is an opened world database. Every entity type has its own table of
// (id, json) rows.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens a world database produced by Download. It does not create
// missing files.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(err, "opening world content database")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening world content database %s", path)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "opening world content database %s", path)
	}
	return &DB{db: db, path: path}, nil
}

func (d *DB) Path() string {
	return d.path
}

func (d *DB) Close() error {
	return d.db.Close()
}

// LookupRaw returns the JSON of the entityType definition with the given
// hash, as stored.
func (d *DB) LookupRaw(ctx context.Context, entityType string, hash uint32) (json.RawMessage, error) {
	if !tableName.MatchString(entityType) {
		return nil, errors.Errorf("invalid entity type %q", entityType)
	}

	// ids are stored as the signed reinterpretation of the hash
	id := int32(hash)
	var raw string
	err := d.db.QueryRowContext(ctx, fmt.Sprintf("SELECT json FROM %s WHERE id = ?", entityType), id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "%s %d", entityType, hash)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s %d", entityType, hash)
	}
	return json.RawMessage(raw), nil
}

// Lookup reads the definition of type T with the given hash.
func Lookup[T bungie.Definition](ctx context.Context, d *DB, hash uint32) (T, error) {
	var def T
	raw, err := d.LookupRaw(ctx, def.EntityType(), hash)
	if err != nil {
		return def, err
	}
	if err := json.Unmarshal(raw, &def); err != nil {
		var zero T
		return zero, errors.Wrapf(err, "decoding %s %d", def.EntityType(), hash)
	}
	return def, nil
}
