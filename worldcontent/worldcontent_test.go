package worldcontent

import (
	"archive/zip"
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/lieuweberg/bungie-go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	worldPath     = "/common/destiny2_content/sqlite/en/world_sql_content_abc.content"
	componentPath = "/common/destiny2_content/json/en/DestinyClassDefinition-abc.json"

	titanHash   uint32 = 3655393761
	hunterHash  uint32 = 671679327
	missingHash uint32 = 1
)

var manifest = &bungie.Manifest{
	Version:                 "1.2.3",
	MobileWorldContentPaths: map[string]string{"en": worldPath},
	JSONWorldComponentContentPaths: map[string]map[string]string{
		"en": {bungie.EntityClass: componentPath},
	},
}

// worldDatabase builds a small world database the way Bungie lays it out and
// returns it zipped.
func worldDatabase(t *testing.T) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "world_sql_content_abc.content")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)

	_, err = db.Exec(`CREATE TABLE DestinyClassDefinition (id INTEGER PRIMARY KEY NOT NULL, json BLOB)`)
	require.NoError(t, err)
	for hash, name := range map[uint32]string{titanHash: "Titan", hunterHash: "Hunter"} {
		_, err = db.Exec(`INSERT INTO DestinyClassDefinition (id, json) VALUES (?, ?)`,
			int32(hash), `{"hash":`+strconv.FormatUint(uint64(hash), 10)+`,"displayProperties":{"name":"`+name+`"},"classType":0}`)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("world_sql_content_abc.content")
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func contentServer(t *testing.T, routes func(r chi.Router)) *bungie.Client {
	t.Helper()
	r := chi.NewRouter()
	routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	cfg := bungie.DefaultConfig()
	cfg.APIKey = "0123456789abcdef"
	cfg.BaseURL = srv.URL + "/Platform"
	cfg.RootURL = srv.URL
	c, err := bungie.NewClient(cfg, bungie.WithRegisterer(prometheus.NewRegistry()))
	require.NoError(t, err)
	return c
}

func TestDownloadAndLookup(t *testing.T) {
	archive := worldDatabase(t)
	c := contentServer(t, func(r chi.Router) {
		r.Get(worldPath, func(w http.ResponseWriter, req *http.Request) {
			w.Write(archive)
		})
	})

	dir := t.TempDir()
	path, err := Download(context.Background(), c, manifest, "en", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "world_sql_content_abc.content"), path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary archive should be removed")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, path, db.Path())

	// titanHash does not fit in an int32, so its id is negative
	titan, err := Lookup[bungie.ClassDefinition](context.Background(), db, titanHash)
	require.NoError(t, err)
	assert.Equal(t, titanHash, titan.Hash)
	assert.Equal(t, "Titan", titan.DisplayProperties.Name)

	hunter, err := Lookup[bungie.ClassDefinition](context.Background(), db, hunterHash)
	require.NoError(t, err)
	assert.Equal(t, "Hunter", hunter.DisplayProperties.Name)

	_, err = Lookup[bungie.ClassDefinition](context.Background(), db, missingHash)
	assert.True(t, errors.Is(err, ErrNotFound))

	raw, err := db.LookupRaw(context.Background(), bungie.EntityClass, hunterHash)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Hunter"`)

	_, err = db.LookupRaw(context.Background(), "DestinyClassDefinition; DROP TABLE x", hunterHash)
	assert.Error(t, err)

	_, err = Lookup[bungie.RecordDefinition](context.Background(), db, hunterHash)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestDownloadUnknownLocale(t *testing.T) {
	c := contentServer(t, func(r chi.Router) {})

	_, err := Download(context.Background(), c, manifest, "tlh", t.TempDir())
	assert.True(t, errors.Is(err, ErrNoContent))
}

func TestDownloadRejectsUnexpectedArchives(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"a.content", "b.content"} {
		_, err := zw.Create(name)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	c := contentServer(t, func(r chi.Router) {
		r.Get(worldPath, func(w http.ResponseWriter, req *http.Request) {
			w.Write(buf.Bytes())
		})
	})

	_, err := Download(context.Background(), c, manifest, "en", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "holds 2 files")
}

func TestDownloadStatusError(t *testing.T) {
	c := contentServer(t, func(r chi.Router) {})

	_, err := Download(context.Background(), c, manifest, "en", t.TempDir())
	var serr *bungie.StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
}

func TestOpenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.content")
	_, err := Open(path)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "Open must not create the file")
}

func TestFetchComponent(t *testing.T) {
	c := contentServer(t, func(r chi.Router) {
		r.Get(componentPath, func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`{
				"3655393761": {"hash": 3655393761, "classType": 0, "displayProperties": {"name": "Titan"}},
				"671679327": {"hash": 671679327, "classType": 1, "displayProperties": {"name": "Hunter"}}
			}`))
		})
	})

	defs, err := FetchComponent[bungie.ClassDefinition](context.Background(), c, manifest, "en")
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "Titan", defs[titanHash].DisplayProperties.Name)
	assert.Equal(t, hunterHash, defs[hunterHash].Hash)

	_, err = FetchComponent[bungie.VendorDefinition](context.Background(), c, manifest, "en")
	assert.True(t, errors.Is(err, ErrNoContent))
}

func TestFetchComponentBadKey(t *testing.T) {
	c := contentServer(t, func(r chi.Router) {
		r.Get(componentPath, func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`{"titan": {"hash": 1}}`))
		})
	})

	_, err := FetchComponent[bungie.ClassDefinition](context.Background(), c, manifest, "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"titan"`)
}
