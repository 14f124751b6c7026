package worldcontent

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/lieuweberg/bungie-go"
	"github.com/pkg/errors"
)

// FetchComponent downloads the JSON file holding every definition of type T
// for locale, keyed by hash. It needs no world database.
func FetchComponent[T bungie.Definition](ctx context.Context, c *bungie.Client, m *bungie.Manifest, locale string) (map[uint32]T, error) {
	var zero T
	entityType := zero.EntityType()

	contentPath, ok := m.ComponentPath(locale, entityType)
	if !ok {
		return nil, errors.Wrapf(ErrNoContent, "%s component for locale %q", entityType, locale)
	}

	body, err := c.Download(ctx, contentPath)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var byKey map[string]T
	if err := json.NewDecoder(body).Decode(&byKey); err != nil {
		return nil, errors.Wrapf(err, "decoding %s component", entityType)
	}

	defs := make(map[uint32]T, len(byKey))
	for key, def := range byKey {
		hash, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "%s component key %q", entityType, key)
		}
		defs[uint32(hash)] = def
	}
	return defs, nil
}
