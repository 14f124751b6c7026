package bungie

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ManifestEndpoint is where the manifest lives below Config.BaseURL.
const ManifestEndpoint = "/Destiny2/Manifest/"

// GetManifest fetches the current manifest, which points at every content
// database and the definitions version.
func (c *Client) GetManifest(ctx context.Context) (*Envelope[Manifest], error) {
	return call[Manifest](ctx, c, "manifest", ManifestEndpoint)
}

func entityDefinitionEndpoint(entityType string, hash uint32) string {
	return fmt.Sprintf("%s%s/%d/", ManifestEndpoint, url.PathEscape(entityType), hash)
}

// GetEntityDefinition fetches a single definition of type T by hash.
func GetEntityDefinition[T Definition](ctx context.Context, c *Client, hash uint32) (*Envelope[T], error) {
	var zero T
	return call[T](ctx, c, "entity_definition", entityDefinitionEndpoint(zero.EntityType(), hash))
}

// GetRawEntityDefinition is GetEntityDefinition for entity types this package
// has no record type for.
func (c *Client) GetRawEntityDefinition(ctx context.Context, entityType string, hash uint32) (*Envelope[json.RawMessage], error) {
	return call[json.RawMessage](ctx, c, "entity_definition", entityDefinitionEndpoint(entityType, hash))
}

// GetEntityDefinitions fetches several definitions with at most limit requests
// in flight. The first transport or decode error cancels the remaining
// requests and is returned. Envelopes are returned unchecked, keyed by hash.
func GetEntityDefinitions[T Definition](ctx context.Context, c *Client, hashes []uint32, limit int) (map[uint32]*Envelope[T], error) {
	if limit <= 0 {
		limit = 1
	}

	var (
		mu   sync.Mutex
		out  = make(map[uint32]*Envelope[T], len(hashes))
		seen = make(map[uint32]bool, len(hashes))
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, hash := range hashes {
		if seen[hash] {
			continue
		}
		seen[hash] = true
		hash := hash
		g.Go(func() error {
			env, err := GetEntityDefinition[T](ctx, c, hash)
			if err != nil {
				return errors.Wrapf(err, "definition %d", hash)
			}
			mu.Lock()
			out[hash] = env
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetLinkedProfiles lists the Destiny profiles linked to a membership. Pass
// MembershipBungieNext with a Bungie.net membership ID to find every platform.
func (c *Client) GetLinkedProfiles(ctx context.Context, msType BungieMembershipType, msID string) (*Envelope[LinkedProfiles], error) {
	endpoint := fmt.Sprintf("/Destiny2/%d/Profile/%s/LinkedProfiles/", msType, url.PathEscape(msID))
	return call[LinkedProfiles](ctx, c, "linked_profiles", endpoint)
}

// GetProfile fetches the requested components of a profile. Components not
// asked for are nil in the response.
func (c *Client) GetProfile(ctx context.Context, msType BungieMembershipType, msID string, components ...ComponentType) (*Envelope[ProfileResponse], error) {
	endpoint := fmt.Sprintf("/Destiny2/%d/Profile/%s/?components=%s", msType, url.PathEscape(msID), joinComponents(components))
	return call[ProfileResponse](ctx, c, "profile", endpoint)
}

// GetCharacter fetches the requested components of one character.
func (c *Client) GetCharacter(ctx context.Context, msType BungieMembershipType, msID, charID string, components ...ComponentType) (*Envelope[CharacterResponse], error) {
	endpoint := fmt.Sprintf("/Destiny2/%d/Profile/%s/Character/%s/?components=%s",
		msType, url.PathEscape(msID), url.PathEscape(charID), joinComponents(components))
	return call[CharacterResponse](ctx, c, "character", endpoint)
}
