package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func platform(t *testing.T, routes func(r chi.Router)) {
	t.Helper()
	r := chi.NewRouter()
	routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	t.Setenv("BUNGIE_API_KEY", "key")
	t.Setenv("BUNGIE_BASE_URL", srv.URL+"/Platform")
	t.Setenv("BUNGIE_ROOT_URL", srv.URL)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func envelope(code int, status string, throttle int, response string) string {
	return fmt.Sprintf(`{"Response":%s,"ErrorCode":%d,"ThrottleSeconds":%d,"ErrorStatus":%q,"Message":"Ok","MessageData":{}}`,
		response, code, throttle, status)
}

func TestDefinitionCommand(t *testing.T) {
	var ua string
	platform(t, func(r chi.Router) {
		r.Get("/Platform/Destiny2/Manifest/DestinyPlaceDefinition/2961497387/", func(w http.ResponseWriter, req *http.Request) {
			ua = req.Header.Get("User-Agent")
			w.Write([]byte(envelope(1, "Success", 5, `{"hash":2961497387,"displayProperties":{"name":"Earth"}}`)))
		})
	})

	out, err := run(t, "definition", "DestinyPlaceDefinition", "2961497387")
	require.NoError(t, err)
	assert.Contains(t, out, "Status:   Success (1)")
	assert.Contains(t, out, "Throttle: wait 5s")
	assert.Contains(t, out, `"name": "Earth"`)
	assert.Equal(t, "destinyctl/dev", ua)
}

func TestDefinitionCommandSignedHash(t *testing.T) {
	platform(t, func(r chi.Router) {
		r.Get("/Platform/Destiny2/Manifest/DestinyClassDefinition/3655393761/", func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(envelope(1, "Success", 0, `{}`)))
		})
	})

	_, err := run(t, "definition", "--", "DestinyClassDefinition", "-639573535")
	require.NoError(t, err)
}

func TestLogicalErrorExitsNonZero(t *testing.T) {
	platform(t, func(r chi.Router) {
		r.Get("/Platform/Destiny2/Manifest/", func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(envelope(5, "SystemDisabled", 0, "0")))
		})
	})

	out, err := run(t, "manifest")
	require.Error(t, err)
	assert.Contains(t, out, "Status:   SystemDisabled (5)")
	assert.Contains(t, out, "Message:  Ok")
}

func TestManifestLocale(t *testing.T) {
	platform(t, func(r chi.Router) {
		r.Get("/Platform/Destiny2/Manifest/", func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(envelope(1, "Success", 0, `{
				"version": "1.2.3",
				"mobileWorldContentPaths": {"en": "/world_en.content", "de": "/world_de.content"}
			}`)))
		})
	})

	out, err := run(t, "manifest", "--locale", "de")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:        1.2.3")
	assert.Contains(t, out, "/world_de.content")
	assert.NotContains(t, out, "/world_en.content")

	_, err = run(t, "manifest", "--locale", "xx")
	assert.ErrorContains(t, err, `no world database for locale "xx"`)
}

func TestMissingAPIKey(t *testing.T) {
	t.Setenv("BUNGIE_API_KEY", "")

	_, err := run(t, "manifest")
	assert.ErrorContains(t, err, "failed to load config")
}

func TestVersionNeedsNoConfig(t *testing.T) {
	t.Setenv("BUNGIE_API_KEY", "")

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "destinyctl dev")
}

func TestParseHash(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"2961497387", 2961497387, false},
		{"-639573535", 3655393761, false},
		{"0", 0, false},
		{"4294967296", 0, true},
		{"earth", 0, true},
	}
	for _, tt := range tests {
		got, err := parseHash(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
