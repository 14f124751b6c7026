package bungie

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "0123456789abcdef"

// platformServer mimics the parts of Bungie.net the tests need, routed the way
// the real host lays them out.
func platformServer(t *testing.T, routes func(r chi.Router)) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if strings.HasPrefix(req.URL.Path, "/Platform/") && req.Header.Get("X-API-Key") != testAPIKey {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"ErrorCode":2102,"ThrottleSeconds":0,"ErrorStatus":"ApiKeyMissingFromRequest","Message":"Please provide an API key.","MessageData":{},"Response":0}`)
				return
			}
			next.ServeHTTP(w, req)
		})
	})
	routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(srv *httptest.Server) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL + "/Platform"
	cfg.RootURL = srv.URL
	cfg.APIKey = testAPIKey
	return cfg
}

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(testConfig(srv), append([]Option{WithRegisterer(prometheus.NewRegistry())}, opts...)...)
	require.NoError(t, err)
	return c
}

func writeEnvelope(w http.ResponseWriter, code PlatformErrorCode, status string, throttle int, response string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	fmt.Fprintf(w, `{"Response":%s,"ErrorCode":%d,"ThrottleSeconds":%d,"ErrorStatus":%q,"Message":"Ok","MessageData":{}}`,
		response, code, throttle, status)
}
