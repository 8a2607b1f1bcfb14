package loggly

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func fixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(b)
}

// stubGetter serves canned JSON bodies or errors keyed by URI
type stubGetter struct {
	bodies map[string]string
	errs   map[string]error
	calls  []string
}

func (s *stubGetter) Get(_ context.Context, uri string) (gjson.Result, error) {
	s.calls = append(s.calls, uri)
	if err, ok := s.errs[uri]; ok {
		return gjson.Result{}, err
	}
	body, ok := s.bodies[uri]
	if !ok {
		return gjson.Result{}, fmt.Errorf("unexpected uri %s", uri)
	}
	return gjson.Parse(strings.TrimSpace(body)), nil
}
