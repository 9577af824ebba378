//go:build integration

package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-routes/pkg/render"
	"github.com/mattsolo1/grove-routes/pkg/scenario"
	"github.com/mattsolo1/grove-routes/pkg/search"
	"github.com/mattsolo1/grove-routes/pkg/service"
	"github.com/mattsolo1/grove-routes/pkg/tree"
)

func TestIntegration(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=1 to run.")
	}

	sc, err := scenario.Parse([]byte(dedent.Dedent(`
		name: shop
		steps:
		  - add: {parent: /app, kind: directory, as: shop}
		  - update: {target: $shop, name: shop}
		  - add: {parent: $shop, kind: directory, as: rest}
		  - update: {target: $rest, name: parts, route_type: catch-all}
		  - add: {parent: $rest, kind: page}
		  - add: {parent: $rest, kind: directory}
		  - add: {parent: /api, kind: directory, as: users}
		  - update: {target: $users, name: users}
		  - add: {parent: $users, kind: route}
		  - expect: {path: /api/users/route.ts, endpoint: /api/users}
	`)))
	require.NoError(t, err)

	runner, err := scenario.NewRunner(&service.Config{}, nil)
	require.NoError(t, err)

	var results []scenario.Result
	t.Run("PlayScenario", func(t *testing.T) {
		results, err = runner.Run(sc)
		require.NoError(t, err)
		require.Len(t, results, 10)
		assert.False(t, results[5].Allowed, "catch-all folders cannot nest")
		assert.Equal(t, "/shop/:parts*", results[4].Endpoint)
	})

	t.Run("IndexRoutes", func(t *testing.T) {
		idx, err := search.NewIndex("")
		require.NoError(t, err)
		defer idx.Close()

		require.NoError(t, idx.Rebuild(runner.Service().Structure()))
		entries, err := idx.Search("/api/", &search.Options{Kind: tree.KindRoute})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "/api/users", entries[0].Endpoint)

		dirs, err := idx.Search("/api/users", &search.Options{Kind: tree.KindDirectory})
		require.NoError(t, err)
		require.Len(t, dirs, 1)
		assert.Equal(t, "/users", dirs[0].Endpoint)
	})

	t.Run("RenderOutput", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, render.Results(&buf, results))
		require.NoError(t, render.Tree(&buf, runner.Service().Structure(), render.Options{}))
		assert.Contains(t, buf.String(), "[...parts]  (directory/catch-all)  → /shop/:parts*")
	})
}
