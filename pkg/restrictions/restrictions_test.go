package restrictions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-routes/pkg/tree"
)

func dir(id, name string, rt tree.RouteType, children ...*tree.Node) *tree.Node {
	if children == nil {
		children = []*tree.Node{}
	}
	return &tree.Node{ID: id, Name: name, Kind: tree.KindDirectory, RouteType: rt, Children: children}
}

func leaf(id, name string, kind tree.Kind) *tree.Node {
	return &tree.Node{ID: id, Name: name, Kind: kind, RouteType: tree.RouteStatic}
}

// fixture builds a project with enough variety to exercise both tables:
//
//	/app
//	  page.tsx
//	  blog
//	    [slug]
//	  shop
//	    [...rest]
//	  _lib
//	    utils
//	  (marketing)
//	    about
//	/api
//	  users
//	    route.ts
//	    [id]
//	  (admin)
func fixture() []*tree.Node {
	return []*tree.Node{
		dir("app", "app", tree.RouteStatic,
			leaf("app-page", tree.PageFile, tree.KindPage),
			dir("blog", "blog", tree.RouteStatic,
				dir("slug", "[slug]", tree.RouteDynamic),
			),
			dir("shop", "shop", tree.RouteStatic,
				dir("rest", "[...rest]", tree.RouteCatchAll),
			),
			dir("lib", "_lib", tree.RoutePrivate,
				dir("utils", "utils", tree.RouteStatic),
			),
			dir("marketing", "(marketing)", tree.RouteGroup,
				dir("about", "about", tree.RouteStatic),
			),
		),
		dir("api", "api", tree.RouteStatic,
			dir("users", "users", tree.RouteStatic,
				leaf("users-route", tree.RouteFile, tree.KindRoute),
				dir("user-id", "[id]", tree.RouteDynamic),
			),
			dir("admin", "(admin)", tree.RouteGroup),
		),
	}
}

type env struct {
	roots []*tree.Node
}

func newEnv() env { return env{roots: fixture()} }

func (e env) node(id string) *tree.Node { return tree.FindByID(e.roots, id) }

func (e env) update(id string, patch *tree.Patch) Outcome {
	n := e.node(id)
	return Select(e.roots, n).Rules(n.Kind).CanUpdate(Input{
		Roots:  e.roots,
		Node:   n,
		Parent: tree.FindParent(e.roots, n),
		Patch:  patch,
	})
}

func (e env) add(parentID string, child *tree.Node) Outcome {
	parent := e.node(parentID)
	return Select(e.roots, parent).Rules(child.Kind).CanAdd(Input{
		Roots:  e.roots,
		Node:   child,
		Parent: parent,
	})
}

func (e env) visible(dirID string, kind tree.Kind, rt tree.RouteType) bool {
	d := e.node(dirID)
	return Select(e.roots, d).Rules(kind).Visible(MenuQuery{
		Roots:     e.roots,
		Dir:       d,
		Kind:      kind,
		RouteType: rt,
	})
}

func convert(rt tree.RouteType) *tree.Patch {
	return &tree.Patch{RouteType: tree.RouteTypePtr(rt)}
}

func TestSelect(t *testing.T) {
	e := newEnv()
	assert.Equal(t, "api", Select(e.roots, e.node("api")).Name)
	assert.Equal(t, "api", Select(e.roots, e.node("users-route")).Name)
	assert.Equal(t, "app", Select(e.roots, e.node("blog")).Name)
	assert.Equal(t, "app", Select(e.roots, nil).Name)
}

func TestUnknownKindIsDenied(t *testing.T) {
	r := App.Rules(tree.Kind("bogus"))
	assert.False(t, r.Visible(MenuQuery{}))
	assert.False(t, r.CanDelete(Input{}).Allowed)
}

func TestAppDirectoryVisible(t *testing.T) {
	e := newEnv()

	tests := []struct {
		name string
		dir  string
		rt   tree.RouteType
		want bool
	}{
		{"plain folder under app", "app", "", true},
		{"plain folder under catch-all", "rest", "", false},
		{"app root cannot be converted", "app", tree.RouteGroup, false},
		{"static to dynamic", "blog", tree.RouteDynamic, true},
		{"static to static", "blog", tree.RouteStatic, false},
		{"static to parallel", "blog", tree.RouteParallel, true},
		{"static to intercepted", "blog", tree.RouteInterceptedOneLevelAbove, true},
		{"dynamic to static", "slug", tree.RouteStatic, true},
		{"private to static", "lib", tree.RouteStatic, true},
		{"private to private", "lib", tree.RoutePrivate, false},
		{"private to dynamic", "lib", tree.RouteDynamic, true},
		{"under private only static or private", "utils", tree.RouteDynamic, false},
		{"under private to private", "utils", tree.RoutePrivate, true},
		{"api directories are not app directories", "users", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := App.Rules(tree.KindDirectory).Visible(MenuQuery{
				Roots:     e.roots,
				Dir:       e.node(tt.dir),
				Kind:      tree.KindDirectory,
				RouteType: tt.rt,
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAPIDirectoryVisible(t *testing.T) {
	e := newEnv()

	tests := []struct {
		name string
		dir  string
		rt   tree.RouteType
		want bool
	}{
		{"plain folder under api root", "api", "", true},
		{"api root cannot be converted", "api", tree.RouteDynamic, false},
		{"static to dynamic", "users", tree.RouteDynamic, true},
		{"static to group", "users", tree.RouteGroup, true},
		{"static to private", "users", tree.RoutePrivate, true},
		{"static to catch-all never offered", "users", tree.RouteCatchAll, false},
		{"static to parallel never offered", "users", tree.RouteParallel, false},
		{"dynamic to static", "user-id", tree.RouteStatic, true},
		{"group to dynamic", "admin", tree.RouteDynamic, true},
		{"app directories are not api directories", "blog", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := API.Rules(tree.KindDirectory).Visible(MenuQuery{
				Roots:     e.roots,
				Dir:       e.node(tt.dir),
				Kind:      tree.KindDirectory,
				RouteType: tt.rt,
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatchAllExclusivity(t *testing.T) {
	roots := []*tree.Node{
		dir("app", "app", tree.RouteStatic,
			dir("docs", "docs", tree.RouteStatic,
				dir("a", "[slug]", tree.RouteDynamic),
				dir("b", "b", tree.RouteStatic),
				dir("c", "[...all]", tree.RouteCatchAll),
				dir("d", "d", tree.RouteStatic),
			),
		),
	}
	e := env{roots: roots}

	t.Run("catch-all next to dynamic", func(t *testing.T) {
		out := e.update("b", convert(tree.RouteCatchAll))
		assert.False(t, out.Allowed)
		assert.Contains(t, out.Message, "Catch-all")
	})

	t.Run("optional catch-all next to dynamic", func(t *testing.T) {
		out := e.update("b", convert(tree.RouteOptionalCatchAll))
		assert.False(t, out.Allowed)
	})

	t.Run("dynamic next to catch-all", func(t *testing.T) {
		out := e.update("d", convert(tree.RouteDynamic))
		assert.False(t, out.Allowed)
		assert.Contains(t, out.Message, "catch-all")
	})

	t.Run("api dynamic next to catch-all", func(t *testing.T) {
		apiRoots := []*tree.Node{
			dir("api", "api", tree.RouteStatic,
				dir("x", "[...x]", tree.RouteCatchAll),
				dir("y", "y", tree.RouteStatic),
			),
		}
		out := env{roots: apiRoots}.update("y", convert(tree.RouteDynamic))
		assert.False(t, out.Allowed)
	})
}

func TestAppDirectoryUpdate(t *testing.T) {
	t.Run("catch-all with a subdirectory", func(t *testing.T) {
		e := newEnv()
		out := e.update("blog", convert(tree.RouteCatchAll))
		assert.False(t, out.Allowed)
		assert.Contains(t, out.Message, "cannot contain directories")
	})

	t.Run("group with a page child", func(t *testing.T) {
		roots := []*tree.Node{
			dir("app", "app", tree.RouteStatic,
				dir("x", "x", tree.RouteStatic, leaf("p", tree.PageFile, tree.KindPage)),
			),
		}
		out := env{roots: roots}.update("x", convert(tree.RouteGroup))
		assert.False(t, out.Allowed)
	})

	t.Run("group renames with parentheses", func(t *testing.T) {
		e := newEnv()
		out := e.update("blog", &tree.Patch{RouteType: tree.RouteTypePtr(tree.RouteGroup), Name: tree.StringPtr("marketing")})
		require.True(t, out.Allowed)
		// (marketing) already exists next to blog.
		assert.Equal(t, "(marketingA)", *out.Patch.Name)
		assert.Equal(t, renameMessage, out.Message)
	})

	t.Run("private with page descendants", func(t *testing.T) {
		e := newEnv()
		out := e.update("app", convert(tree.RoutePrivate))
		assert.False(t, out.Allowed)
	})

	t.Run("private with dynamic descendants", func(t *testing.T) {
		e := newEnv()
		out := e.update("blog", convert(tree.RoutePrivate))
		assert.False(t, out.Allowed)
		assert.Contains(t, out.Message, "Private folders")
	})

	t.Run("private inside private", func(t *testing.T) {
		e := newEnv()
		out := e.update("utils", convert(tree.RoutePrivate))
		require.True(t, out.Allowed)
		assert.Equal(t, "_utils", *out.Patch.Name)
	})

	t.Run("parallel with static siblings", func(t *testing.T) {
		e := newEnv()
		out := e.update("blog", convert(tree.RouteParallel))
		assert.False(t, out.Allowed)
	})

	t.Run("parallel among parallel and private siblings", func(t *testing.T) {
		roots := []*tree.Node{
			dir("app", "app", tree.RouteStatic,
				dir("dash", "dash", tree.RouteStatic,
					dir("team", "@team", tree.RouteParallel),
					dir("priv", "_priv", tree.RoutePrivate),
					dir("x", "analytics", tree.RouteStatic),
					leaf("p", tree.PageFile, tree.KindPage),
				),
			),
		}
		out := env{roots: roots}.update("x", convert(tree.RouteParallel))
		require.True(t, out.Allowed)
		assert.Equal(t, "@analytics", *out.Patch.Name)
	})

	t.Run("intercepting is always allowed", func(t *testing.T) {
		e := newEnv()
		out := e.update("blog", convert(tree.RouteInterceptedSameLevel))
		require.True(t, out.Allowed)
		assert.Equal(t, "(.)blog", *out.Patch.Name)
	})

	t.Run("expansion toggle leaves the name alone", func(t *testing.T) {
		e := newEnv()
		out := e.update("blog", &tree.Patch{IsExpanded: tree.BoolPtr(true)})
		require.True(t, out.Allowed)
		assert.Nil(t, out.Patch.Name)
		assert.True(t, *out.Patch.IsExpanded)
	})

	t.Run("rename collision gets a suffix", func(t *testing.T) {
		e := newEnv()
		out := e.update("shop", &tree.Patch{Name: tree.StringPtr("blog")})
		require.True(t, out.Allowed)
		assert.Equal(t, "blogA", *out.Patch.Name)
		assert.NotEmpty(t, out.Message)
	})

	t.Run("api node is rejected by the app table", func(t *testing.T) {
		e := newEnv()
		n := e.node("users")
		out := App.Rules(tree.KindDirectory).CanUpdate(Input{Roots: e.roots, Node: n, Parent: e.node("api"), Patch: convert(tree.RouteDynamic)})
		assert.False(t, out.Allowed)
	})
}

func TestAPIDirectoryUpdate(t *testing.T) {
	t.Run("group with a route child", func(t *testing.T) {
		e := newEnv()
		out := e.update("users", convert(tree.RouteGroup))
		assert.False(t, out.Allowed)
		assert.Contains(t, out.Message, "route handlers")
	})

	t.Run("private with dynamic descendant", func(t *testing.T) {
		roots := []*tree.Node{
			dir("api", "api", tree.RouteStatic,
				dir("v1", "v1", tree.RouteStatic, dir("id", "[id]", tree.RouteDynamic)),
			),
		}
		out := env{roots: roots}.update("v1", convert(tree.RoutePrivate))
		assert.False(t, out.Allowed)
	})

	t.Run("private with nested route handler", func(t *testing.T) {
		roots := []*tree.Node{
			dir("api", "api", tree.RouteStatic,
				dir("v1", "v1", tree.RouteStatic,
					dir("x", "x", tree.RouteStatic, leaf("r", tree.RouteFile, tree.KindRoute)),
				),
			),
		}
		out := env{roots: roots}.update("v1", convert(tree.RoutePrivate))
		assert.False(t, out.Allowed)
	})

	t.Run("catch-all is unsupported", func(t *testing.T) {
		e := newEnv()
		assert.False(t, e.update("admin", convert(tree.RouteCatchAll)).Allowed)
		assert.False(t, e.update("admin", convert(tree.RouteOptionalCatchAll)).Allowed)
		assert.False(t, e.update("admin", convert(tree.RouteParallel)).Allowed)
	})

	t.Run("dynamic conversion", func(t *testing.T) {
		e := newEnv()
		out := e.update("admin", &tree.Patch{RouteType: tree.RouteTypePtr(tree.RouteDynamic), Name: tree.StringPtr("team")})
		require.True(t, out.Allowed)
		assert.Equal(t, "[team]", *out.Patch.Name)
	})
}

func TestDirectoryRenameToDecorationOnly(t *testing.T) {
	for _, name := range []string{"...", "_", "[[...]]", "(@)"} {
		t.Run(name, func(t *testing.T) {
			e := newEnv()
			out := e.update("blog", &tree.Patch{Name: tree.StringPtr(name)})
			assert.False(t, out.Allowed)
			assert.Equal(t, emptyNameMessage, out.Message)

			out = e.update("users", &tree.Patch{Name: tree.StringPtr(name)})
			assert.False(t, out.Allowed, "api table")
		})
	}

	e := newEnv()
	out := e.update("blog", &tree.Patch{Name: tree.StringPtr("_news")})
	require.True(t, out.Allowed)
	assert.Equal(t, "news", *out.Patch.Name)
}

func TestDirectoryAdd(t *testing.T) {
	e := newEnv()

	out := e.add("blog", dir("new", "newFolder", tree.RouteStatic))
	require.True(t, out.Allowed)
	assert.Equal(t, "newFolder", *out.Patch.Name)

	out = e.add("rest", dir("new", "newFolder", tree.RouteStatic))
	assert.False(t, out.Allowed)

	out = e.add("users", dir("new", "[id]", tree.RouteStatic))
	require.True(t, out.Allowed)
	assert.Equal(t, "id", *out.Patch.Name, "decoration follows the route type")
}

func TestPageRules(t *testing.T) {
	e := newEnv()

	assert.False(t, e.visible("app", tree.KindPage, ""), "app already has a page")
	assert.False(t, e.add("app", leaf("p2", tree.PageFile, tree.KindPage)).Allowed)

	assert.True(t, e.visible("slug", tree.KindPage, ""))
	assert.True(t, e.add("slug", leaf("p2", tree.PageFile, tree.KindPage)).Allowed)

	assert.False(t, e.visible("marketing", tree.KindPage, ""), "groups hold no pages")
	assert.False(t, e.visible("utils", tree.KindPage, ""), "private ancestor")
	assert.False(t, e.visible("users", tree.KindPage, ""), "api subtree")
	assert.False(t, API.Rules(tree.KindPage).CanAdd(Input{Roots: e.roots, Parent: e.node("users")}).Allowed)

	out := e.update("app-page", &tree.Patch{Name: tree.StringPtr("index.tsx")})
	assert.False(t, out.Allowed)
	assert.True(t, App.Rules(tree.KindPage).CanDelete(Input{}).Allowed)
}

func TestLayoutRules(t *testing.T) {
	e := newEnv()

	assert.True(t, e.visible("app", tree.KindLayout, ""))
	assert.True(t, e.visible("rest", tree.KindLayout, ""))
	assert.False(t, e.visible("lib", tree.KindLayout, ""))

	layout := leaf("l", tree.LayoutFile, tree.KindLayout)
	styles := &tree.Styles{BackgroundColor: "#000"}
	out := App.Rules(tree.KindLayout).CanUpdate(Input{Roots: e.roots, Node: layout, Patch: &tree.Patch{CustomStyles: styles}})
	require.True(t, out.Allowed)
	assert.Equal(t, styles, out.Patch.CustomStyles)
}

func TestRouteRules(t *testing.T) {
	e := newEnv()

	assert.True(t, e.visible("api", tree.KindRoute, ""))
	assert.True(t, e.visible("user-id", tree.KindRoute, ""))
	assert.False(t, e.visible("users", tree.KindRoute, ""), "already has one")
	assert.False(t, e.visible("admin", tree.KindRoute, ""), "group")
	assert.False(t, e.visible("blog", tree.KindRoute, ""), "app subtree")

	roots := []*tree.Node{
		dir("api", "api", tree.RouteStatic,
			dir("g", "(g)", tree.RouteGroup, dir("inner", "inner", tree.RouteStatic)),
			dir("p", "_p", tree.RoutePrivate, dir("deep", "deep", tree.RouteStatic)),
		),
	}
	assert.False(t, env{roots: roots}.visible("inner", tree.KindRoute, ""), "group ancestor")
	assert.False(t, env{roots: roots}.visible("deep", tree.KindRoute, ""), "private ancestor")
}

func TestRouteHandlerUpdatesAlwaysRejected(t *testing.T) {
	e := newEnv()
	route := e.node("users-route")
	patches := []*tree.Patch{
		nil,
		{},
		{Name: tree.StringPtr("handler.ts")},
		{IsExpanded: tree.BoolPtr(true)},
		{CustomStyles: &tree.Styles{TextColor: "red"}},
	}

	for _, table := range []Table{API, App} {
		for _, p := range patches {
			out := table.Rules(tree.KindRoute).CanUpdate(Input{Roots: e.roots, Node: route, Parent: e.node("users"), Patch: p})
			assert.False(t, out.Allowed)
			assert.NotEmpty(t, out.Message)
		}
	}

	assert.False(t, App.Rules(tree.KindRoute).CanDelete(Input{}).Allowed)
	assert.True(t, API.Rules(tree.KindRoute).CanDelete(Input{}).Allowed)
}

func TestOpaqueFile(t *testing.T) {
	roots := []*tree.Node{
		dir("lib", "lib", tree.RouteStatic,
			leaf("f1", tree.PlainFile, tree.KindFile),
			leaf("f2", "util.ts", tree.KindFile),
		),
	}
	e := env{roots: roots}

	out := e.add("lib", leaf("f3", tree.PlainFile, tree.KindFile))
	require.True(t, out.Allowed)
	assert.Equal(t, "fileA.ts", *out.Patch.Name)

	out = e.update("f2", &tree.Patch{Name: tree.StringPtr("file.ts")})
	require.True(t, out.Allowed)
	assert.Equal(t, "fileA.ts", *out.Patch.Name)
	assert.Equal(t, renameMessage, out.Message)

	assert.True(t, e.visible("lib", tree.KindFile, ""))
}
