package restrictions

import "github.com/mattsolo1/grove-routes/pkg/tree"

// API holds the rules for nodes inside the api subtree.
var API = Table{
	Name: "api",
	Kinds: map[tree.Kind]Rules{
		tree.KindDirectory: apiDirectory,
		tree.KindRoute:     apiRoute,
		tree.KindPage:      denyAll("Page files cannot be placed under the api directory"),
		tree.KindLayout:    denyAll("Layout files cannot be placed under the api directory"),
		tree.KindFile:      opaqueFile,
	},
}

// App holds the rules for nodes outside the api subtree.
var App = Table{
	Name: "app",
	Kinds: map[tree.Kind]Rules{
		tree.KindDirectory: appDirectory,
		tree.KindRoute:     denyAll("API route handlers (route.ts) can only be placed under the api directory"),
		tree.KindPage:      appPage,
		tree.KindLayout:    appLayout,
		tree.KindFile:      opaqueFile,
	},
}

// Select returns the table governing node: API when node is the api
// directory or sits below it, App otherwise.
func Select(roots []*tree.Node, node *tree.Node) Table {
	if tree.UnderAPI(roots, node, true) {
		return API
	}
	return App
}
