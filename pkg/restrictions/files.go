package restrictions

import (
	"github.com/mattsolo1/grove-routes/pkg/naming"
	"github.com/mattsolo1/grove-routes/pkg/tree"
)

var (
	pageParents = tree.NewRouteTypeSet(
		tree.RouteStatic,
		tree.RouteDynamic,
		tree.RouteCatchAll,
		tree.RouteOptionalCatchAll,
		tree.RouteParallel,
	)

	layoutParents = tree.NewRouteTypeSet(
		tree.RouteStatic,
		tree.RouteDynamic,
		tree.RouteCatchAll,
		tree.RouteOptionalCatchAll,
	)
)

// appLeafAdd builds the create check shared by page and layout files.
func appLeafAdd(kind tree.Kind, label string, parents tree.RouteTypeSet) func(Input) Outcome {
	return func(in Input) Outcome {
		switch {
		case !in.Parent.IsDir():
			return reject(label + " files can only be added to a directory")
		case tree.UnderAPI(in.Roots, in.Parent, true):
			return reject(label + " files cannot be placed under the api directory")
		case tree.HasChildKind(in.Parent, kind):
			return reject("This directory already has a " + string(kind) + " file")
		case tree.UnderPrivate(in.Roots, in.Parent):
			return reject(label + " files cannot be placed in private folders")
		case !parents.Has(in.Parent.RouteType):
			return reject(label + " files cannot be placed in " + string(in.Parent.RouteType) + " folders")
		}
		return allow()
	}
}

// visibleWhenAddable derives menu visibility from the create check.
func visibleWhenAddable(add func(Input) Outcome) func(MenuQuery) bool {
	return func(q MenuQuery) bool {
		return add(Input{Roots: q.Roots, Parent: q.Dir}).Allowed
	}
}

var (
	addPage   = appLeafAdd(tree.KindPage, "Page", pageParents)
	addLayout = appLeafAdd(tree.KindLayout, "Layout", layoutParents)
)

var appPage = Rules{
	Visible: visibleWhenAddable(addPage),
	CanAdd:  addPage,
	CanUpdate: func(Input) Outcome {
		return reject("Page files cannot be renamed")
	},
	CanDelete: always,
}

var appLayout = Rules{
	Visible: visibleWhenAddable(addLayout),
	CanAdd:  addLayout,
	CanUpdate: func(in Input) Outcome {
		return allowWith(in.Patch.Merge(nil), "")
	},
	CanDelete: always,
}

func addRoute(in Input) Outcome {
	switch {
	case !in.Parent.IsDir():
		return reject("Route handlers can only be added to a directory")
	case !tree.UnderAPI(in.Roots, in.Parent, true):
		return reject("API route handlers (route.ts) can only be placed under the api directory")
	case tree.HasChildKind(in.Parent, tree.KindRoute):
		return reject("This directory already has a route handler")
	case tree.UnderPrivate(in.Roots, in.Parent):
		return reject("Route handlers cannot be placed in private folders")
	case tree.UnderRouteType(in.Roots, in.Parent, tree.NewRouteTypeSet(tree.RouteGroup)):
		return reject("Route groups are for organization only and cannot contain route handlers (route.ts)")
	}
	return allow()
}

var apiRoute = Rules{
	Visible: visibleWhenAddable(addRoute),
	CanAdd:  addRoute,
	CanUpdate: func(Input) Outcome {
		return reject("API route handlers (route.ts) cannot be renamed")
	},
	CanDelete: always,
}

// opaqueFile rules are shared by both tables. Plain files do not take part
// in routing; only their names are kept unique.
var opaqueFile = Rules{
	Visible: func(q MenuQuery) bool {
		return q.Dir.IsDir()
	},
	CanAdd: func(in Input) Outcome {
		name, _ := naming.UniqueFile(siblings(in), in.Node.ID, in.Node.Name)
		return allowWith(&tree.Patch{Name: &name}, "")
	},
	CanUpdate: func(in Input) Outcome {
		p := in.Patch.Merge(nil)
		p.RouteType = nil
		if p.Name == nil {
			return allowWith(p, "")
		}
		name, iterations := naming.UniqueFile(siblings(in), in.Node.ID, *p.Name)
		p.Name = &name
		if iterations > 0 {
			return allowWith(p, renameMessage)
		}
		return allowWith(p, "")
	},
	CanDelete: always,
}
