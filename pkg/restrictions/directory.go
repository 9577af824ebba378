package restrictions

import (
	"github.com/mattsolo1/grove-routes/pkg/naming"
	"github.com/mattsolo1/grove-routes/pkg/tree"
)

var (
	catchAllTypes = tree.NewRouteTypeSet(tree.RouteCatchAll, tree.RouteOptionalCatchAll)

	dynamicTypes = tree.NewRouteTypeSet(tree.RouteDynamic, tree.RouteCatchAll, tree.RouteOptionalCatchAll)

	interceptTypes = tree.NewRouteTypeSet(
		tree.RouteInterceptedSameLevel,
		tree.RouteInterceptedOneLevelAbove,
		tree.RouteInterceptedTwoLevelsAbove,
	)

	// Anything that takes part in routing may not live below a private folder.
	privateConflicts = tree.NewRouteTypeSet(
		tree.RouteGroup,
		tree.RouteDynamic,
		tree.RouteCatchAll,
		tree.RouteOptionalCatchAll,
		tree.RouteParallel,
		tree.RouteInterceptedSameLevel,
		tree.RouteInterceptedOneLevelAbove,
		tree.RouteInterceptedTwoLevelsAbove,
	)

	parallelConflicts = tree.NewRouteTypeSet(
		tree.RouteStatic,
		tree.RouteGroup,
		tree.RouteDynamic,
		tree.RouteCatchAll,
		tree.RouteOptionalCatchAll,
		tree.RouteInterceptedSameLevel,
		tree.RouteInterceptedOneLevelAbove,
		tree.RouteInterceptedTwoLevelsAbove,
	)
)

var apiDirectory = Rules{
	Visible: func(q MenuQuery) bool {
		if !q.Dir.IsDir() || !tree.UnderAPI(q.Roots, q.Dir, true) {
			return false
		}
		if q.RouteType == "" {
			return true
		}
		if q.Dir.Name == tree.MarkerAPI {
			return false
		}

		private := underPrivateAncestor(q.Roots, q.Dir)
		switch q.Dir.RouteType {
		case tree.RouteStatic:
			switch q.RouteType {
			case tree.RouteDynamic, tree.RouteGroup:
				return !private
			case tree.RoutePrivate:
				return true
			}
		case tree.RouteDynamic:
			switch q.RouteType {
			case tree.RouteStatic, tree.RoutePrivate:
				return true
			case tree.RouteGroup:
				return !private
			}
		case tree.RouteGroup:
			switch q.RouteType {
			case tree.RouteStatic, tree.RoutePrivate:
				return true
			case tree.RouteDynamic:
				return !private
			}
		case tree.RoutePrivate:
			switch q.RouteType {
			case tree.RouteStatic:
				return true
			case tree.RouteGroup, tree.RouteDynamic:
				return !private
			}
		}
		return false
	},

	CanAdd: addDirectory,

	CanUpdate: func(in Input) Outcome {
		if !tree.UnderAPI(in.Roots, in.Node, true) {
			return reject("This directory must be placed under the /api directory for API routes")
		}
		rt := targetRouteType(in)
		if convertsRouteType(in) {
			if msg := apiConversionConflict(in, rt); msg != "" {
				return reject(msg)
			}
		}
		return resolveName(in, rt)
	},

	CanDelete: always,
}

func apiConversionConflict(in Input, rt tree.RouteType) string {
	switch rt {
	case tree.RouteStatic:
		return ""
	case tree.RouteDynamic:
		if tree.SiblingsHaveRouteType(in.Parent, catchAllTypes, in.Node.ID) {
			return "Dynamic routes ([param]) cannot be used alongside catch-all routes ([...param]) in the same route segment"
		}
	case tree.RouteGroup:
		if tree.HasChildKind(in.Node, tree.KindRoute) {
			return "Route groups (folders with parentheses) are for organization only and cannot contain route handlers (route.ts)"
		}
	case tree.RoutePrivate:
		if tree.DescendantsHaveRouteType(in.Node, dynamicTypes, true) {
			return "Private folders (_folder) can only contain static routes and non-routing files, dynamic segments are not allowed"
		}
		if tree.DescendantsHaveKind(in.Node, tree.NewKindSet(tree.KindRoute), true) {
			return "Private folders (_folder) are not part of the routing system and cannot contain route handlers (route.ts)"
		}
	case tree.RouteCatchAll:
		return "Catch-all routes ([...param]) are not supported in the API directory"
	case tree.RouteOptionalCatchAll:
		return "Optional catch-all routes ([[...param]]) are not supported in the API directory"
	default:
		return "This route type is not supported in the API directory"
	}
	return ""
}

var appDirectory = Rules{
	Visible: func(q MenuQuery) bool {
		if !q.Dir.IsDir() || tree.UnderAPI(q.Roots, q.Dir, true) {
			return false
		}
		if q.RouteType == "" {
			return !catchAllTypes.Has(q.Dir.RouteType)
		}
		if q.Dir.Name == tree.MarkerApp || q.RouteType == q.Dir.RouteType || !q.RouteType.Valid() {
			return false
		}

		switch q.RouteType {
		case tree.RouteStatic, tree.RoutePrivate:
			return true
		default:
			return !underPrivateAncestor(q.Roots, q.Dir)
		}
	},

	CanAdd: func(in Input) Outcome {
		if in.Parent != nil && catchAllTypes.Has(in.Parent.RouteType) {
			return reject("Catch-all segments terminate the route, they cannot contain directories")
		}
		return addDirectory(in)
	},

	CanUpdate: func(in Input) Outcome {
		if tree.UnderAPI(in.Roots, in.Node, true) {
			return reject("Directory must be placed in the app directory for page routing")
		}
		rt := targetRouteType(in)
		if convertsRouteType(in) {
			if msg := appConversionConflict(in, rt); msg != "" {
				return reject(msg)
			}
		}
		return resolveName(in, rt)
	},

	CanDelete: always,
}

func appConversionConflict(in Input, rt tree.RouteType) string {
	switch rt {
	case tree.RouteStatic:
		return ""
	case tree.RouteDynamic:
		if tree.SiblingsHaveRouteType(in.Parent, catchAllTypes, in.Node.ID) {
			return "Dynamic routes ([param]) cannot be used alongside catch-all routes ([...param]) in the same route segment"
		}
	case tree.RouteGroup:
		if tree.HasChildKind(in.Node, tree.KindPage) {
			return "Route groups (folders with parentheses) are for organization only and cannot contain page files"
		}
	case tree.RoutePrivate:
		if tree.DescendantsHaveKind(in.Node, tree.NewKindSet(tree.KindPage, tree.KindLayout), false) {
			return "Private folders (_folder) cannot contain page or layout files as they are not part of the routing system"
		}
		if tree.DescendantsHaveRouteType(in.Node, privateConflicts, false) {
			return "Private folders (_folder) can only contain static or private folders and non-routing files"
		}
	case tree.RouteCatchAll, tree.RouteOptionalCatchAll:
		if tree.SiblingsHaveRouteType(in.Parent, dynamicTypes, in.Node.ID) {
			return "Catch-all routes cannot be used alongside other dynamic or catch-all routes in the same route segment"
		}
		if tree.DescendantsHaveKind(in.Node, tree.NewKindSet(tree.KindDirectory), false) {
			return "Catch-all routes terminate the route, the folder cannot contain directories"
		}
	case tree.RouteParallel:
		if tree.SiblingsHaveRouteType(in.Parent, parallelConflicts, in.Node.ID) {
			return "Parallel routes (@folder) must be siblings, they cannot be mixed with other route types in the same segment"
		}
	default:
		if !interceptTypes.Has(rt) {
			return "Unknown route type " + string(rt)
		}
	}
	return ""
}

// addDirectory accepts a new directory under a collision-free name.
func addDirectory(in Input) Outcome {
	name, _ := naming.Unique(siblings(in), in.Node.ID, in.Node.RouteType, in.Node.Name)
	return allowWith(&tree.Patch{Name: &name}, "")
}

// resolveName returns the outcome of a directory update. When the update
// touches the name or route type, the name is re-decorated for rt and made
// unique among the siblings. A name with nothing left after stripping its
// decoration is rejected.
func resolveName(in Input, rt tree.RouteType) Outcome {
	p := in.Patch.Merge(nil)
	if !p.Renames() {
		return allowWith(p, "")
	}

	base := in.Node.Name
	if p.Name != nil {
		base = *p.Name
	}
	if naming.Strip(base) == "" {
		return reject(emptyNameMessage)
	}
	name, iterations := naming.Unique(siblings(in), in.Node.ID, rt, base)
	p.Name = &name
	if iterations > 0 {
		return allowWith(p, renameMessage)
	}
	return allowWith(p, "")
}

func targetRouteType(in Input) tree.RouteType {
	if in.Patch != nil && in.Patch.RouteType != nil {
		return *in.Patch.RouteType
	}
	return in.Node.RouteType
}

func convertsRouteType(in Input) bool {
	return in.Patch != nil && in.Patch.RouteType != nil && *in.Patch.RouteType != in.Node.RouteType
}

// siblings returns the collection the node lives in: the parent's children,
// or the roots for a top-level node.
func siblings(in Input) []*tree.Node {
	if in.Parent == nil {
		return in.Roots
	}
	return in.Parent.Children
}

// underPrivateAncestor reports whether a strict ancestor of dir is private.
func underPrivateAncestor(roots []*tree.Node, dir *tree.Node) bool {
	return tree.UnderPrivate(roots, tree.FindParent(roots, dir))
}
