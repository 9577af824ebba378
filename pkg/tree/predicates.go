package tree

// RouteTypeSet is a small membership set of route types.
type RouteTypeSet map[RouteType]struct{}

// NewRouteTypeSet builds a set from the given route types.
func NewRouteTypeSet(types ...RouteType) RouteTypeSet {
	s := make(RouteTypeSet, len(types))
	for _, rt := range types {
		s[rt] = struct{}{}
	}
	return s
}

// Has reports whether rt is in the set.
func (s RouteTypeSet) Has(rt RouteType) bool {
	_, ok := s[rt]
	return ok
}

// KindSet is a small membership set of node kinds.
type KindSet map[Kind]struct{}

// NewKindSet builds a set from the given kinds.
func NewKindSet(kinds ...Kind) KindSet {
	s := make(KindSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	_, ok := s[k]
	return ok
}

// UnderAPI reports whether node sits inside the api subtree. The node's own
// name is only considered when includeSelf is set.
func UnderAPI(roots []*Node, node *Node, includeSelf bool) bool {
	if node == nil {
		return false
	}
	if includeSelf && node.Name == MarkerAPI {
		return true
	}
	for cur := FindParent(roots, node); cur != nil; cur = FindParent(roots, cur) {
		if cur.Name == MarkerAPI {
			return true
		}
	}
	return false
}

// UnderPrivate reports whether node or any ancestor is a private folder.
func UnderPrivate(roots []*Node, node *Node) bool {
	return UnderRouteType(roots, node, NewRouteTypeSet(RoutePrivate))
}

// UnderRouteType reports whether node or any ancestor directory has a route
// type in types.
func UnderRouteType(roots []*Node, node *Node, types RouteTypeSet) bool {
	for cur := node; cur != nil; cur = FindParent(roots, cur) {
		if cur.IsDir() && types.Has(cur.RouteType) {
			return true
		}
	}
	return false
}

// SiblingsHaveRouteType reports whether any direct child directory of dir,
// other than excludeID, has a route type in types.
func SiblingsHaveRouteType(dir *Node, types RouteTypeSet, excludeID string) bool {
	if dir == nil {
		return false
	}
	for _, child := range dir.Children {
		if child.ID == excludeID || !child.IsDir() {
			continue
		}
		if types.Has(child.RouteType) {
			return true
		}
	}
	return false
}

// DescendantsHaveRouteType reports whether any directory below dir (and dir
// itself when includeSelf is set) has a route type in types.
func DescendantsHaveRouteType(dir *Node, types RouteTypeSet, includeSelf bool) bool {
	if dir == nil {
		return false
	}
	if includeSelf && dir.IsDir() && types.Has(dir.RouteType) {
		return true
	}
	for _, child := range dir.Children {
		if DescendantsHaveRouteType(child, types, true) {
			return true
		}
	}
	return false
}

// SiblingsHaveKind reports whether any direct child of dir, other than
// excludeID, has a kind in kinds. Directories only match when KindDirectory is
// requested explicitly.
func SiblingsHaveKind(dir *Node, kinds KindSet, excludeID string) bool {
	if dir == nil {
		return false
	}
	for _, child := range dir.Children {
		if child.ID == excludeID {
			continue
		}
		if kinds.Has(child.Kind) {
			return true
		}
	}
	return false
}

// DescendantsHaveKind reports whether any node below dir (and dir itself when
// includeSelf is set) has a kind in kinds.
func DescendantsHaveKind(dir *Node, kinds KindSet, includeSelf bool) bool {
	if dir == nil {
		return false
	}
	if includeSelf && kinds.Has(dir.Kind) {
		return true
	}
	for _, child := range dir.Children {
		if DescendantsHaveKind(child, kinds, true) {
			return true
		}
	}
	return false
}

// HasChildKind reports whether dir has a direct child of kind k.
func HasChildKind(dir *Node, k Kind) bool {
	return SiblingsHaveKind(dir, NewKindSet(k), "")
}

// ChildOfKind returns the first direct child of dir with kind k.
func ChildOfKind(dir *Node, k Kind) *Node {
	if dir == nil {
		return nil
	}
	for _, child := range dir.Children {
		if child.Kind == k {
			return child
		}
	}
	return nil
}
