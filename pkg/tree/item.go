package tree

// Kind categorizes the different kinds of nodes in the project tree.
type Kind string

const (
	KindDirectory Kind = "directory"
	KindPage      Kind = "page"   // page.tsx
	KindLayout    Kind = "layout" // layout.tsx
	KindRoute     Kind = "route"  // route.ts, API route handler
	KindFile      Kind = "file"   // Non-routing file, e.g. utils.ts
)

// Kinds lists every node kind in menu order.
var Kinds = []Kind{KindDirectory, KindRoute, KindPage, KindLayout, KindFile}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// RouteType is the routing role of a directory segment.
type RouteType string

const (
	RouteStatic                    RouteType = "static"                       // about
	RouteGroup                     RouteType = "group"                        // (marketing)
	RouteDynamic                   RouteType = "dynamic"                      // [slug]
	RouteCatchAll                  RouteType = "catch-all"                    // [...slug]
	RouteOptionalCatchAll          RouteType = "optional-catch-all"           // [[...slug]]
	RoutePrivate                   RouteType = "private"                      // _internal
	RouteParallel                  RouteType = "parallel"                     // @modal
	RouteInterceptedSameLevel      RouteType = "intercepted-same-level"       // (.)photo
	RouteInterceptedOneLevelAbove  RouteType = "intercepted-one-level-above"  // (..)photo
	RouteInterceptedTwoLevelsAbove RouteType = "intercepted-two-levels-above" // (...)photo
)

// RouteTypes lists every route type in menu order.
var RouteTypes = []RouteType{
	RouteStatic,
	RouteGroup,
	RouteDynamic,
	RouteCatchAll,
	RouteOptionalCatchAll,
	RoutePrivate,
	RouteParallel,
	RouteInterceptedSameLevel,
	RouteInterceptedOneLevelAbove,
	RouteInterceptedTwoLevelsAbove,
}

// Valid reports whether rt is a known route type.
func (rt RouteType) Valid() bool {
	for _, known := range RouteTypes {
		if rt == known {
			return true
		}
	}
	return false
}

// Well-known directory names. They cannot be used as rename targets.
const (
	MarkerApp        = "app"
	MarkerAPI        = "api"
	MarkerPublic     = "public"
	MarkerComponents = "components"
	MarkerLib        = "lib"
	MarkerSrc        = "src"
)

// Reserved reports whether name is one of the well-known directory names.
func Reserved(name string) bool {
	switch name {
	case MarkerApp, MarkerAPI, MarkerPublic, MarkerComponents, MarkerLib, MarkerSrc:
		return true
	}
	return false
}

// Canonical file names.
const (
	PageFile   = "page.tsx"
	LayoutFile = "layout.tsx"
	RouteFile  = "route.ts"
	PlainFile  = "file.ts"
)

// Styles is cosmetic metadata carried by layout nodes.
type Styles struct {
	BackgroundColor string `json:"background_color,omitempty" yaml:"background_color,omitempty"`
	TextColor       string `json:"text_color,omitempty" yaml:"text_color,omitempty"`
}

// Node represents a single entry in the virtual project. It can be a file or a directory.
// Children is nil for every kind except KindDirectory; an empty directory has a
// non-nil, zero-length slice.
type Node struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      Kind      `json:"kind"`
	RouteType RouteType `json:"route_type"`
	Endpoint  *string   `json:"endpoint"`

	IsExpanded   bool    `json:"is_expanded,omitempty"`
	IsEditable   bool    `json:"is_editable"`
	IsDeletable  bool    `json:"is_deletable"`
	IsRenameable bool    `json:"is_renameable"`
	CustomStyles *Styles `json:"custom_styles,omitempty"`

	// Hierarchy
	Children []*Node `json:"children,omitempty"`
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n != nil && n.Kind == KindDirectory
}

// EndpointString returns the endpoint or "" when the node is not routable.
func (n *Node) EndpointString() string {
	if n == nil || n.Endpoint == nil {
		return ""
	}
	return *n.Endpoint
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Name         *string    `json:"name,omitempty"`
	RouteType    *RouteType `json:"route_type,omitempty"`
	IsExpanded   *bool      `json:"is_expanded,omitempty"`
	CustomStyles *Styles    `json:"custom_styles,omitempty"`
}

// Renames reports whether the patch touches the node's name or route type.
func (p *Patch) Renames() bool {
	return p != nil && (p.Name != nil || p.RouteType != nil)
}

// Merge returns a copy of p with the non-nil fields of o applied on top.
func (p *Patch) Merge(o *Patch) *Patch {
	out := &Patch{}
	if p != nil {
		*out = *p
	}
	if o == nil {
		return out
	}
	if o.Name != nil {
		out.Name = o.Name
	}
	if o.RouteType != nil {
		out.RouteType = o.RouteType
	}
	if o.IsExpanded != nil {
		out.IsExpanded = o.IsExpanded
	}
	if o.CustomStyles != nil {
		out.CustomStyles = o.CustomStyles
	}
	return out
}

// apply shallow-merges the patch into n.
func (p *Patch) apply(n *Node) {
	if p == nil {
		return
	}
	if p.Name != nil {
		n.Name = *p.Name
	}
	if p.RouteType != nil {
		n.RouteType = *p.RouteType
	}
	if p.IsExpanded != nil {
		n.IsExpanded = *p.IsExpanded
	}
	if p.CustomStyles != nil {
		styles := *p.CustomStyles
		n.CustomStyles = &styles
	}
}

// StringPtr returns a pointer to s, for building patches.
func StringPtr(s string) *string { return &s }

// RouteTypePtr returns a pointer to rt.
func RouteTypePtr(rt RouteType) *RouteType { return &rt }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }
