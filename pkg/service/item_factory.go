package service

import (
	"github.com/mattsolo1/grove-routes/pkg/tree"
)

// newNode builds the default template for a node of the given kind.
// Directories start expanded and empty; files carry their canonical name.
func (s *Service) newNode(kind tree.Kind) *tree.Node {
	node := &tree.Node{
		ID:           s.newID(),
		Kind:         kind,
		RouteType:    tree.RouteStatic,
		IsEditable:   true,
		IsDeletable:  true,
		IsRenameable: false,
	}

	switch kind {
	case tree.KindDirectory:
		node.Name = s.Config.FolderName
		node.Children = []*tree.Node{}
		node.IsExpanded = true
		node.IsRenameable = true
	case tree.KindPage:
		node.Name = tree.PageFile
	case tree.KindLayout:
		node.Name = tree.LayoutFile
	case tree.KindRoute:
		node.Name = tree.RouteFile
	case tree.KindFile:
		node.Name = tree.PlainFile
		node.IsRenameable = true
	}
	return node
}

// DefaultProject returns the starting tree of a session: an app root holding
// a page and a layout, an empty api root and the non-routing components, lib
// and public folders. Top-level folders can be neither renamed nor deleted.
func DefaultProject(newID func() string) []*tree.Node {
	root := func(name string, children ...*tree.Node) *tree.Node {
		if children == nil {
			children = []*tree.Node{}
		}
		return &tree.Node{
			ID:         newID(),
			Name:       name,
			Kind:       tree.KindDirectory,
			RouteType:  tree.RouteStatic,
			IsEditable: true,
			IsExpanded: name == tree.MarkerApp,
			Children:   children,
		}
	}
	file := func(name string, kind tree.Kind) *tree.Node {
		return &tree.Node{
			ID:          newID(),
			Name:        name,
			Kind:        kind,
			RouteType:   tree.RouteStatic,
			IsEditable:  true,
			IsDeletable: true,
		}
	}

	return []*tree.Node{
		root(tree.MarkerApp,
			file(tree.PageFile, tree.KindPage),
			file(tree.LayoutFile, tree.KindLayout),
		),
		root(tree.MarkerAPI),
		root(tree.MarkerComponents),
		root(tree.MarkerLib),
		root(tree.MarkerPublic),
	}
}
