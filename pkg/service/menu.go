package service

import (
	"fmt"

	"github.com/mattsolo1/grove-routes/pkg/restrictions"
	"github.com/mattsolo1/grove-routes/pkg/tree"
)

// MenuAction is what a menu option does when chosen.
type MenuAction string

const (
	ActionAdd     MenuAction = "add"
	ActionConvert MenuAction = "convert"
)

// MenuOption is one entry of a directory's context menu.
type MenuOption struct {
	Action    MenuAction     `json:"action"`
	Kind      tree.Kind      `json:"kind"`
	RouteType tree.RouteType `json:"route_type,omitempty"`
	Label     string         `json:"label"`
}

var addLabels = map[tree.Kind]string{
	tree.KindDirectory: "New Folder",
	tree.KindRoute:     "Add Route File",
	tree.KindPage:      "Add Page",
	tree.KindLayout:    "Add Layout",
	tree.KindFile:      "Add File",
}

var convertLabels = map[tree.RouteType]string{
	tree.RouteStatic:                    "Make Static",
	tree.RouteGroup:                     "Make Group",
	tree.RouteDynamic:                   "Make Dynamic",
	tree.RouteCatchAll:                  "Make Catch-all",
	tree.RouteOptionalCatchAll:          "Make Optional Catch-all",
	tree.RoutePrivate:                   "Make Private",
	tree.RouteParallel:                  "Make Parallel",
	tree.RouteInterceptedSameLevel:      "Intercept (.)",
	tree.RouteInterceptedOneLevelAbove:  "Intercept (..)",
	tree.RouteInterceptedTwoLevelsAbove: "Intercept (...)",
}

// Menu lists the options the context menu of a directory offers, additions
// first, then conversions, each in declaration order. Files have no menu and
// fixed folders offer no conversions.
func (s *Service) Menu(id string) ([]MenuOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := tree.FindByID(s.roots, id)
	if node == nil {
		return nil, fmt.Errorf("menu %q: %w", id, ErrNotFound)
	}
	if !node.IsDir() {
		return nil, nil
	}

	table := restrictions.Select(s.roots, node)
	var menu []MenuOption
	for _, kind := range tree.Kinds {
		q := restrictions.MenuQuery{Roots: s.roots, Dir: node, Kind: kind}
		if table.Rules(kind).Visible(q) {
			menu = append(menu, MenuOption{Action: ActionAdd, Kind: kind, Label: addLabels[kind]})
		}
	}
	if !node.IsRenameable {
		return menu, nil
	}
	for _, rt := range tree.RouteTypes {
		q := restrictions.MenuQuery{Roots: s.roots, Dir: node, Kind: tree.KindDirectory, RouteType: rt}
		if table.Rules(tree.KindDirectory).Visible(q) {
			menu = append(menu, MenuOption{Action: ActionConvert, Kind: tree.KindDirectory, RouteType: rt, Label: convertLabels[rt]})
		}
	}
	return menu, nil
}
