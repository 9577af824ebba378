// Package restrictions holds the rule tables that decide which structural
// mutations of the project tree are legal.
//
// There are two tables: API for nodes inside the api subtree and App for
// everything else. Each table maps a node kind to a Rules value. Rules never
// return errors; a rejection is an Outcome with Allowed unset and a message
// the caller can show to the user.
package restrictions

import "github.com/mattsolo1/grove-routes/pkg/tree"

// MenuQuery asks whether an option belongs in the context menu of Dir.
// RouteType is empty for "add a node of Kind" and set for "convert Dir to
// RouteType".
type MenuQuery struct {
	Roots     []*tree.Node
	Dir       *tree.Node
	Kind      tree.Kind
	RouteType tree.RouteType
}

// Input is the context handed to the create, update and delete checks.
type Input struct {
	Roots  []*tree.Node
	Node   *tree.Node
	Parent *tree.Node
	// Patch is the requested update. Nil for create and delete.
	Patch *tree.Patch
}

// Outcome is the verdict of a check. On acceptance Patch, when non-nil, is the
// corrected change the caller must apply instead of the requested one: the
// collision-free name on create, the full patch on update.
type Outcome struct {
	Allowed bool
	Message string
	Patch   *tree.Patch
}

// Rules is the four-operation contract for one node kind.
type Rules struct {
	Visible   func(q MenuQuery) bool
	CanAdd    func(in Input) Outcome
	CanUpdate func(in Input) Outcome
	CanDelete func(in Input) Outcome
}

// Table maps a node kind to its rules.
type Table struct {
	Name  string
	Kinds map[tree.Kind]Rules
}

// Rules returns the rules for kind. Unknown kinds get rules that reject
// everything.
func (t Table) Rules(kind tree.Kind) Rules {
	if r, ok := t.Kinds[kind]; ok {
		return r
	}
	return denyAll("Unknown node kind " + string(kind))
}

func allow() Outcome {
	return Outcome{Allowed: true}
}

func allowWith(p *tree.Patch, msg string) Outcome {
	return Outcome{Allowed: true, Patch: p, Message: msg}
}

func reject(msg string) Outcome {
	return Outcome{Message: msg}
}

func always(Input) Outcome { return allow() }

func denyAll(msg string) Rules {
	deny := func(Input) Outcome { return reject(msg) }
	return Rules{
		Visible:   func(MenuQuery) bool { return false },
		CanAdd:    deny,
		CanUpdate: deny,
		CanDelete: deny,
	}
}

// renameMessage is reported when a suffix had to be added to avoid a collision.
const renameMessage = "To avoid naming conflicts, a suffix has been added to the name"

// emptyNameMessage is reported when a folder name consists only of
// decoration characters.
const emptyNameMessage = "A folder name cannot consist only of ()[]{}@._ characters"
