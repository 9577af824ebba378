package tree

import "strings"

// FindByID returns the first node with the given id in depth-first order,
// visiting a node's children before its later siblings.
func FindByID(roots []*Node, id string) *Node {
	if id == "" {
		return nil
	}
	for _, n := range roots {
		if n.ID == id {
			return n
		}
		if found := FindByID(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// FindParent returns the directory whose children contain target, or nil for roots.
func FindParent(roots []*Node, target *Node) *Node {
	if target == nil {
		return nil
	}
	return findParentByID(roots, target.ID)
}

func findParentByID(nodes []*Node, id string) *Node {
	for _, n := range nodes {
		for _, child := range n.Children {
			if child.ID == id {
				return n
			}
		}
		if found := findParentByID(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// FullPath joins raw names from the root down to node, e.g. "/app/blog/[slug]".
func FullPath(roots []*Node, node *Node) string {
	if node == nil {
		return ""
	}
	parts := []string{node.Name}
	for cur := FindParent(roots, node); cur != nil; cur = FindParent(roots, cur) {
		parts = append([]string{cur.Name}, parts...)
	}
	return "/" + strings.Join(parts, "/")
}

// FindByPath resolves a full path produced by FullPath back to its node.
func FindByPath(roots []*Node, path string) *Node {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}

	nodes := roots
	var cur *Node
	for _, segment := range strings.Split(trimmed, "/") {
		cur = nil
		for _, n := range nodes {
			if n.Name == segment {
				cur = n
				break
			}
		}
		if cur == nil {
			return nil
		}
		nodes = cur.Children
	}
	return cur
}

// Walk visits every node depth-first together with its parent (nil for roots).
func Walk(roots []*Node, fn func(n, parent *Node)) {
	walk(roots, nil, fn)
}

func walk(nodes []*Node, parent *Node, fn func(n, parent *Node)) {
	for _, n := range nodes {
		fn(n, parent)
		walk(n.Children, n, fn)
	}
}

// Clone returns a deep copy of the tree.
func Clone(roots []*Node) []*Node {
	if roots == nil {
		return nil
	}
	out := make([]*Node, len(roots))
	for i, n := range roots {
		cp := *n
		if n.CustomStyles != nil {
			styles := *n.CustomStyles
			cp.CustomStyles = &styles
		}
		if n.Children != nil {
			cp.Children = Clone(n.Children)
		}
		out[i] = &cp
	}
	return out
}

// Replace returns a new tree where the node matching id is shallow-merged with
// patch. Only the nodes on the path to the target are copied; the input tree is
// left untouched. An unknown id returns roots unchanged.
func Replace(roots []*Node, id string, patch *Patch) []*Node {
	out, _ := rewrite(roots, id, func(n *Node) *Node {
		cp := *n
		patch.apply(&cp)
		return &cp
	})
	return out
}

// Insert returns a new tree with child appended to the children of parentID.
func Insert(roots []*Node, parentID string, child *Node) []*Node {
	out, _ := rewrite(roots, parentID, func(n *Node) *Node {
		if !n.IsDir() {
			return n
		}
		cp := *n
		cp.Children = make([]*Node, 0, len(n.Children)+1)
		cp.Children = append(cp.Children, n.Children...)
		cp.Children = append(cp.Children, child)
		return &cp
	})
	return out
}

// Delete returns a new tree without the node matching id and its subtree.
func Delete(roots []*Node, id string) []*Node {
	out, _ := rewrite(roots, id, func(*Node) *Node { return nil })
	return out
}

// rewrite replaces the node matching id with fn's result (removing it when fn
// returns nil) and copies every ancestor on the way back up.
func rewrite(nodes []*Node, id string, fn func(*Node) *Node) ([]*Node, bool) {
	for i, n := range nodes {
		if n.ID == id {
			out := make([]*Node, 0, len(nodes))
			out = append(out, nodes[:i]...)
			if replaced := fn(n); replaced != nil {
				out = append(out, replaced)
			}
			out = append(out, nodes[i+1:]...)
			return out, true
		}
		if n.Children == nil {
			continue
		}
		children, ok := rewrite(n.Children, id, fn)
		if !ok {
			continue
		}
		cp := *n
		cp.Children = children
		out := make([]*Node, len(nodes))
		copy(out, nodes)
		out[i] = &cp
		return out, true
	}
	return nodes, false
}
