// Package naming maps route types to on-disk folder decorations and resolves
// sibling name collisions.
package naming

import (
	"path"
	"regexp"
	"strings"

	"github.com/mattsolo1/grove-routes/pkg/tree"
)

var decorationPattern = regexp.MustCompile(`[()\[\]{}@._]`)

// Decorate wraps a bare name in the decoration of the given route type.
func Decorate(rt tree.RouteType, name string) string {
	switch rt {
	case tree.RouteGroup:
		return "(" + name + ")"
	case tree.RouteDynamic:
		return "[" + name + "]"
	case tree.RouteCatchAll:
		return "[..." + name + "]"
	case tree.RouteOptionalCatchAll:
		return "[[..." + name + "]]"
	case tree.RoutePrivate:
		return "_" + name
	case tree.RouteParallel:
		return "@" + name
	case tree.RouteInterceptedSameLevel:
		return "(.)" + name
	case tree.RouteInterceptedOneLevelAbove:
		return "(..)" + name
	case tree.RouteInterceptedTwoLevelsAbove:
		return "(...)" + name
	default:
		return name
	}
}

// Strip removes every decoration character, leaving the bare identifier.
func Strip(name string) string {
	return decorationPattern.ReplaceAllString(name, "")
}

// Suffix converts a 0-based counter into a base-26 letter sequence:
// 0 -> A, 25 -> Z, 26 -> AA, 27 -> AB.
func Suffix(n int) string {
	var sb []byte
	for {
		sb = append([]byte{byte('A' + n%26)}, sb...)
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return string(sb)
}

// Unique returns decorate(rt, strip(base)), suffixed until no sibling other
// than excludeID carries the same name. iterations is the number of suffixes
// tried; zero means the first candidate was free.
func Unique(siblings []*tree.Node, excludeID string, rt tree.RouteType, base string) (name string, iterations int) {
	name = Decorate(rt, Strip(base))
	for taken(siblings, excludeID, name) {
		name = Decorate(rt, Strip(base+Suffix(iterations)))
		iterations++
	}
	return name, iterations
}

// UniqueFile is Unique for plain file names: the suffix goes before the
// extension and no decoration is applied (file.ts -> fileA.ts).
func UniqueFile(siblings []*tree.Node, excludeID, base string) (name string, iterations int) {
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name = base
	for taken(siblings, excludeID, name) {
		name = stem + Suffix(iterations) + ext
		iterations++
	}
	return name, iterations
}

func taken(siblings []*tree.Node, excludeID, name string) bool {
	for _, s := range siblings {
		if s.ID != excludeID && s.Name == name {
			return true
		}
	}
	return false
}
