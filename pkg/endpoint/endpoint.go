// Package endpoint derives the public route path of a node from its full path
// in the project tree.
package endpoint

import (
	"path"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-routes/pkg/tree"
)

var (
	groupSegment = regexp.MustCompile(`^\(.+\)$`)

	// Applied in order so the outer brackets of [[...x]] are never consumed
	// by the plain dynamic pattern.
	substitutions = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`\[\[\.\.\.(\w+)\]\]`), ":$1?*"},
		{regexp.MustCompile(`\[\.\.\.(\w+)\]`), ":$1*"},
		{regexp.MustCompile(`\[(\w+)\]`), ":$1"},
	}
)

// Derive returns the endpoint for a node of the given kind living at
// fullPath, e.g. ("page", "/app/blog/[slug]/page.tsx") -> "/blog/:slug".
// ok is false when the node is not routable.
func Derive(kind tree.Kind, fullPath string) (endpoint string, ok bool) {
	if kind == tree.KindFile {
		return "", false
	}

	var segments []string
	for _, s := range strings.Split(fullPath, "/") {
		switch {
		case s == "":
			continue
		case s == tree.MarkerComponents, s == tree.MarkerLib, s == tree.MarkerPublic:
			return "", false
		case groupSegment.MatchString(s):
			continue
		}
		segments = append(segments, s)
	}

	var rel []string
	found, underAPI := false, false
	for i, s := range segments {
		if s == tree.MarkerApp || s == tree.MarkerAPI {
			rel, found = segments[i+1:], true
			underAPI = s == tree.MarkerAPI
			break
		}
	}
	if !found {
		return "", false
	}
	// An api folder inside app counts as the api root.
	if !underAPI && len(rel) > 0 && rel[0] == tree.MarkerAPI {
		rel, underAPI = rel[1:], true
	}

	prefix := "/"
	switch kind {
	case tree.KindPage, tree.KindLayout:
		rel = dropTrailing(rel, string(kind))
	case tree.KindRoute:
		if !underAPI {
			return "", false
		}
		rel = dropTrailing(rel, "route")
		prefix = "/" + tree.MarkerAPI + "/"
	case tree.KindDirectory:
		if underAPI && len(rel) == 0 {
			prefix = "/" + tree.MarkerAPI + "/"
		}
	}

	endpoint = strings.TrimSuffix(prefix+strings.Join(rel, "/"), "/")
	if endpoint == "" {
		endpoint = "/"
	}
	for _, sub := range substitutions {
		endpoint = sub.re.ReplaceAllString(endpoint, sub.repl)
	}
	return endpoint, true
}

// dropTrailing removes the last segment when its stem equals marker.
func dropTrailing(segments []string, marker string) []string {
	if len(segments) == 0 {
		return segments
	}
	last := segments[len(segments)-1]
	if strings.TrimSuffix(last, path.Ext(last)) == marker {
		return segments[:len(segments)-1]
	}
	return segments
}

type cacheKey struct {
	kind tree.Kind
	path string
}

type result struct {
	endpoint string
	ok       bool
}

// Deriver memoizes Derive. Endpoints are a pure function of kind and full
// path, so cached entries never go stale.
type Deriver struct {
	cache  *lru.Cache[cacheKey, result]
	logger *logrus.Entry
}

// NewDeriver creates a Deriver holding up to size entries.
func NewDeriver(size int, logger *logrus.Entry) (*Deriver, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	if size <= 0 {
		size = 512
	}
	cache, err := lru.New[cacheKey, result](size)
	if err != nil {
		return nil, err
	}
	return &Deriver{cache: cache, logger: logger.WithField("component", "endpoint")}, nil
}

// Derive is the memoized form of the package-level Derive.
func (d *Deriver) Derive(kind tree.Kind, fullPath string) (string, bool) {
	key := cacheKey{kind: kind, path: fullPath}
	if r, ok := d.cache.Get(key); ok {
		return r.endpoint, r.ok
	}
	ep, ok := Derive(kind, fullPath)
	d.cache.Add(key, result{endpoint: ep, ok: ok})
	return ep, ok
}

// Apply returns a deep copy of roots with every endpoint recomputed.
func (d *Deriver) Apply(roots []*tree.Node) []*tree.Node {
	out := tree.Clone(roots)
	d.apply(out, "")
	d.logger.WithField("cached", d.cache.Len()).Debug("Recomputed endpoints")
	return out
}

func (d *Deriver) apply(nodes []*tree.Node, prefix string) {
	for _, n := range nodes {
		full := prefix + "/" + n.Name
		if ep, ok := d.Derive(n.Kind, full); ok {
			n.Endpoint = &ep
		} else {
			n.Endpoint = nil
		}
		d.apply(n.Children, full)
	}
}
