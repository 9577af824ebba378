package service

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-routes/pkg/endpoint"
	"github.com/mattsolo1/grove-routes/pkg/naming"
	"github.com/mattsolo1/grove-routes/pkg/restrictions"
	"github.com/mattsolo1/grove-routes/pkg/tree"
)

// Service owns the project tree and the current selection. Every mutation is
// validated against the rule tables on a consistent snapshot, applied as a
// single structural replace and followed by a full endpoint recompute.
type Service struct {
	mu       sync.Mutex
	roots    []*tree.Node
	selected string

	deriver  *endpoint.Deriver
	notifier Notifier
	logger   *logrus.Entry
	newID    func() string

	Config *Config
}

// Config holds service configuration
type Config struct {
	// FolderName is the base name of newly created directories.
	FolderName string
	// EndpointCacheSize bounds the endpoint memo cache.
	EndpointCacheSize int
}

type options struct {
	notifier Notifier
	project  []*tree.Node
	newID    func() string
}

// Option customizes a Service.
type Option func(*options)

// WithNotifier routes mutation outcomes to n.
func WithNotifier(n Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithProject starts the session from roots instead of the default project.
// The tree is copied.
func WithProject(roots []*tree.Node) Option {
	return func(o *options) {
		o.project = tree.Clone(roots)
	}
}

// WithIDGenerator replaces the uuid generator, mainly for deterministic tests.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		o.newID = fn
	}
}

// New creates a new project service
func New(config *Config, logger *logrus.Entry, opts ...Option) (*Service, error) {
	if config == nil {
		config = &Config{}
	}
	if config.FolderName == "" {
		config.FolderName = "newFolder"
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}

	o := &options{
		notifier: discard{},
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(o)
	}

	deriver, err := endpoint.NewDeriver(config.EndpointCacheSize, logger)
	if err != nil {
		return nil, fmt.Errorf("create endpoint cache: %w", err)
	}

	project := o.project
	if project == nil {
		project = DefaultProject(o.newID)
	}

	return &Service{
		roots:    deriver.Apply(project),
		deriver:  deriver,
		notifier: o.notifier,
		logger:   logger.WithField("component", "service"),
		newID:    o.newID,
		Config:   config,
	}, nil
}

// Structure returns a copy of the whole tree.
func (s *Service) Structure() []*tree.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tree.Clone(s.roots)
}

// Find returns a copy of the node with the given id.
func (s *Service) Find(id string) (*tree.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := tree.FindByID(s.roots, id)
	if n == nil {
		return nil, fmt.Errorf("find %q: %w", id, ErrNotFound)
	}
	return cloneNode(n), nil
}

// FindByPath returns a copy of the node at a full path such as
// "/app/blog/[slug]".
func (s *Service) FindByPath(path string) (*tree.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := tree.FindByPath(s.roots, path)
	if n == nil {
		return nil, fmt.Errorf("find %q: %w", path, ErrNotFound)
	}
	return cloneNode(n), nil
}

// FullPath returns the full path of the node with the given id.
func (s *Service) FullPath(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := tree.FindByID(s.roots, id)
	if n == nil {
		return "", fmt.Errorf("path of %q: %w", id, ErrNotFound)
	}
	return tree.FullPath(s.roots, n), nil
}

// Create adds a node of the given kind below parentID and returns it.
func (s *Service) Create(parentID string, kind tree.Kind) (*tree.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !kind.Valid() {
		return nil, fmt.Errorf("create: unknown kind %q", kind)
	}
	parent := tree.FindByID(s.roots, parentID)
	if parent == nil {
		return nil, fmt.Errorf("create %s under %q: %w", kind, parentID, ErrNotFound)
	}
	if !parent.IsDir() {
		return nil, fmt.Errorf("create %s under %q: %w", kind, parent.Name, ErrNotDirectory)
	}

	node := s.newNode(kind)
	table := restrictions.Select(s.roots, parent)
	out := table.Rules(kind).CanAdd(restrictions.Input{
		Roots:  s.roots,
		Node:   node,
		Parent: parent,
	})
	if !out.Allowed {
		return nil, s.reject("create", kind, out.Message)
	}
	if out.Patch != nil && out.Patch.Name != nil {
		node.Name = *out.Patch.Name
	}

	roots := tree.Insert(s.roots, parentID, node)
	roots = tree.Replace(roots, parentID, &tree.Patch{IsExpanded: tree.BoolPtr(true)})
	s.commit(roots)

	s.logger.WithFields(logrus.Fields{
		"table": table.Name,
		"kind":  kind,
		"id":    node.ID,
		"path":  tree.FullPath(s.roots, tree.FindByID(s.roots, node.ID)),
	}).Debug("Created node")
	s.inform("create", kind, out.Message)

	return cloneNode(tree.FindByID(s.roots, node.ID)), nil
}

// Update applies patch to the node with the given id and returns the result.
// The applied patch may differ from the requested one, e.g. a suffixed name.
func (s *Service) Update(id string, patch *tree.Patch) (*tree.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := tree.FindByID(s.roots, id)
	if node == nil {
		return nil, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}
	if patch != nil && patch.Name != nil && reservedName(node, *patch.Name) {
		return nil, s.rejectReserved(node, *patch.Name)
	}
	if patch.Renames() && !node.IsRenameable {
		return nil, s.reject("update", node.Kind, "This item cannot be renamed")
	}

	table := restrictions.Select(s.roots, node)
	out := table.Rules(node.Kind).CanUpdate(restrictions.Input{
		Roots:  s.roots,
		Node:   node,
		Parent: tree.FindParent(s.roots, node),
		Patch:  patch,
	})
	if !out.Allowed {
		return nil, s.reject("update", node.Kind, out.Message)
	}

	// Conversions must also be offered by the menu for this directory.
	if node.IsDir() && patch != nil && patch.RouteType != nil && *patch.RouteType != node.RouteType {
		visible := table.Rules(tree.KindDirectory).Visible(restrictions.MenuQuery{
			Roots:     s.roots,
			Dir:       node,
			Kind:      tree.KindDirectory,
			RouteType: *patch.RouteType,
		})
		if !visible {
			return nil, s.reject("update", node.Kind, fmt.Sprintf("A %s folder cannot be converted to %s here", node.RouteType, *patch.RouteType))
		}
	}

	applied := out.Patch
	if applied == nil {
		applied = patch
	}
	if applied.Name != nil && reservedName(node, *applied.Name) {
		return nil, s.rejectReserved(node, *applied.Name)
	}
	s.commit(tree.Replace(s.roots, id, applied))

	updated := tree.FindByID(s.roots, id)
	s.logger.WithFields(logrus.Fields{
		"table": table.Name,
		"kind":  node.Kind,
		"id":    id,
		"from":  node.Name,
		"to":    updated.Name,
	}).Debug("Updated node")
	s.inform("update", node.Kind, out.Message)

	return cloneNode(updated), nil
}

// Delete removes the node with the given id and its subtree.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := tree.FindByID(s.roots, id)
	if node == nil {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	if !node.IsDeletable {
		return s.reject("delete", node.Kind, "This item cannot be deleted")
	}

	table := restrictions.Select(s.roots, node)
	out := table.Rules(node.Kind).CanDelete(restrictions.Input{
		Roots:  s.roots,
		Node:   node,
		Parent: tree.FindParent(s.roots, node),
	})
	if !out.Allowed {
		return s.reject("delete", node.Kind, out.Message)
	}

	path := tree.FullPath(s.roots, node)
	s.commit(tree.Delete(s.roots, id))

	s.logger.WithFields(logrus.Fields{
		"table": table.Name,
		"kind":  node.Kind,
		"path":  path,
	}).Debug("Deleted node")
	s.inform("delete", node.Kind, out.Message)
	return nil
}

// Expand sets the UI-only expansion flag of a directory.
func (s *Service) Expand(id string, expanded bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := tree.FindByID(s.roots, id)
	if node == nil {
		return fmt.Errorf("expand %q: %w", id, ErrNotFound)
	}
	if !node.IsDir() {
		return fmt.Errorf("expand %q: %w", node.Name, ErrNotDirectory)
	}
	s.roots = tree.Replace(s.roots, id, &tree.Patch{IsExpanded: &expanded})
	return nil
}

// Select marks the node with the given id as the current selection.
func (s *Service) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tree.FindByID(s.roots, id) == nil {
		return fmt.Errorf("select %q: %w", id, ErrNotFound)
	}
	s.selected = id
	return nil
}

// Selected returns a copy of the selected node, or nil when nothing is selected.
func (s *Service) Selected() *tree.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneNode(tree.FindByID(s.roots, s.selected))
}

// ClearSelection drops the current selection.
func (s *Service) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
}

// LayoutFor returns the layout living next to the node, or nil.
func (s *Service) LayoutFor(id string) (*tree.Node, error) {
	return s.siblingOfKind(id, tree.KindLayout)
}

// PageFor returns the page living next to the node, or nil.
func (s *Service) PageFor(id string) (*tree.Node, error) {
	return s.siblingOfKind(id, tree.KindPage)
}

func (s *Service) siblingOfKind(id string, kind tree.Kind) (*tree.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	node := tree.FindByID(s.roots, id)
	if node == nil {
		return nil, fmt.Errorf("%s for %q: %w", kind, id, ErrNotFound)
	}
	return cloneNode(tree.ChildOfKind(tree.FindParent(s.roots, node), kind)), nil
}

// commit installs roots as the new tree, recomputes every endpoint and drops
// a selection that no longer resolves. Callers hold s.mu.
func (s *Service) commit(roots []*tree.Node) {
	s.roots = s.deriver.Apply(roots)
	if s.selected != "" && tree.FindByID(s.roots, s.selected) == nil {
		s.logger.WithField("id", s.selected).Debug("Selection cleared")
		s.selected = ""
	}
}

func (s *Service) reject(op string, kind tree.Kind, msg string) error {
	s.logger.WithFields(logrus.Fields{"op": op, "kind": kind}).Warn(msg)
	s.notifier.Notify(Notification{
		Level:   LevelError,
		Title:   fmt.Sprintf("Cannot %s %s", op, kind),
		Message: msg,
	})
	return newRestrictionError(op, kind, msg)
}

func (s *Service) inform(op string, kind tree.Kind, msg string) {
	if msg == "" {
		return
	}
	s.logger.WithFields(logrus.Fields{"op": op, "kind": kind}).Info(msg)
	s.notifier.Notify(Notification{
		Level:   LevelInfo,
		Title:   fmt.Sprintf("%s %s", op, kind),
		Message: msg,
	})
}

func (s *Service) rejectReserved(node *tree.Node, name string) error {
	s.logger.WithFields(logrus.Fields{"op": "update", "kind": node.Kind, "name": name}).Warn("Reserved name")
	s.notifier.Notify(Notification{
		Level:   LevelError,
		Title:   "Cannot update " + string(node.Kind),
		Message: fmt.Sprintf("%q is a reserved name", name),
	})
	return fmt.Errorf("rename to %q: %w", name, ErrReservedName)
}

// reservedName reports whether renaming node to name would produce a marker
// name. Directory names lose their decoration when applied, so "a_pi" counts
// as "api".
func reservedName(node *tree.Node, name string) bool {
	if tree.Reserved(name) {
		return true
	}
	return node.IsDir() && tree.Reserved(naming.Strip(name))
}

func cloneNode(n *tree.Node) *tree.Node {
	if n == nil {
		return nil
	}
	return tree.Clone([]*tree.Node{n})[0]
}
