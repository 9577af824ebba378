package search

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/grove-routes/pkg/tree"
)

// Entry is one indexed node of the project tree.
type Entry struct {
	ID        string         `json:"id"`
	Path      string         `json:"path"`
	Name      string         `json:"name"`
	Kind      tree.Kind      `json:"kind"`
	RouteType tree.RouteType `json:"route_type"`
	Endpoint  string         `json:"endpoint,omitempty"`
	Routable  bool           `json:"routable"`
}

// Index keeps the route table of a project in sqlite for ad-hoc lookups.
type Index struct {
	db *sql.DB
}

// NewIndex opens an index at dsn. An empty dsn keeps it in memory.
func NewIndex(dsn string) (*Index, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: gets its own database.
	db.SetMaxOpenConns(1)

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		db.Close()
		return nil, err
	}

	return idx, nil
}

// init creates the database schema
func (idx *Index) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS routes (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		route_type TEXT NOT NULL,
		endpoint TEXT,
		routable BOOLEAN NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_routes_kind ON routes(kind);
	CREATE INDEX IF NOT EXISTS idx_routes_endpoint ON routes(endpoint);
	`
	if _, err := idx.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Rebuild replaces the indexed content with the nodes of roots.
func (idx *Index) Rebuild(roots []*tree.Node) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec("DELETE FROM routes"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO routes (id, path, name, kind, route_type, endpoint, routable)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	var insertErr error
	tree.Walk(roots, func(n, _ *tree.Node) {
		if insertErr != nil {
			return
		}
		var endpoint sql.NullString
		if n.Endpoint != nil {
			endpoint = sql.NullString{String: *n.Endpoint, Valid: true}
		}
		_, insertErr = stmt.Exec(n.ID, tree.FullPath(roots, n), n.Name, n.Kind, n.RouteType, endpoint, endpoint.Valid)
	})
	if insertErr != nil {
		return fmt.Errorf("index node: %w", insertErr)
	}

	return tx.Commit()
}

// Options for searching
type Options struct {
	Kind         tree.Kind
	RoutableOnly bool
	Limit        int
}

// Search returns entries whose path or endpoint contains query, ordered by
// path. An empty query matches everything.
func (idx *Index) Search(query string, opts *Options) ([]*Entry, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Limit == 0 {
		opts.Limit = 500
	}

	var conditions []string
	var args []any

	if opts.Kind != "" {
		conditions = append(conditions, "kind = ?")
		args = append(args, opts.Kind)
	}
	if opts.RoutableOnly {
		conditions = append(conditions, "routable = 1")
	}
	if query != "" {
		pattern := "%" + escapeLike(query) + "%"
		conditions = append(conditions, `(path LIKE ? ESCAPE '\' OR endpoint LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	searchQuery := fmt.Sprintf(`
		SELECT id, path, name, kind, route_type, endpoint, routable
		FROM routes
		%s
		ORDER BY path
		LIMIT ?
	`, whereClause)
	args = append(args, opts.Limit)

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*Entry
	for rows.Next() {
		e := &Entry{}
		var endpoint sql.NullString
		if err := rows.Scan(&e.ID, &e.Path, &e.Name, &e.Kind, &e.RouteType, &endpoint, &e.Routable); err != nil {
			return nil, err
		}
		e.Endpoint = endpoint.String
		results = append(results, e)
	}

	return results, rows.Err()
}

// Close closes the index
func (idx *Index) Close() error {
	return idx.db.Close()
}

// escapeLike makes LIKE wildcards in s match literally. Private folders
// start with an underscore, which LIKE would otherwise treat as "any char".
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
