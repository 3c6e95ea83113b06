package sqlite

// Schema DDL. The database is recreated on every Attach, so there is no
// migration path.
const (
	createRedirects = `CREATE TABLE redirects (
    parent_state TEXT PRIMARY KEY,
    child_state TEXT NOT NULL,
    params TEXT NOT NULL,
    recorded_at TEXT NOT NULL
);`

	createTransitions = `CREATE TABLE transitions (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    transition_id TEXT NOT NULL UNIQUE,
    from_state TEXT NOT NULL,
    to_state TEXT NOT NULL,
    title TEXT NOT NULL,
    href TEXT NOT NULL,
    params TEXT NOT NULL,
    replay INTEGER NOT NULL,
    settled_at TEXT NOT NULL
);`
)

const (
	idxTransitionsTo = `CREATE INDEX idx_transitions_to ON transitions(to_state);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createRedirects,
	createTransitions,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxTransitionsTo,
}
