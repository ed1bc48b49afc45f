package store

// Table is a compiled-in description of one relational table. Only names
// registered here ever reach SQL text as identifiers.
type Table struct {
	name    string
	columns []string
	known   map[string]struct{}
}

// NewTable declares a table and its column whitelist.
func NewTable(name string, columns ...string) Table {
	known := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		known[c] = struct{}{}
	}
	return Table{name: name, columns: columns, known: known}
}

func (t Table) Name() string { return t.name }

func (t Table) Has(column string) bool {
	_, ok := t.known[column]
	return ok
}
