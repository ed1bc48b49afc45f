package store

import (
	"fmt"
	"strings"
)

// Statements use ? placeholders; the gorm dialector rewrites them for the
// active driver. Identifiers are validated against the Table whitelist.

// BuildSelect renders a SELECT with its bound parameters, in placeholder order.
func BuildSelect(t Table, q Query) (string, []any, error) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(t.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(t.name)

	where, args, err := buildWhere(t, q.Conditions, q.Search)
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(where)

	order, err := ParseOrderBy(t, q.OrderBy)
	if err != nil {
		return "", nil, err
	}
	if order != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(order)
	}

	if q.Limit < 0 || q.Offset < 0 {
		return "", nil, fmt.Errorf("%w: negative limit or offset", ErrInvalidQuery)
	}
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
		if q.Offset > 0 {
			sb.WriteString(" OFFSET ?")
			args = append(args, q.Offset)
		}
	}

	return sb.String(), args, nil
}

// BuildCount renders SELECT COUNT(*) with the same filtering as BuildSelect.
func BuildCount(t Table, conds []Condition, search *Search) (string, []any, error) {
	where, args, err := buildWhere(t, conds, search)
	if err != nil {
		return "", nil, err
	}
	return "SELECT COUNT(*) FROM " + t.name + where, args, nil
}

func BuildSelectByID(t Table, id int64) (string, []any) {
	return "SELECT " + strings.Join(t.columns, ", ") + " FROM " + t.name + " WHERE id = ?", []any{id}
}

// BuildInsert renders an INSERT returning the generated id.
func BuildInsert(t Table, fields Fields) (string, []any, error) {
	cols, vals := fields.Set()
	if len(cols) == 0 {
		return "", nil, fmt.Errorf("%w: insert into %s without fields", ErrInvalidQuery, t.name)
	}
	if err := checkColumns(t, cols); err != nil {
		return "", nil, err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		t.name, strings.Join(cols, ", "), placeholders,
	)
	return sql, vals, nil
}

// BuildUpdate renders a partial UPDATE of the supplied fields only.
func BuildUpdate(t Table, id int64, fields Fields) (string, []any, error) {
	cols, vals := fields.Set()
	if len(cols) == 0 {
		return "", nil, fmt.Errorf("%w: update of %s without fields", ErrInvalidQuery, t.name)
	}
	if err := checkColumns(t, cols); err != nil {
		return "", nil, err
	}

	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
	}
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", t.name, strings.Join(sets, ", "))
	return sql, append(vals, id), nil
}

func BuildDelete(t Table, id int64) (string, []any) {
	return "DELETE FROM " + t.name + " WHERE id = ?", []any{id}
}

// ParseOrderBy validates a "column [asc|desc]" fragment and returns its
// canonical form. An empty input yields "".
func ParseOrderBy(t Table, raw string) (string, error) {
	parts := strings.Fields(raw)
	switch len(parts) {
	case 0:
		return "", nil
	case 1, 2:
	default:
		return "", fmt.Errorf("%w: order by %q", ErrInvalidQuery, raw)
	}

	if !t.Has(parts[0]) {
		return "", fmt.Errorf("%w: unknown column %q on %s", ErrInvalidQuery, parts[0], t.name)
	}

	dir := "ASC"
	if len(parts) == 2 {
		dir = strings.ToUpper(parts[1])
		if dir != "ASC" && dir != "DESC" {
			return "", fmt.Errorf("%w: order direction %q", ErrInvalidQuery, parts[1])
		}
	}
	return parts[0] + " " + dir, nil
}

// likeEscaper makes % and _ in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func buildWhere(t Table, conds []Condition, search *Search) (string, []any, error) {
	var clauses []string
	var args []any

	if search != nil && strings.TrimSpace(search.Term) != "" {
		if len(search.Columns) == 0 {
			return "", nil, fmt.Errorf("%w: search without columns", ErrInvalidQuery)
		}
		if err := checkColumns(t, search.Columns); err != nil {
			return "", nil, err
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(search.Term))) + "%"
		likes := make([]string, len(search.Columns))
		for i, c := range search.Columns {
			likes[i] = "LOWER(" + c + `) LIKE ? ESCAPE '\'`
			args = append(args, pattern)
		}
		clauses = append(clauses, "("+strings.Join(likes, " OR ")+")")
	}

	for _, c := range conds {
		if !t.Has(c.Column) {
			return "", nil, fmt.Errorf("%w: unknown column %q on %s", ErrInvalidQuery, c.Column, t.name)
		}
		op := normalizeOp(c.Op)
		if _, ok := allowedOps[op]; !ok {
			return "", nil, fmt.Errorf("%w: operator %q", ErrInvalidQuery, c.Op)
		}

		if isNil(c.Value) {
			switch op {
			case "=":
				clauses = append(clauses, c.Column+" IS NULL")
			case "!=", "<>":
				clauses = append(clauses, c.Column+" IS NOT NULL")
			default:
				return "", nil, fmt.Errorf("%w: %s compared to NULL with %s", ErrInvalidQuery, c.Column, op)
			}
			continue
		}

		clauses = append(clauses, c.Column+" "+op+" ?")
		args = append(args, deref(c.Value))
	}

	if len(clauses) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func checkColumns(t Table, cols []string) error {
	for _, c := range cols {
		if !t.Has(c) {
			return fmt.Errorf("%w: unknown column %q on %s", ErrInvalidQuery, c, t.name)
		}
	}
	return nil
}
