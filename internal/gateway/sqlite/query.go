package sqlite

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/student-roster/internal/domain"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildWhere compiles filters into a WHERE clause with positional arguments.
// Comparisons are case-insensitive like the in-process matcher.
func buildWhere(filters domain.FilterSpec) (string, []any, error) {
	if filters.Len() == 0 {
		return "", nil, nil
	}
	conditions := make([]string, 0, filters.Len())
	args := make([]any, 0, filters.Len())
	for _, f := range filters.Sorted() {
		column, ok := studentColumns[f.Field]
		if !ok {
			return "", nil, fmt.Errorf("invalid filter column %q", f.Field)
		}
		value := domain.FoldCase(f.Value)
		escaped := likeEscaper.Replace(value)
		switch f.Operator {
		case domain.OpEquals:
			conditions = append(conditions, fmt.Sprintf("LOWER(%s) = ?", column))
			args = append(args, value)
		case domain.OpNotEquals:
			conditions = append(conditions, fmt.Sprintf("LOWER(%s) <> ?", column))
			args = append(args, value)
		case domain.OpStartsWith:
			conditions = append(conditions, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column))
			args = append(args, escaped+"%")
		case domain.OpContains:
			conditions = append(conditions, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column))
			args = append(args, "%"+escaped+"%")
		case domain.OpNotContains:
			conditions = append(conditions, fmt.Sprintf(`LOWER(%s) NOT LIKE ? ESCAPE '\'`, column))
			args = append(args, "%"+escaped+"%")
		case domain.OpEndsWith:
			conditions = append(conditions, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column))
			args = append(args, "%"+escaped)
		default:
			return "", nil, fmt.Errorf("invalid filter operator %q", f.Operator)
		}
	}
	return " WHERE " + strings.Join(conditions, " AND "), args, nil
}

// buildOrder returns an ORDER BY clause from the whitelist. Ties and the
// unsorted case fall back to the primary key so pages are stable.
func buildOrder(sort domain.SortSpec, columns map[string]string, key string) (string, error) {
	if !sort.IsActive() {
		return " ORDER BY " + key + " ASC", nil
	}
	column, ok := columns[sort.Column]
	if !ok {
		return "", fmt.Errorf("invalid sort column %q", sort.Column)
	}
	direction := "ASC"
	if sort.Direction == domain.SortDesc {
		direction = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s COLLATE NOCASE %s, %s ASC", column, direction, key), nil
}
