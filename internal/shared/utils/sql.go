package utils

import (
	"fmt"
	"strings"
)

// Where gom các điều kiện WHERE động với placeholder $n của pgx
type Where struct {
	clauses []string
	args    []any
}

// Add thêm điều kiện; mỗi "?" trong clause được thay bằng $n kế tiếp
func (w *Where) Add(clause string, args ...any) {
	for _, arg := range args {
		w.args = append(w.args, arg)
		clause = strings.Replace(clause, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.clauses = append(w.clauses, clause)
}

// SQL trả " WHERE a AND b" hoặc rỗng
func (w *Where) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + JoinWithAnd(w.clauses)
}

func (w *Where) Args() []any {
	return w.args
}

// Next trả placeholder kế tiếp, dùng cho LIMIT/OFFSET sau WHERE
func (w *Where) Next(arg any) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// EscapeLike escape ký tự đặc biệt của ILIKE
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
