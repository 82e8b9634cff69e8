package access

import (
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/train-schedule-microservice/internal/pkg/utils"
)

// Predicate is a small boolean expression tree over field-equality leaves.
// The storage adapter lowers it to whatever query syntax the store uses;
// nothing here is tied to SQL beyond the squirrel lowering below.
type Predicate interface {
	isPredicate()
}

// True matches every row.
type True struct{}

// False matches no row.
type False struct{}

// Eq is a single field-equality leaf. Field is the camelCase entity field
// name; translation to a column name happens at lowering time.
type Eq struct {
	Field string
	Value any
}

// And is the conjunction of its parts.
type And struct {
	Preds []Predicate
}

// Or is the disjunction of its parts.
type Or struct {
	Preds []Predicate
}

func (True) isPredicate()  {}
func (False) isPredicate() {}
func (Eq) isPredicate()    {}
func (And) isPredicate()   {}
func (Or) isPredicate()    {}

// conjunctionOf builds the AND of one grant's conditions with keys in sorted
// order, so the same grant always renders the same expression.
func conjunctionOf(conditions map[string]any) Predicate {
	keys := make([]string, 0, len(conditions))
	for k := range conditions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	preds := make([]Predicate, 0, len(keys))
	for _, k := range keys {
		preds = append(preds, Eq{Field: k, Value: conditions[k]})
	}
	if len(preds) == 1 {
		return preds[0]
	}
	return And{Preds: preds}
}

// Sqlizer lowers a predicate to a squirrel expression. Columns are the
// snake_case form of the field names, qualified with prefix when given.
// True lowers to nil, meaning the caller can omit the clause entirely.
func Sqlizer(p Predicate, prefix string) sq.Sqlizer {
	switch v := p.(type) {
	case nil, True:
		return nil
	case False:
		return sq.Expr("1 = 0")
	case Eq:
		return sq.Eq{column(v.Field, prefix): v.Value}
	case And:
		conj := make(sq.And, 0, len(v.Preds))
		for _, part := range v.Preds {
			if lowered := Sqlizer(part, prefix); lowered != nil {
				conj = append(conj, lowered)
			}
		}
		if len(conj) == 0 {
			return nil
		}
		return conj
	case Or:
		disj := make(sq.Or, 0, len(v.Preds))
		for _, part := range v.Preds {
			lowered := Sqlizer(part, prefix)
			if lowered == nil {
				// one always-true branch makes the whole disjunction true
				return nil
			}
			disj = append(disj, lowered)
		}
		return disj
	}
	return sq.Expr("1 = 0")
}

func column(field, prefix string) string {
	col := utils.ToSnakeCase(field)
	if prefix == "" {
		return col
	}
	return prefix + "." + col
}

// RenderSQL returns the textual form of a predicate with "?" placeholders,
// mainly for logging and tests. True renders as "TRUE".
func RenderSQL(p Predicate, prefix string) (string, []any, error) {
	lowered := Sqlizer(p, prefix)
	if lowered == nil {
		return "TRUE", nil, nil
	}
	query, args, err := lowered.ToSql()
	if err != nil {
		return "", nil, err
	}
	return strings.TrimSpace(query), args, nil
}
