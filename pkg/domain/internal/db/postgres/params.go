package postgres

import (
	"fmt"
	"strings"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
)

// Params collects query parameters and hands out their placeholders.
type Params []any

// Add appends v and returns its placeholder ("$1", "$2", ...).
func (p *Params) Add(v any) string {
	*p = append(*p, v)
	return fmt.Sprintf("$%d", len(*p))
}

// After returns a condition selecting rows after the cursor in
// (timeExpr DESC, idExpr DESC) order.
//
// It returns "true" when c is nil.
func After(p *Params, timeExpr string, idExpr string, c *domain.Cursor) string {
	if c == nil {
		return "true"
	}
	t := p.Add(c.UpdatedAt)
	id := p.Add(c.Id)
	return fmt.Sprintf(
		"(%[1]s < %[3]s or (%[1]s = %[3]s and %[2]s < %[4]s::uuid))",
		timeExpr, idExpr, t, id,
	)
}

// AfterCount is After for cursors keyed by a counter.
func AfterCount(p *Params, countExpr string, idExpr string, c *domain.TrendingCursor) string {
	if c == nil {
		return "true"
	}
	n := p.Add(c.ViewCount)
	id := p.Add(c.Id)
	return fmt.Sprintf(
		"(%[1]s < %[3]s or (%[1]s = %[3]s and %[2]s < %[4]s::uuid))",
		countExpr, idExpr, n, id,
	)
}

// And joins conditions. Empty conditions are ignored.
func And(conds ...string) string {
	nonEmpty := make([]string, 0, len(conds))
	for _, c := range conds {
		if c == "" {
			continue
		}
		nonEmpty = append(nonEmpty, c)
	}
	if len(nonEmpty) == 0 {
		return "true"
	}
	return strings.Join(nonEmpty, " and ")
}
