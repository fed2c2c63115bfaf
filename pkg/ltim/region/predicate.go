package region

import (
	"strings"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/models"
)

// Predicate decides whether a cell is kept by Filter.
type Predicate func(models.Cell) bool

// Equals matches cells whose trimmed text equals s.
func Equals(s string) Predicate {
	return func(c models.Cell) bool {
		return strings.TrimSpace(c.Text()) == s
	}
}

// ContainsString matches string cells containing s.
func ContainsString(s string) Predicate {
	return func(c models.Cell) bool {
		v, ok := c.Value.(string)
		return ok && strings.Contains(v, s)
	}
}

// OneOf matches cells whose trimmed text is one of values.
func OneOf(values ...string) Predicate {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(c models.Cell) bool {
		_, ok := set[strings.TrimSpace(c.Text())]
		return ok
	}
}

// IsBlank matches empty cells.
func IsBlank(c models.Cell) bool { return c.IsBlank() }

// IsNotBlank matches cells with a value.
func IsNotBlank(c models.Cell) bool { return !c.IsBlank() }

// IsNotWhitespace matches cells that are not whitespace-only strings.
func IsNotWhitespace(c models.Cell) bool { return !c.IsWhitespace() }

// IsNumber matches numeric cells.
func IsNumber(c models.Cell) bool { return c.IsNumber() }

// Not inverts p.
func Not(p Predicate) Predicate {
	return func(c models.Cell) bool { return !p(c) }
}
