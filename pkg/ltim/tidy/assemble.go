// Package tidy assembles resolved observation tables and cleans them into
// the published column schema.
package tidy

import "github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/models"

// Concat stacks tables on top of each other. The result has every column of
// every input, in first-seen order; a record keeps only the columns its own
// table had, so the others read as missing.
func Concat(tables ...models.Table) models.Table {
	var out models.Table
	seen := make(map[string]struct{})
	for _, t := range tables {
		for _, c := range t.Columns {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out.Columns = append(out.Columns, c)
		}
		out.Records = append(out.Records, t.Records...)
	}
	return out
}
