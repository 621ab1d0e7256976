// Package aisle loads the workspace ingredient alias table: a config
// file of named categories listing ingredient names, where a name may
// declare pipe-separated aliases whose first entry is the canonical
// one. The loaded table is an immutable snapshot swapped atomically on
// reload, so completion requests never observe a half-loaded table.
package aisle

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
)

// Ingredient is one name known to the table. Name may be an alias;
// CommonName is the canonical spelling for its group.
type Ingredient struct {
	Name       string
	CommonName string
	Category   string
}

// IsAlias reports whether this entry is an alias rather than the
// canonical name.
func (i Ingredient) IsAlias() bool {
	return i.Name != i.CommonName
}

// Table is an immutable alias table snapshot.
type Table struct {
	byName  map[string]Ingredient
	ordered []Ingredient
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{byName: map[string]Ingredient{}}
}

// Lookup finds an entry by case-insensitive name.
func (t *Table) Lookup(name string) (Ingredient, bool) {
	ing, ok := t.byName[strings.ToLower(name)]
	return ing, ok
}

// All returns every entry in file order.
func (t *Table) All() []Ingredient {
	return t.ordered
}

// Len reports the number of entries.
func (t *Table) Len() int {
	return len(t.ordered)
}

func (t *Table) add(ing Ingredient) {
	key := strings.ToLower(ing.Name)
	if _, ok := t.byName[key]; ok {
		return
	}
	t.byName[key] = ing
	t.ordered = append(t.ordered, ing)
}

// Parse reads an aisle config. The parse is lenient: a malformed line
// is skipped and the rest of the load continues. The returned table is
// always usable; the returned error aggregates everything that was
// skipped and is meant for logging, not for aborting.
//
//	[produce]
//	potatoes
//	onions|yellow onion
func Parse(r io.Reader) (*Table, error) {
	table := NewTable()

	var issues error
	category := ""
	lineNo := 0

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())

		switch {
		case line == "" || strings.HasPrefix(line, "--"):

		case strings.HasPrefix(line, "["):
			if !strings.HasSuffix(line, "]") || len(line) < 3 {
				issues = multierr.Append(issues, fmt.Errorf("line %d: malformed category %q", lineNo, line))
				continue
			}
			category = strings.TrimSpace(line[1 : len(line)-1])

		case category == "":
			issues = multierr.Append(issues, fmt.Errorf("line %d: ingredient %q outside any category", lineNo, line))

		default:
			names := splitNames(line)
			if len(names) == 0 {
				issues = multierr.Append(issues, fmt.Errorf("line %d: empty ingredient entry", lineNo))
				continue
			}
			common := names[0]
			for _, name := range names {
				table.add(Ingredient{Name: name, CommonName: common, Category: category})
			}
		}
	}
	if err := sc.Err(); err != nil {
		issues = multierr.Append(issues, errors.Errorf("reading aisle config: %w", err))
	}

	return table, issues
}

// splitNames splits a pipe-separated alias list, dropping empty parts.
func splitNames(line string) []string {
	var names []string
	for _, part := range strings.Split(line, "|") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}
