package completion

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed data/units.txt data/time_units.txt data/ingredients.txt data/cookware.txt
var dataFS embed.FS

// UnitPair is a measurement unit with its spelled-out form, used to
// render completion detail text such as "g (grams)".
type UnitPair struct {
	Short string
	Long  string
}

var (
	builtinUnits       = mustParseUnitPairs("data/units.txt")
	builtinTimeUnits   = mustParseUnitPairs("data/time_units.txt")
	builtinIngredients = mustParseList("data/ingredients.txt")
	builtinCookware    = mustParseList("data/cookware.txt")
)

// parseUnitPairs reads "short = long" lines. Blank lines and lines
// starting with '#' are skipped; a line without '=' becomes a pair
// whose long form equals the short form.
func parseUnitPairs(data string) []UnitPair {
	var pairs []UnitPair
	sc := bufio.NewScanner(strings.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		short, long, ok := strings.Cut(line, "=")
		if !ok {
			pairs = append(pairs, UnitPair{Short: line, Long: line})
			continue
		}
		pairs = append(pairs, UnitPair{
			Short: strings.TrimSpace(short),
			Long:  strings.TrimSpace(long),
		})
	}
	return pairs
}

// parseList reads one entry per line, skipping blanks and '#' comments.
func parseList(data string) []string {
	var items []string
	sc := bufio.NewScanner(strings.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, line)
	}
	return items
}

func mustParseUnitPairs(name string) []UnitPair {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		panic("completion: missing embedded data file " + name)
	}
	return parseUnitPairs(string(data))
}

func mustParseList(name string) []string {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		panic("completion: missing embedded data file " + name)
	}
	return parseList(string(data))
}
