// Package recipe is the structured parsing collaborator of the session
// layer. It turns raw recipe markup into a model of ingredients,
// cookware, timers, sections and metadata, each carrying the byte span
// it was read from, plus error and warning diagnostics. The session
// layer treats the result as opaque: features read it, nothing in this
// package reads session state.
package recipe

import (
	"context"
	"strings"

	"github.com/recipelang/recipels/pkg/position"
)

// Severity grades a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is a parse problem anchored to a byte span in the source.
type Diagnostic struct {
	Span     position.Span
	Severity Severity
	Message  string
}

// Quantity is a raw amount and unit as written in the source. No unit
// normalization or numeric validation happens here.
type Quantity struct {
	Value string
	Unit  string
}

func (q Quantity) String() string {
	if q.Unit == "" {
		return q.Value
	}
	if q.Value == "" {
		return q.Unit
	}
	return q.Value + " " + q.Unit
}

// Ingredient is one '@' occurrence.
type Ingredient struct {
	Name     string
	Quantity *Quantity
	Span     position.Span
}

// Cookware is one '#' occurrence.
type Cookware struct {
	Name     string
	Quantity *Quantity
	Span     position.Span
}

// Timer is one '~' occurrence. Timers may be unnamed.
type Timer struct {
	Name     string
	Quantity *Quantity
	Span     position.Span
}

// Section is a '=...=' header together with the number of step lines it
// contains. An unnamed leading section is synthesized when step lines
// appear before the first header.
type Section struct {
	Name  string
	Steps int
	Span  position.Span
}

// MetadataEntry is one '>> key: value' line or one front matter pair.
type MetadataEntry struct {
	Key   string
	Value string
	Span  position.Span
}

// Recipe is the structured parse result for one buffer.
type Recipe struct {
	Metadata    []MetadataEntry
	Sections    []Section
	Ingredients []Ingredient
	Cookware    []Cookware
	Timers      []Timer
}

// FindIngredient looks up an ingredient by case-insensitive exact name.
func (r *Recipe) FindIngredient(name string) (Ingredient, bool) {
	for _, ing := range r.Ingredients {
		if strings.EqualFold(ing.Name, name) {
			return ing, true
		}
	}
	return Ingredient{}, false
}

// FindCookware looks up cookware by case-insensitive exact name.
func (r *Recipe) FindCookware(name string) (Cookware, bool) {
	for _, cw := range r.Cookware {
		if strings.EqualFold(cw.Name, name) {
			return cw, true
		}
	}
	return Cookware{}, false
}

// FindTimer looks up a timer by case-insensitive exact name. An empty
// name matches the first timer, mirroring hover on unnamed timers.
func (r *Recipe) FindTimer(name string) (Timer, bool) {
	for _, tm := range r.Timers {
		if name == "" || strings.EqualFold(tm.Name, name) {
			return tm, true
		}
	}
	return Timer{}, false
}

// Result is what a Parser produces. Recipe is nil when the text could
// not be parsed at all; Errors and Warnings are retained either way.
type Result struct {
	Recipe   *Recipe
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Parser is the external-parser contract consumed by the session store.
type Parser interface {
	Parse(ctx context.Context, text string) *Result
}
