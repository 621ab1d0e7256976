// Package outline builds the grouped document symbol tree: metadata,
// sections with step counts, and the ingredient, cookware and timer
// inventories. Groups with nothing in them are omitted.
package outline

import (
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/recipelang/recipels/pkg/position"
	"github.com/recipelang/recipels/pkg/recipe"
	"github.com/recipelang/recipels/pkg/session"
)

// Symbols returns the outline for doc, or nil when no structured model
// is available.
func Symbols(doc *session.Document) []protocol.DocumentSymbol {
	if doc.Recipe == nil {
		return nil
	}

	var out []protocol.DocumentSymbol
	if sym, ok := metadataGroup(doc); ok {
		out = append(out, sym)
	}
	for _, sec := range doc.Recipe.Sections {
		out = append(out, sectionSymbol(doc, sec))
	}
	if sym, ok := inventoryGroup(doc, "Ingredients", protocol.SymbolKindVariable, ingredientItems(doc.Recipe)); ok {
		out = append(out, sym)
	}
	if sym, ok := inventoryGroup(doc, "Cookware", protocol.SymbolKindClass, cookwareItems(doc.Recipe)); ok {
		out = append(out, sym)
	}
	if sym, ok := inventoryGroup(doc, "Timers", protocol.SymbolKindFunction, timerItems(doc.Recipe)); ok {
		out = append(out, sym)
	}
	return out
}

// item is a flattened inventory entry before symbol conversion.
type item struct {
	name   string
	detail string
	span   position.Span
}

func metadataGroup(doc *session.Document) (protocol.DocumentSymbol, bool) {
	entries := doc.Recipe.Metadata
	if len(entries) == 0 {
		return protocol.DocumentSymbol{}, false
	}

	children := make([]protocol.DocumentSymbol, 0, len(entries))
	span := entries[0].Span
	for _, e := range entries {
		span = envelope(span, e.Span)
		rng := position.SpanToRange(doc.Index, e.Span)
		children = append(children, protocol.DocumentSymbol{
			Name:           e.Key,
			Detail:         ptr(e.Value),
			Kind:           protocol.SymbolKindProperty,
			Range:          rng,
			SelectionRange: rng,
		})
	}

	rng := position.SpanToRange(doc.Index, span)
	return protocol.DocumentSymbol{
		Name:           "Metadata",
		Detail:         ptr(countOf(len(entries), "property", "properties")),
		Kind:           protocol.SymbolKindObject,
		Range:          rng,
		SelectionRange: rng,
		Children:       children,
	}, true
}

func sectionSymbol(doc *session.Document, sec recipe.Section) protocol.DocumentSymbol {
	name := sec.Name
	if name == "" {
		name = "Steps"
	}
	rng := position.SpanToRange(doc.Index, sec.Span)
	return protocol.DocumentSymbol{
		Name:           name,
		Detail:         ptr(countOf(sec.Steps, "step", "steps")),
		Kind:           protocol.SymbolKindNamespace,
		Range:          rng,
		SelectionRange: rng,
	}
}

func inventoryGroup(doc *session.Document, name string, kind protocol.SymbolKind, items []item) (protocol.DocumentSymbol, bool) {
	if len(items) == 0 {
		return protocol.DocumentSymbol{}, false
	}

	children := make([]protocol.DocumentSymbol, 0, len(items))
	span := items[0].span
	for _, it := range items {
		span = envelope(span, it.span)
		rng := position.SpanToRange(doc.Index, it.span)
		sym := protocol.DocumentSymbol{
			Name:           it.name,
			Kind:           kind,
			Range:          rng,
			SelectionRange: rng,
		}
		if it.detail != "" {
			sym.Detail = ptr(it.detail)
		}
		children = append(children, sym)
	}

	rng := position.SpanToRange(doc.Index, span)
	return protocol.DocumentSymbol{
		Name:           name,
		Detail:         ptr(fmt.Sprintf("%d", len(items))),
		Kind:           protocol.SymbolKindArray,
		Range:          rng,
		SelectionRange: rng,
		Children:       children,
	}, true
}

func ingredientItems(r *recipe.Recipe) []item {
	items := make([]item, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		items = append(items, item{ing.Name, quantityDetail(ing.Quantity), ing.Span})
	}
	return items
}

func cookwareItems(r *recipe.Recipe) []item {
	items := make([]item, 0, len(r.Cookware))
	for _, cw := range r.Cookware {
		items = append(items, item{cw.Name, quantityDetail(cw.Quantity), cw.Span})
	}
	return items
}

func timerItems(r *recipe.Recipe) []item {
	items := make([]item, 0, len(r.Timers))
	for _, tm := range r.Timers {
		name := tm.Name
		if name == "" {
			name = "timer"
		}
		items = append(items, item{name, quantityDetail(tm.Quantity), tm.Span})
	}
	return items
}

func quantityDetail(q *recipe.Quantity) string {
	if q == nil {
		return ""
	}
	return q.String()
}

func countOf(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

func envelope(a, b position.Span) position.Span {
	if b.Start < a.Start {
		a.Start = b.Start
	}
	if b.End > a.End {
		a.End = b.End
	}
	return a
}

func ptr[T any](v T) *T { return &v }
