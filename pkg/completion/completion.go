// Package completion builds completion candidates for recipe buffers.
// Candidates come from four sources, ranked in order of relevance: the
// current document, other open buffers, the workspace aisle
// configuration, and a built-in vocabulary embedded in the binary.
package completion

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/recipelang/recipels/pkg/aisle"
	"github.com/recipelang/recipels/pkg/scanner"
	"github.com/recipelang/recipels/pkg/session"
)

// Items resolves completion candidates for the cursor at offset in doc.
// others holds the remaining open buffers and table the current aisle
// snapshot; either may be nil. A nil return means the cursor is not in
// a completable position.
func Items(ctx context.Context, doc *session.Document, offset int, others []*session.Document, table *aisle.Table) []protocol.CompletionItem {
	cc, ok := scanner.ContextAt(doc.Content, offset)
	if !ok {
		return nil
	}
	zerolog.Ctx(ctx).Trace().
		Str("uri", doc.URI).
		Str("context", cc.Kind.String()).
		Str("prefix", cc.Prefix).
		Msg("resolving completions")

	b := newBuilder(cc.Prefix)
	switch cc.Kind {
	case scanner.ContextIngredient:
		collectDocumentNames(b, doc, offset, scanner.KindIngredient, protocol.CompletionItemKindVariable)
		for _, other := range others {
			collectDocumentNames(b, other, -1, scanner.KindIngredient, protocol.CompletionItemKindVariable)
		}
		collectAisle(b, table)
		for _, name := range builtinIngredients {
			b.add(name, protocol.CompletionItemKindVariable, "")
		}
	case scanner.ContextCookware:
		collectDocumentNames(b, doc, offset, scanner.KindCookware, protocol.CompletionItemKindClass)
		for _, other := range others {
			collectDocumentNames(b, other, -1, scanner.KindCookware, protocol.CompletionItemKindClass)
		}
		b.nextRank() // no aisle source for cookware
		for _, name := range builtinCookware {
			b.add(name, protocol.CompletionItemKindClass, "")
		}
	case scanner.ContextTimer:
		for _, u := range builtinTimeUnits {
			b.add(u.Short, protocol.CompletionItemKindUnit, u.Long)
		}
	case scanner.ContextUnit:
		for _, u := range builtinUnits {
			b.add(u.Short, protocol.CompletionItemKindUnit, u.Long)
		}
		for _, u := range builtinTimeUnits {
			b.add(u.Short, protocol.CompletionItemKindUnit, u.Long)
		}
	case scanner.ContextQuantity:
		return quantitySnippets()
	}
	return b.items
}

// collectDocumentNames adds every named element of the given kind found
// in the buffer, then advances the ranking tier. cursor is the active
// edit offset, or -1 for buffers other than the one being edited; the
// element under the cursor is the half-typed word itself and is not a
// candidate.
func collectDocumentNames(b *builder, doc *session.Document, cursor int, kind scanner.Kind, itemKind protocol.CompletionItemKind) {
	if doc != nil {
		for _, el := range scanner.Elements(doc.Content) {
			if el.Kind != kind {
				continue
			}
			if cursor >= 0 && el.Start < cursor && cursor <= el.End {
				continue
			}
			if name := el.Name(); name != "" {
				b.add(name, itemKind, "")
			}
		}
	}
	b.nextRank()
}

// collectAisle adds aisle entries, labeling aliases with the common
// name they resolve to.
func collectAisle(b *builder, table *aisle.Table) {
	if table != nil {
		for _, ing := range table.All() {
			detail := ing.Category
			if ing.IsAlias() {
				if detail != "" {
					detail = fmt.Sprintf("%s (alias for %s)", ing.Category, ing.CommonName)
				} else {
					detail = fmt.Sprintf("alias for %s", ing.CommonName)
				}
			}
			b.add(ing.Name, protocol.CompletionItemKindVariable, detail)
		}
	}
	b.nextRank()
}

// quantitySnippets offers the two tab-stop templates for a freshly
// opened brace group: amount with a unit, and amount alone.
func quantitySnippets() []protocol.CompletionItem {
	snippet := protocol.InsertTextFormatSnippet
	kind := protocol.CompletionItemKindSnippet
	withUnit := "${1:amount}%${2:unit}"
	bare := "${1:amount}"
	return []protocol.CompletionItem{
		{
			Label:            "amount%unit",
			Kind:             &kind,
			InsertText:       &withUnit,
			InsertTextFormat: &snippet,
			SortText:         ptr("00_0000"),
		},
		{
			Label:            "amount",
			Kind:             &kind,
			InsertText:       &bare,
			InsertTextFormat: &snippet,
			SortText:         ptr("00_0001"),
		},
	}
}

// builder accumulates prefix-filtered candidates with case-insensitive
// first-seen-wins deduplication and tiered sort keys.
type builder struct {
	prefix string
	seen   map[string]struct{}
	items  []protocol.CompletionItem
	rank   int
	seq    int
}

func newBuilder(prefix string) *builder {
	return &builder{
		prefix: strings.ToLower(prefix),
		seen:   map[string]struct{}{},
	}
}

func (b *builder) nextRank() {
	b.rank++
	b.seq = 0
}

func (b *builder) add(label string, kind protocol.CompletionItemKind, detail string) {
	lower := strings.ToLower(label)
	if !strings.HasPrefix(lower, b.prefix) {
		return
	}
	if _, dup := b.seen[lower]; dup {
		return
	}
	b.seen[lower] = struct{}{}

	item := protocol.CompletionItem{
		Label:    label,
		Kind:     &kind,
		SortText: ptr(fmt.Sprintf("%02d_%04d", b.rank, b.seq)),
	}
	if detail != "" {
		item.Detail = ptr(detail)
	}
	// Multi-word names need a trailing brace group so the marker does
	// not end at the first space.
	if strings.ContainsAny(label, " \t") {
		item.InsertText = ptr(label + "{}")
	}
	b.items = append(b.items, item)
	b.seq++
}

func ptr[T any](v T) *T { return &v }
