// Package hover renders markdown tooltips for the element under the
// cursor. Structured details come from the parsed recipe model when one
// is available; otherwise the raw element text is labeled as-is so
// hover still works on buffers the parser rejected.
package hover

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/recipelang/recipels/pkg/aisle"
	"github.com/recipelang/recipels/pkg/position"
	"github.com/recipelang/recipels/pkg/scanner"
	"github.com/recipelang/recipels/pkg/session"
)

// Resolve returns the hover for the element at offset in doc, or nil
// when the cursor is not on a recognized element. table may be nil.
func Resolve(ctx context.Context, doc *session.Document, offset int, table *aisle.Table) *protocol.Hover {
	el, ok := scanner.ElementAt(doc.Content, offset)
	if !ok {
		return nil
	}
	zerolog.Ctx(ctx).Trace().
		Str("uri", doc.URI).
		Str("kind", el.Kind.String()).
		Int("offset", offset).
		Msg("resolving hover")

	lines := contentFor(doc, el, table)
	if len(lines) == 0 {
		return nil
	}

	rng := position.SpanToRange(doc.Index, position.Span{Start: el.Start, End: el.End})
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: strings.Join(lines, "\n\n"),
		},
		Range: &rng,
	}
}

func contentFor(doc *session.Document, el scanner.Element, table *aisle.Table) []string {
	switch el.Kind {
	case scanner.KindIngredient:
		return ingredientContent(doc, el, table)
	case scanner.KindCookware:
		return cookwareContent(doc, el)
	case scanner.KindTimer:
		return timerContent(doc, el)
	case scanner.KindSection:
		name := strings.TrimSpace(strings.Trim(el.Text, "="))
		if name == "" {
			return []string{"**Section**"}
		}
		return []string{fmt.Sprintf("**Section:** %s", name)}
	case scanner.KindMetadata:
		key, value, _ := strings.Cut(strings.TrimPrefix(el.Text, ">>"), ":")
		lines := []string{fmt.Sprintf("**Metadata:** %s", strings.TrimSpace(key))}
		if v := strings.TrimSpace(value); v != "" {
			lines = append(lines, v)
		}
		return lines
	case scanner.KindComment:
		body := strings.TrimSpace(strings.TrimLeft(el.Text, "-"))
		if body == "" {
			return []string{"**Comment**"}
		}
		return []string{"**Comment**", body}
	case scanner.KindFrontMatter:
		return []string{"**Front matter**"}
	default:
		return nil
	}
}

func ingredientContent(doc *session.Document, el scanner.Element, table *aisle.Table) []string {
	name := el.Name()
	lines := []string{fmt.Sprintf("**Ingredient:** %s", name)}

	if doc.Recipe != nil {
		if ing, ok := doc.Recipe.FindIngredient(name); ok && ing.Quantity != nil {
			lines = append(lines, fmt.Sprintf("**Quantity:** %s", ing.Quantity))
		}
	}
	if table != nil {
		if entry, ok := table.Lookup(name); ok {
			if entry.IsAlias() {
				lines = append(lines, fmt.Sprintf("**Common name:** %s", entry.CommonName))
			}
			if entry.Category != "" {
				lines = append(lines, fmt.Sprintf("**Aisle:** %s", entry.Category))
			}
		}
	}
	return lines
}

func cookwareContent(doc *session.Document, el scanner.Element) []string {
	name := el.Name()
	lines := []string{fmt.Sprintf("**Cookware:** %s", name)}
	if doc.Recipe != nil {
		if cw, ok := doc.Recipe.FindCookware(name); ok && cw.Quantity != nil {
			lines = append(lines, fmt.Sprintf("**Quantity:** %s", cw.Quantity))
		}
	}
	return lines
}

func timerContent(doc *session.Document, el scanner.Element) []string {
	name := el.Name()
	lines := []string{"**Timer**"}
	if name != "" {
		lines[0] = fmt.Sprintf("**Timer:** %s", name)
	}
	if doc.Recipe != nil {
		if tm, ok := doc.Recipe.FindTimer(name); ok && tm.Quantity != nil {
			lines = append(lines, fmt.Sprintf("**Duration:** %s", tm.Quantity))
		}
	}
	return lines
}
