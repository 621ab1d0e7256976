package recipe

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/recipelang/recipels/pkg/position"
	"github.com/recipelang/recipels/pkg/scanner"
)

// MarkupParser is the default Parser implementation. It builds the
// model from the shared marker scan and is lenient: malformed elements
// become warnings, and only text that cannot be decoded at all yields
// no model.
type MarkupParser struct{}

var _ Parser = (*MarkupParser)(nil)

func NewMarkupParser() *MarkupParser {
	return &MarkupParser{}
}

func (p *MarkupParser) Parse(ctx context.Context, text string) *Result {
	res := &Result{}

	if !utf8.ValidString(text) {
		res.Errors = append(res.Errors, Diagnostic{
			Span:     position.Span{Start: 0, End: len(text)},
			Severity: SeverityError,
			Message:  "text is not valid UTF-8",
		})
		zerolog.Ctx(ctx).Debug().Msg("rejecting buffer with invalid UTF-8")
		return res
	}

	r := &Recipe{}

	fmEnd := p.parseFrontMatter(text, r, res)

	for _, el := range scanner.Elements(text) {
		if el.Start < fmEnd {
			continue
		}
		span := position.Span{Start: el.Start, End: el.End}

		switch el.Kind {
		case scanner.KindMetadata:
			p.parseMetadataLine(el, span, r, res)

		case scanner.KindSection:
			name := strings.TrimSpace(strings.Trim(el.Text, "="))
			r.Sections = append(r.Sections, Section{Name: name, Span: span})

		case scanner.KindIngredient:
			name, qty := p.parseElement(el, span, res)
			if name == "" {
				res.Warnings = append(res.Warnings, Diagnostic{
					Span:     span,
					Severity: SeverityWarning,
					Message:  "ingredient without a name",
				})
				continue
			}
			r.Ingredients = append(r.Ingredients, Ingredient{Name: name, Quantity: qty, Span: span})

		case scanner.KindCookware:
			name, qty := p.parseElement(el, span, res)
			if name == "" {
				res.Warnings = append(res.Warnings, Diagnostic{
					Span:     span,
					Severity: SeverityWarning,
					Message:  "cookware without a name",
				})
				continue
			}
			r.Cookware = append(r.Cookware, Cookware{Name: name, Quantity: qty, Span: span})

		case scanner.KindTimer:
			// unnamed timers are valid as long as they carry a duration
			name, qty := p.parseElement(el, span, res)
			if name == "" && qty == nil {
				res.Warnings = append(res.Warnings, Diagnostic{
					Span:     span,
					Severity: SeverityWarning,
					Message:  "timer without a name or duration",
				})
				continue
			}
			r.Timers = append(r.Timers, Timer{Name: name, Quantity: qty, Span: span})
		}
	}

	p.countSteps(text, fmEnd, r)

	res.Recipe = r
	return res
}

// parseElement splits "@name{value%unit}" into its name and quantity.
// An opening brace with no closing brace on the line is a warning; the
// collected text up to the line end still counts as the quantity value.
func (p *MarkupParser) parseElement(el scanner.Element, span position.Span, res *Result) (string, *Quantity) {
	name := el.Name()

	open := strings.IndexByte(el.Text, '{')
	if open < 0 {
		return name, nil
	}
	if strings.IndexByte(el.Text, '}') < 0 {
		res.Warnings = append(res.Warnings, Diagnostic{
			Span:     span,
			Severity: SeverityWarning,
			Message:  "unclosed '{' in element",
		})
	}

	body := el.Body()
	if strings.TrimSpace(body) == "" {
		return name, nil
	}

	qty := &Quantity{Value: strings.TrimSpace(body)}
	if i := strings.IndexByte(body, '%'); i >= 0 {
		qty.Value = strings.TrimSpace(body[:i])
		qty.Unit = strings.TrimSpace(body[i+1:])
	}
	return name, qty
}

func (p *MarkupParser) parseMetadataLine(el scanner.Element, span position.Span, r *Recipe, res *Result) {
	body := strings.TrimSpace(strings.TrimPrefix(el.Text, ">>"))
	key, value, found := strings.Cut(body, ":")
	if !found || strings.TrimSpace(key) == "" {
		res.Warnings = append(res.Warnings, Diagnostic{
			Span:     span,
			Severity: SeverityWarning,
			Message:  "metadata line is not 'key: value'",
		})
		return
	}
	r.Metadata = append(r.Metadata, MetadataEntry{
		Key:   strings.TrimSpace(key),
		Value: strings.TrimSpace(value),
		Span:  span,
	})
}

// parseFrontMatter reads a YAML block fenced by dash lines at the very
// start of the buffer into metadata entries. Returns the byte offset
// just past the closing fence, or 0 when there is no front matter. A
// block that fails to decode becomes a warning and is skipped whole.
func (p *MarkupParser) parseFrontMatter(text string, r *Recipe, res *Result) int {
	first, rest, _ := strings.Cut(text, "\n")
	if !isFenceLine(first) {
		return 0
	}

	bodyStart := len(first) + 1
	end := -1
	for off := 0; off <= len(rest); {
		line, _, more := cutLine(rest[off:])
		if isFenceLine(line) {
			end = off
			break
		}
		if !more {
			break
		}
		off += len(line) + 1
	}
	if end < 0 {
		res.Warnings = append(res.Warnings, Diagnostic{
			Span:     position.Span{Start: 0, End: len(first)},
			Severity: SeverityWarning,
			Message:  "front matter is never closed",
		})
		return 0
	}

	body := rest[:end]
	blockEnd := bodyStart + end
	closing, _, _ := cutLine(rest[end:])
	blockEnd += len(closing)

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(body), &fields); err != nil {
		res.Warnings = append(res.Warnings, Diagnostic{
			Span:     position.Span{Start: 0, End: blockEnd},
			Severity: SeverityWarning,
			Message:  "front matter is not valid YAML",
		})
		return blockEnd
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.Metadata = append(r.Metadata, MetadataEntry{
			Key:   k,
			Value: fmt.Sprintf("%v", fields[k]),
			Span:  position.Span{Start: 0, End: blockEnd},
		})
	}
	return blockEnd
}

// countSteps attributes non-blank step lines to sections. Step lines
// before the first header are collected under a synthesized unnamed
// section.
func (p *MarkupParser) countSteps(text string, fmEnd int, r *Recipe) {
	sections := r.Sections
	current := -1
	leading := 0

	lineStart := 0
	for lineStart <= len(text) {
		lineEnd := len(text)
		if i := strings.IndexByte(text[lineStart:], '\n'); i >= 0 {
			lineEnd = lineStart + i
		}
		// trim the same way classifyLine does so section headers are
		// attributed identically in both passes
		line := strings.TrimRight(text[lineStart:lineEnd], " \t\r")

		switch {
		case lineStart < fmEnd, strings.TrimSpace(line) == "":
		case strings.HasPrefix(line, "--"):
		case strings.HasPrefix(line, ">>"):
		case len(line) > 1 && strings.HasPrefix(line, "=") && strings.HasSuffix(line, "="):
			current++
		default:
			if current < 0 {
				leading++
			} else if current < len(sections) {
				sections[current].Steps++
			}
		}

		if lineEnd >= len(text) {
			break
		}
		lineStart = lineEnd + 1
	}

	if leading > 0 {
		r.Sections = append([]Section{{Name: "", Steps: leading}}, sections...)
	}
}

func isFenceLine(line string) bool {
	line = strings.TrimRight(line, " \t\r")
	if len(line) < 3 {
		return false
	}
	for i := 0; i < len(line); i++ {
		if line[i] != '-' {
			return false
		}
	}
	return true
}

func cutLine(s string) (line, rest string, more bool) {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}
