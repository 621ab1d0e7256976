// Package diagnostic converts collected parse diagnostics into their
// wire representation for publishing.
package diagnostic

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/recipelang/recipels/pkg/position"
	"github.com/recipelang/recipels/pkg/recipe"
	"github.com/recipelang/recipels/pkg/session"
)

// Source tags published diagnostics so editors can attribute them.
const Source = "recipels"

// ForDocument flattens doc's errors and warnings into protocol
// diagnostics. The slice is never nil so publishing it clears stale
// diagnostics on the editor side. A buffer whose parse produced neither
// a model nor any diagnostics gets a single whole-buffer error, since
// silence from the parser still means the buffer is not understood.
func ForDocument(doc *session.Document) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(doc.Errors)+len(doc.Warnings))
	for _, d := range doc.Errors {
		out = append(out, convert(doc, d, protocol.DiagnosticSeverityError))
	}
	for _, d := range doc.Warnings {
		out = append(out, convert(doc, d, protocol.DiagnosticSeverityWarning))
	}

	if doc.Recipe == nil && len(out) == 0 {
		sev := protocol.DiagnosticSeverityError
		src := Source
		out = append(out, protocol.Diagnostic{
			Range:    position.SpanToRange(doc.Index, position.Span{Start: 0, End: len(doc.Content)}),
			Severity: &sev,
			Source:   &src,
			Message:  "unable to parse recipe",
		})
	}
	return out
}

func convert(doc *session.Document, d recipe.Diagnostic, sev protocol.DiagnosticSeverity) protocol.Diagnostic {
	src := Source
	return protocol.Diagnostic{
		Range:    position.SpanToRange(doc.Index, d.Span),
		Severity: &sev,
		Source:   &src,
		Message:  d.Message,
	}
}
