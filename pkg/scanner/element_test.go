package scanner_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipelang/recipels/pkg/scanner"
)

func TestElementAt(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		cursor   int // offset of the | in the description below
		wantKind scanner.Kind
		wantText string
		wantNone bool
	}{
		{
			name:     "ingredient under cursor",
			text:     "add @salt{1%tsp} now",
			cursor:   6,
			wantKind: scanner.KindIngredient,
			wantText: "@salt{1%tsp}",
		},
		{
			name:     "bare ingredient ends at space",
			text:     "add @salt to taste",
			cursor:   6,
			wantKind: scanner.KindIngredient,
			wantText: "@salt",
		},
		{
			name:     "comment line wins over inline markers",
			text:     "-- uses @salt",
			cursor:   10,
			wantKind: scanner.KindComment,
			wantText: "-- uses @salt",
		},
		{
			name:     "metadata line",
			text:     ">> servings: 4",
			cursor:   5,
			wantKind: scanner.KindMetadata,
			wantText: ">> servings: 4",
		},
		{
			name:     "section line",
			text:     "= Dough =",
			cursor:   3,
			wantKind: scanner.KindSection,
			wantText: "= Dough =",
		},
		{
			name:     "cursor after closed element finds nothing",
			text:     "add @salt{} then stir",
			cursor:   15,
			wantNone: true,
		},
		{
			name:     "timer with braces",
			text:     "bake ~oven{25%min}",
			cursor:   8,
			wantKind: scanner.KindTimer,
			wantText: "~oven{25%min}",
		},
		{
			name:     "cookware",
			text:     "use a #pan for this",
			cursor:   7,
			wantNone: false,
			wantKind: scanner.KindCookware,
			wantText: "#pan",
		},
		{
			name:     "plain prose",
			text:     "stir gently",
			cursor:   3,
			wantNone: true,
		},
		{
			name:     "cursor past end",
			text:     "@salt",
			cursor:   99,
			wantNone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := scanner.ElementAt(tt.text, tt.cursor)
			if tt.wantNone {
				assert.False(t, ok, "expected no element, got %+v", got)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantText, tt.text[got.Start:got.End])
		})
	}
}

func TestElementNameAndBody(t *testing.T) {
	el := scanner.Element{Kind: scanner.KindIngredient, Text: "@onion paste{2%tbsp}"}
	assert.Equal(t, "onion paste", el.Name())
	assert.Equal(t, "2%tbsp", el.Body())

	bare := scanner.Element{Kind: scanner.KindCookware, Text: "#pan"}
	assert.Equal(t, "pan", bare.Name())
	assert.Equal(t, "", bare.Body())
}

func TestElements(t *testing.T) {
	text := "-- note\n=Section=\n@salt{1%tsp}"
	els := scanner.Elements(text)
	require.Len(t, els, 3)

	assert.Equal(t, scanner.KindComment, els[0].Kind)
	assert.Equal(t, scanner.KindSection, els[1].Kind)
	assert.Equal(t, scanner.KindIngredient, els[2].Kind)

	// ascending and non-overlapping
	for i := 1; i < len(els); i++ {
		assert.GreaterOrEqual(t, els[i].Start, els[i-1].End)
	}
}

func TestElementsFrontMatter(t *testing.T) {
	text := "---\ntitle: Bread\n---\n@flour{500%g}"
	els := scanner.Elements(text)
	require.Len(t, els, 3)
	assert.Equal(t, scanner.KindFrontMatter, els[0].Kind)
	assert.Equal(t, scanner.KindFrontMatter, els[1].Kind)
	assert.Equal(t, scanner.KindIngredient, els[2].Kind)
}

func TestElementsDashRunMidDocumentIsComment(t *testing.T) {
	text := "@salt\n----\n"
	els := scanner.Elements(text)
	require.Len(t, els, 2)
	assert.Equal(t, scanner.KindComment, els[1].Kind)
}

func TestElementsTrailingComment(t *testing.T) {
	text := "Add @salt{1%tsp} -- to taste"
	els := scanner.Elements(text)
	require.Len(t, els, 2)

	assert.Equal(t, scanner.KindIngredient, els[0].Kind)
	assert.Equal(t, scanner.KindComment, els[1].Kind)
	assert.Equal(t, "-- to taste", els[1].Text)
	assert.Equal(t, len(text), els[1].End, "comment runs to end of line")
}

func TestElementsTrailingCommentStopsAtLineEnd(t *testing.T) {
	text := "@salt -- later\n#pan{}"
	els := scanner.Elements(text)
	require.Len(t, els, 3)
	assert.Equal(t, scanner.KindComment, els[1].Kind)
	assert.Equal(t, scanner.KindCookware, els[2].Kind)
}

func TestElementsDashPairInsideBracesIsNotComment(t *testing.T) {
	text := "@mix{2--3}"
	els := scanner.Elements(text)
	require.Len(t, els, 1)
	assert.Equal(t, scanner.KindIngredient, els[0].Kind)
}

func TestElementsDoNotNest(t *testing.T) {
	// a marker inside an open brace group is not re-interpreted
	text := "@mix{2%@cups}"
	els := scanner.Elements(text)
	require.Len(t, els, 1)
	assert.Equal(t, scanner.KindIngredient, els[0].Kind)
	assert.Equal(t, text, els[0].Text)
}

func TestElementsUnterminatedBraceBoundedAtLineEnd(t *testing.T) {
	text := "@flour{200\n#pan"
	els := scanner.Elements(text)
	require.Len(t, els, 2)
	assert.Equal(t, "@flour{200", els[0].Text)
	assert.Equal(t, scanner.KindCookware, els[1].Kind)
}

func TestElementsScaleToLongLines(t *testing.T) {
	text := strings.Repeat("word ", 5000) + "@salt"
	els := scanner.Elements(text)
	require.Len(t, els, 1)
	assert.Equal(t, scanner.KindIngredient, els[0].Kind)
}
