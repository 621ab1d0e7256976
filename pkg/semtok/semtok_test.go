package semtok_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/recipelang/recipels/pkg/position"
	"github.com/recipelang/recipels/pkg/semtok"
)

func scan(text string) []semtok.Token {
	return semtok.ScanText(context.Background(), text, position.NewIndex(text))
}

func TestScanTextOrdering(t *testing.T) {
	text := "-- note\n=Section=\n@salt{1%tsp}"
	tokens := scan(text)
	require.Len(t, tokens, 3)

	assert.Equal(t, semtok.TokenComment, tokens[0].Type)
	assert.Equal(t, uint32(0), tokens[0].Line)
	assert.Equal(t, uint32(0), tokens[0].Start)
	assert.Equal(t, uint32(7), tokens[0].Length)

	assert.Equal(t, semtok.TokenSection, tokens[1].Type)
	assert.Equal(t, uint32(1), tokens[1].Line)
	assert.Equal(t, uint32(9), tokens[1].Length)

	assert.Equal(t, semtok.TokenIngredient, tokens[2].Type)
	assert.Equal(t, uint32(2), tokens[2].Line)
	assert.Equal(t, uint32(12), tokens[2].Length)

	for i := 1; i < len(tokens); i++ {
		assert.Greater(t, tokens[i].Line, tokens[i-1].Line)
	}
}

func TestScanTextInlineElements(t *testing.T) {
	text := "Mix @flour{500%g} in a #bowl for ~{2%min}"
	tokens := scan(text)
	require.Len(t, tokens, 3)
	assert.Equal(t, semtok.TokenIngredient, tokens[0].Type)
	assert.Equal(t, uint32(4), tokens[0].Start)
	assert.Equal(t, uint32(13), tokens[0].Length)
	assert.Equal(t, semtok.TokenCookware, tokens[1].Type)
	assert.Equal(t, semtok.TokenTimer, tokens[2].Type)
}

func TestScanTextTrailingComment(t *testing.T) {
	text := "Add @salt -- to taste"
	tokens := scan(text)
	require.Len(t, tokens, 2)

	assert.Equal(t, semtok.TokenIngredient, tokens[0].Type)
	assert.Equal(t, semtok.TokenComment, tokens[1].Type)
	assert.Equal(t, uint32(10), tokens[1].Start)
	assert.Equal(t, uint32(11), tokens[1].Length)
}

func TestScanTextFrontMatterFences(t *testing.T) {
	text := "---\ntitle: Bread\n---\n>> source: oma\n"
	tokens := scan(text)
	require.Len(t, tokens, 3)
	assert.Equal(t, semtok.TokenMetadataKey, tokens[0].Type)
	assert.Equal(t, semtok.TokenMetadataKey, tokens[1].Type)
	assert.Equal(t, semtok.TokenMetadataKey, tokens[2].Type)
	assert.Equal(t, uint32(14), tokens[2].Length)
}

func TestScanTextUTF16Lengths(t *testing.T) {
	// the emoji is two UTF-16 units, so the ingredient span after it
	// must start two units in
	text := "\U0001f35e @flour"
	tokens := scan(text)
	require.Len(t, tokens, 1)
	assert.Equal(t, uint32(3), tokens[0].Start)
	assert.Equal(t, uint32(6), tokens[0].Length)
}

func TestEncodeDeltas(t *testing.T) {
	tokens := []semtok.Token{
		{Line: 0, Start: 0, Length: 7, Type: semtok.TokenComment},
		{Line: 1, Start: 0, Length: 9, Type: semtok.TokenSection},
		{Line: 2, Start: 0, Length: 12, Type: semtok.TokenIngredient},
		{Line: 2, Start: 13, Length: 4, Type: semtok.TokenCookware},
	}

	data := semtok.Encode(tokens)

	// [deltaLine, deltaStart, length, type, modifiers] per token; on a
	// shared line the start is relative to the previous token
	want := []protocol.UInteger{
		0, 0, 7, 5, 0,
		1, 0, 9, 8, 0,
		1, 0, 12, 0, 0,
		0, 13, 4, 1, 0,
	}
	require.Equal(t, want, data)
}

func TestLegendMatchesTokenTypes(t *testing.T) {
	legend := semtok.LegendTypes()
	require.Len(t, legend, 9)
	assert.Equal(t, "variable", legend[semtok.TokenIngredient])
	assert.Equal(t, "class", legend[semtok.TokenCookware])
	assert.Equal(t, "function", legend[semtok.TokenTimer])
	assert.Equal(t, "comment", legend[semtok.TokenComment])
	assert.Equal(t, "keyword", legend[semtok.TokenMetadataKey])
	assert.Equal(t, "namespace", legend[semtok.TokenSection])
}
