package position_test

import (
	"testing"
	"unicode/utf8"

	"github.com/recipelang/recipels/pkg/position"
)

func TestOffsetToPosition(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		offset   int
		wantLine int
		wantCol  int
	}{
		{
			name:     "empty text",
			text:     "",
			offset:   0,
			wantLine: 0,
			wantCol:  0,
		},
		{
			name:     "first line start",
			text:     "line1\nline2\nline3",
			offset:   0,
			wantLine: 0,
			wantCol:  0,
		},
		{
			name:     "first line end",
			text:     "line1\nline2\nline3",
			offset:   5,
			wantLine: 0,
			wantCol:  5,
		},
		{
			name:     "second line start",
			text:     "line1\nline2\nline3",
			offset:   6,
			wantLine: 1,
			wantCol:  0,
		},
		{
			name:     "third line start",
			text:     "line1\nline2\nline3",
			offset:   12,
			wantLine: 2,
			wantCol:  0,
		},
		{
			name:     "offset past end clamps to eof",
			text:     "ab",
			offset:   99,
			wantLine: 0,
			wantCol:  2,
		},
		{
			name:     "negative offset clamps to start",
			text:     "ab",
			offset:   -1,
			wantLine: 0,
			wantCol:  0,
		},
		{
			name:     "two byte code point counts one unit",
			text:     "café!",
			offset:   5, // after the 2-byte é
			wantLine: 0,
			wantCol:  4,
		},
		{
			name:     "three byte code point counts one unit",
			text:     "中文",
			offset:   3,
			wantLine: 0,
			wantCol:  1,
		},
		{
			name:     "offset inside code point snaps to its start",
			text:     "café!",
			offset:   4, // second byte of é
			wantLine: 0,
			wantCol:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := position.NewIndex(tt.text)
			got := ix.OffsetToPosition(tt.offset)
			if got.Line != tt.wantLine || got.Character != tt.wantCol {
				t.Errorf("OffsetToPosition(%d) = (%d, %d), want (%d, %d)",
					tt.offset, got.Line, got.Character, tt.wantLine, tt.wantCol)
			}
		})
	}
}

func TestSurrogatePairWidth(t *testing.T) {
	// the pan emoji is 4 bytes in UTF-8 and a surrogate pair in UTF-16
	text := "A\U0001f373B"
	ix := position.NewIndex(text)

	before := ix.OffsetToPosition(1)
	after := ix.OffsetToPosition(5)
	if after.Character-before.Character != 2 {
		t.Fatalf("surrogate pair width = %d, want 2", after.Character-before.Character)
	}
}

func TestPositionToOffset(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
		col  int
		want int
	}{
		{name: "origin", text: "line1\nline2", line: 0, col: 0, want: 0},
		{name: "second line", text: "line1\nline2", line: 1, col: 0, want: 6},
		{name: "line past buffer returns eof", text: "line1\nline2", line: 9, col: 0, want: 11},
		{name: "column past line returns line end", text: "ab\ncd", line: 0, col: 99, want: 2},
		{name: "column past last line returns eof", text: "ab\ncd", line: 1, col: 99, want: 5},
		{name: "utf16 column over multibyte", text: "café!", line: 0, col: 4, want: 5},
		{name: "utf16 column over surrogate pair", text: "A\U0001f373B", line: 0, col: 3, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := position.NewIndex(tt.text)
			got := ix.PositionToOffset(position.Place{Line: tt.line, Character: tt.col})
			if got != tt.want {
				t.Errorf("PositionToOffset(%d, %d) = %d, want %d", tt.line, tt.col, got, tt.want)
			}
		})
	}
}

// Every code point boundary must survive a round trip through the
// protocol coordinate space; offsets inside a code point must round-trip
// to the code point's start.
func TestRoundTrip(t *testing.T) {
	texts := []string{
		"",
		"plain ascii\nsecond line\n",
		"café au lait\n中文 text",
		"A\U0001f373B\nmore \U0001f35e bread",
		"trailing newline\n",
	}

	for _, text := range texts {
		ix := position.NewIndex(text)
		for o := 0; o <= len(text); o++ {
			got := ix.PositionToOffset(ix.OffsetToPosition(o))
			want := o
			for want > 0 && want < len(text) && !utf8.RuneStart(text[want]) {
				want--
			}
			if got != want {
				t.Fatalf("round trip of offset %d in %q = %d, want %d", o, text, got, want)
			}
		}
	}
}

func TestASCIIColumnsEqualByteColumns(t *testing.T) {
	text := "add @salt{1%tsp} to the #pan"
	ix := position.NewIndex(text)
	for o := 0; o <= len(text); o++ {
		p := ix.OffsetToPosition(o)
		if p.Character != o {
			t.Fatalf("ascii column at offset %d = %d", o, p.Character)
		}
	}
}

func TestUTF16Length(t *testing.T) {
	text := "café\U0001f373"
	ix := position.NewIndex(text)

	if got := ix.UTF16Length(0, 3); got != 3 {
		t.Errorf("UTF16Length(0, 3) = %d, want 3", got)
	}
	if got := ix.UTF16Length(3, 5); got != 1 {
		t.Errorf("UTF16Length(3, 5) = %d, want 1", got)
	}
	if got := ix.UTF16Length(5, 9); got != 2 {
		t.Errorf("UTF16Length(5, 9) = %d, want 2", got)
	}
	if got := ix.UTF16Length(5, 999); got != 2 {
		t.Errorf("UTF16Length clamped = %d, want 2", got)
	}
}

func TestLineSpan(t *testing.T) {
	ix := position.NewIndex("ab\ncde\n")
	if s := ix.LineSpan(0); s.Start != 0 || s.End != 3 {
		t.Errorf("LineSpan(0) = %+v", s)
	}
	if s := ix.LineSpan(1); s.Start != 3 || s.End != 7 {
		t.Errorf("LineSpan(1) = %+v", s)
	}
	if s := ix.LineSpan(42); s.Start != 7 || s.End != 7 {
		t.Errorf("LineSpan(42) = %+v", s)
	}
}
