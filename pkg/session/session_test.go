package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipelang/recipels/pkg/recipe"
	"github.com/recipelang/recipels/pkg/session"
)

func newManager() *session.Manager {
	return session.NewManager(recipe.NewMarkupParser())
}

func TestOpenGetClose(t *testing.T) {
	ctx := context.Background()
	m := newManager()

	m.Open(ctx, "file:///r/soup.cook", 1, "recipe", "@salt\n")

	doc, ok := m.Get("file:///r/soup.cook")
	require.True(t, ok)
	assert.Equal(t, int32(1), doc.Version)
	require.NotNil(t, doc.Recipe)
	assert.Len(t, doc.Recipe.Ingredients, 1)

	// scheme-stripped lookup hits the same buffer
	_, ok = m.Get("/r/soup.cook")
	assert.True(t, ok)

	m.Close(ctx, "file:///r/soup.cook")
	_, ok = m.Get("file:///r/soup.cook")
	assert.False(t, ok)
}

func TestOpenTwiceReplaces(t *testing.T) {
	ctx := context.Background()
	m := newManager()

	m.Open(ctx, "file:///a.cook", 1, "recipe", "@salt\n")
	m.Open(ctx, "file:///a.cook", 2, "recipe", "@pepper\n")

	assert.Equal(t, 1, m.Len())
	doc, ok := m.Get("file:///a.cook")
	require.True(t, ok)
	assert.Equal(t, int32(2), doc.Version)
	assert.Equal(t, "pepper", doc.Recipe.Ingredients[0].Name)
}

func TestUpdateReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	m := newManager()

	m.Open(ctx, "file:///a.cook", 1, "recipe", "@salt\n")
	before, _ := m.Get("file:///a.cook")

	_, ok := m.Update(ctx, "file:///a.cook", 2, "@sugar{10%g}\n")
	require.True(t, ok)

	after, _ := m.Get("file:///a.cook")
	assert.Equal(t, "sugar", after.Recipe.Ingredients[0].Name)
	assert.Equal(t, int32(2), after.Version)

	// the old snapshot is untouched
	assert.Equal(t, "salt", before.Recipe.Ingredients[0].Name)
	assert.Equal(t, "@salt\n", before.Content)
}

func TestUpdateUnopenedIsDropped(t *testing.T) {
	m := newManager()
	_, ok := m.Update(context.Background(), "file:///ghost.cook", 1, "@x\n")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestParseFailureKeepsDiagnostics(t *testing.T) {
	ctx := context.Background()
	m := newManager()

	m.Open(ctx, "file:///bad.cook", 1, "recipe", "@salt\xff\n")
	doc, ok := m.Get("file:///bad.cook")
	require.True(t, ok)
	assert.Nil(t, doc.Recipe)
	assert.NotEmpty(t, doc.Errors)
	assert.Equal(t, "@salt\xff\n", doc.Content)
}

func TestIndexMatchesContent(t *testing.T) {
	ctx := context.Background()
	m := newManager()

	m.Open(ctx, "file:///a.cook", 1, "recipe", "one\ntwo\n")
	doc, _ := m.Get("file:///a.cook")
	assert.Equal(t, 3, doc.Index.LineCount())

	m.Update(ctx, "file:///a.cook", 2, "one\n")
	doc, _ = m.Get("file:///a.cook")
	assert.Equal(t, 2, doc.Index.LineCount())
}

func TestSnapshotsSorted(t *testing.T) {
	ctx := context.Background()
	m := newManager()

	m.Open(ctx, "file:///b.cook", 1, "recipe", "@b\n")
	m.Open(ctx, "file:///a.cook", 1, "recipe", "@a\n")
	m.Open(ctx, "file:///c.cook", 1, "recipe", "@c\n")

	docs := m.Snapshots()
	require.Len(t, docs, 3)
	assert.Equal(t, "/a.cook", docs[0].URI)
	assert.Equal(t, "/b.cook", docs[1].URI)
	assert.Equal(t, "/c.cook", docs[2].URI)
}

// Readers racing a writer must always observe a fully-previous or
// fully-new snapshot, and writes to one buffer must not disturb
// another. Run with -race.
func TestConcurrentReadsAndWrites(t *testing.T) {
	ctx := context.Background()
	m := newManager()

	m.Open(ctx, "file:///hot.cook", 1, "recipe", "@salt{1%tsp}\n")
	m.Open(ctx, "file:///cold.cook", 1, "recipe", "@ice\n")

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				content := fmt.Sprintf("@salt{%d%%tsp}\n", i)
				m.Update(ctx, "file:///hot.cook", int32(i), content)
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				doc, ok := m.Get("file:///hot.cook")
				if !assert.True(t, ok) {
					return
				}
				// snapshot invariant: index always matches content
				assert.Equal(t, len(doc.Content), doc.Index.LineSpan(doc.Index.LineCount()-1).End)

				cold, ok := m.Get("file:///cold.cook")
				if !assert.True(t, ok) {
					return
				}
				assert.Equal(t, "@ice\n", cold.Content)
			}
		}()
	}
	wg.Wait()
}
