// Package session owns the live text buffers of the editor session.
// Each open file is one Document snapshot: content, version, a fresh
// position index and the latest structured parse result. Snapshots are
// immutable; an update builds a whole new Document and swaps it in, so
// a reader always sees either the fully-previous or fully-new state.
package session

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/recipelang/recipels/pkg/position"
	"github.com/recipelang/recipels/pkg/recipe"
)

// Document is one immutable buffer snapshot. The Index is always built
// from Content, never stale. Recipe is nil when the parser produced no
// model; Errors and Warnings are kept either way so diagnostics can
// still be reported for unparseable text.
type Document struct {
	URI        string
	LanguageID string
	Version    int32
	Content    string
	Index      *position.Index
	Recipe     *recipe.Recipe
	Errors     []recipe.Diagnostic
	Warnings   []recipe.Diagnostic
}

// Manager is the concurrent session store. The map lock only guards
// entry lookup and lifecycle; per-entry writes are serialized by the
// entry's own mutex and reads go through an atomic snapshot pointer,
// so a write to one buffer never blocks reads or writes elsewhere.
type Manager struct {
	parser recipe.Parser

	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex // serializes writers to this buffer
	snap atomic.Pointer[Document]
}

func NewManager(parser recipe.Parser) *Manager {
	return &Manager{
		parser:  parser,
		entries: make(map[string]*entry),
	}
}

// NormalizeURI strips the file scheme so one buffer cannot appear
// under two keys.
func NormalizeURI(uri string) string {
	uri = strings.TrimPrefix(uri, "file://")
	uri = strings.TrimPrefix(uri, "file:")
	return uri
}

// Open creates or replaces the buffer for uri. Opening an already-open
// identity replaces it wholesale, never duplicates it.
func (m *Manager) Open(ctx context.Context, uri string, version int32, languageID, content string) *Document {
	key := NormalizeURI(uri)
	e := m.entry(key, true)

	e.mu.Lock()
	defer e.mu.Unlock()

	doc := m.build(ctx, key, version, languageID, content)
	e.snap.Store(doc)

	zerolog.Ctx(ctx).Debug().
		Str("uri", key).
		Int32("version", version).
		Bool("parsed", doc.Recipe != nil).
		Msg("document opened")
	return doc
}

// Update replaces the buffer content wholesale and reparses. There is
// no diffing against the previous version; recipe files are small and
// correctness wins over efficiency here. Updating an identity that was
// never opened is ignored.
func (m *Manager) Update(ctx context.Context, uri string, version int32, content string) (*Document, bool) {
	key := NormalizeURI(uri)
	e := m.entry(key, false)
	if e == nil {
		zerolog.Ctx(ctx).Warn().Str("uri", key).Msg("update for unopened document dropped")
		return nil, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.snap.Load()
	languageID := ""
	if prev != nil {
		languageID = prev.LanguageID
	}

	doc := m.build(ctx, key, version, languageID, content)
	e.snap.Store(doc)

	zerolog.Ctx(ctx).Debug().
		Str("uri", key).
		Int32("version", version).
		Msg("document updated")
	return doc, true
}

// Close removes the buffer. Snapshots already handed out stay valid.
func (m *Manager) Close(ctx context.Context, uri string) {
	key := NormalizeURI(uri)

	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()

	zerolog.Ctx(ctx).Debug().Str("uri", key).Msg("document closed")
}

// Get returns the current snapshot for uri, if the buffer is open.
func (m *Manager) Get(uri string) (*Document, bool) {
	key := NormalizeURI(uri)

	m.mu.RLock()
	e := m.entries[key]
	m.mu.RUnlock()

	if e == nil {
		return nil, false
	}
	doc := e.snap.Load()
	return doc, doc != nil
}

// Snapshots returns the current snapshot of every open buffer, sorted
// by URI for deterministic cross-buffer feature results.
func (m *Manager) Snapshots() []*Document {
	m.mu.RLock()
	docs := make([]*Document, 0, len(m.entries))
	for _, e := range m.entries {
		if doc := e.snap.Load(); doc != nil {
			docs = append(docs, doc)
		}
	}
	m.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool { return docs[i].URI < docs[j].URI })
	return docs
}

// Len reports the number of open buffers.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Manager) entry(key string, create bool) *entry {
	m.mu.RLock()
	e := m.entries[key]
	m.mu.RUnlock()
	if e != nil || !create {
		return e
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e = m.entries[key]; e == nil {
		e = &entry{}
		m.entries[key] = e
	}
	return e
}

// build constructs a fresh snapshot: index first, then a parse whose
// errors are retained at the document level even when no model comes
// back.
func (m *Manager) build(ctx context.Context, uri string, version int32, languageID, content string) *Document {
	res := m.parser.Parse(ctx, content)
	return &Document{
		URI:        uri,
		LanguageID: languageID,
		Version:    version,
		Content:    content,
		Index:      position.NewIndex(content),
		Recipe:     res.Recipe,
		Errors:     res.Errors,
		Warnings:   res.Warnings,
	}
}
