package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemStore is an in-memory Store used by tests. It mirrors the remote
// store's contract: ordered collection snapshots, merge writes, and
// serialized transactions. Failure injection stands in for network and
// permission errors.
type MemStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	docs map[string]map[string]any

	nextSubID int
	collSubs  map[int]*collSub
	docSubs   map[int]*docSub

	failSet    map[string]error
	failDelete map[string]error
	failTx     error
}

type collSub struct {
	name    string
	orderBy string
	onData  func([]Document)
	onErr   func(error)
}

type docSub struct {
	path   string
	onData func(map[string]any, bool)
	onErr  func(error)
}

func NewMemStore() *MemStore {
	return &MemStore{
		docs:       map[string]map[string]any{},
		collSubs:   map[int]*collSub{},
		docSubs:    map[int]*docSub{},
		failSet:    map[string]error{},
		failDelete: map[string]error{},
	}
}

func (m *MemStore) SubscribeCollection(ctx context.Context, name, orderBy string, onData func([]Document), onErr func(error)) (Unsubscribe, error) {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.collSubs[id] = &collSub{name: name, orderBy: orderBy, onData: onData, onErr: onErr}
	docs := m.collectionLocked(name, orderBy)
	m.mu.Unlock()

	// Initial snapshot, like the real stream.
	onData(docs)

	return func() {
		m.mu.Lock()
		delete(m.collSubs, id)
		m.mu.Unlock()
	}, nil
}

func (m *MemStore) SubscribeDocument(ctx context.Context, path string, onData func(map[string]any, bool), onErr func(error)) (Unsubscribe, error) {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.docSubs[id] = &docSub{path: path, onData: onData, onErr: onErr}
	data, ok := m.docs[path]
	if ok {
		data = deepCopy(data)
	}
	m.mu.Unlock()

	onData(data, ok)

	return func() {
		m.mu.Lock()
		delete(m.docSubs, id)
		m.mu.Unlock()
	}, nil
}

func (m *MemStore) Set(ctx context.Context, path string, data map[string]any, merge bool) error {
	m.mu.Lock()
	if err := m.failSet[path]; err != nil {
		m.mu.Unlock()
		return err
	}
	m.setLocked(path, data, merge)
	m.mu.Unlock()

	m.emit(path)
	return nil
}

func (m *MemStore) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	if err := m.failDelete[path]; err != nil {
		m.mu.Unlock()
		return err
	}
	delete(m.docs, path)
	m.mu.Unlock()

	m.emit(path)
	return nil
}

func (m *MemStore) RunTransaction(ctx context.Context, fn func(tx Tx) error) error {
	// One transaction at a time: read-modify-write cycles never interleave.
	m.txMu.Lock()
	defer m.txMu.Unlock()

	if m.failTx != nil {
		return m.failTx
	}

	tx := &memTx{store: m, writes: []memWrite{}}
	if err := fn(tx); err != nil {
		return err
	}

	touched := make([]string, 0, len(tx.writes))
	m.mu.Lock()
	for _, w := range tx.writes {
		m.setLocked(w.path, w.data, w.merge)
		touched = append(touched, w.path)
	}
	m.mu.Unlock()

	for _, p := range touched {
		m.emit(p)
	}
	return nil
}

func (m *MemStore) Close() error { return nil }

type memWrite struct {
	path  string
	data  map[string]any
	merge bool
}

// memTx buffers writes until the transaction function returns. Reads see
// the committed state plus this transaction's own staged writes.
type memTx struct {
	store  *MemStore
	writes []memWrite
}

func (t *memTx) Get(path string) (map[string]any, bool, error) {
	t.store.mu.Lock()
	cur, ok := t.store.docs[path]
	if ok {
		cur = deepCopy(cur)
	}
	t.store.mu.Unlock()

	for _, w := range t.writes {
		if w.path != path {
			continue
		}
		resolved := resolveMemSentinels(w.data)
		if w.merge && cur != nil {
			cur = mergeMaps(cur, resolved)
		} else {
			cur = resolved
		}
		ok = true
	}
	if !ok {
		return nil, false, nil
	}
	return cur, true, nil
}

func (t *memTx) Set(path string, data map[string]any, merge bool) error {
	t.writes = append(t.writes, memWrite{path: path, data: deepCopy(data), merge: merge})
	return nil
}

// FailNextSet makes writes to path fail until cleared with err == nil.
func (m *MemStore) FailNextSet(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failSet, path)
		return
	}
	m.failSet[path] = err
}

// FailTransactions makes RunTransaction fail with err (nil clears).
func (m *MemStore) FailTransactions(err error) {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	m.failTx = err
}

// FailCollection invokes every error callback subscribed to name, as a
// broken snapshot stream would, and drops those subscriptions.
func (m *MemStore) FailCollection(name string, err error) {
	m.mu.Lock()
	var errFns []func(error)
	for id, s := range m.collSubs {
		if s.name == name {
			errFns = append(errFns, s.onErr)
			delete(m.collSubs, id)
		}
	}
	m.mu.Unlock()

	for _, fn := range errFns {
		fn(err)
	}
}

// FailDocument is FailCollection for single-document subscriptions.
func (m *MemStore) FailDocument(path string, err error) {
	m.mu.Lock()
	var errFns []func(error)
	for id, s := range m.docSubs {
		if s.path == path {
			errFns = append(errFns, s.onErr)
			delete(m.docSubs, id)
		}
	}
	m.mu.Unlock()

	for _, fn := range errFns {
		fn(err)
	}
}

// Doc returns a copy of the stored document, for assertions.
func (m *MemStore) Doc(path string) (map[string]any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[path]
	if !ok {
		return nil, false
	}
	return deepCopy(d), true
}

// Len reports how many documents a collection holds.
func (m *MemStore) Len(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for path := range m.docs {
		if strings.HasPrefix(path, collection+"/") {
			n++
		}
	}
	return n
}

func (m *MemStore) setLocked(path string, data map[string]any, merge bool) {
	resolved := resolveMemSentinels(data)
	if !merge {
		m.docs[path] = resolved
		return
	}
	cur, ok := m.docs[path]
	if !ok {
		m.docs[path] = resolved
		return
	}
	m.docs[path] = mergeMaps(cur, resolved)
}

func (m *MemStore) emit(path string) {
	collection := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		collection = path[:i]
	}

	m.mu.Lock()
	type collEvent struct {
		fn   func([]Document)
		docs []Document
	}
	type docEvent struct {
		fn   func(map[string]any, bool)
		data map[string]any
		ok   bool
	}
	var collEvents []collEvent
	var docEvents []docEvent
	for _, s := range m.collSubs {
		if s.name == collection {
			collEvents = append(collEvents, collEvent{fn: s.onData, docs: m.collectionLocked(s.name, s.orderBy)})
		}
	}
	for _, s := range m.docSubs {
		if s.path == path {
			data, ok := m.docs[path]
			if ok {
				data = deepCopy(data)
			}
			docEvents = append(docEvents, docEvent{fn: s.onData, data: data, ok: ok})
		}
	}
	m.mu.Unlock()

	for _, e := range collEvents {
		e.fn(e.docs)
	}
	for _, e := range docEvents {
		e.fn(e.data, e.ok)
	}
}

func (m *MemStore) collectionLocked(name, orderBy string) []Document {
	prefix := name + "/"
	docs := make([]Document, 0, 8)
	for path, data := range m.docs {
		if strings.HasPrefix(path, prefix) {
			docs = append(docs, Document{ID: strings.TrimPrefix(path, prefix), Data: deepCopy(data)})
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		a, aok := numField(docs[i].Data, orderBy)
		b, bok := numField(docs[j].Data, orderBy)
		if aok && bok {
			return a < b
		}
		return docs[i].ID < docs[j].ID
	})
	return docs
}

func numField(data map[string]any, key string) (float64, bool) {
	switch v := data[key].(type) {
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func mergeMaps(base, patch map[string]any) map[string]any {
	out := deepCopy(base)
	for k, v := range patch {
		if pm, ok := v.(map[string]any); ok {
			if bm, ok := out[k].(map[string]any); ok {
				out[k] = mergeMaps(bm, pm)
				continue
			}
		}
		out[k] = v
	}
	return out
}

func deepCopy(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if m, ok := v.(map[string]any); ok {
			out[k] = deepCopy(m)
			continue
		}
		if s, ok := v.([]any); ok {
			out[k] = append([]any(nil), s...)
			continue
		}
		out[k] = v
	}
	return out
}

func resolveMemSentinels(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		switch vv := v.(type) {
		case serverTimestamp:
			out[k] = time.Now().UTC()
		case map[string]any:
			out[k] = resolveMemSentinels(vv)
		default:
			out[k] = v
		}
	}
	return out
}

var _ Store = (*MemStore)(nil)
