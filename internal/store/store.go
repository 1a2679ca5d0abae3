// Package store wraps the remote document database behind the four
// primitives the rest of the service depends on: subscribe, write,
// delete and an atomic read-modify-write transaction.
package store

import "context"

// Document is one record of a collection, as delivered by a snapshot.
type Document struct {
	ID   string
	Data map[string]any
}

// Unsubscribe cancels a subscription. After it returns no further
// callbacks are delivered. Forgetting to call it leaks the listener.
type Unsubscribe func()

// Tx is the view of the store inside a transaction. Reads and writes
// through it are serialized against concurrent transactions touching the
// same documents.
type Tx interface {
	Get(path string) (map[string]any, bool, error)
	Set(path string, data map[string]any, merge bool) error
}

// Store is the remote document database. Paths are "collection/docID".
type Store interface {
	// SubscribeCollection streams the full ordered contents of a
	// collection on every change. onErr is called on stream failure,
	// after which no more data callbacks arrive.
	SubscribeCollection(ctx context.Context, name, orderBy string, onData func([]Document), onErr func(error)) (Unsubscribe, error)

	// SubscribeDocument streams a single document. The bool reports
	// whether the document exists.
	SubscribeDocument(ctx context.Context, path string, onData func(map[string]any, bool), onErr func(error)) (Unsubscribe, error)

	// Set writes a document. With merge, only the supplied fields are
	// touched; without it the document is replaced.
	Set(ctx context.Context, path string, data map[string]any, merge bool) error

	Delete(ctx context.Context, path string) error

	// RunTransaction executes fn atomically against concurrent callers.
	RunTransaction(ctx context.Context, fn func(tx Tx) error) error

	Close() error
}

// serverTimestamp is a sentinel resolved to the store's own clock at
// write time.
type serverTimestamp struct{}

// ServerTimestamp marks a field to be filled with the server-assigned
// write time.
var ServerTimestamp = serverTimestamp{}
