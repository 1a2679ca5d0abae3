package store

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore implements Store on top of Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) SubscribeCollection(ctx context.Context, name, orderBy string, onData func([]Document), onErr func(error)) (Unsubscribe, error) {
	if onData == nil || onErr == nil {
		return nil, fmt.Errorf("subscribe %s: nil callback", name)
	}

	subCtx, cancel := context.WithCancel(ctx)
	it := s.client.Collection(name).OrderBy(orderBy, firestore.Asc).Snapshots(subCtx)

	go func() {
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || subCtx.Err() != nil {
					return
				}
				onErr(err)
				return
			}

			docSnaps, err := snap.Documents.GetAll()
			if err != nil {
				onErr(err)
				return
			}

			docs := make([]Document, 0, len(docSnaps))
			for _, d := range docSnaps {
				docs = append(docs, Document{ID: d.Ref.ID, Data: d.Data()})
			}
			onData(docs)
		}
	}()

	return func() { cancel() }, nil
}

func (s *FirestoreStore) SubscribeDocument(ctx context.Context, path string, onData func(map[string]any, bool), onErr func(error)) (Unsubscribe, error) {
	if onData == nil || onErr == nil {
		return nil, fmt.Errorf("subscribe %s: nil callback", path)
	}

	subCtx, cancel := context.WithCancel(ctx)
	it := s.client.Doc(path).Snapshots(subCtx)

	go func() {
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || subCtx.Err() != nil {
					return
				}
				onErr(err)
				return
			}

			if snap.Exists() {
				onData(snap.Data(), true)
			} else {
				onData(nil, false)
			}
		}
	}()

	return func() { cancel() }, nil
}

func (s *FirestoreStore) Set(ctx context.Context, path string, data map[string]any, merge bool) error {
	opts := []firestore.SetOption{}
	if merge {
		opts = append(opts, firestore.MergeAll)
	}
	_, err := s.client.Doc(path).Set(ctx, resolveSentinels(data), opts...)
	if err != nil {
		return fmt.Errorf("firestore set %s: %w", path, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, path string) error {
	if _, err := s.client.Doc(path).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete %s: %w", path, err)
	}
	return nil
}

func (s *FirestoreStore) RunTransaction(ctx context.Context, fn func(tx Tx) error) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		return fn(&firestoreTx{store: s, tx: t})
	})
}

func (s *FirestoreStore) Close() error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Close(); err != nil {
		log.Printf("[warn] operation=store.close error=%v", err)
		return err
	}
	return nil
}

type firestoreTx struct {
	store *FirestoreStore
	tx    *firestore.Transaction
}

func (t *firestoreTx) Get(path string) (map[string]any, bool, error) {
	snap, err := t.tx.Get(t.store.client.Doc(path))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	if !snap.Exists() {
		return nil, false, nil
	}
	return snap.Data(), true, nil
}

func (t *firestoreTx) Set(path string, data map[string]any, merge bool) error {
	opts := []firestore.SetOption{}
	if merge {
		opts = append(opts, firestore.MergeAll)
	}
	return t.tx.Set(t.store.client.Doc(path), resolveSentinels(data), opts...)
}

// resolveSentinels swaps our timestamp sentinel for Firestore's so
// callers never import the driver package.
func resolveSentinels(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		switch vv := v.(type) {
		case serverTimestamp:
			out[k] = firestore.ServerTimestamp
		case map[string]any:
			out[k] = resolveSentinels(vv)
		default:
			out[k] = v
		}
	}
	return out
}
