package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"

	"github.com/dgraph-io/badger/v4"
)

// Collection stores documents of type T under "<name>:<id>". Index entries
// live under "idx:<name>:<index>:" so a prefix scan of the collection never
// sees them.
type Collection[T any] struct {
	store   *Store
	name    string
	indexes []index[T]
}

type index[T any] struct {
	name   string
	unique bool
	keyGen func(*T) string
}

func NewCollection[T any](s *Store, name string) *Collection[T] {
	return &Collection[T]{
		store: s,
		name:  name,
	}
}

// WithUniqueIndex adds an index that rejects a second document with the same
// key. Empty keys are not indexed.
func (c *Collection[T]) WithUniqueIndex(name string, keyGen func(*T) string) *Collection[T] {
	c.indexes = append(c.indexes, index[T]{name: name, unique: true, keyGen: keyGen})
	return c
}

// WithIndex adds a non-unique index usable with FindBy and DeleteBy.
func (c *Collection[T]) WithIndex(name string, keyGen func(*T) string) *Collection[T] {
	c.indexes = append(c.indexes, index[T]{name: name, keyGen: keyGen})
	return c
}

func (c *Collection[T]) docKey(id string) []byte {
	return []byte(c.name + ":" + id)
}

func (c *Collection[T]) indexPrefix(name, value string) []byte {
	return []byte("idx:" + c.name + ":" + name + ":" + value)
}

// indexKey is the unique entry itself, or value plus ":<id>" for
// non-unique indexes.
func (c *Collection[T]) indexKey(idx index[T], value, id string) []byte {
	if idx.unique {
		return c.indexPrefix(idx.name, value)
	}
	return []byte(string(c.indexPrefix(idx.name, value)) + ":" + id)
}

func (c *Collection[T]) lookup(name string) (index[T], error) {
	for _, idx := range c.indexes {
		if idx.name == name {
			return idx, nil
		}
	}
	return index[T]{}, fmt.Errorf("docstore: unknown index %q on %s", name, c.name)
}

// Insert stores a new document. It returns ErrAlreadyExists when the id is
// taken or a unique index key is already in use.
func (c *Collection[T]) Insert(ctx context.Context, id string, doc *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	return c.store.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(c.docKey(id))
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check existing key: %w", err)
		}

		if err := c.checkUnique(txn, doc, nil); err != nil {
			return err
		}

		if err := txn.Set(c.docKey(id), data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}

		return c.writeIndexes(txn, id, doc)
	})
}

// Get returns the document stored under id or ErrNotFound.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc *T
	err := c.store.db.View(func(txn *badger.Txn) error {
		var err error
		doc, err = c.get(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Collection[T]) get(txn *badger.Txn, id string) (*T, error) {
	item, err := txn.Get(c.docKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key: %w", err)
	}

	var doc T
	err = item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, &doc); err != nil {
			return fmt.Errorf("failed to unmarshal document: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Replace overwrites an existing document and moves its index entries.
func (c *Collection[T]) Replace(ctx context.Context, id string, doc *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	return c.store.db.Update(func(txn *badger.Txn) error {
		old, err := c.get(txn, id)
		if err != nil {
			return err
		}

		if err := c.checkUnique(txn, doc, old); err != nil {
			return err
		}

		if err := c.deleteIndexes(txn, id, old); err != nil {
			return err
		}

		if err := txn.Set(c.docKey(id), data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}

		return c.writeIndexes(txn, id, doc)
	})
}

// Delete removes a document. It returns ErrNotFound when nothing was stored
// under id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.store.db.Update(func(txn *badger.Txn) error {
		return c.delete(txn, id)
	})
}

func (c *Collection[T]) delete(txn *badger.Txn, id string) error {
	doc, err := c.get(txn, id)
	if err != nil {
		return err
	}

	if err := c.deleteIndexes(txn, id, doc); err != nil {
		return err
	}

	if err := txn.Delete(c.docKey(id)); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}
	return nil
}

// List iterates over every document in key order.
func (c *Collection[T]) List(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		prefix := []byte(c.name + ":")
		failed := false

		err := c.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = prefix

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				if err := ctx.Err(); err != nil {
					failed = true
					yield(nil, err)
					return err
				}

				var doc T
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &doc)
				})
				if err != nil {
					failed = true
					yield(nil, err)
					return err
				}

				if !yield(&doc, nil) {
					return nil
				}
			}
			return nil
		})
		// View fails on its own when the db is closed
		if err != nil && !failed {
			yield(nil, err)
		}
	}
}

// All collects List into a slice.
func (c *Collection[T]) All(ctx context.Context) ([]*T, error) {
	docs := make([]*T, 0)
	for doc, err := range c.List(ctx) {
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// FindBy returns every document whose index key equals value.
func (c *Collection[T]) FindBy(ctx context.Context, indexName, value string) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx, err := c.lookup(indexName)
	if err != nil {
		return nil, err
	}

	docs := make([]*T, 0)
	err = c.store.db.View(func(txn *badger.Txn) error {
		ids, err := c.indexedIDs(txn, idx, value)
		if err != nil {
			return err
		}

		for _, id := range ids {
			doc, err := c.get(txn, id)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			docs = append(docs, doc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// DeleteBy removes every document whose index key equals value and returns
// how many were removed.
func (c *Collection[T]) DeleteBy(ctx context.Context, indexName, value string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	idx, err := c.lookup(indexName)
	if err != nil {
		return 0, err
	}

	var deleted int
	err = c.store.db.Update(func(txn *badger.Txn) error {
		ids, err := c.indexedIDs(txn, idx, value)
		if err != nil {
			return err
		}

		for _, id := range ids {
			err := c.delete(txn, id)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (c *Collection[T]) indexedIDs(txn *badger.Txn, idx index[T], value string) ([]string, error) {
	if idx.unique {
		item, err := txn.Get(c.indexPrefix(idx.name, value))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get index key: %w", err)
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		return []string{string(id)}, nil
	}

	prefix := append(c.indexPrefix(idx.name, value), ':')

	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = true

	it := txn.NewIterator(opts)
	defer it.Close()

	var ids []string
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		id, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		ids = append(ids, string(id))
	}
	return ids, nil
}

// checkUnique fails when a unique key of doc is owned by another document.
// Keys that old already holds are skipped.
func (c *Collection[T]) checkUnique(txn *badger.Txn, doc, old *T) error {
	for _, idx := range c.indexes {
		if !idx.unique {
			continue
		}

		value := idx.keyGen(doc)
		if value == "" {
			continue
		}
		if old != nil && idx.keyGen(old) == value {
			continue
		}

		_, err := txn.Get(c.indexPrefix(idx.name, value))
		if err == nil {
			return fmt.Errorf("index %s conflict on key %s: %w", idx.name, value, ErrAlreadyExists)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check index key: %w", err)
		}
	}
	return nil
}

func (c *Collection[T]) writeIndexes(txn *badger.Txn, id string, doc *T) error {
	for _, idx := range c.indexes {
		value := idx.keyGen(doc)
		if value == "" {
			continue
		}
		if err := txn.Set(c.indexKey(idx, value, id), []byte(id)); err != nil {
			return fmt.Errorf("failed to set index key: %w", err)
		}
	}
	return nil
}

func (c *Collection[T]) deleteIndexes(txn *badger.Txn, id string, doc *T) error {
	for _, idx := range c.indexes {
		value := idx.keyGen(doc)
		if value == "" {
			continue
		}
		if err := txn.Delete(c.indexKey(idx, value, id)); err != nil {
			return fmt.Errorf("failed to delete index key: %w", err)
		}
	}
	return nil
}
