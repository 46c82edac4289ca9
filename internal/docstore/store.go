// Package docstore is an embedded document store on top of Badger. Documents
// are JSON values grouped into collections and can carry secondary indexes.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

var (
	ErrNotFound      = errors.New("docstore: not found")
	ErrAlreadyExists = errors.New("docstore: already exists")
	ErrClosed        = errors.New("docstore: closed")
)

type Store struct {
	db  *badger.DB
	log zerolog.Logger
}

type Options struct {
	// Path is the data directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
	Logger   zerolog.Logger
}

func Open(opts Options) (*Store, error) {
	bopts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		bopts.SyncWrites = true
		bopts.CompactL0OnClose = true
	}
	bopts.Logger = nil

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	opts.Logger.Info().
		Str("path", opts.Path).
		Bool("in_memory", opts.InMemory).
		Msg("document store opened")

	return &Store{db: db, log: opts.Logger}, nil
}

func (s *Store) Close() error {
	s.log.Info().Msg("closing document store")
	return s.db.Close()
}

// Ping reports whether the store is still usable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return ErrClosed
	}
	return s.db.View(func(txn *badger.Txn) error { return nil })
}
