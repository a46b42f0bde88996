package badger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/nightdex/storage"
)

// Backend wraps a BadgerDB instance shared by the cache and vector stores.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter routes badger's printf logging into slog. Badger
// terminates most messages with a newline, which is dropped.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(format(msg, items))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(format(msg, items))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(format(msg, items))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(format(msg, items))
}

func format(msg string, items []any) string {
	return strings.TrimRight(fmt.Sprintf(msg, items...), "\n")
}

type backendOptions struct {
	inMemory    bool
	syncWrites  bool
	compression options.CompressionType
	logger      *slog.Logger
}

// BackendOption configures OpenBackend.
type BackendOption func(*backendOptions)

// InMemory keeps the database in memory; the path is ignored.
func InMemory() BackendOption {
	return func(o *backendOptions) {
		o.inMemory = true
	}
}

// WithSyncWrites fsyncs every commit. Default is off: a crash may lose the
// last few cache writes, which are then redone on the next run.
func WithSyncWrites(sync bool) BackendOption {
	return func(o *backendOptions) {
		o.syncWrites = sync
	}
}

// WithCompression sets the block compression.
// Default is options.Snappy; cache entries are JSON and compress well.
func WithCompression(c options.CompressionType) BackendOption {
	return func(o *backendOptions) {
		o.compression = c
	}
}

// WithBackendLogger sets the logger badger writes through.
func WithBackendLogger(logger *slog.Logger) BackendOption {
	return func(o *backendOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// OpenBackend opens the BadgerDB database in dir, creating the directory
// if needed. Returns storage.ErrPathRequired when dir is empty and the
// database is not in memory.
func OpenBackend(dir string, opts ...BackendOption) (*Backend, error) {
	o := &backendOptions{
		compression: options.Snappy,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger.With("component", "badger")

	var bo badger.Options
	if o.inMemory {
		bo = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := ensureDir(dir); err != nil {
			return nil, err
		}
		bo = badger.DefaultOptions(dir).WithSyncWrites(o.syncWrites)
	}
	bo = bo.WithLogger(&badgerLoggerAdapter{logger: logger}).WithCompression(o.compression)

	db, err := badger.Open(bo)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", dir, err)
	}
	logger.Debug("badger opened", "dir", dir, "in_memory", o.inMemory)

	return &Backend{
		db:     db,
		logger: logger,
	}, nil
}

func ensureDir(dir string) error {
	if dir == "" {
		return storage.ErrPathRequired
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed reports whether the database has been closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// WithTx runs fn in a transaction, read-write when isWrite is set. The
// transaction is always discarded afterwards, so writers must commit
// inside fn (see Update).
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	if b.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// Update runs fn in a read-write transaction and commits it.
func (b *Backend) Update(fn func(tx *badger.Txn) error) error {
	return b.WithTx(func(tx *badger.Txn) error {
		if err := fn(tx); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// KeysWithPrefix returns copies of every key starting with prefix.
func (b *Backend) KeysWithPrefix(prefix []byte) ([][]byte, error) {
	var keys [][]byte
	err := b.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	return keys, err
}

// DeleteKeys removes keys in a write batch, which splits large deletes
// across transactions.
func (b *Backend) DeleteKeys(keys [][]byte) error {
	if len(keys) == 0 {
		return nil
	}
	if b.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			return err
		}
	}
	return wb.Flush()
}
