package database

import (
	jsonv1 "encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/fulldump/dbjson/utils"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

type Config struct {
	Filename string

	// Persist disables writing the file when false, mutations only live in
	// memory (ephemeral deployments).
	Persist bool

	Logger *zap.Logger
}

// Database owns the document loaded from Config.Filename. A single lock is
// held across mutation, encoding and file write.
type Database struct {
	config   *Config
	logger   *zap.Logger
	status   atomic.Value
	mutex    sync.RWMutex
	document *Document
	exit     chan struct{}
	stopOnce sync.Once
}

func NewDatabase(config *Config) *Database { // todo: return error?
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	db := &Database{
		config:   config,
		logger:   logger.With(zap.String("file", config.Filename)),
		document: newDocument(),
		exit:     make(chan struct{}),
	}
	db.status.Store(StatusOpening)

	return db
}

func (db *Database) GetStatus() string {
	return db.status.Load().(string)
}

func (db *Database) Load() error {

	db.logger.Info("loading database", zap.Bool("persist", db.config.Persist))

	t0 := time.Now()
	data, err := os.ReadFile(db.config.Filename)
	if err != nil {
		db.status.Store(StatusClosing)
		return fmt.Errorf("read '%s': %w", db.config.Filename, err)
	}

	document, err := decodeDocument(data)
	if err != nil {
		db.status.Store(StatusClosing)
		return fmt.Errorf("load '%s': %w", db.config.Filename, err)
	}

	db.mutex.Lock()
	db.document = document
	db.mutex.Unlock()

	for _, name := range utils.GetKeys(document.Collections) {
		db.logger.Debug("collection loaded",
			zap.String("collection", name),
			zap.Int("records", len(document.Collections[name].Records)),
		)
	}
	db.logger.Info("database loaded",
		zap.Int("collections", len(document.Collections)),
		zap.Int("opaque", len(document.Opaque)),
		zap.Duration("elapsed", time.Since(t0)),
	)

	db.status.Store(StatusOperating)

	return nil
}

func (db *Database) Start() error {

	err := db.Load()
	if err != nil {
		return err
	}

	<-db.exit

	return nil
}

func (db *Database) Stop() error {
	db.stopOnce.Do(func() {
		db.status.Store(StatusClosing)
		close(db.exit)
	})
	return nil
}

// collection must be called with the lock held.
func (db *Database) collection(name string) (*Collection, error) {
	c, exists := db.document.Collections[name]
	if !exists {
		return nil, CollectionNotFound(name)
	}
	return c, nil
}

// persist must be called with the write lock held.
func (db *Database) persist() error {

	if !db.config.Persist {
		db.logger.Debug("persistence disabled, change kept in memory")
		return nil
	}

	t0 := time.Now()
	data, err := db.document.encode()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	err = writeFileAtomic(db.config.Filename, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	db.logger.Debug("database persisted",
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(t0)),
	)

	return nil
}

func (db *Database) rollback(operation, collection string, err error) {
	db.logger.Error("persist failed, rolling back",
		zap.String("operation", operation),
		zap.String("collection", collection),
		zap.Error(err),
	)
}

func copyRecord(payload Record, extra int) Record {
	record := make(Record, len(payload)+extra)
	for k, v := range payload {
		record[k] = v
	}
	return record
}

// Create appends payload to the collection with the next free id. Any id
// sent by the client is overwritten.
func (db *Database) Create(name string, payload Record) (Record, error) {

	db.mutex.Lock()
	defer db.mutex.Unlock()

	c, err := db.collection(name)
	if err != nil {
		return nil, err
	}

	id, err := c.nextID()
	if err != nil {
		return nil, fmt.Errorf("collection '%s': %w", name, err)
	}
	record := copyRecord(payload, 1)
	record["id"] = id

	c.append(record, id)

	err = db.persist()
	if err != nil {
		c.truncate(id)
		db.rollback("create", name, err)
		return nil, err
	}

	return record, nil
}

// Update replaces the whole record, fields missing in payload are dropped.
func (db *Database) Update(name string, id int64, payload Record) (Record, error) {

	db.mutex.Lock()
	defer db.mutex.Unlock()

	c, err := db.collection(name)
	if err != nil {
		return nil, err
	}

	i := c.find(id)
	if i < 0 {
		return nil, ItemNotFound(strconv.FormatInt(id, 10))
	}

	record := copyRecord(payload, 1)
	record["id"] = id

	previous := c.replace(i, record)

	err = db.persist()
	if err != nil {
		c.replace(i, previous)
		db.rollback("update", name, err)
		return nil, err
	}

	return record, nil
}

// Patch merges the top level fields of payload into the stored record.
func (db *Database) Patch(name string, id int64, payload Record) (Record, error) {

	db.mutex.Lock()
	defer db.mutex.Unlock()

	c, err := db.collection(name)
	if err != nil {
		return nil, err
	}

	i := c.find(id)
	if i < 0 {
		return nil, ItemNotFound(strconv.FormatInt(id, 10))
	}

	record := copyRecord(c.Records[i], len(payload))
	for k, v := range payload {
		record[k] = v
	}
	record["id"] = id

	previous := c.replace(i, record)

	err = db.persist()
	if err != nil {
		c.replace(i, previous)
		db.rollback("patch", name, err)
		return nil, err
	}

	return record, nil
}

// Delete removes the first record with the given id and returns it.
func (db *Database) Delete(name string, id int64) (Record, error) {

	db.mutex.Lock()
	defer db.mutex.Unlock()

	c, err := db.collection(name)
	if err != nil {
		return nil, err
	}

	i := c.find(id)
	if i < 0 {
		return nil, ItemNotFound(strconv.FormatInt(id, 10))
	}

	record := c.removeAt(i)

	err = db.persist()
	if err != nil {
		c.insertAt(i, record)
		db.rollback("delete", name, err)
		return nil, err
	}

	return record, nil
}

func (db *Database) HasCollection(name string) bool {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	_, exists := db.document.Collections[name]
	return exists
}

// Names returns the sorted collection names.
func (db *Database) Names() []string {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	return utils.GetKeys(db.document.Collections)
}

func (db *Database) List(name string) ([]Record, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	c, err := db.collection(name)
	if err != nil {
		return nil, err
	}

	return c.snapshot(), nil
}

func (db *Database) Get(name string, id int64) (Record, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	c, err := db.collection(name)
	if err != nil {
		return nil, err
	}

	i := c.find(id)
	if i < 0 {
		return nil, ItemNotFound(strconv.FormatInt(id, 10))
	}

	return c.Records[i], nil
}

// Lookup returns the top level value stored under name: the records of a
// collection or the raw JSON of an opaque entry.
func (db *Database) Lookup(name string) (any, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	if c, exists := db.document.Collections[name]; exists {
		return c.snapshot(), nil
	}
	if value, exists := db.document.Opaque[name]; exists {
		return jsonv1.RawMessage(value.Clone()), nil
	}

	return nil, CollectionNotFound(name)
}

// Dump returns a snapshot of the whole document.
func (db *Database) Dump() map[string]any {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	result := make(map[string]any, len(db.document.Collections)+len(db.document.Opaque))
	for name, value := range db.document.Opaque {
		result[name] = jsonv1.RawMessage(value.Clone())
	}
	for name, c := range db.document.Collections {
		result[name] = c.snapshot()
	}

	return result
}
