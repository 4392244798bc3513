package mock

import (
	"fmt"

	"go.uber.org/zap"
)

// StorageKey is the fixed key the app data blob is stored under.
const StorageKey = "mockMessengerData"

// KV is the key-value storage the repository persists into.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// Repository loads and flushes the app data blob.
type Repository struct {
	kv     KV
	logger *zap.Logger
}

// NewRepository creates a repository on top of kv.
func NewRepository(kv KV, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{kv: kv, logger: logger}
}

// Load returns the stored app data. A missing blob yields the defaults. A
// blob that cannot be decoded or fails validation is logged and discarded in
// favor of the defaults; only storage failures are returned.
func (r *Repository) Load() (AppData, error) {
	blob, ok, err := r.kv.Get(StorageKey)
	if err != nil {
		return AppData{}, fmt.Errorf("read %s: %w", StorageKey, err)
	}
	if !ok {
		r.logger.Info("no stored data, using defaults")
		return Default(), nil
	}
	d, err := DecodeValid(blob)
	if err != nil {
		r.logger.Error("failed to load data, using defaults", zap.Error(err), zap.Int("bytes", len(blob)))
		return Default(), nil
	}
	return d, nil
}

// Save validates and writes the whole app data.
func (r *Repository) Save(d AppData) error {
	if err := Validate(d); err != nil {
		return err
	}
	blob, err := Encode(d)
	if err != nil {
		return err
	}
	if err := r.kv.Put(StorageKey, blob); err != nil {
		return fmt.Errorf("write %s: %w", StorageKey, err)
	}
	r.logger.Debug("data saved", zap.Int("bytes", len(blob)))
	return nil
}

// Clear removes the stored blob so the next Load returns the defaults.
func (r *Repository) Clear() error {
	if err := r.kv.Delete(StorageKey); err != nil {
		return fmt.Errorf("delete %s: %w", StorageKey, err)
	}
	return nil
}
