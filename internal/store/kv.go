package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// HistoryLimit is how many previous versions of a key are retained.
const HistoryLimit = 20

// Revision is a previous value of a key.
type Revision struct {
	ID      int64
	Key     string
	Value   []byte
	SavedAt int64
}

// Get returns the value stored under key. The boolean is false when the key
// does not exist.
func (db *DB) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Put replaces the value under key. The previous value, if any, is kept in
// the history table.
func (db *DB) Put(key string, value []byte) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UnixMilli()
	if _, err := tx.Exec(`
		INSERT INTO kv_history (key, value, saved_at)
		SELECT key, value, updated_at FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("archive %q: %w", key, err)
	}
	if _, err := tx.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, value, now); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	if err := pruneHistory(tx, key); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes key. Deleting a missing key is not an error.
func (db *DB) Delete(key string) error {
	_, err := db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Keys returns every stored key in lexical order.
func (db *DB) Keys() ([]string, error) {
	rows, err := db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// History returns the previous values of key, newest first.
func (db *DB) History(key string, limit int) ([]Revision, error) {
	if limit <= 0 {
		limit = HistoryLimit
	}
	rows, err := db.Query(`
		SELECT id, key, value, saved_at FROM kv_history
		WHERE key = ?
		ORDER BY id DESC
		LIMIT ?`, key, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var revs []Revision
	for rows.Next() {
		var r Revision
		if err := rows.Scan(&r.ID, &r.Key, &r.Value, &r.SavedAt); err != nil {
			return nil, err
		}
		revs = append(revs, r)
	}
	return revs, rows.Err()
}

// Revert restores the newest archived value of key and drops it from the
// history. It reports false when there is nothing to revert to.
func (db *DB) Revert(key string) (bool, error) {
	tx, err := db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		id    int64
		value []byte
	)
	err = tx.QueryRow(`SELECT id, value FROM kv_history WHERE key = ? ORDER BY id DESC LIMIT 1`, key).Scan(&id, &value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if _, err := tx.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli()); err != nil {
		return false, fmt.Errorf("restore %q: %w", key, err)
	}
	if _, err := tx.Exec(`DELETE FROM kv_history WHERE id = ?`, id); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func pruneHistory(tx *sql.Tx, key string) error {
	_, err := tx.Exec(`
		DELETE FROM kv_history
		WHERE key = ? AND id NOT IN (
			SELECT id FROM kv_history WHERE key = ? ORDER BY id DESC LIMIT ?
		)`, key, key, HistoryLimit)
	if err != nil {
		return fmt.Errorf("prune history %q: %w", key, err)
	}
	return nil
}
