// Package session keeps the admin's login on disk and answers the
// authorization questions the admin views ask before fetching anything.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	keyToken  = "token"
	keyUserID = "user_id"
)

// Store is the client's only persistent state: the sealed bearer token, the
// user id and the moderation journal.
type Store struct {
	db   *sql.DB
	box  *sealer
	now  func() time.Time

	putStmt    *sql.Stmt
	getStmt    *sql.Stmt
	recordStmt *sql.Stmt
}

// Open returns the store kept at dbPath, creating the file and its directory
// on first run. keyPath holds the sealing key; it is generated if missing.
func Open(dbPath, keyPath string) (*Store, error) {
	box, err := loadSealer(keyPath)
	if err != nil {
		return nil, err
	}
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db, box: box, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.prepare(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func openDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	// A single writer keeps the journal append order identical to the
	// order the mutations finished in.
	db.SetMaxOpenConns(1)
	return db, nil
}

func (s *Store) Close() error {
	for _, stmt := range []*sql.Stmt{s.putStmt, s.getStmt, s.recordStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}

// migrations[i] moves the schema from version i to i+1. Append only.
var migrations = [][]string{
	{
		`CREATE TABLE IF NOT EXISTS credentials (
			name       TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS journal (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			at          DATETIME NOT NULL,
			resource    TEXT NOT NULL,
			resource_id INTEGER NOT NULL,
			action      TEXT NOT NULL,
			outcome     TEXT NOT NULL,
			detail      TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_resource ON journal(resource, resource_id)`,
	},
}

// migrate brings the file up to len(migrations), one transaction per step,
// tracking the version in SQLite's user_version pragma.
func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for ; version < len(migrations); version++ {
		if err := s.step(version); err != nil {
			return fmt.Errorf("migrate session db to v%d: %w", version+1, err)
		}
	}
	return nil
}

func (s *Store) step(from int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, q := range migrations[from] {
		if _, err := tx.Exec(q); err != nil {
			return err
		}
	}
	// PRAGMA does not take bind parameters.
	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, from+1)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) prepare() error {
	stmts := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&s.putStmt, `INSERT INTO credentials(name, value, updated_at) VALUES(?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`},
		{&s.getStmt, `SELECT value FROM credentials WHERE name = ?`},
		{&s.recordStmt, `INSERT INTO journal(at, resource, resource_id, action, outcome, detail) VALUES(?, ?, ?, ?, ?, ?)`},
	}
	for _, st := range stmts {
		stmt, err := s.db.Prepare(st.query)
		if err != nil {
			return fmt.Errorf("prepare: %w", err)
		}
		*st.dst = stmt
	}
	return nil
}

// ---------------------------------------------------------------------------
// Credentials
// ---------------------------------------------------------------------------

// SaveLogin stores the token and user id in one transaction. It is the only
// writer of credentials; nothing else refreshes them.
func (s *Store) SaveLogin(token string, userID int64) error {
	sealed, err := s.box.seal([]byte(token))
	if err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := s.now().UTC()
	if _, err := tx.Stmt(s.putStmt).Exec(keyToken, sealed, now); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if _, err := tx.Stmt(s.putStmt).Exec(keyUserID, []byte(strconv.FormatInt(userID, 10)), now); err != nil {
		return fmt.Errorf("save user id: %w", err)
	}
	return tx.Commit()
}

// Token returns the stored bearer token, or "" when nobody is logged in.
// It satisfies api.TokenSource.
func (s *Store) Token() (string, error) {
	var sealed []byte
	err := s.getStmt.QueryRow(keyToken).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	plain, err := s.box.open(sealed)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// UserID returns the stored user id, or 0 when absent.
func (s *Store) UserID() (int64, error) {
	var raw []byte
	err := s.getStmt.QueryRow(keyUserID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read user id: %w", err)
	}
	return strconv.ParseInt(string(raw), 10, 64)
}

// Clear forgets the login (logout).
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM credentials WHERE name IN (?,?)`, keyToken, keyUserID)
	return err
}
