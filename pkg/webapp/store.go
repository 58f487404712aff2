package webapp

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// User is one row of the user directory.
type User struct {
	ID        int64
	Username  string
	Role      string // "admin" or "user"
	CreatedAt string
}

var (
	ErrBadCredentials = errors.New("unknown user or wrong password")
	ErrLastAdmin      = errors.New("cannot delete the last admin")
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('admin','user')),
	created_at TEXT DEFAULT CURRENT_TIMESTAMP
);`

// Store wraps the sqlite user directory.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the user database with the usual
// production pragmas and ensures the schema exists.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open user db: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Seed guarantees the two default accounts exist. Existing rows are left
// untouched, so operator-changed passwords survive restarts.
func (s *Store) Seed(adminPassword, userPassword string) error {
	if err := s.ensureUser("admin", adminPassword, "admin"); err != nil {
		return err
	}
	return s.ensureUser("user", userPassword, "user")
}

func (s *Store) ensureUser(username, password, role string) error {
	var id int64
	err := s.db.QueryRow("SELECT id FROM users WHERE username = ?", username).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("lookup %s: %w", username, err)
	}
	return s.insertUser(username, password, role)
}

func (s *Store) insertUser(username, password, role string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO users(username, password_hash, role) VALUES(?,?,?)",
		username, string(hash), role,
	)
	if err != nil {
		return fmt.Errorf("insert user %s: %w", username, err)
	}
	return nil
}

// Authenticate checks the password against the stored bcrypt hash.
func (s *Store) Authenticate(username, password string) (*User, error) {
	var u User
	var hash string
	err := s.db.QueryRow(
		"SELECT id, username, password_hash, role FROM users WHERE username = ?",
		username,
	).Scan(&u.ID, &u.Username, &hash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return &u, nil
}

// ListUsers returns the directory, admins first.
func (s *Store) ListUsers() ([]User, error) {
	rows, err := s.db.Query(
		"SELECT id, username, role, created_at FROM users ORDER BY role DESC, username ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CreateUser adds a regular (non-admin) account.
func (s *Store) CreateUser(username, password string) error {
	if username == "" || password == "" {
		return errors.New("username and password required")
	}
	return s.insertUser(username, password, "user")
}

// DeleteUser removes an account. Deleting the last remaining admin is
// refused so the directory can never lock itself out.
func (s *Store) DeleteUser(username string) error {
	var role string
	err := s.db.QueryRow("SELECT role FROM users WHERE username = ?", username).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if role == "admin" {
		var admins int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE role = 'admin'").Scan(&admins); err != nil {
			return fmt.Errorf("count admins: %w", err)
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}
	_, err = s.db.Exec("DELETE FROM users WHERE username = ?", username)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
