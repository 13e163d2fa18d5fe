package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Bukisoo/d3-force-tree-app/internal/log"

	"golang.org/x/crypto/bcrypt"
)

// AccountStore keeps bcrypt-hashed credentials in the accounts table.
type AccountStore struct {
	db   *SQLiteDatabase
	cost int
}

// NewAccountStore returns an AccountStore hashing with cost. A cost of zero
// means bcrypt.DefaultCost.
func NewAccountStore(db *SQLiteDatabase, cost int) *AccountStore {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AccountStore{db: db, cost: cost}
}

// Add creates an account.
func (a *AccountStore) Add(ctx context.Context, username, password string) error {
	if username == "" || strings.Contains(username, "/") {
		return fmt.Errorf("%w: bad user name %q", ErrInvalidCredentials, username)
	}
	exists, err := a.Exists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAccountExists, username)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	_, err = a.db.db.ExecContext(ctx,
		"INSERT INTO accounts (username, password_hash, created) VALUES (?, ?, ?)",
		username, hashedPassword, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add account: %w", err)
	}
	a.db.logger.Info(ctx, "Account added", log.Fields{"username": username})
	return nil
}

// Exists reports whether an account with username exists.
func (a *AccountStore) Exists(ctx context.Context, username string) (bool, error) {
	var n int
	err := a.db.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts WHERE username = ?", username).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check account: %w", err)
	}
	return n > 0, nil
}

// Authenticate verifies a user's credentials.
func (a *AccountStore) Authenticate(ctx context.Context, username, password string) error {
	var hashedPassword []byte
	err := a.db.db.QueryRowContext(ctx, "SELECT password_hash FROM accounts WHERE username = ?", username).Scan(&hashedPassword)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("failed to get account for authentication: %w", err)
	}

	err = bcrypt.CompareHashAndPassword(hashedPassword, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("failed to compare passwords: %w", err)
	}
	return nil
}

// Remove deletes an account together with every key stored under it.
func (a *AccountStore) Remove(ctx context.Context, username string) error {
	return a.db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM accounts WHERE username = ?", username)
		if err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, username)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM kv WHERE key LIKE ? ESCAPE '\\'", likePrefix(username)); err != nil {
			return fmt.Errorf("failed to delete account data: %w", err)
		}
		return nil
	})
}

func likePrefix(username string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(username+"/") + "%"
}

// Gate is a Store that only works for a logged-in account. Keys are
// stored as "<user>/<key>" in the underlying store.
type Gate struct {
	accounts *AccountStore
	store    Store
	user     string
}

// NewGate wraps store behind accounts.
func NewGate(accounts *AccountStore, store Store) *Gate {
	return &Gate{accounts: accounts, store: store}
}

// Login authenticates and selects the account whose keys are used.
func (g *Gate) Login(ctx context.Context, username, password string) error {
	if err := g.accounts.Authenticate(ctx, username, password); err != nil {
		return err
	}
	g.user = username
	return nil
}

// Logout forgets the current account.
func (g *Gate) Logout() {
	g.user = ""
}

// User returns the logged-in user name.
func (g *Gate) User() string {
	return g.user
}

// Get reads key for the logged-in account.
func (g *Gate) Get(ctx context.Context, key string) (string, error) {
	if g.user == "" {
		return "", ErrNotAuthenticated
	}
	return g.store.Get(ctx, g.user+"/"+key)
}

// Set writes key for the logged-in account.
func (g *Gate) Set(ctx context.Context, key, value string) error {
	if g.user == "" {
		return ErrNotAuthenticated
	}
	return g.store.Set(ctx, g.user+"/"+key, value)
}
