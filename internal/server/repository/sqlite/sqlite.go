package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Rechidesigns/RechiGPT/internal/server/repository"
	"github.com/Rechidesigns/RechiGPT/internal/shared/models"
)

type Repository struct {
	db *sql.DB
}

func New(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password_hash BLOB NOT NULL,
			created_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS exchanges (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			message TEXT NOT NULL,
			response TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
		);
		CREATE INDEX IF NOT EXISTS idx_exchanges_user_created
			ON exchanges(user_id, created_at);
	`); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Users

func (r *Repository) CreateUser(ctx context.Context, email string, passwordHash []byte) (models.User, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO users(id,email,password_hash,created_at) VALUES(?,?,?,?)`, id, email, passwordHash, now)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, repository.ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return models.User{ID: id, Email: email, CreatedAt: now}, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (models.User, []byte, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id,email,password_hash,created_at FROM users WHERE email = ?`, email)
	var u models.User
	var hash []byte
	if err := row.Scan(&u.ID, &u.Email, &hash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, nil, repository.ErrNotFound
		}
		return models.User{}, nil, err
	}
	return u, hash, nil
}

// Exchanges

func (r *Repository) AppendExchange(ctx context.Context, ex models.Exchange) (models.Exchange, error) {
	ex.ID = uuid.NewString()
	ex.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO exchanges(id,user_id,message,response,created_at) VALUES(?,?,?,?,?)`,
		ex.ID, ex.UserID, ex.Message, ex.Response, ex.CreatedAt)
	if err != nil {
		return models.Exchange{}, err
	}
	return ex, nil
}

// ListRecentExchanges returns up to limit most recent exchanges for the user
// in chronological order. The query fetches newest-first; the slice is
// reversed before returning so callers always see oldest-to-newest.
func (r *Repository) ListRecentExchanges(ctx context.Context, userID string, limit int) ([]models.Exchange, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, message, response, created_at
		FROM exchanges
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Exchange
	for rows.Next() {
		var ex models.Exchange
		if err := rows.Scan(&ex.ID, &ex.UserID, &ex.Message, &ex.Response, &ex.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
