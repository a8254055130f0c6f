package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.UserID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// SaveUserInTx inserts a new user within a given transaction.
func (r *PgxUserRepository) SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error {
	query := `
		INSERT INTO auth.users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := tx.Exec(ctx, query, user.UserID, strings.ToLower(user.Email), user.PasswordHash, user.CreatedAt); err != nil {
		return mapPgError(err, "insert user")
	}
	return nil
}

// FindUserByID retrieves a user by its unique identifier.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT id, email, password_hash, created_at FROM auth.users WHERE id = $1;`
	u, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, mapPgError(err, fmt.Sprintf("find user %s", userID))
	}
	return u, nil
}

// FindUserByEmail retrieves a user by email. Emails are stored lower-cased.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, password_hash, created_at FROM auth.users WHERE email = $1;`
	u, err := scanUser(r.db.QueryRow(ctx, query, strings.ToLower(email)))
	if err != nil {
		return nil, mapPgError(err, "find user by email")
	}
	return u, nil
}
