package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `id, user_id, currency, balance, created_at`

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var acc domain.Account
	err := row.Scan(&acc.AccountID, &acc.UserID, &acc.Currency, &acc.Balance, &acc.CreatedAt)
	return acc, err
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()
	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// FindAccountByID retrieves a specific account by its unique identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM app.accounts WHERE id = $1;`
	acc, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, mapPgError(err, fmt.Sprintf("find account %s", accountID))
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts without locking them.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}
	query := `SELECT ` + accountColumns + ` FROM app.accounts WHERE id = ANY($1::uuid[]);`
	rows, err := r.pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, mapPgError(err, "query accounts by IDs")
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		result[acc.AccountID] = acc
	}
	return result, nil
}

// ListAccountsByUser returns a user's accounts, optionally for a single currency.
func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID string, currency string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM app.accounts
		WHERE user_id = $1 AND ($2::text = '' OR currency = $2::text)
		ORDER BY currency, created_at;
	`
	rows, err := r.pool.Query(ctx, query, userID, strings.ToUpper(currency))
	if err != nil {
		return nil, mapPgError(err, "list accounts by user")
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// SaveAccountsInTx inserts new accounts within a given transaction.
func (r *PgxAccountRepository) SaveAccountsInTx(ctx context.Context, tx pgx.Tx, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	query := `
		INSERT INTO app.accounts (id, user_id, currency, balance, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	batch := &pgx.Batch{}
	for _, acc := range accounts {
		batch.Queue(query, acc.AccountID, acc.UserID, acc.Currency, acc.Balance, acc.CreatedAt)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapPgError(err, "insert accounts")
	}
	return nil
}

// LockAccountsForUpdate takes exclusive row locks on the given accounts with one statement.
// ORDER BY id makes Postgres acquire the locks in ascending id order.
// Must be called within a transaction.
func (r *PgxAccountRepository) LockAccountsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) ([]domain.Account, error) {
	if len(accountIDs) == 0 {
		return []domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM app.accounts
		WHERE id = ANY($1::uuid[])
		ORDER BY id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, mapPgError(err, "lock accounts")
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, mapPgError(err, "lock accounts")
	}

	if len(accounts) != len(accountIDs) {
		found := make(map[string]bool, len(accounts))
		for _, acc := range accounts {
			found[acc.AccountID] = true
		}
		missing := []string{}
		for _, id := range accountIDs {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}

	return accounts, nil
}

// UpdateAccountBalancesInTx applies signed deltas as balance = balance + delta.
// Must be called within a transaction that already holds the row locks.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `UPDATE app.accounts SET balance = balance + $2 WHERE id = $1;`

	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if !delta.IsZero() {
			accountIDs = append(accountIDs, accountID)
		}
	}
	if len(accountIDs) == 0 {
		return nil
	}
	sort.Strings(accountIDs)

	batch := &pgx.Batch{}
	for _, accountID := range accountIDs {
		batch.Queue(query, accountID, balanceChanges[accountID])
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for _, accountID := range accountIDs {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = mapPgError(err, fmt.Sprintf("update balance for account %s", accountID))
			}
		} else if ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountID)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = mapPgError(err, "close balance update batch")
	}
	return batchErr
}
