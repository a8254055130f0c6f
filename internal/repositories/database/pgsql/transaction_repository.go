package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ownedByUser is true when any ledger entry of t touches an account owned by $1.
const ownedByUser = `
	EXISTS (
		SELECT 1
		FROM app.ledger l
		JOIN app.accounts a ON a.id = l.account_id
		WHERE l.transaction_id = t.id
		  AND a.user_id = $1
	)`

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var txn domain.Transaction
	var typ, status string
	err := row.Scan(&txn.TransactionID, &typ, &status, &txn.Metadata, &txn.CreatedAt)
	txn.Type = domain.TransactionType(typ)
	txn.Status = domain.TransactionStatus(status)
	if txn.Metadata == nil {
		txn.Metadata = domain.Metadata{}
	}
	return txn, err
}

// userFilterClause builds the shared WHERE clause and its arguments for list and count.
func userFilterClause(filter portsrepo.TransactionFilter) (string, []any) {
	where := "WHERE" + ownedByUser
	args := []any{filter.UserID}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		where += fmt.Sprintf(" AND t.type = $%d", len(args))
	}
	return where, args
}

// SaveTransactionInTx inserts a transaction header within a given transaction.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	query := `
		INSERT INTO app.transactions (id, type, status, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	metadata := txn.Metadata
	if metadata == nil {
		metadata = domain.Metadata{}
	}
	if _, err := tx.Exec(ctx, query, txn.TransactionID, string(txn.Type), string(txn.Status), metadata, txn.CreatedAt); err != nil {
		return mapPgError(err, "insert transaction")
	}
	return nil
}

// ListTransactionsByUser returns one window of the user's transactions, newest first.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	where, args := userFilterClause(filter)
	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT t.id, t.type, t.status, t.metadata, t.created_at
		FROM app.transactions t
		%s
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $%d OFFSET $%d;
	`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "list transactions")
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// CountTransactionsByUser counts every transaction matching the filter, ignoring Limit and Offset.
func (r *PgxTransactionRepository) CountTransactionsByUser(ctx context.Context, filter portsrepo.TransactionFilter) (int, error) {
	where, args := userFilterClause(filter)
	query := `SELECT COUNT(*) FROM app.transactions t ` + where + `;`

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, mapPgError(err, "count transactions")
	}
	return int(total), nil
}

// FindTransactionForUser returns the transaction only when the user participates in it.
func (r *PgxTransactionRepository) FindTransactionForUser(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	query := `
		SELECT t.id, t.type, t.status, t.metadata, t.created_at
		FROM app.transactions t
		WHERE` + ownedByUser + ` AND t.id = $2;
	`
	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, userID, transactionID))
	if err != nil {
		return nil, mapPgError(err, fmt.Sprintf("find transaction %s", transactionID))
	}
	return &txn, nil
}
