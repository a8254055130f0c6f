package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{pool: pool}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// SaveEntriesInTx inserts ledger entries within a given transaction.
func (r *PgxLedgerRepository) SaveEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
		INSERT INTO app.ledger (id, transaction_id, account_id, amount)
		VALUES ($1, $2, $3, $4);
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query, e.EntryID, e.TransactionID, e.AccountID, e.Amount)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapPgError(err, "insert ledger entries")
	}
	return nil
}

// FindEntriesByTransactionID returns the entries of a transaction with the currency of each account.
func (r *PgxLedgerRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT l.id, l.transaction_id, l.account_id, a.currency, l.amount
		FROM app.ledger l
		JOIN app.accounts a ON a.id = l.account_id
		WHERE l.transaction_id = $1
		ORDER BY a.currency, l.amount;
	`
	rows, err := r.pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, mapPgError(err, "query ledger entries")
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.EntryID, &e.TransactionID, &e.AccountID, &e.Currency, &e.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}
	return entries, nil
}
