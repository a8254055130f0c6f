package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
)

const systemAccountsKey = "system-accounts"

// systemAccountResolver caches the liquidity account of the system user per currency.
// The cache is filled once on first use; a failed load leaves it empty.
type systemAccountResolver struct {
	BaseService
	accounts     portsrepo.AccountReader
	systemUserID string
	metrics      *Metrics

	group singleflight.Group
	mu    sync.RWMutex
	byCur map[string]string
	gen   uint64
}

// NewSystemAccountResolver creates a resolver for the accounts owned by systemUserID.
func NewSystemAccountResolver(accounts portsrepo.AccountReader, systemUserID string, metrics *Metrics) portssvc.SystemAccountResolver {
	return &systemAccountResolver{
		accounts:     accounts,
		systemUserID: systemUserID,
		metrics:      metrics,
	}
}

var _ portssvc.SystemAccountResolver = (*systemAccountResolver)(nil)

// Resolve returns the system account ID for currency, loading the cache if needed.
func (r *systemAccountResolver) Resolve(ctx context.Context, currency string) (string, error) {
	r.mu.RLock()
	byCur, gen := r.byCur, r.gen
	r.mu.RUnlock()

	if byCur == nil {
		loaded, err := r.load(ctx, gen)
		if err != nil {
			return "", err
		}
		byCur = loaded
	}

	id, ok := byCur[currency]
	if !ok {
		return "", fmt.Errorf("%w: no system account for %s", apperrors.ErrSystemAccountMissing, currency)
	}
	return id, nil
}

// Invalidate drops the cache so the next Resolve reloads it.
func (r *systemAccountResolver) Invalidate() {
	r.mu.Lock()
	r.byCur = nil
	r.gen++
	r.mu.Unlock()
	r.group.Forget(systemAccountsKey)
}

func (r *systemAccountResolver) load(ctx context.Context, gen uint64) (map[string]string, error) {
	// The shared load must not die with the first caller's request.
	loadCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(systemAccountsKey, func() (any, error) {
		r.mu.RLock()
		cached := r.byCur
		r.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		accounts, err := r.accounts.ListAccountsByUser(loadCtx, r.systemUserID, "")
		r.metrics.cacheLoad(err)
		if err != nil {
			r.LogError(loadCtx, err, "Failed to load system accounts", slog.String("system_user_id", r.systemUserID))
			return nil, fmt.Errorf("load system accounts: %w", err)
		}

		byCur := make(map[string]string, len(accounts))
		for _, acc := range accounts {
			if _, dup := byCur[acc.Currency]; dup {
				r.GetLogger(loadCtx).WarnContext(loadCtx, "Duplicate system account ignored",
					slog.String("currency", acc.Currency),
					slog.String("account_id", acc.AccountID))
				continue
			}
			byCur[acc.Currency] = acc.AccountID
		}

		r.mu.Lock()
		if r.gen == gen {
			r.byCur = byCur
		}
		r.mu.Unlock()
		r.LogDebug(loadCtx, "System accounts loaded", slog.Int("count", len(byCur)))
		return byCur, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(map[string]string), nil
	}
}
