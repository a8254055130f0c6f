package services

import (
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, metrics *Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The resolver is shared so the composition root can invalidate it.
	container.SystemAccounts = NewSystemAccountResolver(repos.AccountRepo, cfg.SystemUserID, metrics)

	container.Transaction = NewTransactionService(
		repos.TxManager,
		repos.AccountRepo,
		repos.TransactionRepo,
		repos.LedgerRepo,
		repos.ExchangeRateRepo,
		container.SystemAccounts,
		WithLockTimeout(cfg.LockTimeout),
		WithTransactionMetrics(metrics),
	)
	container.TransactionQuery = NewTransactionQueryService(repos.TransactionRepo, repos.LedgerRepo, cfg.MaxPageSize)

	container.Account = NewAccountService(repos.AccountRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)
	container.Auth = NewAuthService(cfg, repos.TxManager, repos.UserRepo, repos.AccountRepo)

	return container
}
