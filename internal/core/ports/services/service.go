package services

// ServiceContainer holds instances of all the application services.
// Handlers receive their dependencies from it.
type ServiceContainer struct {
	Account          AccountSvcFacade
	Auth             AuthSvcFacade
	ExchangeRate     ExchangeRateSvcFacade
	Transaction      TransactionWriterSvc
	TransactionQuery TransactionReaderSvc
	SystemAccounts   SystemAccountResolver
}
