package app

import "matmarket/internal/domain"

// App is what a collaborator (CLI command, HTTP handler) talks to. The same
// surface is served by local services or by a remote server client.
type App struct {
	Accounts domain.AccountService
	Market   domain.Marketplace
	Uploads  domain.UploadStore // nil when talking to a remote server
}

func New(accounts domain.AccountService, market domain.Marketplace, uploads domain.UploadStore) *App {
	return &App{
		Accounts: accounts,
		Market:   market,
		Uploads:  uploads,
	}
}
