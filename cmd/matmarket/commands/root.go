package commands

import (
	"github.com/spf13/cobra"

	"matmarket/internal/api/client"
	"matmarket/internal/app"
	"matmarket/internal/logger"
)

var (
	home            string
	credentialsFile string
	listingsFile    string
	uploadDir       string
	serverURL       string
	logLevel        string

	appCtx *app.App
	// uploadRoot is where local uploads live; empty when remote or non-dir.
	uploadRoot string
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	home, credentialsFile, listingsFile, uploadDir, serverURL, logLevel = "", "", "", "", "", ""
	appCtx, uploadRoot = nil, ""

	root := &cobra.Command{
		Use:          "matmarket",
		Short:        "Marketplace for reusable and waste materials",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			applyFlags(&cfg)
			if err := cfg.Resolve(); err != nil {
				return err
			}
			log, err := logger.New(cfg.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if cfg.ServerURL != "" {
				c := client.NewHTTP(cfg.ServerURL)
				appCtx = app.New(c, c, nil)
				return nil
			}

			w, err := app.NewWire(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			appCtx = w.App()
			if cfg.UploadBackend == app.BackendDir {
				uploadRoot = cfg.UploadPath()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&home, "home", "", "data dir (default ~/.matmarket)")
	pf.StringVar(&credentialsFile, "credentials", "", "credential snapshot file (default users.json under --home)")
	pf.StringVar(&listingsFile, "listings", "", "listing snapshot file (default listings.json under --home)")
	pf.StringVar(&uploadDir, "uploads", "", "upload directory (default uploads under --home)")
	pf.StringVar(&serverURL, "server", "", "marketd base URL (e.g. http://127.0.0.1:8080)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(registerCmd(), loginCmd(), sellCmd(), listingsCmd())
	return root
}

// applyFlags overrides environment configuration with explicitly set flags.
func applyFlags(cfg *app.Config) {
	for _, o := range []struct {
		flag string
		dst  *string
	}{
		{home, &cfg.Home},
		{credentialsFile, &cfg.CredentialsFile},
		{listingsFile, &cfg.ListingsFile},
		{uploadDir, &cfg.UploadDir},
		{serverURL, &cfg.ServerURL},
		{logLevel, &cfg.LogLevel},
	} {
		if o.flag != "" {
			*o.dst = o.flag
		}
	}
}
