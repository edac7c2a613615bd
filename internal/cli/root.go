// Package cli holds the cobra commands of the bookshelf binary.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/bookshelf/internal/config"
	"github.com/deppfellow/bookshelf/internal/logger"
)

// NewRootCommand creates the bookshelf command. Without a subcommand it
// serves the API.
func NewRootCommand() *cobra.Command {
	serve := NewServeCommand()

	cmd := &cobra.Command{
		Use:           "bookshelf",
		Short:         "Bookshelf REST API",
		Long:          "A REST API for a collection of books, configured through BOOKSHELF_* environment variables.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	cmd.AddCommand(serve)
	cmd.AddCommand(NewMigrateCommand())

	return cmd
}

// runtime is what every command needs before doing its work.
type runtime struct {
	cfg           *config.Config
	loggerService *logger.LoggerService
	log           zerolog.Logger
}

// bootstrap loads the configuration and builds the logger.
func bootstrap() (*runtime, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)

	return &runtime{
		cfg:           cfg,
		loggerService: loggerService,
		log:           logger.NewLoggerWithService(cfg.Observability, loggerService),
	}, nil
}
