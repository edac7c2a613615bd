package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/deppfellow/bookshelf/internal/database"
)

// migrateTimeout bounds the whole schema bootstrap.
const migrateTimeout = time.Minute

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the books table",
		Long: `Apply the embedded schema of the postgres store driver.

Requires the BOOKSHELF_DATABASE.* settings. Running it against an up to date
database is a no-op.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := bootstrap()
			if err != nil {
				return err
			}
			defer rt.loggerService.Shutdown()

			if rt.cfg.Database == nil {
				return errors.New("migrate needs the database configuration")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
			defer cancel()

			return database.Migrate(ctx, &rt.log, rt.cfg.Database)
		},
	}
}
