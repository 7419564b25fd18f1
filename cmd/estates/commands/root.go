package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"estates/server/config"
	"estates/server/internal/attachments"
	"estates/server/internal/database"
	"estates/server/internal/export"
	"estates/server/internal/finance"
	"estates/server/internal/models"
)

type appContext struct {
	cfg      *config.Config
	db       *database.Database
	files    *attachments.Store
	settings finance.Settings
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := &appContext{}
	var dbPath, uploadDir string

	root := &cobra.Command{
		Use:          "estates",
		Short:        "Analyse real-estate investments",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if dbPath == "" {
				dbPath = cfg.Server.DatabasePath
			}
			if uploadDir == "" {
				uploadDir = cfg.Server.UploadDir
			}

			db, err := database.NewDatabase(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			if err := db.RunMigrations(); err != nil {
				db.Close()
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			settings, err := db.GetFinanceSettings(cfg.DefaultFinancing())
			if err != nil {
				db.Close()
				return err
			}

			app.cfg = cfg
			app.db = db
			app.files = attachments.NewStore(uploadDir)
			app.settings = settings
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.db == nil {
				return nil
			}
			return app.db.Close()
		},
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database (default $DATABASE_PATH or database/estates.db)")
	root.PersistentFlags().StringVar(&uploadDir, "uploads", "", "document directory (default $UPLOAD_DIR or uploads)")

	root.AddCommand(analyseCmd(app), stressCmd(app), projectCmd(app), exportCmd(app))
	return root
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid building id %q", arg)
		}
		ids[i] = id
	}
	return ids, nil
}

func (a *appContext) building(arg string) (*models.Building, error) {
	ids, err := parseIDs([]string{arg})
	if err != nil {
		return nil, err
	}
	b, err := a.db.GetBuilding(ids[0])
	if err != nil {
		return nil, fmt.Errorf("building %d: %w", ids[0], err)
	}
	return b, nil
}

// columns evaluates the buildings named by args, failing on unknown ids.
func (a *appContext) columns(args []string) ([]export.Column, error) {
	ids, err := parseIDs(args)
	if err != nil {
		return nil, err
	}
	buildings, err := a.db.GetBuildingsByID(ids)
	if err != nil {
		return nil, err
	}
	if len(buildings) != len(ids) {
		return nil, fmt.Errorf("some buildings do not exist: %w", database.ErrNotFound)
	}

	columns := make([]export.Column, len(buildings))
	for i, b := range buildings {
		files, err := a.files.List(b.ID)
		if err != nil {
			return nil, err
		}
		columns[i] = export.NewColumn(b, a.settings.Resolve(b.ID), files)
	}
	return columns, nil
}

// numericFlag returns the flag value coerced to a number, or fallback when it was not given.
func numericFlag(cmd *cobra.Command, name string, fallback float64) float64 {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetString(name)
	return finance.ParseNumericOrZero(v)
}
