package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"charitybridge/database"
	"charitybridge/internal/app"
	"charitybridge/internal/auth"
	"charitybridge/internal/config"
	"charitybridge/internal/logger"
	"charitybridge/internal/models"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "charityctl",
		Short:         "Operational tooling for the CharityBridge backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(configPath)
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml (defaults to DATABASE_URL / CONFIG_PATH)")

	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newTokenCommand())
	cmd.AddCommand(newOutboxCommand())
	return cmd
}

func loadConfig(path string) error {
	if path == "" {
		config.LoadConfig()
	} else {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		config.AppConfig = cfg
	}
	logger.Init(config.AppConfig.Server.Env)
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func openDB(ctx context.Context) (*gorm.DB, error) {
	cfg := config.AppConfig
	return database.Connect(ctx, cfg.Database.DSN, database.Options{MaxOpenConns: 2, MaxIdleConns: 1})
}

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	steps := map[string]struct {
		short string
		run   func(context.Context, *gorm.DB) error
	}{
		"up":     {"Apply all pending migrations", database.Migrate},
		"down":   {"Roll back the latest migration", database.MigrateDown},
		"status": {"Print the state of every migration", database.MigrationStatus},
	}
	for _, name := range []string{"up", "down", "status"} {
		step := steps[name]
		cmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: step.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := commandContext(cmd)
				db, err := openDB(ctx)
				if err != nil {
					return err
				}
				defer database.Close(db)
				return step.run(ctx, db)
			},
		})
	}
	return cmd
}

func newTokenCommand() *cobra.Command {
	var (
		userID string
		role   string
		email  string
		name   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !models.UserRole(role).Valid() {
				return fmt.Errorf("unknown role %q", role)
			}
			if userID == "" {
				userID = uuid.NewString()
			} else if _, err := uuid.Parse(userID); err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}

			cfg := config.AppConfig
			if ttl <= 0 {
				ttl = time.Duration(cfg.JWT.TTL) * time.Minute
			}
			auth.Init(cfg.JWT.Secret, ttl)

			token, err := auth.GenerateToken(userID, role, email, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Subject user id (random when empty)")
	cmd.Flags().StringVar(&role, "role", string(models.UserRoleDonor), "donor, charity or admin")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().StringVar(&name, "name", "", "Display name claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to jwt.ttl)")
	return cmd
}

func newOutboxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outbox",
		Short: "Notification outbox maintenance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "drain",
		Short: "Deliver every due outbox event once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			db, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer database.Close(db)

			a, err := app.New(ctx, config.AppConfig, db)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Worker.Drain(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "claimed=%d delivered=%d retried=%d failed=%d\n",
				res.Claimed, res.Delivered, res.Retried, res.Failed)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete delivered events older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			db, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer database.Close(db)

			a, err := app.New(ctx, config.AppConfig, db)
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "purged=%d\n", a.Worker.Purge(ctx))
			return nil
		},
	})
	return cmd
}
