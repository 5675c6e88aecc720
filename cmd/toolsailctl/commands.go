package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	categoryRepo "toolsail-backend/internal/domains/category/repository"
	"toolsail-backend/internal/domains/seed"
	toolmodel "toolsail-backend/internal/domains/tool/model"
	toolRepo "toolsail-backend/internal/domains/tool/repository"
	toolService "toolsail-backend/internal/domains/tool/service"
	"toolsail-backend/internal/config"
	"toolsail-backend/internal/infrastructure/database"
	"toolsail-backend/internal/infrastructure/storage"
	"toolsail-backend/internal/shared"
	"toolsail-backend/pkg/jwt"
)

// connect chỉ mở database, không dựng cả container (CLI không cần Redis/SMTP)
func connect(ctx context.Context) (*config.Config, *database.PostgresDB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	dbConfig, err := config.LoadDatabaseConfig(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, db, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			_, db, err := connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := database.Migrate(ctx, db.Pool)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
			}
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var clear, force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert (or with --clear remove) the development fixture set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			cfg, db, err := connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if cfg.IsProduction() && !force {
				return errors.New("refusing to touch fixtures in production without --force")
			}

			// CLI không giữ cache; API process tự hết hạn list cache theo TTL
			seeder := seed.NewSeeder(seed.NewPostgresStore(db.Pool), nil)
			var res seed.Result
			if clear {
				res, err = seeder.Clear(ctx)
			} else {
				res, err = seeder.Seed(ctx)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "categories=%d tools=%d blogCategories=%d posts=%d\n",
				res.Categories, res.Tools, res.BlogCategories, res.Posts)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "remove the fixtures instead of inserting them")
	cmd.Flags().BoolVar(&force, "force", false, "allow running against a production environment")
	return cmd
}

func tokenCmd() *cobra.Command {
	var userID, email, role string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if role != string(shared.RoleAdmin) && role != string(shared.RoleUser) {
				return fmt.Errorf("role must be %s or %s", shared.RoleAdmin, shared.RoleUser)
			}

			token, err := jwt.NewManager(cfg.JWT.Secret).GenerateAccessToken(userID, email, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id (sub claim)")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&role, "role", string(shared.RoleAdmin), "admin | user")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func exportCmd() *cobra.Command {
	var out, search string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every tool (published or not) to an .xlsx file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			_, db, err := connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := toolService.NewToolService(
				toolRepo.NewPostgresRepository(db.Pool),
				categoryRepo.NewPostgresRepository(db.Pool),
				nil,
				nil,
				storage.NewImageProcessor(),
			)
			operator := shared.Principal{UserID: "toolsailctl", Role: shared.RoleAdmin}

			data, err := svc.Export(ctx, operator, toolmodel.AdminListQuery{ListQuery: toolmodel.ListQuery{Search: search}})
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "tools.xlsx", "output file")
	cmd.Flags().StringVar(&search, "search", "", "only tools whose name or description matches")
	return cmd
}
