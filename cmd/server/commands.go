package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tasks-api",
		Short: "Per-user task list service",
		Long: `tasks-api serves a JSON API for personal task lists. Every task belongs
to exactly one user and every operation is scoped to the authenticated caller.

Configuration comes from config.yaml in the working directory and TASKS_*
environment variables (for example TASKS_DATABASE_URL, TASKS_AUTH_JWT_SECRET).`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newUserCmd(),
		newTokenCmd(),
	)
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server until SIGINT or SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig()
			if err != nil {
				return err
			}
			logger := setupAppLogger(cfg)

			storage, err := openStorage(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			app, err := newApplication(cfg, logger, storage)
			if err != nil {
				_ = storage.Close()
				return err
			}
			return app.Run(cmd.Context())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <up|down|status|version|reset>",
		Short:     "Manage the database schema",
		Long:      "Apply or inspect the embedded goose migrations. SQLite databases only support 'up'.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig()
			if err != nil {
				return err
			}
			setupAppLogger(cfg)

			return runMigrations(cmd.Context(), cfg, args[0], cmd.OutOrStdout())
		},
	}
}

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var username string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user and print its ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig()
			if err != nil {
				return err
			}
			logger := setupAppLogger(cfg)

			storage, err := openStorage(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = storage.Close() }()

			user, err := provisionUser(cmd.Context(), storage.users, username)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), user.ID)
			return err
		},
	}
	addCmd.Flags().StringVar(&username, "username", "", "display name of the new user")
	_ = addCmd.MarkFlagRequired("username")

	userCmd.AddCommand(addCmd)
	return userCmd
}

// provisionUser creates a user with a fresh ID. A taken username is
// reported without the storage details.
func provisionUser(ctx context.Context, users store.UserStore, username string) (*domain.User, error) {
	user, err := domain.NewUser(username)
	if err != nil {
		return nil, err
	}

	if err := users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			return nil, fmt.Errorf("username %q is already taken: %w", username, store.ErrUsernameExists)
		}
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}
	return user, nil
}

// issueToken signs an access token for the stored user with the given id.
func issueToken(
	ctx context.Context,
	users store.UserStore,
	jwtService auth.JWTService,
	id uuid.UUID,
) (string, error) {
	user, err := users.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return "", fmt.Errorf("no user with ID %s: %w", id, store.ErrUserNotFound)
		}
		return "", fmt.Errorf("failed to load user %s: %w", id, err)
	}

	return jwtService.GenerateToken(ctx, *user)
}

func newTokenCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for an existing user (development)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig()
			if err != nil {
				return err
			}
			logger := setupAppLogger(cfg)

			id, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid --user-id: %w", domain.ErrInvalidID)
			}

			jwtService, err := auth.NewJWTService(cfg.Auth)
			if err != nil {
				return fmt.Errorf("failed to initialize JWT service: %w", err)
			}

			storage, err := openStorage(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = storage.Close() }()

			token, err := issueToken(cmd.Context(), storage.users, jwtService, id)
			if err != nil {
				return err
			}

			lifetime := time.Duration(cfg.Auth.TokenLifetimeMinutes) * time.Minute
			cmd.PrintErrf("token valid for %s\n", lifetime)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "ID of the user the token identifies")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}
