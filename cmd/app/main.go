// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/employees/cmd/app/commands"
	"github.com/allisson/employees/internal/app"
	"github.com/allisson/employees/internal/config"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "Employee records service with session-based authentication",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					defer func() { _ = container.Shutdown(ctx) }()

					return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
				},
			},
			{
				Name:  "create-employee",
				Usage: "Create a new employee record",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Employee full name",
					},
					&cli.IntFlag{
						Name:     "age",
						Aliases:  []string{"a"},
						Required: true,
						Usage:    "Employee age",
					},
					&cli.BoolFlag{
						Name:  "still-employee",
						Value: true,
						Usage: "Whether the employee is currently employed",
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Required: true,
						Usage:    "Employee email (unique)",
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Required: true,
						Usage:    "Employee password (at least 6 characters)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer func() { _ = container.Shutdown(ctx) }()

					useCase, err := container.EmployeeUseCase()
					if err != nil {
						return fmt.Errorf("failed to initialize employee use case: %w", err)
					}

					return commands.RunCreateEmployee(
						ctx,
						useCase,
						logger,
						cmd.String("name"),
						int(cmd.Int("age")),
						cmd.Bool("still-employee"),
						cmd.String("email"),
						cmd.String("password"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				},
			},
			{
				Name:  "clean-refresh-tokens",
				Usage: "Delete stored refresh tokens old enough to have expired",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:    "older-than",
						Aliases: []string{"o"},
						Usage:   "Delete tokens older than this duration (default: the refresh token lifetime)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer func() { _ = container.Shutdown(ctx) }()

					repo, err := container.EmployeeRepository()
					if err != nil {
						return fmt.Errorf("failed to initialize employee repository: %w", err)
					}

					olderThan := cmd.Duration("older-than")
					if olderThan == 0 {
						olderThan = cfg.RefreshTokenExpiration
					}

					return commands.RunCleanRefreshTokens(
						ctx,
						repo,
						logger,
						olderThan,
						cmd.String("format"),
						commands.DefaultIO(),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
