package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tribunatech/casevault/cmd/app/commands"
	"github.com/tribunatech/casevault/internal/app"
	"github.com/tribunatech/casevault/internal/config"
)

func getPortalCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-portal-token",
			Usage: "Issue a portal access token for a client and case pair",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "client-id",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Client ID (UUID)",
				},
				&cli.StringFlag{
					Name:     "case-id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Case ID (UUID)",
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
				defer func() { _ = container.Shutdown(ctx) }()

				accessUseCase, err := container.AccessUseCase(ctx)
				if err != nil {
					return err
				}

				return commands.RunIssuePortalToken(
					ctx,
					accessUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("client-id"),
					cmd.String("case-id"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "revoke-portal-token",
			Usage: "Revoke the active portal access for a client and case pair",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "client-id",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Client ID (UUID)",
				},
				&cli.StringFlag{
					Name:     "case-id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Case ID (UUID)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				accessUseCase, err := container.AccessUseCase(ctx)
				if err != nil {
					return err
				}

				return commands.RunRevokePortalToken(
					ctx,
					accessUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("client-id"),
					cmd.String("case-id"),
				)
			},
		},
	}
}
