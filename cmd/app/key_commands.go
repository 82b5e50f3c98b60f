package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tribunatech/casevault/cmd/app/commands"
	"github.com/tribunatech/casevault/internal/app"
	"github.com/tribunatech/casevault/internal/config"
	cryptoService "github.com/tribunatech/casevault/internal/crypto/service"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-encryption-key",
			Usage: "Generate a new field encryption key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "id",
					Aliases: []string{"i"},
					Value:   "",
					Usage:   "Key ID (e.g., field-key-2026)",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "KMS key URI used to wrap the key (e.g., base64key://, hashivault://keys/...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateEncryptionKey(
					ctx,
					cryptoService.NewKMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("id"),
					cmd.String("kms-key-uri"),
				)
			},
		},
		{
			Name:  "create-signing-key",
			Usage: "Generate a random 32-byte base64 key for AUDIT_SIGNING_KEY or LOOKUP_HASH_KEY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "env-name",
					Aliases: []string{"e"},
					Value:   "AUDIT_SIGNING_KEY",
					Usage:   "Environment variable name to print (AUDIT_SIGNING_KEY or LOOKUP_HASH_KEY)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateSigningKey(commands.DefaultIO().Writer, cmd.String("env-name"))
			},
		},
		{
			Name:  "hash-staff-key",
			Usage: "Hash a staff API key with Argon2id for STAFF_API_KEY_HASH",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "key",
					Aliases: []string{"k"},
					Value:   "",
					Usage:   "Plain staff API key (omit to generate a random one)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunHashStaffKey(commands.DefaultIO().Writer, cmd.String("key"))
			},
		},
	}
}
