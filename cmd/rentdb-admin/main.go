package main

import (
	"fmt"
	"os"

	"github.com/localnerve/rentdb/internal/config"
	"github.com/localnerve/rentdb/internal/database"
	"github.com/localnerve/rentdb/internal/logging"
	"github.com/localnerve/rentdb/internal/services"
)

func main() {
	var cfg *config.Config

	open := func() (*session, error) {
		var err error
		if cfg == nil {
			if cfg, err = config.Load(); err != nil {
				return nil, err
			}
		}

		creds, err := services.NewCredentials(cfg.JWTSecret, cfg.TokenIssuer, cfg.TokenTTL, cfg.BcryptCost)
		if err != nil {
			return nil, err
		}

		db, err := database.Connect(cfg, logging.Discard())
		if err != nil {
			return nil, err
		}

		return &session{
			db:            db,
			creds:         creds,
			adminUsername: cfg.AdminUsername,
			adminPassword: cfg.AdminPassword,
		}, nil
	}

	if err := newRootCmd(open, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
