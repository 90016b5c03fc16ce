// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"strings"

	"github.com/0xsoniclabs/apitester/config"
	"github.com/0xsoniclabs/apitester/kvstore"
	"github.com/0xsoniclabs/apitester/logger"
	"github.com/0xsoniclabs/apitester/utils"
	"github.com/0xsoniclabs/apitester/validator"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// ValidateCommand checks the versionstamp operations of a finished run.
var ValidateCommand = cli.Command{
	Action: validateAction,
	Name:   "validate",
	Usage:  "check versionstamped keys and values left by a run",
	Flags: []cli.Flag{
		&utils.PrefixFlag,
		&utils.DbImplFlag,
		&utils.DbFlag,
		&logger.LogLevelFlag,
	},
	Description: `
Every value stored under the versionstamped values subspace must be matched by
a key under the versionstamped keys subspace carrying the same versionstamp.`,
}

func validateAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	if cfg.DbPath == "" {
		return errors.New("validate requires --db")
	}
	store, err := kvstore.Open(cfg.DbImpl, cfg.DbPath)
	if err != nil {
		return err
	}
	return errors.CombineErrors(validate(ctx.Context, cfg, store), store.Close())
}

func validate(ctx context.Context, cfg *config.Config, store validator.Store) error {
	log := logger.NewLogger(cfg.LogLevel, "Validate")
	v := validator.NewVersionstampValidator(cfg.Layout(), log)
	failures, err := v.Validate(ctx, store)
	if err != nil {
		return err
	}
	if len(failures) > 0 {
		return errors.New(strings.Join(failures, "; "))
	}
	log.Noticef("All versionstamps of prefix %q are consistent", cfg.Prefix)
	return nil
}
