// Copyright 2024 Fantom Foundation
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

package config

import (
	"github.com/0xsoniclabs/apitester/logger"
	"github.com/0xsoniclabs/apitester/utils"
	"github.com/urfave/cli/v2"
)

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName:     ctx.App.HelpName,
		CommandName: ctx.Command.Name,

		Chart:                 getFlagValue(ctx, utils.ChartFlag).(string),
		Concurrency:           getFlagValue(ctx, utils.ConcurrencyFlag).(int),
		DbImpl:                getFlagValue(ctx, utils.DbImplFlag).(string),
		DbPath:                getFlagValue(ctx, utils.DbFlag).(string),
		Input:                 getFlagValue(ctx, utils.InputFlag).([]string),
		LogLevel:              getFlagValue(ctx, logger.LogLevelFlag).(string),
		MaxIntBits:            getFlagValue(ctx, utils.MaxIntBitsFlag).(int),
		MaxKeys:               getFlagValue(ctx, utils.MaxKeysFlag).(int),
		NonBlockingCommitProb: getFlagValue(ctx, utils.NonBlockingCommitProbFlag).(float64),
		NumOps:                getFlagValue(ctx, utils.NumOpsFlag).(int),
		Output:                getFlagValue(ctx, utils.OutputFlag).(string),
		Prefix:                getFlagValue(ctx, utils.PrefixFlag).(string),
		PrefixReuseProb:       getFlagValue(ctx, utils.PrefixReuseProbFlag).(float64),
		Quiet:                 getFlagValue(ctx, utils.QuietFlag).(bool),
		RecencyRate:           getFlagValue(ctx, utils.RecencyRateFlag).(float64),
		Registry:              getFlagValue(ctx, utils.RegistryFlag).(string),
		Report:                getFlagValue(ctx, utils.ReportFlag).(string),
		Seed:                  getFlagValue(ctx, utils.SeedFlag).(uint64),
	}

	return cfg
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	cmdFlags := ctx.Command.Flags
	for _, cmdFlag := range cmdFlags {
		switch f := flag.(type) {
		case cli.IntFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int(f.Name)
			}

		case cli.Uint64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Uint64(f.Name)
			}

		case cli.Int64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int64(f.Name)
			}

		case cli.Float64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Float64(f.Name)
			}

		case cli.StringFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.String(f.Name)
			}

		case cli.PathFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Path(f.Name)
			}

		case cli.BoolFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Bool(f.Name)
			}

		case cli.StringSliceFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.StringSlice(f.Name)
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Uint64Flag:
		return f.Value
	case cli.Int64Flag:
		return f.Value
	case cli.Float64Flag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	case cli.BoolFlag:
		return f.Value
	case cli.StringSliceFlag:
		if f.Value == nil {
			return []string{}
		}
		return f.Value.Value()
	}

	return nil
}
