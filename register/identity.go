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

package register

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"

	"github.com/0xsoniclabs/apitester/config"
	"golang.org/x/crypto/blake2b"
)

// RunIdentity identifies one invocation of the generator.
type RunIdentity struct {
	Timestamp int64
	Cfg       *config.Config
}

// MakeRunIdentity creates the identity of a run started at timestamp.
func MakeRunIdentity(t int64, cfg *config.Config) *RunIdentity {
	return &RunIdentity{
		Timestamp: t,
		Cfg:       cfg,
	}
}

// GetId returns a hash over the configuration and the start time of the run.
func (id *RunIdentity) GetId() (string, error) {
	info, err := id.fetchConfigInfo()
	if err != nil {
		return "", err
	}

	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("cannot create hash; %w", err)
	}
	for _, k := range keys {
		fmt.Fprintf(h, "%s=%s;", k, info[k])
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (id *RunIdentity) fetchConfigInfo() (map[string]string, error) {
	if id.Cfg == nil {
		return nil, fmt.Errorf("run identity has no configuration")
	}
	cfg := id.Cfg
	return map[string]string{
		"AppName":               cfg.AppName,
		"CommandName":           cfg.CommandName,
		"NumOps":                strconv.Itoa(cfg.NumOps),
		"Concurrency":           strconv.Itoa(cfg.Concurrency),
		"MaxIntBits":            strconv.Itoa(cfg.MaxIntBits),
		"MaxKeys":               strconv.Itoa(cfg.MaxKeys),
		"Seed":                  strconv.FormatUint(cfg.Seed, 10),
		"Prefix":                cfg.Prefix,
		"DbImpl":                cfg.DbImpl,
		"RecencyRate":           strconv.FormatFloat(cfg.RecencyRate, 'g', -1, 64),
		"NonBlockingCommitProb": strconv.FormatFloat(cfg.NonBlockingCommitProb, 'g', -1, 64),
		"PrefixReuseProb":       strconv.FormatFloat(cfg.PrefixReuseProb, 'g', -1, 64),
		"Timestamp":             strconv.FormatInt(id.Timestamp, 10),
	}, nil
}
