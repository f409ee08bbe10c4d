// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const ENV_REVSPEC_CONFIG_GLOBAL = "REVSPEC_CONFIG_GLOBAL"

// LoadGlobal reads the per-user config file (or REVSPEC_CONFIG_GLOBAL, or
// ~/.revspec.toml), returning an empty Config if no file is present.
func LoadGlobal() (*Config, error) {
	cfg := &Config{Branches: make(map[string]*Branch)}
	path, ok := os.LookupEnv(ENV_REVSPEC_CONFIG_GLOBAL)
	if !ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".revspec.toml")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if cfg.Branches == nil {
		cfg.Branches = make(map[string]*Branch)
	}
	return cfg, nil
}

// Load reads repoDir/config.toml and overlays it on top of the global
// config, matching the teacher's local-overrides-global merge order.
func Load(repoDir string) (*Config, error) {
	cfg, err := LoadGlobal()
	if err != nil {
		return nil, err
	}
	if len(repoDir) == 0 {
		return cfg, nil
	}
	repoPath := filepath.Join(repoDir, "config.toml")
	if _, err := os.Stat(repoPath); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	var rc Config
	if _, err := toml.DecodeFile(repoPath, &rc); err != nil {
		return nil, err
	}
	cfg.Overwrite(&rc)
	return cfg, nil
}
