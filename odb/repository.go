// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package odb

import (
	"path/filepath"

	"github.com/nexthash/revspec/config"
)

// Repository composes every filesystem collaborator package revision
// needs — the object database, loose references, reflogs, and branch
// configuration — into a single revision.Backend, the way the teacher's
// own top-level zeta.Repository wires its backend, refs.Backend, and
// reflog.DB together. This is the only concrete Backend in this module;
// anything else implementing revision.Backend (the test fixtures) is
// in-memory instead of filesystem-backed.
type Repository struct {
	*Database
	*RefStore
	*ReflogStore
	Config *config.Config
}

// Open lays out (creating as needed) a repository rooted at dir, with the
// directory layout root/objects, root/refs, root/HEAD, root/logs, and
// root/config.toml — all named the way the teacher's own on-disk layout
// names them (modules/zeta/refs/filesystem.go's path constants).
func Open(dir string, opts ...DatabaseOption) (*Repository, error) {
	db, err := NewDatabase(filepath.Join(dir, "objects"), opts...)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	return &Repository{
		Database:    db,
		RefStore:    NewRefStore(dir),
		ReflogStore: NewReflogStore(dir),
		Config:      cfg,
	}, nil
}

// Upstream implements revision.UpstreamResolver by delegating to the
// repository's merged configuration.
func (r *Repository) Upstream(branch string) (string, error) {
	return r.Config.Upstream(branch)
}
