// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nexthash/revspec/odb"
)

// RepoDirName is the metadata directory every discovered repository
// carries, mirroring the teacher's ".zeta" convention
// (pkg/zeta.ZetaDirName).
const RepoDirName = ".revspec"

// ErrRepositoryNotFound reports that no RepoDirName directory could be
// found walking up from cwd to the filesystem root.
type ErrRepositoryNotFound struct {
	cwd string
}

func (e *ErrRepositoryNotFound) Error() string {
	return fmt.Sprintf("not a revspec repository (or any parent up to /): %s", e.cwd)
}

// findRepoDir walks up from cwd looking for a RepoDirName directory,
// grounded on the teacher's zeta.FindZetaDir walk-up search
// (pkg/zeta/misc.go).
func findRepoDir(cwd string) (string, error) {
	if cwd == "" {
		var err error
		if cwd, err = os.Getwd(); err != nil {
			return "", err
		}
	}
	current, err := filepath.Abs(cwd)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(current, RepoDirName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if current == parent {
			return "", &ErrRepositoryNotFound{cwd: cwd}
		}
		current = parent
	}
}

// openRepository discovers and opens the repository rooted at or above cwd.
func openRepository(cwd string, enableLRU bool) (*odb.Repository, error) {
	dir, err := findRepoDir(cwd)
	if err != nil {
		return nil, err
	}
	return odb.Open(dir, odb.WithLRU(enableLRU))
}
