// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package odb

import (
	"context"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/nexthash/revspec/object"
	"github.com/nexthash/revspec/plumbing"
)

// Database is the object.Backend implementation backing a Repository: a
// loose-object store plus a ristretto decode cache, grounded on the
// teacher's Database.store/fromCache pair (modules/zeta/backend/decode.go).
// Unlike the teacher, there is a single store (no separate metadata/blob
// split, since this module's objects carry no binary fragments) and the
// cache holds already-decoded values directly rather than snapshots,
// since this module's object types have no server/client split to strip.
type Database struct {
	store     *store
	cache     *ristretto.Cache[string, any]
	enableLRU bool
}

// DatabaseOption configures a Database at construction time.
type DatabaseOption func(*Database)

// WithLRU turns on the ristretto decode cache. Off by default, matching
// the teacher's own opt-in enableLRU flag.
func WithLRU(enable bool) DatabaseOption {
	return func(d *Database) { d.enableLRU = enable }
}

// WithCompression selects how newly written loose objects are stored.
func WithCompression(method CompressMethod) DatabaseOption {
	return func(d *Database) {
		d.store.method = method
	}
}

// NewDatabase opens (creating if absent) a loose-object store rooted at
// root itself (Open passes the repository's objects directory).
func NewDatabase(root string, opts ...DatabaseOption) (*Database, error) {
	objectsRoot := root
	if err := mkdirAll(objectsRoot); err != nil {
		return nil, err
	}
	d := &Database{store: newStore(objectsRoot, Zstd)}
	for _, o := range opts {
		o(d)
	}
	if d.enableLRU {
		cache, err := ristretto.NewCache(&ristretto.Config[string, any]{
			NumCounters: 100000,
			MaxCost:     100000,
			BufferItems: 64,
		})
		if err != nil {
			return nil, err
		}
		d.cache = cache
	}
	return d, nil
}

func (d *Database) fromCache(oid plumbing.Hash) (any, bool) {
	if !d.enableLRU {
		return nil, false
	}
	return d.cache.Get(oid.String())
}

func (d *Database) cacheStore(oid plumbing.Hash, v any) {
	if !d.enableLRU {
		return
	}
	d.cache.Set(oid.String(), v, 1)
}

func (d *Database) decode(oid plumbing.Hash, want object.Kind) (any, error) {
	if cached, ok := d.fromCache(oid); ok {
		if _, k, err := kindOf(cached); err == nil && (want == object.InvalidKind || k == want) {
			return cached, nil
		}
	}

	kind, payload, err := d.store.open(oid)
	if err != nil {
		return nil, err
	}
	if want != object.InvalidKind && kind != want {
		return nil, plumbing.NoSuchObject(oid)
	}

	var v any
	switch kind {
	case object.CommitKind:
		c := &object.Commit{}
		if err := c.Decode(oid, payload); err != nil {
			return nil, err
		}
		v = c
	case object.TreeKind:
		t := &object.Tree{}
		if err := t.Decode(oid, payload); err != nil {
			return nil, err
		}
		t.SetBackend(d)
		v = t
	case object.BlobKind:
		b := &object.Blob{}
		if err := b.Decode(oid, payload); err != nil {
			return nil, err
		}
		v = b
	case object.TagKind:
		t := &object.Tag{}
		if err := t.Decode(oid, payload); err != nil {
			return nil, err
		}
		v = t
	default:
		return nil, plumbing.NoSuchObject(oid)
	}
	d.cacheStore(oid, v)
	return v, nil
}

func kindOf(v any) (any, object.Kind, error) {
	switch v.(type) {
	case *object.Commit:
		return v, object.CommitKind, nil
	case *object.Tree:
		return v, object.TreeKind, nil
	case *object.Blob:
		return v, object.BlobKind, nil
	case *object.Tag:
		return v, object.TagKind, nil
	default:
		return nil, object.InvalidKind, object.ErrUnsupportedObject
	}
}

func (d *Database) Commit(_ context.Context, oid plumbing.Hash) (*object.Commit, error) {
	v, err := d.decode(oid, object.CommitKind)
	if err != nil {
		return nil, err
	}
	return v.(*object.Commit), nil
}

func (d *Database) Tree(_ context.Context, oid plumbing.Hash) (*object.Tree, error) {
	v, err := d.decode(oid, object.TreeKind)
	if err != nil {
		return nil, err
	}
	return v.(*object.Tree), nil
}

func (d *Database) Blob(_ context.Context, oid plumbing.Hash) (*object.Blob, error) {
	v, err := d.decode(oid, object.BlobKind)
	if err != nil {
		return nil, err
	}
	return v.(*object.Blob), nil
}

func (d *Database) Tag(_ context.Context, oid plumbing.Hash) (*object.Tag, error) {
	v, err := d.decode(oid, object.TagKind)
	if err != nil {
		return nil, err
	}
	return v.(*object.Tag), nil
}

// PutCommit, PutTree, PutBlob, and PutTag are the write side, used only by
// test fixtures and any future ingestion command: this module's own
// surface is read-only revision resolution, but a Backend with no way to
// populate the store would be untestable against a real filesystem.
func (d *Database) PutCommit(c *object.Commit) (plumbing.Hash, error) {
	return d.store.put(object.CommitKind, c.Encode())
}

func (d *Database) PutTree(t *object.Tree) (plumbing.Hash, error) {
	return d.store.put(object.TreeKind, t.Encode())
}

func (d *Database) PutBlob(data []byte) (plumbing.Hash, error) {
	return d.store.put(object.BlobKind, data)
}

func (d *Database) PutTag(t *object.Tag) (plumbing.Hash, error) {
	return d.store.put(object.TagKind, t.Encode())
}

// LooseObjects enumerates every object id currently in the store,
// grounded on the teacher's fileStorer.LooseObjects: used by a future
// `revspec show --all`/gc-style listing, not by revision resolution
// itself.
func (d *Database) LooseObjects() ([]plumbing.Hash, error) {
	var oids []plumbing.Hash
	err := d.store.walkLoose(func(oid plumbing.Hash) error {
		oids = append(oids, oid)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return oids, nil
}
