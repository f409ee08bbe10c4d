// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package odb implements the one concrete storage backend this module
// ships: a loose-object filesystem store, filesystem references and
// reflogs, and the object-id abbreviation search of component A. Pack
// files and network transport are out of scope (spec.md §1's Non-goals);
// every object here lives in its own file.
package odb

import (
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/nexthash/revspec/object"
	"github.com/nexthash/revspec/plumbing"
)

// objectMagic identifies a loose object file written by this package.
var objectMagic = [4]byte{'R', 'S', 0x00, 0x01}

const objectVersion uint16 = 1

// CompressMethod picks how a loose object's payload is stored on disk.
type CompressMethod uint16

const (
	Store CompressMethod = iota
	Zstd
)

// store is the loose-object filesystem layout: objects/xx/yy/<40-hex>,
// grounded on the teacher's fileStorer.path two-level fan-out. Each file
// begins with a small header (magic, version, object kind, compression
// method, uncompressed size) followed by the encoded payload.
type store struct {
	root     string
	incoming string
	method   CompressMethod
}

func newStore(root string, method CompressMethod) *store {
	return &store{
		root:     root,
		incoming: filepath.Join(root, "incoming"),
		method:   method,
	}
}

func (s *store) path(oid plumbing.Hash) string {
	encoded := oid.String()
	return filepath.Join(s.root, encoded[:2], encoded[2:4], encoded)
}

func (s *store) Exists(oid plumbing.Hash) bool {
	_, err := os.Stat(s.path(oid))
	return err == nil
}

// header is the fixed-size preamble of a loose object file.
type header struct {
	kind    object.Kind
	method  CompressMethod
	rawSize int64
}

func (s *store) readHeader(fd *os.File) (header, error) {
	var magic [4]byte
	var version, kind, method uint16
	var rawSize int64
	if _, err := io.ReadFull(fd, magic[:]); err != nil {
		return header{}, err
	}
	if magic != objectMagic {
		return header{}, fmt.Errorf("odb: bad object magic in %s", fd.Name())
	}
	if err := binary.Read(fd, binary.BigEndian, &version); err != nil {
		return header{}, err
	}
	if err := binary.Read(fd, binary.BigEndian, &kind); err != nil {
		return header{}, err
	}
	if err := binary.Read(fd, binary.BigEndian, &method); err != nil {
		return header{}, err
	}
	if err := binary.Read(fd, binary.BigEndian, &rawSize); err != nil {
		return header{}, err
	}
	return header{kind: object.Kind(kind), method: CompressMethod(method), rawSize: rawSize}, nil
}

// open returns the decoded kind and raw (decompressed) payload for oid.
func (s *store) open(oid plumbing.Hash) (object.Kind, []byte, error) {
	fd, err := os.Open(s.path(oid))
	if err != nil {
		if os.IsNotExist(err) {
			return object.InvalidKind, nil, plumbing.NoSuchObject(oid)
		}
		return object.InvalidKind, nil, err
	}
	defer fd.Close()

	hdr, err := s.readHeader(fd)
	if err != nil {
		return object.InvalidKind, nil, err
	}

	switch hdr.method {
	case Store:
		payload := make([]byte, hdr.rawSize)
		if _, err := io.ReadFull(fd, payload); err != nil {
			return object.InvalidKind, nil, err
		}
		return hdr.kind, payload, nil
	case Zstd:
		zr, err := zstd.NewReader(fd)
		if err != nil {
			return object.InvalidKind, nil, err
		}
		defer zr.Close()
		payload, err := io.ReadAll(zr)
		if err != nil {
			return object.InvalidKind, nil, err
		}
		return hdr.kind, payload, nil
	default:
		return object.InvalidKind, nil, fmt.Errorf("odb: unsupported compression method %d", hdr.method)
	}
}

func mkdirAll(paths ...string) error {
	for _, p := range paths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// put hashes payload, writes it (with the chosen kind tagged in the
// header) to a temp file, and renames it into place. Loose objects are
// content-addressed and therefore immutable: if oid already exists, put
// is a no-op.
func (s *store) put(kind object.Kind, payload []byte) (plumbing.Hash, error) {
	hasher := plumbing.NewHasher()
	hasher.Write(payload)
	oid := hasher.Sum()
	if s.Exists(oid) {
		return oid, nil
	}

	if err := mkdirAll(s.incoming); err != nil {
		return plumbing.ZeroHash, err
	}
	fd, err := os.CreateTemp(s.incoming, "object")
	if err != nil {
		return plumbing.ZeroHash, err
	}
	incomingPath := fd.Name()
	defer func() {
		_ = os.Remove(incomingPath)
	}()

	if err := s.writeHeader(fd, kind, int64(len(payload))); err != nil {
		_ = fd.Close()
		return plumbing.ZeroHash, err
	}
	if err := s.writeBody(fd, payload); err != nil {
		_ = fd.Close()
		return plumbing.ZeroHash, err
	}
	if err := fd.Sync(); err != nil {
		_ = fd.Close()
		return plumbing.ZeroHash, err
	}
	if err := fd.Close(); err != nil {
		return plumbing.ZeroHash, err
	}

	objectPath := s.path(oid)
	if err := os.MkdirAll(filepath.Dir(objectPath), 0o755); err != nil {
		return plumbing.ZeroHash, err
	}
	if err := os.Rename(incomingPath, objectPath); err != nil {
		return plumbing.ZeroHash, err
	}
	_ = os.Chmod(objectPath, 0o444)
	return oid, nil
}

func (s *store) writeHeader(w io.Writer, kind object.Kind, rawSize int64) error {
	if _, err := w.Write(objectMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, objectVersion); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint16(kind)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint16(s.method)); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, rawSize)
}

func (s *store) writeBody(w io.Writer, payload []byte) error {
	switch s.method {
	case Store:
		_, err := w.Write(payload)
		return err
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		if _, err := zw.Write(payload); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()
	default:
		return fmt.Errorf("odb: unsupported compression method %d", s.method)
	}
}

// ignoredShardDir excludes the staging directory from shard/prefix walks.
func ignoredShardDir(name string) bool {
	return name == "incoming"
}

// searchShard walks one "xx" top-level shard directory looking for any
// loose object hash with the given prefix, returning every match found.
func (s *store) searchShard(shard string, prefix string) ([]plumbing.Hash, error) {
	root := filepath.Join(s.root, shard)
	var matches []plumbing.Hash
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !plumbing.ValidateHashHex(name) {
			return nil
		}
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		matches = append(matches, plumbing.NewHash(name))
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return matches, nil
}

// shardsFor returns the set of top-level "xx" directories that could
// possibly contain an object matching prefix: just the one shard the
// prefix pins down once it's at least 2 hex characters long, or every
// shard when the prefix is shorter than that.
func (s *store) shardsFor(prefix string) []string {
	if len(prefix) >= 2 {
		return []string{prefix[:2]}
	}
	shards := make([]string, 0, 256)
	for i := 0; i < 256; i++ {
		shards = append(shards, fmt.Sprintf("%02x", i))
	}
	return shards
}

func (s *store) walkLoose(fn func(oid plumbing.Hash) error) error {
	return filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			if ignoredShardDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if !plumbing.ValidateHashHex(name) {
			return nil
		}
		return fn(plumbing.NewHash(name))
	})
}
