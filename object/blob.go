// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package object

import "github.com/nexthash/revspec/plumbing"

// Blob is an opaque byte payload. The resolver never looks inside one —
// component H stops descent as soon as it reaches a blob.
type Blob struct {
	Hash plumbing.Hash `json:"hash"`
	Size int64         `json:"size"`
	Data []byte        `json:"-"`
}

func (b *Blob) Encode() []byte {
	return b.Data
}

func (b *Blob) Decode(oid plumbing.Hash, data []byte) error {
	b.Hash = oid
	b.Size = int64(len(data))
	b.Data = data
	return nil
}
