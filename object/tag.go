// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/nexthash/revspec/plumbing"
)

// Tag is an annotated tag object: a signed/unsigned pointer to another
// object (usually a commit), carrying its own message and tagger. Peeling
// (`^{}`, `^{commit}`, ...) follows Tag.Object until a non-tag is reached.
type Tag struct {
	Hash       plumbing.Hash `json:"hash"`
	Object     plumbing.Hash `json:"object"`
	ObjectKind Kind          `json:"kind"`
	Name       string        `json:"name"`
	Tagger     Signature     `json:"tagger"`
	Message    string        `json:"message"`
}

func (t *Tag) Encode() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "object %s\n", t.Object.String())
	fmt.Fprintf(&buf, "type %s\n", t.ObjectKind.String())
	fmt.Fprintf(&buf, "tag %s\n", t.Name)
	fmt.Fprintf(&buf, "tagger %s\n", t.Tagger.String())
	fmt.Fprintf(&buf, "\n%s", t.Message)
	return buf.Bytes()
}

func (t *Tag) Decode(oid plumbing.Hash, data []byte) error {
	t.Hash = oid
	r := bufio.NewReader(bytes.NewReader(data))
	var message strings.Builder
	finishedHeaders := false
	for {
		line, readErr := r.ReadString('\n')
		if readErr != nil && line == "" {
			break
		}
		if finishedHeaders {
			message.WriteString(strings.TrimSuffix(line, "\n"))
			if readErr == nil {
				message.WriteByte('\n')
			}
			if readErr != nil {
				break
			}
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		if text == "" {
			finishedHeaders = true
			if readErr != nil {
				break
			}
			continue
		}
		key, value, ok := strings.Cut(text, " ")
		if !ok {
			if readErr != nil {
				break
			}
			continue
		}
		switch key {
		case "object":
			t.Object = plumbing.NewHash(value)
		case "type":
			t.ObjectKind = KindFromString(value)
		case "tag":
			t.Name = value
		case "tagger":
			t.Tagger.Decode([]byte(value))
		}
		if readErr != nil {
			break
		}
	}
	t.Message = message.String()
	return nil
}
