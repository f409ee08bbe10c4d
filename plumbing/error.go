// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package plumbing

import (
	"errors"
	"fmt"
)

// ErrStop is used to stop a ForEach function in an iterator.
var ErrStop = errors.New("stop iter")

// ErrReferenceNotFound is returned when a reference lookup misses.
var ErrReferenceNotFound = errors.New("reference not found")

// ErrBadReferenceName is returned when a reference name fails validation.
type ErrBadReferenceName struct {
	Name string
}

func (e *ErrBadReferenceName) Error() string {
	return fmt.Sprintf("bad reference name: %q", e.Name)
}

func IsErrBadReferenceName(err error) bool {
	var e *ErrBadReferenceName
	return errors.As(err, &e)
}

// noSuchObject is returned when the ODB has no object with the given id.
type noSuchObject struct {
	oid Hash
}

func (e *noSuchObject) Error() string {
	return fmt.Sprintf("no such object: %s", e.oid)
}

// NoSuchObject creates an error representing a missing object.
func NoSuchObject(oid Hash) error {
	return &noSuchObject{oid: oid}
}

func IsNoSuchObject(err error) bool {
	var e *noSuchObject
	return errors.As(err, &e)
}
