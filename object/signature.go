// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

const timeZoneLength = 5

// Signature identifies the author or committer of a commit or tag: a name,
// an email, and the instant the action was taken (with its original UTC
// offset preserved, not just the wall-clock time).
type Signature struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	When  time.Time `json:"when"`
}

func (s *Signature) decodeTimeAndTimeZone(b []byte) {
	space := bytes.IndexByte(b, ' ')
	if space == -1 {
		space = len(b)
	}
	ts, err := strconv.ParseInt(string(b[:space]), 10, 64)
	if err != nil {
		return
	}
	s.When = time.Unix(ts, 0).In(time.UTC)

	tzStart := space + 1
	if tzStart >= len(b) || tzStart+timeZoneLength > len(b) {
		return
	}
	tz := string(b[tzStart : tzStart+timeZoneLength])
	tzhours, err1 := strconv.ParseInt(tz[0:3], 10, 64)
	tzmins, err2 := strconv.ParseInt(tz[3:], 10, 64)
	if err1 != nil || err2 != nil {
		return
	}
	if tz[0] == '-' {
		tzmins *= -1
	}
	s.When = s.When.In(time.FixedZone("", int(tzhours*60*60+tzmins*60)))
}

// Decode parses "Name <email> unix-ts ±HHMM" into s.
func (s *Signature) Decode(b []byte) {
	open := bytes.LastIndexByte(b, '<')
	close := bytes.LastIndexByte(b, '>')
	if open == -1 || close == -1 || close < open {
		return
	}
	s.Name = string(bytes.Trim(b[:open], " "))
	s.Email = string(b[open+1 : close])
	if close+2 < len(b) {
		s.decodeTimeAndTimeZone(b[close+2:])
	}
}

const formatTimeZoneOnly = "-0700"

// String renders the signature in the canonical "Name <email> ts tz" form.
func (s *Signature) String() string {
	return fmt.Sprintf("%s <%s> %d %s", s.Name, s.Email, s.When.Unix(), s.When.Format(formatTimeZoneOnly))
}
