// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package dateparse is the isolated date-grammar collaborator behind
// `@{<date>}` (spec.md §4.D/§4.E). It is deliberately narrow and
// stdlib-only (see DESIGN.md): a richer parser can replace it later
// without touching package revision, which only calls Parse.
package dateparse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrUnparsable = errors.New("unrecognized date expression")

// layouts tried, in priority order, for the "ISO-like" and "date-only"
// forms of the grammar.
var layouts = []string{
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05 -0700",
	"2006-01-02T15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-1-2 15:04:05 -0700",
	"2006-1-2",
	"2006-01-02",
}

var relativeRe = regexp.MustCompile(`(?i)^(\d+)\s+(second|minute|hour|day|week|month|year)s?(\s+ago)?$`)

// Parse resolves a `@{...}` date expression to an absolute instant,
// relative to now, in priority order:
//  1. a bare Unix timestamp ("1335806603")
//  2. an ISO-like timestamp ("2012-04-30 17:22:43 +0000")
//  3. a date-only value ("2012-05-03"), taken as local midnight
//  4. a natural-language relative expression ("2 days ago", "1 second")
func Parse(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnparsable
	}
	if ts, ok := parseUnixTimestamp(s); ok {
		return ts, nil
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, ok := parseRelative(s, now); ok {
		return t, nil
	}
	return time.Time{}, ErrUnparsable
}

func parseUnixTimestamp(s string) (time.Time, bool) {
	if len(s) == 0 {
		return time.Time{}, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return time.Time{}, false
		}
	}
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(ts, 0), true
}

func parseRelative(s string, now time.Time) (time.Time, bool) {
	m := relativeRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	var d time.Duration
	switch strings.ToLower(m[2]) {
	case "second":
		d = time.Duration(n) * time.Second
	case "minute":
		d = time.Duration(n) * time.Minute
	case "hour":
		d = time.Duration(n) * time.Hour
	case "day":
		d = time.Duration(n) * 24 * time.Hour
	case "week":
		d = time.Duration(n) * 7 * 24 * time.Hour
	case "month":
		d = time.Duration(n) * 30 * 24 * time.Hour
	case "year":
		d = time.Duration(n) * 365 * 24 * time.Hour
	default:
		return time.Time{}, false
	}
	return now.Add(-d), true
}
