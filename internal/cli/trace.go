// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"time"

	"github.com/sirupsen/logrus"
)

// tracer times successive CLI steps when --verbose is set, grounded on the
// teacher's trace.Tracker (modules/trace/error.go): StepNext there prints
// straight to stderr in magenta, this reports through logrus instead so
// timing lines go through the same formatter/level machinery as everything
// else this command logs.
type tracer struct {
	enabled bool
	last    time.Time
}

func newTracer(enabled bool) *tracer {
	return &tracer{enabled: enabled, last: time.Now()}
}

func (t *tracer) step(format string, args ...any) {
	if !t.enabled {
		return
	}
	now := time.Now()
	logrus.WithField("elapsed", now.Sub(t.last)).Debugf(format, args...)
	t.last = now
}
