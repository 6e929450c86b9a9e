// Copyright 2018 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package libzmtp

import (
	"io"

	"github.com/sirupsen/logrus"
)

// discardLogger is the default *logrus.Entry a Channel carries when no
// WithLogger option is supplied, so log call sites never need a nil check
// (the same pattern distribution-distribution's Context.log follows).
func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
