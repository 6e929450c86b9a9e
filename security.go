// Copyright 2018 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package libzmtp

// MechanismName identifies a ZMTP security mechanism by its greeting-field
// name: ASCII, null-padded to 20 bytes on the wire.
type MechanismName string

// NullMechanism is the only security mechanism this core implements; PLAIN,
// CURVE, and GSSAPI all require additional handshake rounds this package
// does not (yet) perform.
const NullMechanism MechanismName = "NULL"

// Security is the pluggable seam a mechanism occupies. It contributes only
// its wire name: the interface has no handshake method, and Channel runs
// greet's READY exchange itself. This core only ever constructs
// nullSecurity.
type Security interface {
	// Type returns the mechanism's greeting-field name.
	Type() MechanismName
}

// nullSecurity implements the trivial NULL mechanism: no additional
// handshake beyond the READY command exchange already performed by greet.
type nullSecurity struct{}

func (nullSecurity) Type() MechanismName { return NullMechanism }

var _ Security = nullSecurity{}
