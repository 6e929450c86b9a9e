// Copyright 2018 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package libzmtp

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

const (
	sigHeader byte = 0xff
	sigFooter byte = 0x7f

	versionMajor byte = 3
	versionMinor byte = 0

	mechanismLen = 20
	fillerLen    = 31
)

// greeting is the 64-byte ZMTP/3.0 preamble: signature, version, mechanism
// name, and an as-server flag. Unlike the C ancestor's single fixed-layout
// struct, send/recv happen field by field and interleaved (see greet
// below), so this type only ever holds one side's fully-assembled view
// after the exchange completes.
type greeting struct {
	version   [2]byte
	mechanism [mechanismLen]byte
	asServer  byte
}

func (g greeting) mechanismName() string {
	i := bytes.IndexByte(g.mechanism[:], 0)
	if i < 0 {
		i = len(g.mechanism)
	}
	return string(g.mechanism[:i])
}

// readyCommand is the fixed, property-less READY command both sides of a
// NULL-mechanism handshake exchange: frame-flags=COMMAND, size=6, body is
// a length-prefixed command name with no properties.
var readyCommand = []byte{flagCommand, 6, 5, 'R', 'E', 'A', 'D', 'Y'}

// greet runs the interleaved ZMTP/3.0 greeting + READY exchange
// (https://rfc.zeromq.org/spec:23/ZMTP/). It is symmetric: client and
// server run the identical sequence, since NULL never assigns client/server
// topology. mechanism is the ASCII name we advertise (always "NULL" for
// this core); asServer is advertised on the wire but never consulted by
// the NULL mechanism itself, which performs no additional handshake.
func greet(rw io.ReadWriter, mechanism string, asServer bool) (greeting, error) {
	var peer greeting

	// 1. Send our signature.
	sig := make([]byte, 10)
	sig[0] = sigHeader
	sig[8] = 0x01
	sig[9] = sigFooter
	if err := sendAll(rw, sig); err != nil {
		return peer, wrapErr(KindIO, err, "send signature")
	}

	// 2. Receive first signature byte; require 0xFF.
	var first [1]byte
	if err := recvAll(rw, first[:]); err != nil {
		return peer, wrapErr(KindIO, err, "recv signature byte 0")
	}
	if first[0] != sigHeader {
		return peer, ErrBadSignature
	}

	// 3. Receive remaining 9 signature bytes; require low bit of byte 9.
	rest := make([]byte, 9)
	if err := recvAll(rw, rest); err != nil {
		return peer, wrapErr(KindIO, err, "recv signature tail")
	}
	if rest[8]&0x01 != 1 {
		return peer, ErrBadSignature
	}

	// 4. Send our major version.
	if err := sendAll(rw, []byte{versionMajor}); err != nil {
		return peer, wrapErr(KindIO, err, "send major version")
	}

	// 5. Receive peer major version; older peers are rejected here.
	var peerMajor [1]byte
	if err := recvAll(rw, peerMajor[:]); err != nil {
		return peer, wrapErr(KindIO, err, "recv major version")
	}
	if peerMajor[0] != versionMajor {
		return peer, ErrUnsupportedVersion
	}

	// 6. Send minor version, mechanism, as-server, filler, in that order.
	var mech [mechanismLen]byte
	if len(mechanism) > mechanismLen {
		return peer, errors.Errorf("libzmtp: mechanism name %q too long", mechanism)
	}
	copy(mech[:], mechanism)

	var asServerByte byte
	if asServer {
		asServerByte = 1
	}
	filler := make([]byte, fillerLen)

	out := make([]byte, 0, 1+mechanismLen+1+fillerLen)
	out = append(out, versionMinor)
	out = append(out, mech[:]...)
	out = append(out, asServerByte)
	out = append(out, filler...)
	if err := sendAll(rw, out); err != nil {
		return peer, wrapErr(KindIO, err, "send greeting tail")
	}

	// 7. Receive peer minor version, mechanism, as-server, filler.
	in := make([]byte, 1+mechanismLen+1+fillerLen)
	if err := recvAll(rw, in); err != nil {
		return peer, wrapErr(KindIO, err, "recv greeting tail")
	}
	peer.version = [2]byte{peerMajor[0], in[0]}
	copy(peer.mechanism[:], in[1:1+mechanismLen])
	peer.asServer = in[1+mechanismLen]

	// 8. Validate the peer's mechanism.
	if peer.mechanismName() != mechanism {
		return peer, ErrMechanismMismatch
	}

	// 9. Send READY.
	if err := sendAll(rw, readyCommand); err != nil {
		return peer, wrapErr(KindIO, err, "send READY")
	}

	// 10. Receive one frame; require its COMMAND bit set. Body discarded:
	// NULL defines no properties to parse.
	flags, body, err := recvFrame(rw, defaultMaxFrameSize)
	if err != nil {
		return peer, wrapErr(KindIO, err, "recv READY")
	}
	_ = body
	if flags&flagCommand == 0 {
		return peer, ErrNotReady
	}

	return peer, nil
}
