// Copyright 2018 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transport supplies the collaborators the channel core
// deliberately keeps out of itself: endpoint-string parsing and blocking
// socket acquisition (connect/listen/accept). Nothing here is part of the
// ZMTP wire protocol.
package transport

import (
	"strings"
)

// Endpoint is a parsed "tcp://" or "ipc://" endpoint string.
type Endpoint struct {
	// Network is "tcp" or "unix", ready to pass to net.Dial/net.Listen.
	Network string
	// Address is the network-specific address: "host:port" for tcp,
	// a filesystem path for unix.
	Address string
}

// ParseError distinguishes a malformed endpoint string from a transport
// (dial/listen/accept) failure, so callers can map it to an endpoint-parse
// error kind rather than an I/O one.
type ParseError struct {
	Endpoint string
	reason   string
}

func (e *ParseError) Error() string {
	return "libzmtp/transport: " + e.reason + ": " + e.Endpoint
}

func parseErr(endpoint, reason string) error {
	return &ParseError{Endpoint: endpoint, reason: reason}
}

// Parse recognizes:
//
//	ipc://<path>
//	tcp://<address>:<port>   (address may itself contain colons; the
//	                           port is everything after the LAST colon)
//
// A tcp:// string with no colon after the scheme is a parse error. The
// last-colon rule is ambiguous for a bracketless IPv6 host that itself ends
// in digits; callers needing that should use "[addr]:port" syntax, which
// this parser passes through unchanged (the brackets simply become part of
// Address, same as net.Dial expects).
func Parse(endpoint string) (Endpoint, error) {
	switch {
	case strings.HasPrefix(endpoint, "ipc://"):
		path := endpoint[len("ipc://"):]
		if path == "" {
			return Endpoint{}, parseErr(endpoint, "empty ipc path")
		}
		return Endpoint{Network: "unix", Address: path}, nil

	case strings.HasPrefix(endpoint, "tcp://"):
		rest := endpoint[len("tcp://"):]
		i := strings.LastIndexByte(rest, ':')
		if i < 0 {
			return Endpoint{}, parseErr(endpoint, "no port")
		}
		addr, port := rest[:i], rest[i+1:]
		if addr == "" || port == "" {
			return Endpoint{}, parseErr(endpoint, "malformed tcp endpoint")
		}
		return Endpoint{Network: "tcp", Address: addr + ":" + port}, nil

	default:
		return Endpoint{}, parseErr(endpoint, "unrecognized endpoint scheme")
	}
}
