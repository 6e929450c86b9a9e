// Copyright 2018 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"io"
	"net"

	"github.com/pkg/errors"
)

// Dialer performs a blocking connect to an endpoint string. The returned
// handle is the raw connected stream the channel core runs its
// greeting/frame codec over.
type Dialer interface {
	Dial(endpoint string) (io.ReadWriteCloser, error)
}

// ListenAccepter performs a blocking bind+listen+accept of exactly one
// connection.
type ListenAccepter interface {
	ListenAccept(endpoint string) (io.ReadWriteCloser, error)
}

// Net is the reference Dialer/ListenAccepter built on the standard net
// package: "tcp" endpoints dial/listen over TCP, "ipc" endpoints use Unix
// domain sockets. This is a usable default, not a mandated one — any type
// satisfying Dialer/ListenAccepter can be substituted at Channel
// construction.
type Net struct{}

func (Net) Dial(endpoint string) (io.ReadWriteCloser, error) {
	ep, err := Parse(endpoint)
	if err != nil {
		return nil, err
	}
	conn, err := net.Dial(ep.Network, ep.Address)
	if err != nil {
		return nil, errors.Wrapf(err, "libzmtp/transport: dial %q", endpoint)
	}
	return conn, nil
}

func (Net) ListenAccept(endpoint string) (io.ReadWriteCloser, error) {
	ep, err := Parse(endpoint)
	if err != nil {
		return nil, err
	}
	ln, err := net.Listen(ep.Network, ep.Address)
	if err != nil {
		return nil, errors.Wrapf(err, "libzmtp/transport: listen %q", endpoint)
	}
	defer ln.Close()

	conn, err := ln.Accept()
	if err != nil {
		return nil, errors.Wrapf(err, "libzmtp/transport: accept on %q", endpoint)
	}
	return conn, nil
}
