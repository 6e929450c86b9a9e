// Copyright 2018 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package libzmtp implements the core of ZMTP/3.0
// (https://rfc.zeromq.org/spec:23/ZMTP/) over stream transports: the
// greeting handshake with the NULL security mechanism, and the
// length-prefixed frame codec used thereafter. It does not implement
// ZMTP socket semantics (PUB/SUB routing, fair-queueing) or security
// mechanisms beyond NULL; see transport for the endpoint-parsing and
// socket-acquisition collaborators this core delegates to.
package libzmtp
