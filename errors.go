// Copyright 2018 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package libzmtp

// Kind classifies an Error into one of the abstract error categories a
// caller might want to branch on, without parsing error strings.
type Kind int

const (
	// KindUnknown is the zero value; never returned by this package.
	KindUnknown Kind = iota
	// KindAlreadyConnected: Connect/Listen called on a channel that already
	// owns a stream handle.
	KindAlreadyConnected
	// KindEndpointParse: the endpoint string did not match the tcp:///ipc://
	// grammar.
	KindEndpointParse
	// KindTransport: dial/bind/listen/accept failed.
	KindTransport
	// KindIO: a read or write did not transfer the expected byte count, or
	// the peer closed mid-transfer.
	KindIO
	// KindProtocol: the greeting or frame violated the wire format.
	KindProtocol
)

func (k Kind) String() string {
	switch k {
	case KindAlreadyConnected:
		return "already-connected"
	case KindEndpointParse:
		return "endpoint-parse"
	case KindTransport:
		return "transport"
	case KindIO:
		return "io"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned across channel operations. The
// source library (libzmtp's C ancestor) treated these as fatal assertions;
// here they are recoverable errors the caller can inspect with errors.As
// and branch on .Kind.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Kind.String() + ": " + e.msg + ": " + e.err.Error()
	}
	return e.Kind.String() + ": " + e.msg
}

// Unwrap exposes the wrapped error to errors.Is/errors.As/errors.Unwrap.
// Callers that need the Kind should use errors.As(err, &zerr) rather than
// pkg/errors' Cause: *Error itself is usually the outermost wrapper, so
// there is nothing a Cause chain would need to unwrap through.
func (e *Error) Unwrap() error { return e.err }

func newErr(kind Kind, msg string) error {
	return &Error{Kind: kind, msg: msg}
}

func wrapErr(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, msg: msg, err: err}
}

var (
	// ErrAlreadyConnected is returned by Connect/Listen on a channel that
	// already holds a stream handle.
	ErrAlreadyConnected = newErr(KindAlreadyConnected, "channel already connected")

	// ErrBadSignature is returned when a peer's greeting signature does not
	// match the ZMTP/3.0 wire format.
	ErrBadSignature = newErr(KindProtocol, "bad greeting signature")

	// ErrUnsupportedVersion is returned when a peer advertises a ZMTP major
	// version other than 3.
	ErrUnsupportedVersion = newErr(KindProtocol, "unsupported ZMTP major version")

	// ErrMechanismMismatch is returned when a peer's advertised security
	// mechanism does not match ours.
	ErrMechanismMismatch = newErr(KindProtocol, "security mechanism mismatch")

	// ErrNotReady is returned when the READY command exchange fails to
	// produce a command frame.
	ErrNotReady = newErr(KindProtocol, "expected READY command")

	// ErrNotHandshaken is returned by Send/Recv on a channel that has not
	// completed the greeting exchange.
	ErrNotHandshaken = newErr(KindProtocol, "channel not handshaken")

	// ErrFrameTooLarge is returned by Recv when a frame's advertised size
	// exceeds the channel's configured maximum.
	ErrFrameTooLarge = newErr(KindProtocol, "frame exceeds configured maximum size")
)
