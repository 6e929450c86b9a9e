// Copyright 2018 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package libzmtp

import (
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gale320/libzmtp/transport"
)

// Dialer is the blocking-connect collaborator a Channel delegates to;
// satisfied by transport.Net, or any test double.
type Dialer interface {
	Dial(endpoint string) (io.ReadWriteCloser, error)
}

// ListenAccepter is the blocking bind+listen+accept collaborator a Channel
// delegates to; satisfied by transport.Net, or any test double.
type ListenAccepter interface {
	ListenAccept(endpoint string) (io.ReadWriteCloser, error)
}

// Channel owns at most one connected stream handle and composes the
// greeting FSM with the frame codec. It is not safe for concurrent use by
// multiple goroutines: callers serialize or partition channels themselves.
type Channel struct {
	transport Dialer
	listener  ListenAccepter
	sec       Security
	asServer  bool

	maxFrameSize uint64
	log          *logrus.Entry
	metrics      *channelMetrics

	rw         io.ReadWriteCloser
	handshaken bool
	peerGreet  greeting
}

// Option configures a Channel at construction time.
type Option func(*Channel)

// WithMaxFrameSize overrides the default bound on incoming frame payload
// size, above which Recv fails with ErrFrameTooLarge instead of allocating.
func WithMaxFrameSize(n uint64) Option {
	return func(c *Channel) { c.maxFrameSize = n }
}

// WithLogger attaches a structured logger; omit to log nowhere.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Channel) { c.log = log }
}

// WithTransport overrides the Dialer/ListenAccepter pair used by
// Connect/Listen; defaults to transport.Net (real TCP/IPC sockets).
func WithTransport(t interface {
	Dialer
	ListenAccepter
}) Option {
	return func(c *Channel) {
		c.transport = t
		c.listener = t
	}
}

// NewChannel constructs a disconnected Channel speaking the NULL security
// mechanism, the only one this core implements.
func NewChannel(opts ...Option) *Channel {
	net := transport.Net{}
	c := &Channel{
		transport:    net,
		listener:     net,
		sec:          nullSecurity{},
		maxFrameSize: defaultMaxFrameSize,
		log:          discardLogger(),
		metrics:      defaultChannelMetrics,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect dials endpoint and runs the greeting FSM as a client. Fails with
// ErrAlreadyConnected if a stream is already held; on any failure the
// stream (if acquired) is closed and the channel remains disconnected.
func (c *Channel) Connect(endpoint string) error {
	return c.open(endpoint, false, c.transport.Dial)
}

// Listen binds endpoint, accepts exactly one connection, and runs the
// greeting FSM as a server. Otherwise identical to Connect.
func (c *Channel) Listen(endpoint string) error {
	return c.open(endpoint, true, c.listener.ListenAccept)
}

func (c *Channel) open(endpoint string, asServer bool, acquire func(string) (io.ReadWriteCloser, error)) error {
	if c.rw != nil {
		return ErrAlreadyConnected
	}

	rw, err := acquire(endpoint)
	if err != nil {
		var perr *transport.ParseError
		if errors.As(err, &perr) {
			c.metrics.handshakes.WithValues("endpoint-parse-error").Inc()
			return wrapErr(KindEndpointParse, err, "parse endpoint")
		}
		c.metrics.handshakes.WithValues("transport-error").Inc()
		return wrapErr(KindTransport, err, "acquire stream")
	}

	start := time.Now()
	peer, err := greet(rw, string(c.sec.Type()), asServer)
	c.metrics.handshakeDur.WithValues(string(c.sec.Type())).UpdateSince(start)
	if err != nil {
		rw.Close()
		c.metrics.handshakes.WithValues("handshake-error").Inc()
		c.log.WithError(err).Warn("libzmtp: handshake failed")
		return err
	}

	c.rw = rw
	c.peerGreet = peer
	c.handshaken = true
	c.asServer = asServer
	c.metrics.handshakes.WithValues("ok").Inc()
	c.log.WithFields(logrus.Fields{
		"server":   asServer,
		"endpoint": endpoint,
	}).Info("libzmtp: handshake complete")
	return nil
}

// PeerMechanism returns the security mechanism name the peer advertised
// during the greeting, valid only after a successful Connect/Listen.
func (c *Channel) PeerMechanism() string {
	return c.peerGreet.mechanismName()
}

// Send writes msg as a single frame. Requires a handshaken channel. Any
// I/O error renders the channel unusable: the caller is responsible for
// calling Close and discarding it.
func (c *Channel) Send(msg Message) error {
	if !c.handshaken {
		return ErrNotHandshaken
	}
	if err := sendFrame(c.rw, msg); err != nil {
		c.log.WithError(err).Error("libzmtp: send failed")
		return err
	}
	c.metrics.framesSent.WithValues(string(c.sec.Type())).Inc()
	c.metrics.bytesSent.WithValues(string(c.sec.Type())).Add(float64(msg.Size()))
	return nil
}

// Recv reads one frame and returns it as a Message. Requires a handshaken
// channel; see Send for the failure contract.
func (c *Channel) Recv() (Message, error) {
	if !c.handshaken {
		return Message{}, ErrNotHandshaken
	}
	flags, body, err := recvFrame(c.rw, c.maxFrameSize)
	if err != nil {
		c.log.WithError(err).Error("libzmtp: recv failed")
		return Message{}, err
	}
	c.metrics.framesRecv.WithValues(string(c.sec.Type())).Inc()
	c.metrics.bytesRecv.WithValues(string(c.sec.Type())).Add(float64(len(body)))
	return NewMessageFromOwned(decodeMsgFlags(flags), body), nil
}

// Close releases the underlying stream, if any, and marks the channel
// unusable. Close is idempotent.
func (c *Channel) Close() error {
	if c.rw == nil {
		return nil
	}
	err := c.rw.Close()
	c.rw = nil
	c.handshaken = false
	return err
}
