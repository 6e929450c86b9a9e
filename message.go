// Copyright 2018 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package libzmtp

// MsgFlag is a bitset over the flags a Message carries; independent of the
// on-wire frame-flags byte of frame.go, which also encodes LONG.
type MsgFlag byte

const (
	// FlagMore marks a message as a non-final part of a multi-part logical
	// message; the next frame on the same channel continues it.
	FlagMore MsgFlag = 1 << iota
	// FlagCommand marks a message as a protocol command (e.g. READY) rather
	// than application data.
	FlagCommand
)

func (f MsgFlag) hasMore() bool   { return f&FlagMore != 0 }
func (f MsgFlag) isCommand() bool { return f&FlagCommand != 0 }

// Message is an immutable-after-construction, exclusively-owned byte buffer
// tagged with MORE/COMMAND flags. Construction copies or adopts a buffer;
// once built, payload and flags never change.
type Message struct {
	flags   MsgFlag
	payload []byte
}

// NewMessage copies data into a freshly owned buffer and tags it with
// flags. Use this when the caller retains ownership of data (e.g. a
// stack-local slice or one shared with other callers).
func NewMessage(flags MsgFlag, data []byte) Message {
	buf := make([]byte, len(data))
	copy(buf, data)
	return Message{flags: flags, payload: buf}
}

// NewMessageFromOwned adopts buf without copying; the caller must not
// retain or mutate buf afterwards. Use this for buffers already exclusively
// owned by the call site, such as one just allocated for this purpose.
func NewMessageFromOwned(flags MsgFlag, buf []byte) Message {
	return Message{flags: flags, payload: buf}
}

// Size returns the payload length in bytes.
func (m Message) Size() int { return len(m.payload) }

// Data returns the message's payload. The returned slice aliases the
// message's internal buffer and must not be mutated by the caller.
func (m Message) Data() []byte { return m.payload }

// Flags returns the message's MORE/COMMAND bitset.
func (m Message) Flags() MsgFlag { return m.flags }

// More reports whether the MORE flag is set.
func (m Message) More() bool { return m.flags.hasMore() }

// IsCommand reports whether the COMMAND flag is set.
func (m Message) IsCommand() bool { return m.flags.isCommand() }
