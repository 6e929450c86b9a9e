// Copyright 2018 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package libzmtp

import (
	"encoding/binary"
	"io"
)

// frame-flags bits, set in the single flags byte that precedes every
// frame's size field.
const (
	flagMore    byte = 0x01
	flagLong    byte = 0x02
	flagCommand byte = 0x04
)

// longFrameThreshold is the largest payload a short frame can carry; above
// it the LONG bit and an 8-byte size field are mandatory.
const longFrameThreshold = 255

// defaultMaxFrameSize bounds incoming frame payloads absent an explicit
// WithMaxFrameSize option, guarding against unbounded allocation from a
// malicious or buggy peer advertising an oversized frame. 64 MiB
// comfortably covers any legitimate application message while remaining a
// small multiple of typical socket buffers.
const defaultMaxFrameSize = 64 << 20

// sendFrame writes msg as a single ZMTP frame: 1-byte flags, 1- or 8-byte
// size (short form whenever the payload fits in a byte), then the payload.
func sendFrame(w io.Writer, msg Message) error {
	payload := msg.Data()
	size := len(payload)
	isLong := size > longFrameThreshold

	var flags byte
	if msg.More() {
		flags |= flagMore
	}
	if msg.IsCommand() {
		flags |= flagCommand
	}
	if isLong {
		flags |= flagLong
	}

	var hdr [9]byte
	hdr[0] = flags
	var hdrLen int
	if isLong {
		binary.BigEndian.PutUint64(hdr[1:], uint64(size))
		hdrLen = 9
	} else {
		hdr[1] = byte(size)
		hdrLen = 2
	}

	if err := sendAll(w, hdr[:hdrLen]); err != nil {
		return wrapErr(KindIO, err, "send frame header")
	}
	if size == 0 {
		return nil
	}
	if err := sendAll(w, payload); err != nil {
		return wrapErr(KindIO, err, "send frame payload")
	}
	return nil
}

// recvFrame reads one frame from r and returns its flags byte and payload.
// maxSize bounds the payload length accepted; a larger advertised size
// fails with ErrFrameTooLarge rather than allocating it.
func recvFrame(r io.Reader, maxSize uint64) (byte, []byte, error) {
	var flagByte [1]byte
	if err := recvAll(r, flagByte[:]); err != nil {
		return 0, nil, wrapErr(KindIO, err, "recv frame flags")
	}
	flags := flagByte[0]

	var size uint64
	if flags&flagLong != 0 {
		var sz [8]byte
		if err := recvAll(r, sz[:]); err != nil {
			return 0, nil, wrapErr(KindIO, err, "recv long frame size")
		}
		size = binary.BigEndian.Uint64(sz[:])
	} else {
		var sz [1]byte
		if err := recvAll(r, sz[:]); err != nil {
			return 0, nil, wrapErr(KindIO, err, "recv short frame size")
		}
		size = uint64(sz[0])
	}

	if size > maxSize {
		return 0, nil, ErrFrameTooLarge
	}

	body := make([]byte, size)
	if size > 0 {
		if err := recvAll(r, body); err != nil {
			return 0, nil, wrapErr(KindIO, err, "recv frame payload")
		}
	}
	return flags, body, nil
}

// decodeMsgFlags translates on-wire frame-flags into the Message-level
// MORE/COMMAND bitset; unknown bits (anything beyond MORE/LONG/COMMAND)
// are ignored.
func decodeMsgFlags(frameFlags byte) MsgFlag {
	var f MsgFlag
	if frameFlags&flagMore != 0 {
		f |= FlagMore
	}
	if frameFlags&flagCommand != 0 {
		f |= FlagCommand
	}
	return f
}
