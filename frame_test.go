// Copyright 2018 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package libzmtp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		flags   MsgFlag
		payload []byte
	}{
		{"empty", 0, nil},
		{"more", FlagMore, []byte("1")},
		{"command", FlagCommand, []byte("hello")},
		{"more-and-command", FlagMore | FlagCommand, []byte("both")},
		{"long", 0, bytes.Repeat([]byte{'x'}, 256)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := NewMessage(tc.flags, tc.payload)

			var buf bytes.Buffer
			require.NoError(t, sendFrame(&buf, msg))

			flags, body, err := recvFrame(&buf, defaultMaxFrameSize)
			require.NoError(t, err)

			got := NewMessageFromOwned(decodeMsgFlags(flags), body)
			require.Equal(t, msg.Flags(), got.Flags())
			require.Equal(t, msg.Data(), got.Data())
		})
	}
}

func TestFrameLongBitSetIffOver255(t *testing.T) {
	for _, n := range []int{0, 1, 254, 255, 256, 257, 65535, 65536} {
		var buf bytes.Buffer
		msg := NewMessage(0, bytes.Repeat([]byte{'a'}, n))
		require.NoError(t, sendFrame(&buf, msg))

		wire := buf.Bytes()
		isLong := wire[0]&flagLong != 0
		require.Equalf(t, n > 255, isLong, "n=%d", n)

		flags, body, err := recvFrame(&buf, defaultMaxFrameSize)
		require.NoError(t, err)
		require.Len(t, body, n)
		require.Equal(t, isLong, flags&flagLong != 0)
	}
}

func TestFrame256BoundaryWireBytes(t *testing.T) {
	var buf bytes.Buffer
	msg := NewMessage(0, bytes.Repeat([]byte{'z'}, 256))
	require.NoError(t, sendFrame(&buf, msg))

	wire := buf.Bytes()
	require.Equal(t, byte(flagLong), wire[0])
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 0}, wire[1:9])
	require.Equal(t, 256, len(wire[9:]))
}

func TestFrameEmptyCommandWire(t *testing.T) {
	var buf bytes.Buffer
	msg := NewMessage(FlagCommand, nil)
	require.NoError(t, sendFrame(&buf, msg))
	require.Equal(t, []byte{flagCommand, 0}, buf.Bytes())

	flags, body, err := recvFrame(&buf, defaultMaxFrameSize)
	require.NoError(t, err)
	require.Equal(t, flagCommand, flags)
	require.Empty(t, body)
}

func TestFrameOversizeRejected(t *testing.T) {
	var buf bytes.Buffer
	msg := NewMessage(0, bytes.Repeat([]byte{'a'}, 1024))
	require.NoError(t, sendFrame(&buf, msg))

	_, _, err := recvFrame(&buf, 100)
	require.ErrorIs(t, err, ErrFrameTooLarge)
}

func TestFramePeerCloseMidFrame(t *testing.T) {
	// Peer writes only the flags byte then closes: recv must fail rather
	// than return a short/zero-size message.
	r := bytes.NewReader([]byte{0x00})
	_, _, err := recvFrame(r, defaultMaxFrameSize)
	require.Error(t, err)
}
