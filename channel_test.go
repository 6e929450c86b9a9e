// Copyright 2018 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package libzmtp

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptLine is one step of a recorded byte exchange, modeled on
// original_source/test/zmtp_selftest.c's struct script_line: 'o' sends
// fixed bytes to the client under test, 'i' expects to receive them.
type scriptLine struct {
	out  bool
	data []byte
}

func o(data ...byte) scriptLine { return scriptLine{out: true, data: data} }
func i(data ...byte) scriptLine { return scriptLine{out: false, data: data} }

// runScriptedServer accepts one connection on ln and plays script against
// it, failing t if the peer doesn't send exactly what's expected. Used by
// the scripted-handshake and already-connected tests, matching
// s_test_server in the C original.
func runScriptedServer(t *testing.T, ln net.Listener, script []scriptLine) <-chan struct{} {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		for _, step := range script {
			if step.out {
				if err := sendAll(conn, step.data); err != nil {
					t.Errorf("scripted server: send: %v", err)
					return
				}
				continue
			}
			buf := make([]byte, len(step.data))
			if err := recvAll(conn, buf); err != nil {
				t.Errorf("scripted server: recv: %v", err)
				return
			}
			if string(buf) != string(step.data) {
				t.Errorf("scripted server: got %q want %q", buf, step.data)
				return
			}
		}
	}()
	return done
}

func readyExchange() []scriptLine {
	return []scriptLine{
		o(0xFF, 0, 0, 0, 0, 0, 0, 0, 1, 0x7F),
		o('\x03', '\x00'),
		o(append([]byte("NULL"), make([]byte, 16)...)...),
		o(make([]byte, 32)...),
		i(0xFF, 0, 0, 0, 0, 0, 0, 0, 1, 0x7F),
		i('\x03', '\x00'),
		i(append([]byte("NULL"), make([]byte, 16)...)...),
		i(make([]byte, 32)...),
		o(0x04, 6, 5, 'R', 'E', 'A', 'D', 'Y'),
		i(0x04, 6, 5, 'R', 'E', 'A', 'D', 'Y'),
	}
}

func TestChannelScriptedHandshakeAndPingPong(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	script := append(readyExchange(),
		i(0x01, 6, 'p', 'i', 'n', 'g', ' ', '1'),
		i(0x00, 6, 'p', 'i', 'n', 'g', ' ', '2'),
		o(0x01, 6, 'p', 'o', 'n', 'g', ' ', '1'),
		o(0x00, 6, 'p', 'o', 'n', 'g', ' ', '2'),
	)
	done := runScriptedServer(t, ln, script)

	ch := NewChannel()
	require.NoError(t, ch.Connect("tcp://"+ln.Addr().String()))
	defer ch.Close()

	require.NoError(t, ch.Send(NewMessage(FlagMore, []byte("ping 1"))))
	require.NoError(t, ch.Send(NewMessage(0, []byte("ping 2"))))

	pong1, err := ch.Recv()
	require.NoError(t, err)
	require.Equal(t, "pong 1", string(pong1.Data()))
	require.True(t, pong1.More())

	pong2, err := ch.Recv()
	require.NoError(t, err)
	require.Equal(t, "pong 2", string(pong2.Data()))
	require.False(t, pong2.More())

	<-done
}

func TestChannelEchoLoop(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 80)
		for {
			n, err := conn.Read(buf)
			if n > 0 {
				_ = sendAll(conn, buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()

	client := NewChannel()
	require.NoError(t, client.Connect("tcp://"+ln.Addr().String()))
	defer client.Close()

	payloads := []string{"1", "22", "333", "4444", "55555"}
	for _, p := range payloads {
		require.NoError(t, client.Send(NewMessage(0, []byte(p))))
		got, err := client.Recv()
		require.NoError(t, err)
		require.Equal(t, p, string(got.Data()))
		require.Equal(t, MsgFlag(0), got.Flags())
	}
}

func TestChannelBadSignatureFailsConnect(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_ = sendAll(conn, []byte{0x00})
	}()

	ch := NewChannel()
	err = ch.Connect("tcp://" + ln.Addr().String())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestChannelPeerCloseMidFrame(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	script := readyExchange()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		for _, step := range script {
			if step.out {
				_ = sendAll(conn, step.data)
			} else {
				buf := make([]byte, len(step.data))
				_ = recvAll(conn, buf)
			}
		}
		conn.Close() // close before sending the next frame's size byte
	}()

	ch := NewChannel()
	require.NoError(t, ch.Connect("tcp://"+ln.Addr().String()))
	defer ch.Close()

	_, err = ch.Recv()
	require.Error(t, err)
}

func TestChannelAlreadyConnected(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	runScriptedServer(t, ln, readyExchange())

	ch := NewChannel()
	require.NoError(t, ch.Connect("tcp://"+ln.Addr().String()))
	defer ch.Close()

	err = ch.Connect("tcp://" + ln.Addr().String())
	require.ErrorIs(t, err, ErrAlreadyConnected)
}

func TestChannelConnectBadEndpointIsParseKind(t *testing.T) {
	ch := NewChannel()
	err := ch.Connect("tcp://no-port-here")
	require.Error(t, err)

	var zerr *Error
	require.ErrorAs(t, err, &zerr)
	require.Equal(t, KindEndpointParse, zerr.Kind)
}

func TestChannelSendRecvRequireHandshake(t *testing.T) {
	ch := NewChannel()
	_, err := ch.Recv()
	require.ErrorIs(t, err, ErrNotHandshaken)
	require.ErrorIs(t, ch.Send(NewMessage(0, nil)), ErrNotHandshaken)
}
