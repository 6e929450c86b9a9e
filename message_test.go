// Copyright 2018 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package libzmtp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMessageCopies(t *testing.T) {
	src := []byte("hello")
	msg := NewMessage(FlagMore, src)

	src[0] = 'X'
	require.Equal(t, "hello", string(msg.Data()))
}

func TestNewMessageFromOwnedAdopts(t *testing.T) {
	buf := []byte("owned")
	msg := NewMessageFromOwned(FlagCommand, buf)

	require.Equal(t, buf, msg.Data())
	require.True(t, msg.IsCommand())
	require.False(t, msg.More())
}

func TestMessageZeroLength(t *testing.T) {
	msg := NewMessage(0, nil)
	require.Equal(t, 0, msg.Size())
	require.Empty(t, msg.Data())
}

func TestMessageFlags(t *testing.T) {
	msg := NewMessage(FlagMore|FlagCommand, []byte("x"))
	require.True(t, msg.More())
	require.True(t, msg.IsCommand())
	require.Equal(t, FlagMore|FlagCommand, msg.Flags())
}
