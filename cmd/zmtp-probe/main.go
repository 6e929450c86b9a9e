// Copyright 2018 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command zmtp-probe is a manual interop tool: it either dials or listens
// on a ZMTP/3.0 endpoint, completes the NULL-mechanism handshake, and
// echoes every message it receives back to the peer. It is not part of the
// channel core; it exists to exercise Channel against a real peer end to
// end, outside of the test suite.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	zmtp "github.com/gale320/libzmtp"
)

var (
	listen bool
)

// RootCmd is the main command for the zmtp-probe binary.
var RootCmd = &cobra.Command{
	Use:   "zmtp-probe <endpoint>",
	Short: "dial or listen on a ZMTP/3.0 endpoint and echo messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := args[0]
		ch := zmtp.NewChannel()

		var err error
		if listen {
			err = ch.Listen(endpoint)
		} else {
			err = ch.Connect(endpoint)
		}
		if err != nil {
			return fmt.Errorf("handshake: %w", err)
		}
		defer ch.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "handshaken with peer mechanism=%s\n", ch.PeerMechanism())

		for {
			msg, err := ch.Recv()
			if err != nil {
				return fmt.Errorf("recv: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recv: %q (more=%v command=%v)\n", msg.Data(), msg.More(), msg.IsCommand())
			if err := ch.Send(msg); err != nil {
				return fmt.Errorf("send: %w", err)
			}
		}
	},
}

func init() {
	RootCmd.Flags().BoolVarP(&listen, "listen", "l", false, "listen instead of connect")
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
