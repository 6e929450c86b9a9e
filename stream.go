// Copyright 2018 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package libzmtp

import (
	"errors"
	"io"
	"net"
)

// sendAll writes every byte of buf to w, looping over partial writes and
// retrying on transient interruption without advancing past what was
// already written. It mirrors zmtp_tcp_send from the source.
func sendAll(w io.Writer, buf []byte) error {
	for len(buf) > 0 {
		n, err := w.Write(buf)
		buf = buf[n:]
		if err != nil {
			if isInterrupt(err) {
				continue
			}
			return err
		}
	}
	return nil
}

// recvAll reads exactly len(buf) bytes from r, looping over partial reads
// and retrying on transient interruption. An orderly close (Read returning
// 0, io.EOF) observed before buf is full is reported as
// io.ErrUnexpectedEOF; a short read is never returned as success. Mirrors
// zmtp_tcp_recv from the source, which fails on rc==0 exactly the same way.
func recvAll(r io.Reader, buf []byte) error {
	read := 0
	for read < len(buf) {
		n, err := r.Read(buf[read:])
		read += n
		if err != nil {
			if isInterrupt(err) {
				continue
			}
			if err == io.EOF {
				if read == len(buf) {
					return nil
				}
				return io.ErrUnexpectedEOF
			}
			return err
		}
		if n == 0 {
			return io.ErrUnexpectedEOF
		}
	}
	return nil
}

// isInterrupt classifies err as a transient interruption that the caller
// should retry without advancing its cursor, matching the EINTR check in
// the source's zmtp_tcp_send/zmtp_tcp_recv.
func isInterrupt(err error) bool {
	var tempErr interface{ Temporary() bool }
	if errors.As(err, &tempErr) {
		return tempErr.Temporary()
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
