// Copyright 2018 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package libzmtp

import (
	metrics "github.com/docker/go-metrics"
)

// channelMetrics namespaces the labeled counters/timers exported for every
// Channel, following the same docker/go-metrics namespace-and-label idiom
// distribution-distribution uses for its cache and notification metrics
// (registry/storage/cache/metrics/prom.go, notifications/metrics.go).
type channelMetrics struct {
	framesSent   metrics.LabeledCounter
	framesRecv   metrics.LabeledCounter
	bytesSent    metrics.LabeledCounter
	bytesRecv    metrics.LabeledCounter
	handshakes   metrics.LabeledCounter
	handshakeDur metrics.LabeledTimer
}

var (
	zmtpNamespace = metrics.NewNamespace("zmtp", "channel", nil)

	defaultChannelMetrics = &channelMetrics{
		framesSent:   zmtpNamespace.NewLabeledCounter("frames_sent", "Frames sent on a channel", "mechanism"),
		framesRecv:   zmtpNamespace.NewLabeledCounter("frames_received", "Frames received on a channel", "mechanism"),
		bytesSent:    zmtpNamespace.NewLabeledCounter("bytes_sent", "Payload bytes sent on a channel", "mechanism"),
		bytesRecv:    zmtpNamespace.NewLabeledCounter("bytes_received", "Payload bytes received on a channel", "mechanism"),
		handshakes:   zmtpNamespace.NewLabeledCounter("handshakes", "Greeting handshakes attempted, by outcome", "result"),
		handshakeDur: zmtpNamespace.NewLabeledTimer("handshake_duration_seconds", "Time spent in the greeting/READY exchange", "mechanism"),
	}
)

func init() {
	metrics.Register(zmtpNamespace)
}
