/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// HandleMetric is the per-actor instrumentation every localHandle
// registers at Start, mirroring goakt's internal/metric.ActorMetric:
// mailboxSize is reported through a Meter.RegisterCallback observable
// gauge, receiveDuration is recorded directly from invoke on every
// message.
type HandleMetric struct {
	mailboxSize     metric.Int64ObservableGauge
	receiveDuration metric.Int64Histogram
}

// NewHandleMetric creates the instruments this handle's metrics are
// recorded against.
func NewHandleMetric(meter metric.Meter) (*HandleMetric, error) {
	m := new(HandleMetric)
	var err error

	if m.mailboxSize, err = meter.Int64ObservableGauge(
		"actor_mailbox_size",
		metric.WithDescription("Current number of envelopes queued in the actor's mailbox"),
	); err != nil {
		return nil, fmt.Errorf("failed to create mailboxSize instrument: %w", err)
	}

	if m.receiveDuration, err = meter.Int64Histogram(
		"actor_receive_duration",
		metric.WithDescription("The latency of the last message processed, in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create receiveDuration instrument: %w", err)
	}

	return m, nil
}

// MailboxSize returns the observable gauge instrument for mailbox depth.
func (m *HandleMetric) MailboxSize() metric.Int64ObservableGauge {
	return m.mailboxSize
}

// ReceiveDuration returns the histogram instrument for per-message latency.
func (m *HandleMetric) ReceiveDuration() metric.Int64Histogram {
	return m.receiveDuration
}
