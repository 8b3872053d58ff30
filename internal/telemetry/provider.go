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

// Package telemetry wraps the global otel MeterProvider the way goakt's
// internal/metric package does, so the rest of the runtime never imports
// go.opentelemetry.io/otel directly.
package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/cchandler/akka/actor"

// Provider hands out the Meter every localHandle registers its
// instruments against.
type Provider struct {
	meter metric.Meter
}

// NewProvider returns a Provider bound to the process-wide global
// MeterProvider. Until a real exporter is configured via
// otel.SetMeterProvider, every instrument it creates is a no-op.
func NewProvider() *Provider {
	return &Provider{meter: otel.GetMeterProvider().Meter(instrumentationName)}
}

// Meter returns the Meter used by this Provider.
func (p *Provider) Meter() metric.Meter {
	return p.meter
}
