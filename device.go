// Copyright 2026 The SecKey Project Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package seckey

import (
	"context"
	"fmt"

	deadlock "github.com/sasha-s/go-deadlock"
)

// cmdReadConfig is the management instruction that returns one page of the
// device descriptor TLV stream; its single argument is the page index.
const cmdReadConfig byte = 0x1D

// defaultPageLimit caps paged descriptor reads. Real devices answer in one
// or two pages; the cap guards against firmware that never clears the
// more-data tag.
const defaultPageLimit = 4

// Device binds a Transport to the management protocol and caches the
// decoded descriptor for the life of the connection.
//
// Thread Safety: Device is safe for concurrent use. The descriptor cache is
// guarded by a read-write lock; decoded descriptors handed out are private
// copies, never the cached value.
type Device struct {
	transport Transport
	info      *DeviceInfo
	pageLimit int
	mu        deadlock.RWMutex
}

// Option configures a Device
type Option func(*Device) error

// WithPageLimit overrides the maximum number of descriptor pages read per
// refresh
func WithPageLimit(limit int) Option {
	return func(d *Device) error {
		if limit < 1 {
			return fmt.Errorf("%w: page limit must be at least 1, got %d", ErrInvalidParameter, limit)
		}
		d.pageLimit = limit
		return nil
	}
}

// NewDevice creates a Device over the given transport
func NewDevice(transport Transport, opts ...Option) (*Device, error) {
	device := &Device{
		transport: transport,
		pageLimit: defaultPageLimit,
	}

	for _, opt := range opts {
		if err := opt(device); err != nil {
			return nil, err
		}
	}

	return device, nil
}

// Transport returns the underlying transport
func (d *Device) Transport() Transport {
	return d.transport
}

// DeviceInfo returns the device descriptor, reading it from the device on
// first use and serving a copy of the cached value afterwards.
func (d *Device) DeviceInfo(ctx context.Context) (*DeviceInfo, error) {
	d.mu.RLock()
	cached := d.info
	d.mu.RUnlock()
	if cached != nil {
		return cached.clone(), nil
	}
	return d.RefreshDeviceInfo(ctx)
}

// RefreshDeviceInfo re-reads the descriptor from the device, replacing the
// cache. Use after a configuration write, which can change capability and
// flag tags.
func (d *Device) RefreshDeviceInfo(ctx context.Context) (*DeviceInfo, error) {
	tlvs, err := d.readConfigPages(ctx)
	if err != nil {
		return nil, err
	}

	info, err := decodeInfo(tlvs)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.info = info.clone()
	d.mu.Unlock()

	return info, nil
}

// readConfigPages reads descriptor pages until the device stops signaling
// more data, overlaying each page's tags onto the combined map. Tags
// repeated on a later page override the earlier value.
func (d *Device) readConfigPages(ctx context.Context) (TLVMap, error) {
	if !d.transport.IsConnected() {
		return nil, ErrTransportClosed
	}

	combined := make(TLVMap)
	for page := 0; page < d.pageLimit; page++ {
		raw, err := d.transport.SendCommandWithContext(ctx, cmdReadConfig, []byte{byte(page)})
		if err != nil {
			return nil, fmt.Errorf("read config page %d: %w", page, err)
		}

		tlvs, err := ParseTLV(raw)
		if err != nil {
			return nil, fmt.Errorf("config page %d: %w", page, err)
		}

		more := false
		for tag, value := range tlvs {
			if tag == tagMoreData {
				more = true
				continue
			}
			combined[tag] = value
		}
		if !more {
			return combined, nil
		}
		debugf("config page %d signaled more data", page)
	}

	return nil, newResponseError(
		fmt.Sprintf("device kept signaling more data after %d pages", d.pageLimit))
}

// Close closes the underlying transport and drops the cached descriptor
func (d *Device) Close() error {
	d.mu.Lock()
	d.info = nil
	d.mu.Unlock()
	if err := d.transport.Close(); err != nil {
		return fmt.Errorf("failed to close transport: %w", err)
	}
	return nil
}
