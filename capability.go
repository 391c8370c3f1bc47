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
	"fmt"
	"strings"
)

// Capability is a bit-flag set of device applications, tracked separately
// per transport interface (USB, NFC) and per state (supported, enabled).
type Capability uint16

// CapabilityOTP indicates the one-time-password application
const CapabilityOTP Capability = 0x01

// CapabilityU2F indicates the CTAP1/U2F application
const CapabilityU2F Capability = 0x02

// CapabilityOpenPGP indicates the OpenPGP smart-card application
const CapabilityOpenPGP Capability = 0x08

// CapabilityPIV indicates the PIV smart-card application
const CapabilityPIV Capability = 0x10

// CapabilityOATH indicates the OATH TOTP/HOTP application
const CapabilityOATH Capability = 0x20

// CapabilityHSMAuth indicates the HSM authentication application
const CapabilityHSMAuth Capability = 0x100

// CapabilityFIDO2 indicates the CTAP2/FIDO2 application
const CapabilityFIDO2 Capability = 0x200

// parseCapability decodes a capability set from its wire form. Legacy
// firmware encodes the set in a single byte, later firmware in two
// big-endian bytes; the width is detected from the slice length alone,
// never from a firmware version check.
func parseCapability(value []byte) (Capability, error) {
	switch len(value) {
	case 1:
		return Capability(value[0]), nil
	case 2:
		return Capability(value[0])<<8 | Capability(value[1]), nil
	default:
		return 0, fmt.Errorf("capability set needs 1 or 2 bytes, got %d", len(value))
	}
}

// Has returns true if all bits of cap are set in c
func (c Capability) Has(capability Capability) bool {
	return c&capability == capability
}

// capabilityNames maps each defined bit to its display name, low bit first
var capabilityNames = []struct {
	name string
	bit  Capability
}{
	{"OTP", CapabilityOTP},
	{"U2F", CapabilityU2F},
	{"OpenPGP", CapabilityOpenPGP},
	{"PIV", CapabilityPIV},
	{"OATH", CapabilityOATH},
	{"HSMAuth", CapabilityHSMAuth},
	{"FIDO2", CapabilityFIDO2},
}

// String lists the set applications, e.g. "OTP|FIDO2". Bits with no
// defined name are preserved in decode/merge but omitted here.
func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	parts := make([]string, 0, len(capabilityNames))
	for _, entry := range capabilityNames {
		if c.Has(entry.bit) {
			parts = append(parts, entry.name)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("0x%04X", uint16(c))
	}
	return strings.Join(parts, "|")
}
