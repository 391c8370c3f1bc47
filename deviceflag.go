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

// DeviceFlag is a bit-flag set of device behaviors. All bits are preserved
// through decode and merge even though only FlagEject feeds merge logic.
type DeviceFlag byte

// FlagRemoteWakeup lets the device wake the host over USB
const FlagRemoteWakeup DeviceFlag = 0x40

// FlagEject makes the device present as ejectable smart-card hardware that
// is inserted and removed by touch. The auto-eject timeout is only
// meaningful while this flag is set.
const FlagEject DeviceFlag = 0x80

// Has returns true if all bits of flag are set in f
func (f DeviceFlag) Has(flag DeviceFlag) bool {
	return f&flag == flag
}
