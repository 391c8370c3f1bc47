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

import "fmt"

// FormFactor is the physical packaging classification of a device.
type FormFactor byte

const (
	// FormFactorUnknown means the device did not report a form factor
	FormFactorUnknown FormFactor = iota
	// FormFactorUSBAKeychain is a full-size USB-A key
	FormFactorUSBAKeychain
	// FormFactorUSBANano is a low-profile USB-A key
	FormFactorUSBANano
	// FormFactorUSBCKeychain is a full-size USB-C key
	FormFactorUSBCKeychain
	// FormFactorUSBCNano is a low-profile USB-C key
	FormFactorUSBCNano
	// FormFactorUSBCLightning is a dual USB-C/Lightning key
	FormFactorUSBCLightning
	// FormFactorUSBABio is a USB-A key with a fingerprint sensor
	FormFactorUSBABio
	// FormFactorUSBCBio is a USB-C key with a fingerprint sensor
	FormFactorUSBCBio
)

// The top two bits of the form-factor byte are repurposed as product-series
// flags and are not part of the form-factor enumeration.
const (
	formFactorFIPSFlag byte = 0x80
	formFactorSkyFlag  byte = 0x40
	formFactorMask     byte = 0x3F
)

// parseFormFactor splits the wire byte into the form-factor enumeration and
// the two series flags packed into its top bits.
func parseFormFactor(value byte) (formFactor FormFactor, fips, sky bool) {
	return FormFactor(value & formFactorMask),
		value&formFactorFIPSFlag != 0,
		value&formFactorSkyFlag != 0
}

func (f FormFactor) String() string {
	switch f {
	case FormFactorUSBAKeychain:
		return "USB-A Keychain"
	case FormFactorUSBANano:
		return "USB-A Nano"
	case FormFactorUSBCKeychain:
		return "USB-C Keychain"
	case FormFactorUSBCNano:
		return "USB-C Nano"
	case FormFactorUSBCLightning:
		return "USB-C/Lightning"
	case FormFactorUSBABio:
		return "USB-A Bio"
	case FormFactorUSBCBio:
		return "USB-C Bio"
	case FormFactorUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("FormFactor(0x%02X)", byte(f))
	}
}
