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
	"encoding/binary"
	"fmt"
)

// Management protocol tags. Each tag identifies one record of the device
// descriptor TLV stream.
const (
	tagUSBSupported     byte = 0x01
	tagSerial           byte = 0x02
	tagUSBEnabled       byte = 0x03
	tagFormFactor       byte = 0x04
	tagFirmwareVersion  byte = 0x05
	tagAutoEjectTimeout byte = 0x06
	tagChalRespTimeout  byte = 0x07
	tagDeviceFlags      byte = 0x08
	tagAppVersions      byte = 0x09
	tagConfigLocked     byte = 0x0A
	tagUnlock           byte = 0x0B
	tagReboot           byte = 0x0C
	tagNFCSupported     byte = 0x0D
	tagNFCEnabled       byte = 0x0E
	tagIAPDetection     byte = 0x0F
	tagMoreData         byte = 0x10
	tagFreeForm         byte = 0x11
	tagHIDInitDelay     byte = 0x12
	tagPartNumber       byte = 0x13
	tagFPSVersion       byte = 0x14
	tagSTMVersion       byte = 0x15
	tagNFCRestricted    byte = 0x17
)

// DeviceInfo is the decoded device descriptor. Fields a response did not
// supply keep their zero value; optional fields use pointers so absence is
// distinct from zero. DeviceInfo values are never mutated after being
// returned; Merge builds a new value.
type DeviceInfo struct {
	// Serial is the device serial number, nil when the device does not
	// expose one (some variants never do)
	Serial *int32

	// TemplateStorageVersion is the fingerprint template storage firmware,
	// nil on devices without biometric hardware
	TemplateStorageVersion *Version

	// ImageProcessorVersion is the fingerprint image processor firmware,
	// nil on devices without biometric hardware
	ImageProcessorVersion *Version

	// USBSupported and USBEnabled describe the applications available and
	// currently switched on over the USB interface
	USBSupported Capability
	USBEnabled   Capability

	// NFCSupported and NFCEnabled are the NFC interface counterparts
	NFCSupported Capability
	NFCEnabled   Capability

	// Version is the device firmware version, the zero triple when not
	// reported (e.g. responses read over a restricted interface)
	Version Version

	// FormFactor is the physical packaging of the device
	FormFactor FormFactor

	// IsFIPS marks the FIPS-certified product series. For firmware before
	// 5.4.2 this is derived from the version range, after that from an
	// explicit flag in the form-factor byte.
	IsFIPS bool

	// IsSky marks the Security Key product series
	IsSky bool

	// AutoEjectTimeout is the touch-eject timeout in seconds, meaningful
	// only when DeviceFlags has FlagEject set
	AutoEjectTimeout uint16

	// ChallengeResponseTimeout is the OTP challenge-response touch timeout
	// in seconds
	ChallengeResponseTimeout byte

	// DeviceFlags holds the raw device behavior flags
	DeviceFlags DeviceFlag

	// ConfigLocked is true when the device configuration is protected by a
	// lock code
	ConfigLocked bool

	// NFCRestricted is true when the NFC interface is disabled until the
	// device is first plugged in over USB
	NFCRestricted bool
}

// DecodeDeviceInfo parses a raw management read-config response into a
// DeviceInfo. Unrecognized tags are ignored (see SetUnknownTagHook);
// recognized tags whose value does not match its expected size yield
// ErrMalformedResponse.
func DecodeDeviceInfo(raw []byte) (*DeviceInfo, error) {
	tlvs, err := ParseTLV(raw)
	if err != nil {
		return nil, err
	}
	return decodeInfo(tlvs)
}

// decodeInfo interprets an already-parsed tag map. Split from
// DecodeDeviceInfo so paged reads can overlay several maps before decoding.
func decodeInfo(tlvs TLVMap) (*DeviceInfo, error) {
	info := &DeviceInfo{}
	fipsFlag := false
	skyFlag := false

	for tag, value := range tlvs {
		var err error
		switch tag {
		case tagUSBSupported:
			info.USBSupported, err = parseCapability(value)
		case tagUSBEnabled:
			info.USBEnabled, err = parseCapability(value)
		case tagNFCSupported:
			info.NFCSupported, err = parseCapability(value)
		case tagNFCEnabled:
			info.NFCEnabled, err = parseCapability(value)
		case tagSerial:
			if len(value) != 4 {
				err = fmt.Errorf("serial number needs 4 bytes, got %d", len(value))
				break
			}
			serial := int32(binary.BigEndian.Uint32(value))
			info.Serial = &serial
		case tagFormFactor:
			if len(value) != 1 {
				err = fmt.Errorf("form factor needs 1 byte, got %d", len(value))
				break
			}
			info.FormFactor, fipsFlag, skyFlag = parseFormFactor(value[0])
		case tagFirmwareVersion:
			info.Version, err = parseVersion(value)
		case tagFPSVersion:
			var v Version
			if v, err = parseVersion(value); err == nil {
				info.TemplateStorageVersion = &v
			}
		case tagSTMVersion:
			var v Version
			if v, err = parseVersion(value); err == nil {
				info.ImageProcessorVersion = &v
			}
		case tagAutoEjectTimeout:
			if len(value) != 2 {
				err = fmt.Errorf("auto-eject timeout needs 2 bytes, got %d", len(value))
				break
			}
			info.AutoEjectTimeout = binary.BigEndian.Uint16(value)
		case tagChalRespTimeout:
			if len(value) != 1 {
				err = fmt.Errorf("challenge-response timeout needs 1 byte, got %d", len(value))
				break
			}
			info.ChallengeResponseTimeout = value[0]
		case tagDeviceFlags:
			if len(value) != 1 {
				err = fmt.Errorf("device flags need 1 byte, got %d", len(value))
				break
			}
			info.DeviceFlags = DeviceFlag(value[0])
		case tagConfigLocked:
			info.ConfigLocked, err = parseBool(value)
		case tagNFCRestricted:
			info.NFCRestricted, err = parseBool(value)
		case tagAppVersions, tagUnlock, tagReboot, tagIAPDetection,
			tagMoreData, tagFreeForm, tagHIDInitDelay, tagPartNumber:
			// Recognized but carries nothing the descriptor records
		default:
			reportUnknownTag(tag, value)
		}
		if err != nil {
			return nil, newTagError(tag, err.Error())
		}
	}

	// FIPS-series detection changed with firmware 5.4.2: from there on the
	// form-factor byte carries the authoritative flag, before that the
	// 4.4.x FIPS build range is the only signal.
	if info.Version.AtLeast(fipsFlagVersion) {
		info.IsFIPS = fipsFlag
	} else {
		info.IsFIPS = info.Version.AtLeast(fipsRangeStart) && info.Version.Less(fipsRangeEnd)
	}
	info.IsSky = info.IsSky || skyFlag

	return info, nil
}

// parseBool decodes a single-byte boolean; 1 is true, anything else false.
func parseBool(value []byte) (bool, error) {
	if len(value) != 1 {
		return false, fmt.Errorf("boolean needs 1 byte, got %d", len(value))
	}
	return value[0] == 1, nil
}

// Merge combines two descriptors of the same physical device, typically
// partial views obtained over different transport interfaces. Neither input
// is modified. A nil other behaves as an all-default descriptor, so
// info.Merge(nil) is a copy of info.
//
// Precedence is decided per field, never descriptor-wide: capability sets
// and flags are unioned because each interface may expose a disjoint subset
// of the same hardware; scalar identity fields take whichever side actually
// reported one, preferring info; the auto-eject timeout follows whichever
// side carries FlagEject, since the value is meaningless without its flag.
func (info *DeviceInfo) Merge(other *DeviceInfo) *DeviceInfo {
	if other == nil {
		other = &DeviceInfo{}
	}

	merged := &DeviceInfo{
		USBSupported: info.USBSupported | other.USBSupported,
		USBEnabled:   info.USBEnabled | other.USBEnabled,
		NFCSupported: info.NFCSupported | other.NFCSupported,
		NFCEnabled:   info.NFCEnabled | other.NFCEnabled,

		IsFIPS:        info.IsFIPS || other.IsFIPS,
		IsSky:         info.IsSky || other.IsSky,
		NFCRestricted: info.NFCRestricted || other.NFCRestricted,

		DeviceFlags: info.DeviceFlags | other.DeviceFlags,
	}

	merged.Serial = copySerial(info.Serial)
	if merged.Serial == nil {
		merged.Serial = copySerial(other.Serial)
	}

	merged.FormFactor = info.FormFactor
	if merged.FormFactor == FormFactorUnknown {
		merged.FormFactor = other.FormFactor
	}

	merged.Version = info.Version
	if merged.Version.IsZero() {
		merged.Version = other.Version
	}

	merged.TemplateStorageVersion = copyVersion(info.TemplateStorageVersion)
	if merged.TemplateStorageVersion == nil {
		merged.TemplateStorageVersion = copyVersion(other.TemplateStorageVersion)
	}

	merged.ImageProcessorVersion = copyVersion(info.ImageProcessorVersion)
	if merged.ImageProcessorVersion == nil {
		merged.ImageProcessorVersion = copyVersion(other.ImageProcessorVersion)
	}

	// The timeout is authoritative only on the side that carries the eject
	// flag; without the flag on either side the value stays default.
	switch {
	case info.DeviceFlags.Has(FlagEject):
		merged.AutoEjectTimeout = info.AutoEjectTimeout
	case other.DeviceFlags.Has(FlagEject):
		merged.AutoEjectTimeout = other.AutoEjectTimeout
	}

	merged.ChallengeResponseTimeout = info.ChallengeResponseTimeout
	if merged.ChallengeResponseTimeout == 0 {
		merged.ChallengeResponseTimeout = other.ChallengeResponseTimeout
	}

	merged.ConfigLocked = info.ConfigLocked
	if !merged.ConfigLocked {
		merged.ConfigLocked = other.ConfigLocked
	}

	return merged
}

// clone returns a deep copy, used to keep cached descriptors private.
func (info *DeviceInfo) clone() *DeviceInfo {
	dup := *info
	dup.Serial = copySerial(info.Serial)
	dup.TemplateStorageVersion = copyVersion(info.TemplateStorageVersion)
	dup.ImageProcessorVersion = copyVersion(info.ImageProcessorVersion)
	return &dup
}

func copySerial(serial *int32) *int32 {
	if serial == nil {
		return nil
	}
	dup := *serial
	return &dup
}

func copyVersion(version *Version) *Version {
	if version == nil {
		return nil
	}
	dup := *version
	return &dup
}
