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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInfo() *DeviceInfo {
	serial := int32(12345678)
	return &DeviceInfo{
		Serial:                   &serial,
		USBSupported:             CapabilityOTP | CapabilityFIDO2,
		USBEnabled:               CapabilityFIDO2,
		Version:                  Version{5, 4, 3},
		FormFactor:               FormFactorUSBAKeychain,
		AutoEjectTimeout:         60,
		ChallengeResponseTimeout: 15,
		DeviceFlags:              FlagEject,
		ConfigLocked:             true,
		IsSky:                    true,
		TemplateStorageVersion:   &Version{5, 2, 4},
	}
}

// merge(a, nil) must reproduce a field for field.
func TestMerge_NilIsIdentity(t *testing.T) {
	t.Parallel()

	info := sampleInfo()
	merged := info.Merge(nil)
	assert.Equal(t, info, merged)
	assert.NotSame(t, info, merged)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	primary := sampleInfo()
	primarySnapshot := sampleInfo()
	secondary := &DeviceInfo{NFCSupported: CapabilityOATH, NFCRestricted: true}
	secondarySnapshot := &DeviceInfo{NFCSupported: CapabilityOATH, NFCRestricted: true}

	merged := primary.Merge(secondary)
	assert.Equal(t, primarySnapshot, primary)
	assert.Equal(t, secondarySnapshot, secondary)

	// The merged value holds no pointers into either input
	require.NotNil(t, merged.Serial)
	assert.NotSame(t, primary.Serial, merged.Serial)
	require.NotNil(t, merged.TemplateStorageVersion)
	assert.NotSame(t, primary.TemplateStorageVersion, merged.TemplateStorageVersion)
}

// Capability sets union because the two views come from interfaces that can
// expose disjoint subsets of the same hardware.
func TestMerge_CapabilitiesUnionCommutatively(t *testing.T) {
	t.Parallel()

	a := &DeviceInfo{
		USBSupported: CapabilityOTP | CapabilityPIV,
		USBEnabled:   CapabilityOTP,
		NFCSupported: CapabilityOATH,
	}
	b := &DeviceInfo{
		USBSupported: CapabilityFIDO2,
		USBEnabled:   CapabilityFIDO2,
		NFCSupported: CapabilityFIDO2,
		NFCEnabled:   CapabilityFIDO2,
	}

	ab := a.Merge(b)
	ba := b.Merge(a)

	assert.Equal(t, CapabilityOTP|CapabilityPIV|CapabilityFIDO2, ab.USBSupported)
	assert.Equal(t, ab.USBSupported, ba.USBSupported)
	assert.Equal(t, ab.USBEnabled, ba.USBEnabled)
	assert.Equal(t, ab.NFCSupported, ba.NFCSupported)
	assert.Equal(t, ab.NFCEnabled, ba.NFCEnabled)
	assert.Equal(t, ab.DeviceFlags, ba.DeviceFlags)
}

// Scalar fields take the first non-default side, so swapping the operands
// changes the result when both sides report a value. This asymmetry is the
// point: the primary view wins.
func TestMerge_ScalarFieldsAreNotCommutative(t *testing.T) {
	t.Parallel()

	serialA := int32(1111)
	serialB := int32(2222)
	a := &DeviceInfo{Serial: &serialA, Version: Version{5, 2, 0}, FormFactor: FormFactorUSBANano}
	b := &DeviceInfo{Serial: &serialB, Version: Version{5, 7, 0}, FormFactor: FormFactorUSBCNano}

	ab := a.Merge(b)
	ba := b.Merge(a)

	assert.Equal(t, serialA, *ab.Serial)
	assert.Equal(t, serialB, *ba.Serial)
	assert.Equal(t, Version{5, 2, 0}, ab.Version)
	assert.Equal(t, Version{5, 7, 0}, ba.Version)
	assert.Equal(t, FormFactorUSBANano, ab.FormFactor)
	assert.Equal(t, FormFactorUSBCNano, ba.FormFactor)
}

func TestMerge_ScalarFallsBackToSecondary(t *testing.T) {
	t.Parallel()

	serial := int32(424242)
	a := &DeviceInfo{}
	b := &DeviceInfo{
		Serial:                   &serial,
		Version:                  Version{5, 4, 3},
		FormFactor:               FormFactorUSBCKeychain,
		ChallengeResponseTimeout: 10,
		ConfigLocked:             true,
		TemplateStorageVersion:   &Version{5, 2, 4},
		ImageProcessorVersion:    &Version{1, 0, 3},
	}

	merged := a.Merge(b)
	require.NotNil(t, merged.Serial)
	assert.Equal(t, serial, *merged.Serial)
	assert.Equal(t, Version{5, 4, 3}, merged.Version)
	assert.Equal(t, FormFactorUSBCKeychain, merged.FormFactor)
	assert.Equal(t, byte(10), merged.ChallengeResponseTimeout)
	assert.True(t, merged.ConfigLocked)
	require.NotNil(t, merged.TemplateStorageVersion)
	assert.Equal(t, Version{5, 2, 4}, *merged.TemplateStorageVersion)
	require.NotNil(t, merged.ImageProcessorVersion)
	assert.Equal(t, Version{1, 0, 3}, *merged.ImageProcessorVersion)
}

func TestMerge_BooleanFieldsOR(t *testing.T) {
	t.Parallel()

	a := &DeviceInfo{IsFIPS: true}
	b := &DeviceInfo{IsSky: true, NFCRestricted: true}

	merged := a.Merge(b)
	assert.True(t, merged.IsFIPS)
	assert.True(t, merged.IsSky)
	assert.True(t, merged.NFCRestricted)

	// OR is commutative and idempotent
	assert.Equal(t, merged.IsFIPS, b.Merge(a).IsFIPS)
	assert.True(t, merged.Merge(merged).IsSky)
}

// The auto-eject timeout only means anything on the side whose flags carry
// FlagEject, so the flag gates which side's value survives.
func TestMerge_AutoEjectTimeoutFollowsEjectFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		primary DeviceInfo
		second  DeviceInfo
		want    uint16
	}{
		{
			name:    "Primary_Has_Flag",
			primary: DeviceInfo{AutoEjectTimeout: 30, DeviceFlags: FlagEject},
			second:  DeviceInfo{AutoEjectTimeout: 99},
			want:    30,
		},
		{
			name:    "Only_Secondary_Has_Flag",
			primary: DeviceInfo{AutoEjectTimeout: 99},
			second:  DeviceInfo{AutoEjectTimeout: 45, DeviceFlags: FlagEject},
			want:    45,
		},
		{
			name:    "Neither_Has_Flag",
			primary: DeviceInfo{AutoEjectTimeout: 30},
			second:  DeviceInfo{AutoEjectTimeout: 45},
			want:    0,
		},
		{
			name:    "Both_Have_Flag_Primary_Wins",
			primary: DeviceInfo{AutoEjectTimeout: 30, DeviceFlags: FlagEject},
			second:  DeviceInfo{AutoEjectTimeout: 45, DeviceFlags: FlagEject},
			want:    30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			merged := tt.primary.Merge(&tt.second)
			assert.Equal(t, tt.want, merged.AutoEjectTimeout)
		})
	}
}

// Two partial views of one physical device, the shape USB+NFC split
// responses actually take.
func TestMerge_SplitTransportViews(t *testing.T) {
	t.Parallel()

	serial := int32(9876543)
	usb := &DeviceInfo{
		Serial:       &serial,
		USBSupported: CapabilityOTP | CapabilityPIV | CapabilityFIDO2,
		USBEnabled:   CapabilityOTP | CapabilityFIDO2,
		Version:      Version{5, 4, 3},
		FormFactor:   FormFactorUSBCKeychain,
	}
	nfc := &DeviceInfo{
		NFCSupported:  CapabilityOTP | CapabilityOATH | CapabilityFIDO2,
		NFCEnabled:    CapabilityFIDO2,
		NFCRestricted: true,
	}

	merged := usb.Merge(nfc)
	require.NotNil(t, merged.Serial)
	assert.Equal(t, serial, *merged.Serial)
	assert.Equal(t, Version{5, 4, 3}, merged.Version)
	assert.Equal(t, FormFactorUSBCKeychain, merged.FormFactor)
	assert.Equal(t, usb.USBSupported, merged.USBSupported)
	assert.Equal(t, nfc.NFCSupported, merged.NFCSupported)
	assert.True(t, merged.NFCRestricted)
}
