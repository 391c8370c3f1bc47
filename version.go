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

// Version is a firmware version triple. Ordering is lexicographic over
// (Major, Minor, Patch); the zero value compares below every real release.
type Version struct {
	Major byte
	Minor byte
	Patch byte
}

// Firmware boundaries that gate interpretation rules.
var (
	// fipsRangeStart..fipsRangeEnd (exclusive) is the firmware range that
	// is FIPS-series by version alone; those builds carry no explicit flag.
	fipsRangeStart = Version{Major: 4, Minor: 4, Patch: 0}
	fipsRangeEnd   = Version{Major: 4, Minor: 5, Patch: 0}

	// From fipsFlagVersion on, the form-factor byte carries an explicit
	// FIPS flag and the flag is authoritative over the version range.
	fipsFlagVersion = Version{Major: 5, Minor: 4, Patch: 2}
)

// versionLength is the wire size of an encoded version triple
const versionLength = 3

// parseVersion decodes a 3-byte (major, minor, patch) value.
func parseVersion(value []byte) (Version, error) {
	if len(value) != versionLength {
		return Version{}, fmt.Errorf("version needs %d bytes, got %d", versionLength, len(value))
	}
	return Version{Major: value[0], Minor: value[1], Patch: value[2]}, nil
}

// Compare returns -1, 0 or 1 as v orders before, equal to or after other.
func (v Version) Compare(other Version) int {
	pairs := [3][2]byte{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	}
	for _, p := range pairs {
		if p[0] != p[1] {
			if p[0] < p[1] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Less returns true if v orders strictly before other
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// AtLeast returns true if v orders at or after other
func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}

// IsZero returns true for the unset version (0,0,0)
func (v Version) IsZero() bool {
	return v == Version{}
}

// String formats the version as "major.minor.patch"
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// bytes returns the wire encoding of the triple
func (v Version) bytes() []byte {
	return []byte{v.Major, v.Minor, v.Patch}
}
