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
	"sort"
)

// TLVMap holds the records of a management TLV stream, keyed by tag.
// Values alias the buffer they were parsed from; callers that retain a
// TLVMap past the lifetime of the source buffer must copy the slices.
type TLVMap map[byte][]byte

// maxTLVStreamLength is the largest payload a single response can carry,
// limited by the one-byte length prefix.
const maxTLVStreamLength = 0xFF

// ParseTLV parses a management response buffer into a TLVMap.
//
// The buffer layout is a single length byte followed by exactly that many
// bytes of (tag, length, value) records, tags and lengths one byte each.
// A declared length that disagrees with the actual buffer size, or a record
// whose value runs past the end of the stream, yields ErrMalformedResponse.
//
// Duplicate tags are resolved last-write-wins, matching ordinary map
// insertion in the device's own tooling. Later pages of a paged response
// rely on this to override earlier values.
func ParseTLV(buf []byte) (TLVMap, error) {
	if len(buf) == 0 {
		return nil, newResponseError("empty response buffer")
	}

	declared := int(buf[0])
	if declared != len(buf)-1 {
		return nil, newResponseError(
			fmt.Sprintf("declared length %d but buffer holds %d bytes", declared, len(buf)-1))
	}

	stream := buf[1:]
	tlvs := make(TLVMap)
	for i := 0; i < len(stream); {
		tag := stream[i]
		if i+1 >= len(stream) {
			return nil, newTagError(tag, "record truncated before length byte")
		}
		length := int(stream[i+1])
		if i+2+length > len(stream) {
			return nil, newTagError(tag,
				fmt.Sprintf("value needs %d bytes, %d remain", length, len(stream)-i-2))
		}
		tlvs[tag] = stream[i+2 : i+2+length]
		i += 2 + length
	}
	return tlvs, nil
}

// Encode serializes the map back into the wire form ParseTLV accepts,
// records ordered by ascending tag. The management protocol writes device
// configuration in the same format it reads device information in, so the
// encoder shares the same constraints: no value may exceed 255 bytes and
// the whole stream must fit the one-byte length prefix.
func (m TLVMap) Encode() ([]byte, error) {
	tags := make([]int, 0, len(m))
	total := 0
	for tag, value := range m {
		if len(value) > maxTLVStreamLength {
			return nil, fmt.Errorf("%w: tag 0x%02X value is %d bytes, limit is %d",
				ErrInvalidParameter, tag, len(value), maxTLVStreamLength)
		}
		tags = append(tags, int(tag))
		total += 2 + len(value)
	}
	if total > maxTLVStreamLength {
		return nil, fmt.Errorf("%w: encoded stream is %d bytes, limit is %d",
			ErrInvalidParameter, total, maxTLVStreamLength)
	}
	sort.Ints(tags)

	out := make([]byte, 1, 1+total)
	out[0] = byte(total)
	for _, tag := range tags {
		value := m[byte(tag)]
		out = append(out, byte(tag), byte(len(value)))
		out = append(out, value...)
	}
	return out, nil
}
