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

// Package testutil builds raw management-protocol payloads for tests.
// Unlike the production encoder it places records in argument order and
// never validates, so tests can construct duplicate-tag and malformed
// streams.
package testutil

// TLV builds a single (tag, length, value) record
func TLV(tag byte, value ...byte) []byte {
	record := make([]byte, 0, 2+len(value))
	record = append(record, tag, byte(len(value)))
	return append(record, value...)
}

// Stream concatenates records and prefixes the total length byte,
// producing a complete read-config response buffer
func Stream(records ...[]byte) []byte {
	total := 0
	for _, record := range records {
		total += len(record)
	}
	buf := make([]byte, 1, 1+total)
	buf[0] = byte(total)
	for _, record := range records {
		buf = append(buf, record...)
	}
	return buf
}

// InfoPage builds a read-config response page; when more is true the page
// carries the continuation tag
func InfoPage(more bool, records ...[]byte) []byte {
	if more {
		records = append(records, TLV(0x10, 0x01))
	}
	return Stream(records...)
}
