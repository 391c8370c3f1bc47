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
	"errors"
	"fmt"
)

// Error categories for the management protocol
var (
	// Response errors - the device answered but the payload is unusable.
	// A truncated descriptor is never treated as a valid partial one.
	ErrMalformedResponse = errors.New("malformed device response")

	// Transport errors - surfaced from the transport collaborator
	ErrTransportClosed = errors.New("transport is closed")
	ErrCommandFailed   = errors.New("command execution failed")

	// Data errors - not retryable
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ResponseError wraps a malformed-response condition with the tag being
// decoded when the failure was detected, for protocol-level debugging.
type ResponseError struct {
	Reason string
	Tag    byte
	HasTag bool
}

func (e *ResponseError) Error() string {
	if e.HasTag {
		return fmt.Sprintf("%v: tag 0x%02X: %s", ErrMalformedResponse, e.Tag, e.Reason)
	}
	return fmt.Sprintf("%v: %s", ErrMalformedResponse, e.Reason)
}

// Unwrap makes the error match ErrMalformedResponse via errors.Is.
func (*ResponseError) Unwrap() error {
	return ErrMalformedResponse
}

// newResponseError creates a malformed-response error with no tag context
func newResponseError(reason string) *ResponseError {
	return &ResponseError{Reason: reason}
}

// newTagError creates a malformed-response error attributed to a tag
func newTagError(tag byte, reason string) *ResponseError {
	return &ResponseError{Reason: reason, Tag: tag, HasTag: true}
}

// IsMalformedResponse returns true if the error indicates an unusable
// device response
func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}
