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
	"os"
)

// debugEnabled controls whether debug logging is active
var debugEnabled = false

func init() {
	// Enable debug logging if DEBUG environment variable is set
	if os.Getenv("SECKEY_DEBUG") != "" || os.Getenv("DEBUG") != "" {
		debugEnabled = true
	}
}

// debugf prints debug information when debug mode is enabled
func debugf(format string, args ...any) {
	if debugEnabled {
		_, _ = fmt.Fprintf(os.Stderr, "DEBUG: "+format+"\n", args...)
	}
}

// SetDebugEnabled allows programmatic control of debug logging
// Useful for testing or application-controlled debug modes
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// unknownTagHook receives tags the decoder does not recognize. Decoding
// never fails on an unknown tag; newer firmware is free to add tags.
var unknownTagHook func(tag byte, value []byte)

// SetUnknownTagHook installs a diagnostic callback invoked for every
// unrecognized tag encountered during decode. The hook must not retain the
// value slice. Pass nil to remove the hook. Not safe to call concurrently
// with decoding; install hooks during setup.
func SetUnknownTagHook(hook func(tag byte, value []byte)) {
	unknownTagHook = hook
}

// reportUnknownTag forwards an unrecognized tag to the debug log and hook
func reportUnknownTag(tag byte, value []byte) {
	debugf("ignoring unrecognized tag 0x%02X (%d bytes)", tag, len(value))
	if unknownTagHook != nil {
		unknownTagHook(tag, value)
	}
}
