// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tabular

import "errors"

// Sentinel errors for the type model and the C Data Interface bridge.
// Callers should match them with errors.Is; the wrapped message carries
// the offending value.
var (
	// ErrInvalidTypeParameters reports a parameter combination a type
	// variant cannot represent, e.g. decimal precision 0 or a union whose
	// type-id list does not match its children.
	ErrInvalidTypeParameters = errors.New("tabular: invalid type parameters")

	// ErrUnsupportedFormatToken reports an unrecognized or malformed
	// format grammar code.
	ErrUnsupportedFormatToken = errors.New("tabular: unsupported format token")

	// ErrFieldNotFound reports a by-name lookup with zero matches.
	ErrFieldNotFound = errors.New("tabular: field not found")

	// ErrFieldNameAmbiguous reports a by-name lookup with two or more
	// matches. Lookup by index is unaffected by duplicate names.
	ErrFieldNameAmbiguous = errors.New("tabular: field name ambiguous")

	// ErrInvalidMetadataEncoding reports a truncated or inconsistent
	// binary metadata buffer.
	ErrInvalidMetadataEncoding = errors.New("tabular: invalid metadata encoding")

	// ErrNullPointerViolation reports a null pointer in an imported C
	// record where the ABI requires a non-null one.
	ErrNullPointerViolation = errors.New("tabular: null pointer violation")

	// ErrRecursionLimitExceeded reports an imported type tree deeper than
	// the configured bound.
	ErrRecursionLimitExceeded = errors.New("tabular: recursion limit exceeded")

	// ErrInvalidUTF8 reports malformed text in an imported format, name
	// or metadata string.
	ErrInvalidUTF8 = errors.New("tabular: invalid utf8")
)
