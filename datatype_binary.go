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

type BinaryType struct{}

func (t *BinaryType) ID() Type            { return BINARY }
func (t *BinaryType) Name() string        { return "binary" }
func (t *BinaryType) String() string      { return "binary" }
func (t *BinaryType) binary()             {}
func (t *BinaryType) Fingerprint() string { return typeFingerprint(t) }
func (BinaryType) IsUtf8() bool           { return false }

type StringType struct{}

func (t *StringType) ID() Type            { return STRING }
func (t *StringType) Name() string        { return "utf8" }
func (t *StringType) String() string      { return "utf8" }
func (t *StringType) binary()             {}
func (t *StringType) Fingerprint() string { return typeFingerprint(t) }
func (StringType) IsUtf8() bool           { return true }

type LargeBinaryType struct{}

func (t *LargeBinaryType) ID() Type            { return LARGE_BINARY }
func (t *LargeBinaryType) Name() string        { return "large_binary" }
func (t *LargeBinaryType) String() string      { return "large_binary" }
func (t *LargeBinaryType) binary()             {}
func (t *LargeBinaryType) Fingerprint() string { return typeFingerprint(t) }
func (LargeBinaryType) IsUtf8() bool           { return false }

type LargeStringType struct{}

func (t *LargeStringType) ID() Type            { return LARGE_STRING }
func (t *LargeStringType) Name() string        { return "large_utf8" }
func (t *LargeStringType) String() string      { return "large_utf8" }
func (t *LargeStringType) binary()             {}
func (t *LargeStringType) Fingerprint() string { return typeFingerprint(t) }
func (LargeStringType) IsUtf8() bool           { return true }

// BinaryViewType describes variable-length byte sequences laid out with the
// view (length-prefix inline) representation rather than offsets.
type BinaryViewType struct{}

func (*BinaryViewType) ID() Type              { return BINARY_VIEW }
func (*BinaryViewType) Name() string          { return "binary_view" }
func (*BinaryViewType) String() string        { return "binary_view" }
func (*BinaryViewType) binary()               {}
func (*BinaryViewType) IsUtf8() bool          { return false }
func (t *BinaryViewType) Fingerprint() string { return typeFingerprint(t) }

// StringViewType is BinaryViewType with a UTF8 guarantee on the values.
type StringViewType struct{}

func (*StringViewType) ID() Type              { return STRING_VIEW }
func (*StringViewType) Name() string          { return "string_view" }
func (*StringViewType) String() string        { return "string_view" }
func (*StringViewType) binary()               {}
func (*StringViewType) IsUtf8() bool          { return true }
func (t *StringViewType) Fingerprint() string { return typeFingerprint(t) }

// BinaryTypes holds the canonical instance of each variable-length binary
// and string type.
var BinaryTypes = struct {
	Binary      BinaryDataType
	String      BinaryDataType
	LargeBinary BinaryDataType
	LargeString BinaryDataType
	BinaryView  BinaryDataType
	StringView  BinaryDataType
}{
	Binary:      &BinaryType{},
	String:      &StringType{},
	LargeBinary: &LargeBinaryType{},
	LargeString: &LargeStringType{},
	BinaryView:  &BinaryViewType{},
	StringView:  &StringViewType{},
}
