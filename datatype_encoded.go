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

import "fmt"

// DictionaryType represents values as integer keys into a separately
// described value set.
type DictionaryType struct {
	IndexType DataType
	ValueType DataType
	Ordered   bool
}

// NewDictionaryType validates the key/value combination: the index type
// must be a fixed-width integer and the value type must not itself be a
// dictionary.
func NewDictionaryType(index, value DataType, ordered bool) (*DictionaryType, error) {
	if index == nil || value == nil {
		panic("tabular: nil index or value type for DictionaryType")
	}
	if !IsInteger(index.ID()) {
		return nil, fmt.Errorf("%w: dictionary index type must be integer, got %s", ErrInvalidTypeParameters, index)
	}
	if value.ID() == DICTIONARY {
		return nil, fmt.Errorf("%w: dictionary value type cannot be a dictionary", ErrInvalidTypeParameters)
	}
	return &DictionaryType{IndexType: index, ValueType: value, Ordered: ordered}, nil
}

func (*DictionaryType) ID() Type     { return DICTIONARY }
func (*DictionaryType) Name() string { return "dictionary" }

func (t *DictionaryType) String() string {
	ordered := ""
	if t.Ordered {
		ordered = ", ordered"
	}
	return fmt.Sprintf("dictionary<values=%v, indices=%v%s>", t.ValueType, t.IndexType, ordered)
}

// BitWidth returns the bit width of the index type.
func (t *DictionaryType) BitWidth() int {
	return t.IndexType.(FixedWidthDataType).BitWidth()
}

func (t *DictionaryType) Fingerprint() string {
	ordered := "1"
	if !t.Ordered {
		ordered = "0"
	}
	return typeFingerprint(t) + ordered + "{" + t.IndexType.Fingerprint() + ";" + t.ValueType.Fingerprint() + ";}"
}

// EncodedType is implemented by types that describe an encoding over
// another logical type.
type EncodedType interface {
	DataType
	Encoded() DataType
}

// RunEndEncodedType describes repeated runs of values via parallel
// run-ends and values child fields.
type RunEndEncodedType struct {
	ends DataType
	enc  DataType
}

// NewRunEndEncodedType validates that the run-ends type is one of int16,
// int32 or int64 before constructing the type.
func NewRunEndEncodedType(runEnds, values DataType) (*RunEndEncodedType, error) {
	if runEnds == nil || values == nil {
		panic("tabular: nil run ends or values type for RunEndEncodedType")
	}
	switch runEnds.ID() {
	case INT16, INT32, INT64:
	default:
		return nil, fmt.Errorf("%w: run-ends type must be int16, int32 or int64, got %s", ErrInvalidTypeParameters, runEnds)
	}
	return &RunEndEncodedType{ends: runEnds, enc: values}, nil
}

// RunEndEncodedOf is NewRunEndEncodedType for statically-known parameters;
// it panics on an invalid run-ends type.
func RunEndEncodedOf(runEnds, values DataType) *RunEndEncodedType {
	t, err := NewRunEndEncodedType(runEnds, values)
	if err != nil {
		panic(err)
	}
	return t
}

func (*RunEndEncodedType) ID() Type     { return RUN_END_ENCODED }
func (*RunEndEncodedType) Name() string { return "run_end_encoded" }

func (t *RunEndEncodedType) String() string {
	return t.Name() + "<run_ends: " + t.ends.String() + ", values: " + t.enc.String() + ">"
}

func (t *RunEndEncodedType) Fingerprint() string {
	return typeFingerprint(t) + "{" + t.ends.Fingerprint() + ";" + t.enc.Fingerprint() + ";}"
}

func (t *RunEndEncodedType) RunEnds() DataType { return t.ends }
func (t *RunEndEncodedType) Encoded() DataType { return t.enc }

func (t *RunEndEncodedType) Fields() []Field {
	return []Field{
		{Name: "run_ends", Type: t.ends},
		{Name: "values", Type: t.enc, Nullable: true},
	}
}

func (t *RunEndEncodedType) NumFields() int { return 2 }

var (
	_ DataType    = (*DictionaryType)(nil)
	_ NestedType  = (*RunEndEncodedType)(nil)
	_ EncodedType = (*RunEndEncodedType)(nil)
)
