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

import (
	"github.com/tabular-io/tabular/internal/debug"
	"github.com/zeebo/xxh3"
)

// Type is the identifier of a logical type. Every DataType implementation
// maps to exactly one Type; generic operations switch exhaustively over it.
type Type int

const (
	// NULL type having no physical storage.
	NULL Type = iota

	// BOOL is a 1 bit, LSB bit-packed ordering.
	BOOL

	// INT8 is a signed 8-bit little-endian integer.
	INT8

	// UINT8 is an unsigned 8-bit little-endian integer.
	UINT8

	// INT16 is a signed 16-bit little-endian integer.
	INT16

	// UINT16 is an unsigned 16-bit little-endian integer.
	UINT16

	// INT32 is a signed 32-bit little-endian integer.
	INT32

	// UINT32 is an unsigned 32-bit little-endian integer.
	UINT32

	// INT64 is a signed 64-bit little-endian integer.
	INT64

	// UINT64 is an unsigned 64-bit little-endian integer.
	UINT64

	// FLOAT16 is a 2-byte floating point value.
	FLOAT16

	// FLOAT32 is a 4-byte floating point value.
	FLOAT32

	// FLOAT64 is an 8-byte floating point value.
	FLOAT64

	// DECIMAL128 is a precision- and scale-based decimal backed by 128 bits.
	DECIMAL128

	// DECIMAL256 is a precision- and scale-based decimal backed by 256 bits.
	DECIMAL256

	// STRING is a UTF8 variable-length string with 32-bit offsets.
	STRING

	// BINARY is a variable-length byte sequence with 32-bit offsets.
	BINARY

	// LARGE_STRING is like STRING but with 64-bit offsets.
	LARGE_STRING

	// LARGE_BINARY is like BINARY but with 64-bit offsets.
	LARGE_BINARY

	// STRING_VIEW is a UTF8 string using the view layout.
	STRING_VIEW

	// BINARY_VIEW is a byte sequence using the view layout.
	BINARY_VIEW

	// FIXED_SIZE_BINARY is a binary where each value occupies the same
	// number of bytes.
	FIXED_SIZE_BINARY

	// DATE32 is int32 days since the UNIX epoch.
	DATE32

	// DATE64 is int64 milliseconds since the UNIX epoch.
	DATE64

	// TIME32 is a signed 32-bit integer, representing either seconds or
	// milliseconds since midnight.
	TIME32

	// TIME64 is a signed 64-bit integer, representing either microseconds
	// or nanoseconds since midnight.
	TIME64

	// TIMESTAMP is an exact timestamp encoded as int64 since the UNIX
	// epoch, optionally anchored to a time zone.
	TIMESTAMP

	// DURATION is a measure of elapsed time in a fixed unit.
	DURATION

	// INTERVAL_MONTHS is a YEAR_MONTH interval in SQL style.
	INTERVAL_MONTHS

	// INTERVAL_DAY_TIME is a DAY_TIME interval in SQL style.
	INTERVAL_DAY_TIME

	// INTERVAL_MONTH_DAY_NANO is a calendar interval with three fields.
	INTERVAL_MONTH_DAY_NANO

	// LIST is a list of some logical type.
	LIST

	// LARGE_LIST is like LIST but with 64-bit offsets.
	LARGE_LIST

	// FIXED_SIZE_LIST is a fixed-length list of some logical type.
	FIXED_SIZE_LIST

	// STRUCT is an ordered sequence of named fields.
	STRUCT

	// SPARSE_UNION is a union where every child spans the full length.
	SPARSE_UNION

	// DENSE_UNION is a union with per-child offsets.
	DENSE_UNION

	// MAP is a repeated struct of key/value pairs.
	MAP

	// DICTIONARY represents values as integer keys into a value set.
	DICTIONARY

	// RUN_END_ENCODED represents runs of values via run-end and value
	// child fields.
	RUN_END_ENCODED

	// EXTENSION is a named, parameterized layer over a storage type.
	EXTENSION
)

var typeNames = [...]string{
	NULL:                    "null",
	BOOL:                    "bool",
	INT8:                    "int8",
	UINT8:                   "uint8",
	INT16:                   "int16",
	UINT16:                  "uint16",
	INT32:                   "int32",
	UINT32:                  "uint32",
	INT64:                   "int64",
	UINT64:                  "uint64",
	FLOAT16:                 "float16",
	FLOAT32:                 "float32",
	FLOAT64:                 "float64",
	DECIMAL128:              "decimal128",
	DECIMAL256:              "decimal256",
	STRING:                  "utf8",
	BINARY:                  "binary",
	LARGE_STRING:            "large_utf8",
	LARGE_BINARY:            "large_binary",
	STRING_VIEW:             "string_view",
	BINARY_VIEW:             "binary_view",
	FIXED_SIZE_BINARY:       "fixed_size_binary",
	DATE32:                  "date32",
	DATE64:                  "date64",
	TIME32:                  "time32",
	TIME64:                  "time64",
	TIMESTAMP:               "timestamp",
	DURATION:                "duration",
	INTERVAL_MONTHS:         "month_interval",
	INTERVAL_DAY_TIME:       "day_time_interval",
	INTERVAL_MONTH_DAY_NANO: "month_day_nano_interval",
	LIST:                    "list",
	LARGE_LIST:              "large_list",
	FIXED_SIZE_LIST:         "fixed_size_list",
	STRUCT:                  "struct",
	SPARSE_UNION:            "sparse_union",
	DENSE_UNION:             "dense_union",
	MAP:                     "map",
	DICTIONARY:              "dictionary",
	RUN_END_ENCODED:         "run_end_encoded",
	EXTENSION:               "extension",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "invalid"
}

// DataType is the representation of a logical type. Implementations are
// immutable once constructed and safe to share across goroutines.
type DataType interface {
	ID() Type
	// Name is the name of the data type.
	Name() string
	String() string
	// Fingerprint returns a deterministic encoding of the full type tree,
	// usable as a map key and as the basis for equality and hashing.
	Fingerprint() string
}

// FixedWidthDataType is a DataType that requires a fixed number of bits in
// memory for each element.
type FixedWidthDataType interface {
	DataType
	// BitWidth returns the number of bits required to store a single
	// element of this data type in memory.
	BitWidth() int
}

// BinaryDataType is implemented by the variable-length binary and string
// variants, including the large and view forms.
type BinaryDataType interface {
	DataType
	IsUtf8() bool
	binary()
}

// NestedType is a DataType whose children are full fields, not just types.
type NestedType interface {
	DataType
	Fields() []Field
	NumFields() int
}

// TemporalWithUnit is a DataType carrying a TimeUnit.
type TemporalWithUnit interface {
	FixedWidthDataType
	TimeUnit() TimeUnit
}

// IsInteger reports whether t is one of the signed or unsigned fixed-width
// integer types.
func IsInteger(t Type) bool {
	switch t {
	case INT8, UINT8, INT16, UINT16, INT32, UINT32, INT64, UINT64:
		return true
	}
	return false
}

// IsUnsignedInteger reports whether t is an unsigned fixed-width integer type.
func IsUnsignedInteger(t Type) bool {
	switch t {
	case UINT8, UINT16, UINT32, UINT64:
		return true
	}
	return false
}

// IsPrimitive reports whether t has no child types.
func IsPrimitive(t Type) bool {
	switch t {
	case LIST, LARGE_LIST, FIXED_SIZE_LIST, STRUCT, SPARSE_UNION, DENSE_UNION,
		MAP, DICTIONARY, RUN_END_ENCODED, EXTENSION:
		return false
	}
	return true
}

// IsNested reports whether t is a container with child fields.
func IsNested(t Type) bool {
	switch t {
	case LIST, LARGE_LIST, FIXED_SIZE_LIST, STRUCT, SPARSE_UNION, DENSE_UNION,
		MAP, RUN_END_ENCODED:
		return true
	}
	return false
}

// ChildFields returns the child fields of dt, or nil for leaf types.
// Dictionary and extension types are not nested: their value and storage
// types are reachable through WalkTypes instead.
func ChildFields(dt DataType) []Field {
	if nested, ok := dt.(NestedType); ok {
		return nested.Fields()
	}
	return nil
}

// WalkTypes visits dt and every type nested below it in pre-order. If visit
// returns false the children of the current type are skipped. Dictionary
// types descend into index and value types, extension types into their
// storage type.
func WalkTypes(dt DataType, visit func(DataType) bool) {
	if dt == nil {
		return
	}
	if !visit(dt) {
		return
	}
	switch t := dt.(type) {
	case *DictionaryType:
		WalkTypes(t.IndexType, visit)
		WalkTypes(t.ValueType, visit)
	case ExtensionType:
		WalkTypes(t.StorageType(), visit)
	case NestedType:
		for _, f := range t.Fields() {
			WalkTypes(f.Type, visit)
		}
	}
}

// HashType returns a 64-bit hash of the type's fingerprint, suitable for
// use in hash tables keyed by logical type.
func HashType(dt DataType) uint64 {
	return xxh3.HashString(dt.Fingerprint())
}

func typeIDFingerprint(id Type) string {
	c := string(rune(int(id) + int('A')))
	return "@" + c
}

func typeFingerprint(typ DataType) string { return typeIDFingerprint(typ.ID()) }

func timeUnitFingerprint(unit TimeUnit) rune {
	switch unit {
	case Second:
		return 's'
	case Millisecond:
		return 'm'
	case Microsecond:
		return 'u'
	case Nanosecond:
		return 'n'
	default:
		debug.Assert(false, "unexpected time unit")
		return rune(0)
	}
}
