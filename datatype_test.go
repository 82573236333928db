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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	assert.Equal(t, "int64", INT64.String())
	assert.Equal(t, "utf8", STRING.String())
	assert.Equal(t, "dense_union", DENSE_UNION.String())
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsInteger(UINT16))
	assert.True(t, IsInteger(INT64))
	assert.False(t, IsInteger(FLOAT32))

	assert.True(t, IsUnsignedInteger(UINT8))
	assert.False(t, IsUnsignedInteger(INT8))

	assert.True(t, IsPrimitive(FLOAT64))
	assert.False(t, IsPrimitive(STRUCT))

	assert.True(t, IsNested(LIST))
	assert.True(t, IsNested(MAP))
	assert.False(t, IsNested(BINARY))
}

func TestDecimalValidation(t *testing.T) {
	tests := []struct {
		precision, scale int32
		ok               bool
	}{
		{38, 10, true},
		{1, 0, true},
		{1, 1, true},
		{0, 0, false},
		{39, 0, false},
		{10, 20, false},
		{10, -1, false},
		{-5, 0, false},
	}

	for _, tt := range tests {
		_, err := NewDecimal128Type(tt.precision, tt.scale)
		if tt.ok {
			assert.NoError(t, err, "decimal128(%d, %d)", tt.precision, tt.scale)
		} else {
			assert.ErrorIs(t, err, ErrInvalidTypeParameters, "decimal128(%d, %d)", tt.precision, tt.scale)
		}
	}

	_, err := NewDecimal256Type(76, 0)
	assert.NoError(t, err)
	_, err = NewDecimal256Type(77, 0)
	assert.ErrorIs(t, err, ErrInvalidTypeParameters)
}

func TestFixedSizeBinaryValidation(t *testing.T) {
	fsb, err := NewFixedSizeBinaryType(16)
	require.NoError(t, err)
	assert.Equal(t, 128, fsb.BitWidth())

	_, err = NewFixedSizeBinaryType(-1)
	assert.ErrorIs(t, err, ErrInvalidTypeParameters)

	// zero width is odd but representable
	_, err = NewFixedSizeBinaryType(0)
	assert.NoError(t, err)
}

func TestFixedSizeListValidation(t *testing.T) {
	_, err := NewFixedSizeListType(-3, Field{Name: "item", Type: PrimitiveTypes.Int32, Nullable: true})
	assert.ErrorIs(t, err, ErrInvalidTypeParameters)
}

func TestTimeUnit(t *testing.T) {
	assert.Equal(t, "s", Second.String())
	assert.Equal(t, "ms", Millisecond.String())
	assert.Equal(t, "us", Microsecond.String())
	assert.Equal(t, "ns", Nanosecond.String())
}

func TestListTypes(t *testing.T) {
	lt := ListOf(PrimitiveTypes.Int64)
	assert.Equal(t, LIST, lt.ID())
	assert.True(t, TypeEqual(PrimitiveTypes.Int64, lt.Elem()))
	assert.Equal(t, 1, lt.NumFields())

	nn := ListOfNonNullable(PrimitiveTypes.Int64)
	assert.False(t, nn.ElemField().Nullable)

	assert.Panics(t, func() { ListOf(nil) })

	fsl := FixedSizeListOf(8, FixedWidthTypes.Float16)
	assert.Equal(t, int32(8), fsl.Len())
	assert.Equal(t, FIXED_SIZE_LIST, fsl.ID())
}

func TestStructType(t *testing.T) {
	st := StructOf(
		Field{Name: "a", Type: PrimitiveTypes.Int32, Nullable: true},
		Field{Name: "b", Type: BinaryTypes.String},
		Field{Name: "a", Type: PrimitiveTypes.Float64},
	)

	require.Equal(t, 3, st.NumFields())

	// first match wins for name lookups on nested structs
	f, ok := st.FieldByName("a")
	assert.True(t, ok)
	assert.True(t, TypeEqual(PrimitiveTypes.Int32, f.Type))

	i, ok := st.FieldIdx("b")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = st.FieldByName("missing")
	assert.False(t, ok)
}

func TestMapType(t *testing.T) {
	mt := MapOf(BinaryTypes.String, PrimitiveTypes.Int32)

	assert.Equal(t, MAP, mt.ID())
	assert.Equal(t, "key", mt.KeyField().Name)
	assert.False(t, mt.KeyField().Nullable)
	assert.Equal(t, "value", mt.ItemField().Name)
	assert.Equal(t, "entries", mt.ValueField().Name)

	// the entries field of an imported map must be a struct of two
	_, err := MapOfField(Field{Name: "entries", Type: PrimitiveTypes.Int32}, false)
	assert.ErrorIs(t, err, ErrInvalidTypeParameters)

	_, err = MapOfField(Field{Name: "entries", Type: StructOf(
		Field{Name: "key", Type: BinaryTypes.String},
	)}, false)
	assert.ErrorIs(t, err, ErrInvalidTypeParameters)
}

func TestUnionValidation(t *testing.T) {
	fields := []Field{
		{Name: "a", Type: PrimitiveTypes.Int8, Nullable: true},
		{Name: "b", Type: BinaryTypes.String, Nullable: true},
	}

	ut, err := NewUnionType(DenseMode, fields, []UnionTypeCode{2, 7})
	require.NoError(t, err)
	assert.Equal(t, DenseMode, ut.Mode())
	assert.Equal(t, []UnionTypeCode{2, 7}, ut.TypeCodes())

	_, err = NewUnionType(SparseMode, fields, []UnionTypeCode{1})
	assert.ErrorIs(t, err, ErrInvalidTypeParameters)

	_, err = NewUnionType(SparseMode, fields, []UnionTypeCode{3, 3})
	assert.ErrorIs(t, err, ErrInvalidTypeParameters)

	_, err = NewUnionType(SparseMode, fields, []UnionTypeCode{-1, 2})
	assert.ErrorIs(t, err, ErrInvalidTypeParameters)
}

func TestDictionaryValidation(t *testing.T) {
	dict, err := NewDictionaryType(PrimitiveTypes.Uint32, BinaryTypes.String, false)
	require.NoError(t, err)
	assert.Equal(t, 32, dict.BitWidth())

	_, err = NewDictionaryType(PrimitiveTypes.Float32, BinaryTypes.String, false)
	assert.ErrorIs(t, err, ErrInvalidTypeParameters)

	_, err = NewDictionaryType(PrimitiveTypes.Int32, dict, false)
	assert.ErrorIs(t, err, ErrInvalidTypeParameters)
}

func TestRunEndEncodedValidation(t *testing.T) {
	ree, err := NewRunEndEncodedType(PrimitiveTypes.Int32, BinaryTypes.String)
	require.NoError(t, err)

	fields := ree.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "run_ends", fields[0].Name)
	assert.False(t, fields[0].Nullable)
	assert.Equal(t, "values", fields[1].Name)
	assert.True(t, fields[1].Nullable)

	_, err = NewRunEndEncodedType(PrimitiveTypes.Int8, BinaryTypes.String)
	assert.ErrorIs(t, err, ErrInvalidTypeParameters)
	_, err = NewRunEndEncodedType(PrimitiveTypes.Uint32, BinaryTypes.String)
	assert.ErrorIs(t, err, ErrInvalidTypeParameters)
}

func TestWalkTypes(t *testing.T) {
	dict, err := NewDictionaryType(PrimitiveTypes.Int16, BinaryTypes.String, false)
	require.NoError(t, err)

	dt := StructOf(
		Field{Name: "tags", Type: ListOf(dict), Nullable: true},
		Field{Name: "amount", Type: &Decimal128Type{Precision: 10, Scale: 2}},
	)

	var ids []Type
	WalkTypes(dt, func(dt DataType) bool {
		ids = append(ids, dt.ID())
		return true
	})

	assert.Equal(t, []Type{STRUCT, LIST, DICTIONARY, INT16, STRING, DECIMAL128}, ids)

	// returning false prunes the subtree
	ids = ids[:0]
	WalkTypes(dt, func(dt DataType) bool {
		ids = append(ids, dt.ID())
		return dt.ID() != LIST
	})
	assert.Equal(t, []Type{STRUCT, LIST, DECIMAL128}, ids)
}

func TestHashType(t *testing.T) {
	a := &TimestampType{Unit: Microsecond, TimeZone: "UTC"}
	b := &TimestampType{Unit: Microsecond, TimeZone: "UTC"}
	c := &TimestampType{Unit: Microsecond, TimeZone: "America/New_York"}

	assert.Equal(t, HashType(a), HashType(b))
	assert.NotEqual(t, HashType(a), HashType(c))
	assert.NotEqual(t, HashType(PrimitiveTypes.Int32), HashType(PrimitiveTypes.Uint32))
}

func TestFieldEqual(t *testing.T) {
	md := NewMetadata([]string{"k"}, []string{"v"})

	a := Field{Name: "f", Type: PrimitiveTypes.Int32, Nullable: true, Metadata: md}
	b := Field{Name: "f", Type: PrimitiveTypes.Int32, Nullable: true, Metadata: md}
	assert.True(t, a.Equal(b))

	b.Metadata = Metadata{}
	assert.False(t, a.Equal(b))

	b = a
	b.Nullable = false
	assert.False(t, a.Equal(b))
}
