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

//go:build cgo && test
// +build cgo,test

// use the test tag so the C fixture helpers are only compiled during
// testing and their symbols are not present in release builds.

package cdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabular-io/tabular"
	"github.com/tabular-io/tabular/extensions"
)

func TestImportPrimitive(t *testing.T) {
	tests := []struct {
		fmt string
		dt  tabular.DataType
	}{
		{"n", tabular.Null},
		{"b", tabular.FixedWidthTypes.Boolean},
		{"c", tabular.PrimitiveTypes.Int8},
		{"L", tabular.PrimitiveTypes.Uint64},
		{"g", tabular.PrimitiveTypes.Float64},
		{"u", tabular.BinaryTypes.String},
		{"vu", tabular.BinaryTypes.StringView},
		{"w:10", &tabular.FixedSizeBinaryType{ByteWidth: 10}},
		{"d:38,10,128", &tabular.Decimal128Type{Precision: 38, Scale: 10}},
		{"d:12,2", &tabular.Decimal128Type{Precision: 12, Scale: 2}},
		{"tss:UTC", &tabular.TimestampType{Unit: tabular.Second, TimeZone: "UTC"}},
		{"tsn:", &tabular.TimestampType{Unit: tabular.Nanosecond}},
		{"tiD", tabular.FixedWidthTypes.DayTimeInterval},
	}

	for _, tt := range tests {
		t.Run(tt.fmt, func(t *testing.T) {
			sc := testPrimitive(tt.fmt)

			f, err := ImportCField(&sc)
			require.NoError(t, err)

			assert.True(t, tabular.TypeEqual(tt.dt, f.Type))
			assert.True(t, f.Nullable)

			// the producer still owns the record
			assert.False(t, schemaIsReleased(&sc))
			ReleaseCSchema(&sc)
			assert.True(t, schemaIsReleased(&sc))
		})
	}
}

func TestImportUnsupportedFormat(t *testing.T) {
	sc := testPrimitive("+q")
	defer ReleaseCSchema(&sc)

	_, err := ImportCField(&sc)
	assert.ErrorIs(t, err, tabular.ErrUnsupportedFormatToken)
}

func TestImportDoesNotRelease(t *testing.T) {
	before := releasedCount()

	sc := testPrimitive("i")
	_, err := ImportCField(&sc)
	require.NoError(t, err)

	assert.Equal(t, before, releasedCount())

	ReleaseCSchema(&sc)
	assert.Equal(t, before+1, releasedCount())

	// releasing again is a no-op
	ReleaseCSchema(&sc)
	assert.Equal(t, before+1, releasedCount())
}

func TestImportMetadata(t *testing.T) {
	sc := testMetadataPrimitive()
	defer ReleaseCSchema(&sc)

	f, err := ImportCField(&sc)
	require.NoError(t, err)

	assert.Equal(t, []string{"key1", "key2"}, f.Metadata.Keys())
	assert.Equal(t, []string{"", "bar"}, f.Metadata.Values())
}

func TestImportStruct(t *testing.T) {
	sc := testStructSchema()
	defer ReleaseCSchema(&sc)

	f, err := ImportCField(&sc)
	require.NoError(t, err)

	st, ok := f.Type.(*tabular.StructType)
	require.True(t, ok)
	require.Equal(t, 2, st.NumFields())

	assert.Equal(t, "a", st.Field(0).Name)
	assert.True(t, tabular.TypeEqual(tabular.PrimitiveTypes.Int64, st.Field(0).Type))
	assert.True(t, st.Field(0).Nullable)

	assert.Equal(t, "b", st.Field(1).Name)
	assert.True(t, tabular.TypeEqual(tabular.BinaryTypes.String, st.Field(1).Type))
	assert.False(t, st.Field(1).Nullable)
}

func TestImportList(t *testing.T) {
	sc := testListSchema()
	defer ReleaseCSchema(&sc)

	f, err := ImportCField(&sc)
	require.NoError(t, err)

	lt, ok := f.Type.(*tabular.ListType)
	require.True(t, ok)
	assert.True(t, tabular.TypeEqual(tabular.PrimitiveTypes.Int64, lt.Elem()))
	assert.Equal(t, "item", lt.ElemField().Name)
}

func TestImportMap(t *testing.T) {
	for _, sorted := range []bool{false, true} {
		sc := testMapSchema(sorted)

		f, err := ImportCField(&sc)
		require.NoError(t, err)

		mt, ok := f.Type.(*tabular.MapType)
		require.True(t, ok)
		assert.Equal(t, sorted, mt.KeysSorted)
		assert.True(t, tabular.TypeEqual(tabular.BinaryTypes.String, mt.KeyField().Type))
		assert.True(t, tabular.TypeEqual(tabular.PrimitiveTypes.Int32, mt.ItemField().Type))

		ReleaseCSchema(&sc)
	}
}

func TestImportDictionary(t *testing.T) {
	for _, ordered := range []bool{false, true} {
		sc := testDictSchema(ordered)

		f, err := ImportCField(&sc)
		require.NoError(t, err)

		dt, ok := f.Type.(*tabular.DictionaryType)
		require.True(t, ok)
		assert.Equal(t, ordered, dt.Ordered)
		assert.True(t, tabular.TypeEqual(tabular.PrimitiveTypes.Int8, dt.IndexType))
		assert.True(t, tabular.TypeEqual(tabular.BinaryTypes.String, dt.ValueType))

		ReleaseCSchema(&sc)
	}
}

func TestImportUnion(t *testing.T) {
	sc := testUnionSchema()
	defer ReleaseCSchema(&sc)

	f, err := ImportCField(&sc)
	require.NoError(t, err)

	ut, ok := f.Type.(*tabular.DenseUnionType)
	require.True(t, ok)
	assert.Equal(t, []tabular.UnionTypeCode{5, 10}, ut.TypeCodes())
	require.Equal(t, 2, ut.NumFields())
	assert.True(t, tabular.TypeEqual(tabular.PrimitiveTypes.Int8, ut.Fields()[0].Type))
	assert.True(t, tabular.TypeEqual(tabular.BinaryTypes.String, ut.Fields()[1].Type))
}

func TestImportNullChild(t *testing.T) {
	sc := testNullChildSchema()
	defer ReleaseCSchema(&sc)

	_, err := ImportCField(&sc)
	assert.ErrorIs(t, err, tabular.ErrNullPointerViolation)
}

func TestImportDeepNesting(t *testing.T) {
	sc := testDeepSchema(32)
	f, err := ImportCField(&sc)
	require.NoError(t, err)
	assert.Equal(t, tabular.LIST, f.Type.ID())
	ReleaseCSchema(&sc)

	sc = testDeepSchema(80)
	_, err = ImportCField(&sc)
	assert.ErrorIs(t, err, tabular.ErrRecursionLimitExceeded)
	ReleaseCSchema(&sc)
}

func TestImportTopLevelSchema(t *testing.T) {
	sc := testTopSchema()
	defer ReleaseCSchema(&sc)

	schema, err := ImportCSchema(&sc)
	require.NoError(t, err)

	require.Equal(t, 2, schema.NumFields())
	assert.Equal(t, "id", schema.Field(0).Name)
	assert.False(t, schema.Field(0).Nullable)
	assert.Equal(t, "name", schema.Field(1).Name)
	assert.True(t, schema.Field(1).Nullable)

	assert.Equal(t, []string{"key1", "key2"}, schema.Metadata().Keys())
}

func TestImportTopLevelNotStruct(t *testing.T) {
	sc := testPrimitive("i")
	defer ReleaseCSchema(&sc)

	_, err := ImportCSchema(&sc)
	assert.Error(t, err)
}

func TestExportField(t *testing.T) {
	baseline := ExportedAllocations()

	field := tabular.Field{
		Name:     "shipments",
		Type:     tabular.ListOf(tabular.PrimitiveTypes.Int64),
		Nullable: true,
		Metadata: tabular.NewMetadata([]string{"origin"}, []string{"warehouse"}),
	}

	var out CArrowSchema
	require.NoError(t, ExportField(field, &out))

	got, err := ImportCField(&out)
	require.NoError(t, err)
	assert.True(t, field.Equal(got))

	assert.Equal(t, 0, consumeExported(&out))
	assert.Equal(t, baseline, ExportedAllocations())
}

func TestExportNullableFlag(t *testing.T) {
	var out CArrowSchema
	require.NoError(t, ExportField(tabular.Field{
		Name: "x", Type: tabular.PrimitiveTypes.Int32, Nullable: true,
	}, &out))

	assert.NotZero(t, out.flags&flagIsNullable)
	ReleaseCSchema(&out)

	require.NoError(t, ExportField(tabular.Field{
		Name: "x", Type: tabular.PrimitiveTypes.Int32,
	}, &out))

	assert.Zero(t, out.flags&flagIsNullable)
	ReleaseCSchema(&out)
}

func TestExportDictionary(t *testing.T) {
	baseline := ExportedAllocations()

	dict, err := tabular.NewDictionaryType(tabular.PrimitiveTypes.Int8, tabular.BinaryTypes.String, true)
	require.NoError(t, err)

	var out CArrowSchema
	require.NoError(t, ExportField(tabular.Field{Name: "tags", Type: dict}, &out))

	// the index record carries the format and the ordered flag, the values
	// travel as a second record
	assert.NotZero(t, out.flags&flagDictOrdered)
	require.NotNil(t, out.dictionary)

	got, err := ImportCField(&out)
	require.NoError(t, err)
	assert.True(t, tabular.TypeEqual(dict, got.Type))

	ReleaseCSchema(&out)
	assert.Equal(t, baseline, ExportedAllocations())
}

func TestExportReleaseExactlyOnce(t *testing.T) {
	baseline := ExportedAllocations()

	sc := tabular.NewSchema([]tabular.Field{
		{Name: "id", Type: tabular.PrimitiveTypes.Int64},
		{Name: "name", Type: tabular.BinaryTypes.String, Nullable: true},
		{Name: "props", Type: tabular.MapOf(tabular.BinaryTypes.String, tabular.PrimitiveTypes.Int32)},
	}, nil)

	var out CArrowSchema
	require.NoError(t, ExportSchema(sc, &out))
	assert.Greater(t, ExportedAllocations(), baseline)

	assert.Equal(t, 0, consumeExported(&out))
	assert.Equal(t, baseline, ExportedAllocations())
}

func TestSchemaRoundTrip(t *testing.T) {
	md := tabular.NewMetadata([]string{"owner"}, []string{"logistics"})
	sc := tabular.NewSchema([]tabular.Field{
		{Name: "ts", Type: &tabular.TimestampType{Unit: tabular.Microsecond, TimeZone: "UTC"}},
		{Name: "amount", Type: &tabular.Decimal128Type{Precision: 38, Scale: 10}, Nullable: true},
		{Name: "tags", Type: tabular.ListOf(tabular.BinaryTypes.String), Nullable: true},
	}, &md)

	var out CArrowSchema
	require.NoError(t, ExportSchema(sc, &out))

	got, err := ImportCSchema(&out)
	require.NoError(t, err)
	assert.True(t, sc.EqualWithMetadata(got))

	ReleaseCSchema(&out)
}

func TestExtensionRoundTrip(t *testing.T) {
	require.NoError(t, tabular.RegisterExtensionType(extensions.UUID))
	defer tabular.UnregisterExtensionType("arrow.uuid")

	field := tabular.Field{Name: "id", Type: extensions.UUID, Nullable: true}

	var out CArrowSchema
	require.NoError(t, ExportField(field, &out))
	defer ReleaseCSchema(&out)

	got, err := ImportCField(&out)
	require.NoError(t, err)

	ext, ok := got.Type.(*extensions.UUIDType)
	require.True(t, ok)
	assert.True(t, ext.ExtensionEquals(extensions.UUID))
	// the canonical keys were consumed during reconstruction
	assert.Equal(t, -1, got.Metadata.FindKey(tabular.ExtensionTypeKeyName))
}

func TestUnregisteredExtensionKeepsStorage(t *testing.T) {
	field := tabular.Field{
		Name:     "blob",
		Type:     tabular.BinaryTypes.Binary,
		Metadata: tabular.NewMetadata([]string{tabular.ExtensionTypeKeyName}, []string{"vendor.mystery"}),
	}

	var out CArrowSchema
	require.NoError(t, ExportField(field, &out))
	defer ReleaseCSchema(&out)

	got, err := ImportCField(&out)
	require.NoError(t, err)

	assert.True(t, tabular.TypeEqual(tabular.BinaryTypes.Binary, got.Type))
	v, ok := got.Metadata.GetValue(tabular.ExtensionTypeKeyName)
	assert.True(t, ok)
	assert.Equal(t, "vendor.mystery", v)
}
