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

package tabular_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabular-io/tabular"
)

func TestFormatRoundTrip(t *testing.T) {
	tests := []struct {
		fmt string
		dt  tabular.DataType
	}{
		{"n", tabular.Null},
		{"b", tabular.FixedWidthTypes.Boolean},
		{"c", tabular.PrimitiveTypes.Int8},
		{"C", tabular.PrimitiveTypes.Uint8},
		{"s", tabular.PrimitiveTypes.Int16},
		{"S", tabular.PrimitiveTypes.Uint16},
		{"i", tabular.PrimitiveTypes.Int32},
		{"I", tabular.PrimitiveTypes.Uint32},
		{"l", tabular.PrimitiveTypes.Int64},
		{"L", tabular.PrimitiveTypes.Uint64},
		{"e", tabular.FixedWidthTypes.Float16},
		{"f", tabular.PrimitiveTypes.Float32},
		{"g", tabular.PrimitiveTypes.Float64},
		{"z", tabular.BinaryTypes.Binary},
		{"Z", tabular.BinaryTypes.LargeBinary},
		{"u", tabular.BinaryTypes.String},
		{"U", tabular.BinaryTypes.LargeString},
		{"vz", tabular.BinaryTypes.BinaryView},
		{"vu", tabular.BinaryTypes.StringView},
		{"w:7", &tabular.FixedSizeBinaryType{ByteWidth: 7}},
		{"d:38,10,128", &tabular.Decimal128Type{Precision: 38, Scale: 10}},
		{"d:76,0,256", &tabular.Decimal256Type{Precision: 76}},
		{"tdD", tabular.FixedWidthTypes.Date32},
		{"tdm", tabular.FixedWidthTypes.Date64},
		{"tts", tabular.FixedWidthTypes.Time32s},
		{"ttm", tabular.FixedWidthTypes.Time32ms},
		{"ttu", tabular.FixedWidthTypes.Time64us},
		{"ttn", tabular.FixedWidthTypes.Time64ns},
		{"tss:UTC", &tabular.TimestampType{Unit: tabular.Second, TimeZone: "UTC"}},
		{"tsm:", &tabular.TimestampType{Unit: tabular.Millisecond}},
		{"tsu:America/New_York", &tabular.TimestampType{Unit: tabular.Microsecond, TimeZone: "America/New_York"}},
		{"tsn:+07:30", &tabular.TimestampType{Unit: tabular.Nanosecond, TimeZone: "+07:30"}},
		{"tDs", tabular.FixedWidthTypes.Duration_s},
		{"tDm", tabular.FixedWidthTypes.Duration_ms},
		{"tDu", tabular.FixedWidthTypes.Duration_us},
		{"tDn", tabular.FixedWidthTypes.Duration_ns},
		{"tiM", tabular.FixedWidthTypes.MonthInterval},
		{"tiD", tabular.FixedWidthTypes.DayTimeInterval},
		{"tin", tabular.FixedWidthTypes.MonthDayNanoInterval},
		{"+l", tabular.ListOf(tabular.PrimitiveTypes.Int32)},
		{"+L", tabular.LargeListOf(tabular.BinaryTypes.String)},
		{"+w:4", tabular.FixedSizeListOf(4, tabular.PrimitiveTypes.Float64)},
		{"+s", tabular.StructOf(
			tabular.Field{Name: "a", Type: tabular.PrimitiveTypes.Int64, Nullable: true},
			tabular.Field{Name: "b", Type: tabular.BinaryTypes.String},
		)},
		{"+m", tabular.MapOf(tabular.BinaryTypes.String, tabular.PrimitiveTypes.Int32)},
		{"+r", tabular.RunEndEncodedOf(tabular.PrimitiveTypes.Int32, tabular.BinaryTypes.String)},
		{"+ud:5,10", tabular.DenseUnionOf([]tabular.Field{
			{Name: "a", Type: tabular.PrimitiveTypes.Int8, Nullable: true},
			{Name: "b", Type: tabular.BinaryTypes.String, Nullable: true},
		}, []tabular.UnionTypeCode{5, 10})},
		{"+us:0,1", tabular.SparseUnionOf([]tabular.Field{
			{Name: "ints", Type: tabular.PrimitiveTypes.Int32, Nullable: true},
			{Name: "strs", Type: tabular.BinaryTypes.String, Nullable: true},
		}, []tabular.UnionTypeCode{0, 1})},
	}

	for _, tt := range tests {
		t.Run(tt.fmt, func(t *testing.T) {
			enc, err := tabular.EncodeFormat(tt.dt)
			require.NoError(t, err)
			assert.Equal(t, tt.fmt, enc)

			dec, err := tabular.DecodeFormat(enc, tabular.ChildFields(tt.dt))
			require.NoError(t, err)
			assert.True(t, tabular.TypeEqual(tt.dt, dec), "decoded %s, want %s", dec, tt.dt)
		})
	}
}

func TestEncodeFormatDictionary(t *testing.T) {
	dict, err := tabular.NewDictionaryType(tabular.PrimitiveTypes.Int16, tabular.BinaryTypes.String, false)
	require.NoError(t, err)

	// the token describes only the index type, the values travel separately
	enc, err := tabular.EncodeFormat(dict)
	require.NoError(t, err)
	assert.Equal(t, "s", enc)
}

func TestEncodeFormatInvalidUnit(t *testing.T) {
	_, err := tabular.EncodeFormat(&tabular.Time32Type{Unit: tabular.Microsecond})
	assert.ErrorIs(t, err, tabular.ErrInvalidTypeParameters)

	_, err = tabular.EncodeFormat(&tabular.Time64Type{Unit: tabular.Second})
	assert.ErrorIs(t, err, tabular.ErrInvalidTypeParameters)
}

func TestDecodeFormatUnknownToken(t *testing.T) {
	for _, f := range []string{"", "q", "+q", "x:3", "t", "tsx:", "+ux:0"} {
		_, err := tabular.DecodeFormat(f, nil)
		assert.ErrorIs(t, err, tabular.ErrUnsupportedFormatToken, "format %q", f)
	}
}

func TestDecodeFormatDecimal(t *testing.T) {
	dt, err := tabular.DecodeFormat("d:38,10,128", nil)
	require.NoError(t, err)
	assert.True(t, tabular.TypeEqual(&tabular.Decimal128Type{Precision: 38, Scale: 10}, dt))

	// bit width defaults to 128
	dt, err = tabular.DecodeFormat("d:12,2", nil)
	require.NoError(t, err)
	assert.True(t, tabular.TypeEqual(&tabular.Decimal128Type{Precision: 12, Scale: 2}, dt))

	for _, f := range []string{"d:39,10", "d:0,0", "d:10,20", "d:38,10,64", "d:38", "d:1,2,3,4", "d:x,1"} {
		_, err := tabular.DecodeFormat(f, nil)
		assert.ErrorIs(t, err, tabular.ErrUnsupportedFormatToken, "format %q", f)
	}
}

func TestDecodeFormatChildCount(t *testing.T) {
	item := tabular.Field{Name: "item", Type: tabular.PrimitiveTypes.Int32, Nullable: true}

	_, err := tabular.DecodeFormat("+l", nil)
	assert.ErrorIs(t, err, tabular.ErrInvalidTypeParameters)

	_, err = tabular.DecodeFormat("i", []tabular.Field{item})
	assert.ErrorIs(t, err, tabular.ErrInvalidTypeParameters)

	_, err = tabular.DecodeFormat("+r", []tabular.Field{item})
	assert.ErrorIs(t, err, tabular.ErrInvalidTypeParameters)

	// a union needs exactly one child per type id
	_, err = tabular.DecodeFormat("+ud:0,1,2", []tabular.Field{item})
	assert.ErrorIs(t, err, tabular.ErrInvalidTypeParameters)
}

func TestDecodeFormatUnionIds(t *testing.T) {
	fields := []tabular.Field{
		{Name: "a", Type: tabular.PrimitiveTypes.Int8, Nullable: true},
		{Name: "b", Type: tabular.BinaryTypes.String, Nullable: true},
	}

	dt, err := tabular.DecodeFormat("+us:3,127", fields)
	require.NoError(t, err)
	ut := dt.(*tabular.SparseUnionType)
	assert.Equal(t, []tabular.UnionTypeCode{3, 127}, ut.TypeCodes())

	for _, f := range []string{"+ud:-1,2", "+ud:1,x", "+ud:1,300"} {
		_, err := tabular.DecodeFormat(f, fields)
		assert.ErrorIs(t, err, tabular.ErrUnsupportedFormatToken, "format %q", f)
	}
}

func TestDecodeFormatMapUnsorted(t *testing.T) {
	entries := tabular.Field{Name: "entries", Type: tabular.StructOf(
		tabular.Field{Name: "key", Type: tabular.BinaryTypes.String},
		tabular.Field{Name: "value", Type: tabular.PrimitiveTypes.Int32, Nullable: true},
	)}

	dt, err := tabular.DecodeFormat("+m", []tabular.Field{entries})
	require.NoError(t, err)

	// the sorted-keys property is carried by record flags, not the token
	assert.False(t, dt.(*tabular.MapType).KeysSorted)
}

func TestDecodeFormatTimestampRequiresColon(t *testing.T) {
	for _, f := range []string{"tss", "tsm", "tsu", "tsn"} {
		_, err := tabular.DecodeFormat(f, nil)
		assert.ErrorIs(t, err, tabular.ErrUnsupportedFormatToken, "format %q", f)
	}
}
