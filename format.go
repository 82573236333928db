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
	"fmt"
	"strconv"
	"strings"
)

// The format grammar maps every logical type to a compact token string used
// as the `format` member of the C Data Interface schema record. Leaf types
// are single or multi letter codes, parameterized types append a
// colon-separated argument list, and container types carry a leading '+' so
// a decoder knows to expect children.
//
// The mapping is a pure, stateless table: EncodeFormat and DecodeFormat are
// inverses for every type except Dictionary and Extension, whose identity
// intentionally does not live in the format string (a dictionary travels as
// a second record, an extension as canonical metadata).

// formatToSimpleType maps the parameterless tokens to their canonical type
// instances.
var formatToSimpleType = map[string]DataType{
	"n":   Null,
	"b":   FixedWidthTypes.Boolean,
	"c":   PrimitiveTypes.Int8,
	"C":   PrimitiveTypes.Uint8,
	"s":   PrimitiveTypes.Int16,
	"S":   PrimitiveTypes.Uint16,
	"i":   PrimitiveTypes.Int32,
	"I":   PrimitiveTypes.Uint32,
	"l":   PrimitiveTypes.Int64,
	"L":   PrimitiveTypes.Uint64,
	"e":   FixedWidthTypes.Float16,
	"f":   PrimitiveTypes.Float32,
	"g":   PrimitiveTypes.Float64,
	"z":   BinaryTypes.Binary,
	"Z":   BinaryTypes.LargeBinary,
	"u":   BinaryTypes.String,
	"U":   BinaryTypes.LargeString,
	"vz":  BinaryTypes.BinaryView,
	"vu":  BinaryTypes.StringView,
	"tdD": FixedWidthTypes.Date32,
	"tdm": FixedWidthTypes.Date64,
	"tts": FixedWidthTypes.Time32s,
	"ttm": FixedWidthTypes.Time32ms,
	"ttu": FixedWidthTypes.Time64us,
	"ttn": FixedWidthTypes.Time64ns,
	"tDs": FixedWidthTypes.Duration_s,
	"tDm": FixedWidthTypes.Duration_ms,
	"tDu": FixedWidthTypes.Duration_us,
	"tDn": FixedWidthTypes.Duration_ns,
	"tiM": FixedWidthTypes.MonthInterval,
	"tiD": FixedWidthTypes.DayTimeInterval,
	"tin": FixedWidthTypes.MonthDayNanoInterval,
}

// EncodeFormat returns the format grammar token for dt. A dictionary
// encodes as its index type and an extension as its storage type, per the
// ABI. Type parameters outside the representable ranges (e.g. a Time32 with
// a microsecond unit) yield ErrInvalidTypeParameters.
func EncodeFormat(dt DataType) (string, error) {
	switch dt := dt.(type) {
	case *NullType:
		return "n", nil
	case *BooleanType:
		return "b", nil
	case *Int8Type:
		return "c", nil
	case *Uint8Type:
		return "C", nil
	case *Int16Type:
		return "s", nil
	case *Uint16Type:
		return "S", nil
	case *Int32Type:
		return "i", nil
	case *Uint32Type:
		return "I", nil
	case *Int64Type:
		return "l", nil
	case *Uint64Type:
		return "L", nil
	case *Float16Type:
		return "e", nil
	case *Float32Type:
		return "f", nil
	case *Float64Type:
		return "g", nil
	case *BinaryType:
		return "z", nil
	case *LargeBinaryType:
		return "Z", nil
	case *StringType:
		return "u", nil
	case *LargeStringType:
		return "U", nil
	case *BinaryViewType:
		return "vz", nil
	case *StringViewType:
		return "vu", nil
	case *FixedSizeBinaryType:
		if dt.ByteWidth < 0 {
			return "", fmt.Errorf("%w: negative fixed size binary width %d", ErrInvalidTypeParameters, dt.ByteWidth)
		}
		return fmt.Sprintf("w:%d", dt.ByteWidth), nil
	case *Decimal128Type:
		if err := checkDecimalParams(dt.Precision, dt.Scale, MaxDecimal128Precision); err != nil {
			return "", err
		}
		return fmt.Sprintf("d:%d,%d,128", dt.Precision, dt.Scale), nil
	case *Decimal256Type:
		if err := checkDecimalParams(dt.Precision, dt.Scale, MaxDecimal256Precision); err != nil {
			return "", err
		}
		return fmt.Sprintf("d:%d,%d,256", dt.Precision, dt.Scale), nil
	case *Date32Type:
		return "tdD", nil
	case *Date64Type:
		return "tdm", nil
	case *Time32Type:
		switch dt.Unit {
		case Second:
			return "tts", nil
		case Millisecond:
			return "ttm", nil
		}
		return "", fmt.Errorf("%w: invalid time unit %s for time32", ErrInvalidTypeParameters, dt.Unit)
	case *Time64Type:
		switch dt.Unit {
		case Microsecond:
			return "ttu", nil
		case Nanosecond:
			return "ttn", nil
		}
		return "", fmt.Errorf("%w: invalid time unit %s for time64", ErrInvalidTypeParameters, dt.Unit)
	case *TimestampType:
		prefix, err := timestampPrefix(dt.Unit)
		if err != nil {
			return "", err
		}
		return prefix + dt.TimeZone, nil
	case *DurationType:
		switch dt.Unit {
		case Second:
			return "tDs", nil
		case Millisecond:
			return "tDm", nil
		case Microsecond:
			return "tDu", nil
		case Nanosecond:
			return "tDn", nil
		}
		return "", fmt.Errorf("%w: invalid time unit %s for duration", ErrInvalidTypeParameters, dt.Unit)
	case *MonthIntervalType:
		return "tiM", nil
	case *DayTimeIntervalType:
		return "tiD", nil
	case *MonthDayNanoIntervalType:
		return "tin", nil
	case *ListType:
		return "+l", nil
	case *LargeListType:
		return "+L", nil
	case *FixedSizeListType:
		return fmt.Sprintf("+w:%d", dt.Len()), nil
	case *StructType:
		return "+s", nil
	case *MapType:
		return "+m", nil
	case *RunEndEncodedType:
		return "+r", nil
	case UnionType:
		var b strings.Builder
		if dt.Mode() == SparseMode {
			b.WriteString("+us:")
		} else {
			b.WriteString("+ud:")
		}
		for i, c := range dt.TypeCodes() {
			if i != 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(int(c)))
		}
		return b.String(), nil
	case *DictionaryType:
		return EncodeFormat(dt.IndexType)
	case ExtensionType:
		return EncodeFormat(dt.StorageType())
	}
	return "", fmt.Errorf("%w: cannot encode data type %s", ErrInvalidTypeParameters, dt)
}

func timestampPrefix(unit TimeUnit) (string, error) {
	switch unit {
	case Second:
		return "tss:", nil
	case Millisecond:
		return "tsm:", nil
	case Microsecond:
		return "tsu:", nil
	case Nanosecond:
		return "tsn:", nil
	}
	return "", fmt.Errorf("%w: invalid time unit %d for timestamp", ErrInvalidTypeParameters, unit)
}

// DecodeFormat parses a format grammar token back into a logical type. For
// container tokens the already-decoded child fields must be supplied; leaf
// tokens require an empty child list. An unrecognized or malformed token
// yields ErrUnsupportedFormatToken; a child list whose length does not
// match the token yields ErrInvalidTypeParameters. Map types are decoded
// with unsorted keys: the keys-sorted bit lives in the record flags, not in
// the token.
func DecodeFormat(format string, children []Field) (DataType, error) {
	if format == "" {
		return nil, fmt.Errorf("%w: empty format string", ErrUnsupportedFormatToken)
	}

	if format[0] == '+' {
		return decodeNestedFormat(format, children)
	}

	if dt, ok := formatToSimpleType[format]; ok {
		if err := checkChildCount(format, 0, children); err != nil {
			return nil, err
		}
		return dt, nil
	}

	parts := strings.SplitN(format, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormatToken, format)
	}
	prefix, args := parts[0], parts[1]

	switch prefix {
	case "w", "d", "tss", "tsm", "tsu", "tsn":
		if err := checkChildCount(format, 0, children); err != nil {
			return nil, err
		}
	}

	switch prefix {
	case "w":
		byteWidth, err := strconv.Atoi(args)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid fixed size binary width in %q", ErrUnsupportedFormatToken, format)
		}
		dt, err := NewFixedSizeBinaryType(byteWidth)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedFormatToken, format, err)
		}
		return dt, nil
	case "d":
		return decodeDecimalFormat(format, args)
	case "tss":
		return &TimestampType{Unit: Second, TimeZone: args}, nil
	case "tsm":
		return &TimestampType{Unit: Millisecond, TimeZone: args}, nil
	case "tsu":
		return &TimestampType{Unit: Microsecond, TimeZone: args}, nil
	case "tsn":
		return &TimestampType{Unit: Nanosecond, TimeZone: args}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormatToken, format)
}

// decimal tokens are d:<precision>,<scale>[,<bitwidth>]; the bit width is
// assumed 128 when absent.
func decodeDecimalFormat(format, args string) (DataType, error) {
	props := strings.Split(args, ",")
	if len(props) < 2 || len(props) > 3 {
		return nil, fmt.Errorf("%w: decimal %q has wrong number of properties", ErrUnsupportedFormatToken, format)
	}

	bitwidth := 128
	if len(props) == 3 {
		var err error
		bitwidth, err = strconv.Atoi(props[2])
		if err != nil {
			return nil, fmt.Errorf("%w: could not parse decimal bit width in %q", ErrUnsupportedFormatToken, format)
		}
	}

	precision, err := strconv.Atoi(props[0])
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse decimal precision in %q", ErrUnsupportedFormatToken, format)
	}
	scale, err := strconv.Atoi(props[1])
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse decimal scale in %q", ErrUnsupportedFormatToken, format)
	}

	var (
		dt     DataType
		tperr  error
	)
	switch bitwidth {
	case 128:
		dt, tperr = NewDecimal128Type(int32(precision), int32(scale))
	case 256:
		dt, tperr = NewDecimal256Type(int32(precision), int32(scale))
	default:
		return nil, fmt.Errorf("%w: decimal bit width in %q must be 128 or 256", ErrUnsupportedFormatToken, format)
	}
	if tperr != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedFormatToken, format, tperr)
	}
	return dt, nil
}

func decodeNestedFormat(format string, children []Field) (DataType, error) {
	if len(format) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormatToken, format)
	}

	switch format[1] {
	case 'l':
		if err := checkChildCount(format, 1, children); err != nil {
			return nil, err
		}
		return ListOfField(children[0]), nil
	case 'L':
		if err := checkChildCount(format, 1, children); err != nil {
			return nil, err
		}
		return LargeListOfField(children[0]), nil
	case 'w':
		if err := checkChildCount(format, 1, children); err != nil {
			return nil, err
		}
		parts := strings.SplitN(format, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: fixed size list %q is missing its length", ErrUnsupportedFormatToken, format)
		}
		listSize, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid fixed size list length in %q", ErrUnsupportedFormatToken, format)
		}
		dt, err := NewFixedSizeListType(int32(listSize), children[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedFormatToken, format, err)
		}
		return dt, nil
	case 's':
		if format != "+s" {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormatToken, format)
		}
		return StructOf(children...), nil
	case 'm':
		if format != "+m" {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormatToken, format)
		}
		if err := checkChildCount(format, 1, children); err != nil {
			return nil, err
		}
		return MapOfField(children[0], false)
	case 'r':
		if format != "+r" {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormatToken, format)
		}
		if err := checkChildCount(format, 2, children); err != nil {
			return nil, err
		}
		return NewRunEndEncodedType(children[0].Type, children[1].Type)
	case 'u':
		return decodeUnionFormat(format, children)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormatToken, format)
}

func decodeUnionFormat(format string, children []Field) (DataType, error) {
	if len(format) < 4 || format[3] != ':' {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormatToken, format)
	}

	var mode UnionMode
	switch format[2] {
	case 'd':
		mode = DenseMode
	case 's':
		mode = SparseMode
	default:
		return nil, fmt.Errorf("%w: invalid union mode in %q", ErrUnsupportedFormatToken, format)
	}

	codes := strings.Split(format[4:], ",")
	typeCodes := make([]UnionTypeCode, 0, len(codes))
	for _, c := range codes {
		v, err := strconv.ParseInt(c, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid union type code %q in %q", ErrUnsupportedFormatToken, c, format)
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: negative union type code in %q", ErrUnsupportedFormatToken, format)
		}
		typeCodes = append(typeCodes, UnionTypeCode(v))
	}

	if err := checkChildCount(format, len(typeCodes), children); err != nil {
		return nil, err
	}
	return NewUnionType(mode, children, typeCodes)
}

func checkChildCount(format string, want int, children []Field) error {
	if len(children) != want {
		return fmt.Errorf("%w: format %q expects %d children, got %d", ErrInvalidTypeParameters, format, want, len(children))
	}
	return nil
}
