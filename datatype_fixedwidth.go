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
	"time"
)

type BooleanType struct{}

func (t *BooleanType) ID() Type            { return BOOL }
func (t *BooleanType) Name() string        { return "bool" }
func (t *BooleanType) String() string      { return "bool" }
func (t *BooleanType) Fingerprint() string { return typeFingerprint(t) }

// BitWidth returns the number of bits required to store a single element of this data type in memory.
func (t *BooleanType) BitWidth() int { return 1 }

// Float16Type represents a floating point value encoded with a 16-bit precision.
type Float16Type struct{}

func (t *Float16Type) ID() Type            { return FLOAT16 }
func (t *Float16Type) Name() string        { return "float16" }
func (t *Float16Type) String() string      { return "float16" }
func (t *Float16Type) BitWidth() int       { return 16 }
func (t *Float16Type) Fingerprint() string { return typeFingerprint(t) }

// FixedSizeBinaryType describes binary values where each value occupies
// the same, fixed number of bytes.
type FixedSizeBinaryType struct {
	ByteWidth int
}

// NewFixedSizeBinaryType returns a FixedSizeBinaryType of the given width,
// rejecting negative widths.
func NewFixedSizeBinaryType(byteWidth int) (*FixedSizeBinaryType, error) {
	if byteWidth < 0 {
		return nil, fmt.Errorf("%w: fixed size binary byte width %d is negative", ErrInvalidTypeParameters, byteWidth)
	}
	return &FixedSizeBinaryType{ByteWidth: byteWidth}, nil
}

func (*FixedSizeBinaryType) ID() Type              { return FIXED_SIZE_BINARY }
func (*FixedSizeBinaryType) Name() string          { return "fixed_size_binary" }
func (t *FixedSizeBinaryType) BitWidth() int       { return 8 * t.ByteWidth }
func (t *FixedSizeBinaryType) Fingerprint() string {
	return fmt.Sprintf("%s[%d]", typeFingerprint(t), t.ByteWidth)
}
func (t *FixedSizeBinaryType) String() string {
	return "fixed_size_binary[" + strconv.Itoa(t.ByteWidth) + "]"
}

// TimeUnit is the granularity of a temporal type.
type TimeUnit int

const (
	Nanosecond TimeUnit = iota
	Microsecond
	Millisecond
	Second
)

func (u TimeUnit) Multiplier() time.Duration {
	return [...]time.Duration{time.Nanosecond, time.Microsecond, time.Millisecond, time.Second}[uint(u)&3]
}

func (u TimeUnit) String() string { return [...]string{"ns", "us", "ms", "s"}[uint(u)&3] }

// Date32Type is encoded as int32 days since the UNIX epoch.
type Date32Type struct{}

func (*Date32Type) ID() Type              { return DATE32 }
func (*Date32Type) Name() string          { return "date32" }
func (*Date32Type) String() string        { return "date32" }
func (*Date32Type) BitWidth() int         { return 32 }
func (t *Date32Type) Fingerprint() string { return typeFingerprint(t) }

// Date64Type is encoded as int64 milliseconds since the UNIX epoch.
type Date64Type struct{}

func (*Date64Type) ID() Type              { return DATE64 }
func (*Date64Type) Name() string          { return "date64" }
func (*Date64Type) String() string        { return "date64" }
func (*Date64Type) BitWidth() int         { return 64 }
func (t *Date64Type) Fingerprint() string { return typeFingerprint(t) }

// Time32Type is encoded as a 32-bit signed integer, representing either
// seconds or milliseconds since midnight.
type Time32Type struct {
	Unit TimeUnit
}

func (*Time32Type) ID() Type           { return TIME32 }
func (*Time32Type) Name() string       { return "time32" }
func (*Time32Type) BitWidth() int      { return 32 }
func (t *Time32Type) TimeUnit() TimeUnit { return t.Unit }
func (t *Time32Type) String() string   { return "time32[" + t.Unit.String() + "]" }
func (t *Time32Type) Fingerprint() string {
	return typeFingerprint(t) + string(timeUnitFingerprint(t.Unit))
}

// Time64Type is encoded as a 64-bit signed integer, representing either
// microseconds or nanoseconds since midnight.
type Time64Type struct {
	Unit TimeUnit
}

func (*Time64Type) ID() Type           { return TIME64 }
func (*Time64Type) Name() string       { return "time64" }
func (*Time64Type) BitWidth() int      { return 64 }
func (t *Time64Type) TimeUnit() TimeUnit { return t.Unit }
func (t *Time64Type) String() string   { return "time64[" + t.Unit.String() + "]" }
func (t *Time64Type) Fingerprint() string {
	return typeFingerprint(t) + string(timeUnitFingerprint(t.Unit))
}

// TimestampType is encoded as a 64-bit signed integer since the UNIX epoch.
// An empty TimeZone means the timestamp is zone-neutral.
type TimestampType struct {
	Unit     TimeUnit
	TimeZone string
}

func (*TimestampType) ID() Type           { return TIMESTAMP }
func (*TimestampType) Name() string       { return "timestamp" }
func (*TimestampType) BitWidth() int      { return 64 }
func (t *TimestampType) TimeUnit() TimeUnit { return t.Unit }
func (t *TimestampType) String() string {
	switch len(t.TimeZone) {
	case 0:
		return "timestamp[" + t.Unit.String() + "]"
	default:
		return "timestamp[" + t.Unit.String() + ", tz=" + t.TimeZone + "]"
	}
}

func (t *TimestampType) Fingerprint() string {
	return fmt.Sprintf("%s%d:%s", typeFingerprint(t)+string(timeUnitFingerprint(t.Unit)), len(t.TimeZone), t.TimeZone)
}

// DurationType is encoded as a 64-bit signed integer, representing an
// amount of elapsed time without any relation to a calendar artifact.
type DurationType struct {
	Unit TimeUnit
}

func (*DurationType) ID() Type           { return DURATION }
func (*DurationType) Name() string       { return "duration" }
func (*DurationType) BitWidth() int      { return 64 }
func (t *DurationType) TimeUnit() TimeUnit { return t.Unit }
func (t *DurationType) String() string   { return "duration[" + t.Unit.String() + "]" }
func (t *DurationType) Fingerprint() string {
	return typeFingerprint(t) + string(timeUnitFingerprint(t.Unit))
}

// MonthIntervalType is encoded as a 32-bit signed integer, representing a
// number of months.
type MonthIntervalType struct{}

func (*MonthIntervalType) ID() Type            { return INTERVAL_MONTHS }
func (*MonthIntervalType) Name() string        { return "month_interval" }
func (*MonthIntervalType) String() string      { return "month_interval" }
func (*MonthIntervalType) BitWidth() int       { return 32 }
func (*MonthIntervalType) Fingerprint() string { return typeIDFingerprint(INTERVAL_MONTHS) + "M" }

// DayTimeIntervalType is encoded as a pair of 32-bit signed integers,
// representing a number of days and milliseconds (fraction of day).
type DayTimeIntervalType struct{}

func (*DayTimeIntervalType) ID() Type            { return INTERVAL_DAY_TIME }
func (*DayTimeIntervalType) Name() string        { return "day_time_interval" }
func (*DayTimeIntervalType) String() string      { return "day_time_interval" }
func (*DayTimeIntervalType) BitWidth() int       { return 64 }
func (*DayTimeIntervalType) Fingerprint() string { return typeIDFingerprint(INTERVAL_DAY_TIME) + "d" }

// MonthDayNanoIntervalType is encoded as two signed 32-bit integers for
// months and days, followed by a 64-bit integer for nanoseconds since
// midnight.
type MonthDayNanoIntervalType struct{}

func (*MonthDayNanoIntervalType) ID() Type       { return INTERVAL_MONTH_DAY_NANO }
func (*MonthDayNanoIntervalType) Name() string   { return "month_day_nano_interval" }
func (*MonthDayNanoIntervalType) String() string { return "month_day_nano_interval" }
func (*MonthDayNanoIntervalType) BitWidth() int  { return 128 }
func (*MonthDayNanoIntervalType) Fingerprint() string {
	return typeIDFingerprint(INTERVAL_MONTH_DAY_NANO) + "N"
}

const (
	// MaxDecimal128Precision is the largest precision representable in 128 bits.
	MaxDecimal128Precision = 38
	// MaxDecimal256Precision is the largest precision representable in 256 bits.
	MaxDecimal256Precision = 76
)

// Decimal128Type represents a fixed-size 128-bit decimal type.
type Decimal128Type struct {
	Precision int32
	Scale     int32
}

// NewDecimal128Type validates precision and scale before constructing the
// type: 1 <= precision <= 38 and 0 <= scale <= precision. Negative scale is
// not supported; the constructor rejects it rather than inferring a meaning.
func NewDecimal128Type(precision, scale int32) (*Decimal128Type, error) {
	if err := checkDecimalParams(precision, scale, MaxDecimal128Precision); err != nil {
		return nil, err
	}
	return &Decimal128Type{Precision: precision, Scale: scale}, nil
}

func (*Decimal128Type) ID() Type      { return DECIMAL128 }
func (*Decimal128Type) Name() string  { return "decimal128" }
func (*Decimal128Type) BitWidth() int { return 128 }
func (t *Decimal128Type) String() string {
	return fmt.Sprintf("%s(%d, %d)", t.Name(), t.Precision, t.Scale)
}
func (t *Decimal128Type) Fingerprint() string {
	return fmt.Sprintf("%s[%d,%d,%d]", typeFingerprint(t), t.BitWidth(), t.Precision, t.Scale)
}

// Decimal256Type represents a fixed-size 256-bit decimal type.
type Decimal256Type struct {
	Precision int32
	Scale     int32
}

// NewDecimal256Type is NewDecimal128Type with the 256-bit precision bound of 76.
func NewDecimal256Type(precision, scale int32) (*Decimal256Type, error) {
	if err := checkDecimalParams(precision, scale, MaxDecimal256Precision); err != nil {
		return nil, err
	}
	return &Decimal256Type{Precision: precision, Scale: scale}, nil
}

func (*Decimal256Type) ID() Type      { return DECIMAL256 }
func (*Decimal256Type) Name() string  { return "decimal256" }
func (*Decimal256Type) BitWidth() int { return 256 }
func (t *Decimal256Type) String() string {
	return fmt.Sprintf("%s(%d, %d)", t.Name(), t.Precision, t.Scale)
}
func (t *Decimal256Type) Fingerprint() string {
	return fmt.Sprintf("%s[%d,%d,%d]", typeFingerprint(t), t.BitWidth(), t.Precision, t.Scale)
}

func checkDecimalParams(precision, scale, maxPrecision int32) error {
	if precision < 1 || precision > maxPrecision {
		return fmt.Errorf("%w: decimal precision %d out of range [1, %d]", ErrInvalidTypeParameters, precision, maxPrecision)
	}
	if scale < 0 || scale > precision {
		return fmt.Errorf("%w: decimal scale %d out of range [0, precision %d]", ErrInvalidTypeParameters, scale, precision)
	}
	return nil
}

// FixedWidthTypes holds canonical instances of the parameterless and
// unit-parameterized fixed-width types.
var FixedWidthTypes = struct {
	Boolean              FixedWidthDataType
	Float16              FixedWidthDataType
	Date32               FixedWidthDataType
	Date64               FixedWidthDataType
	Time32s              FixedWidthDataType
	Time32ms             FixedWidthDataType
	Time64us             FixedWidthDataType
	Time64ns             FixedWidthDataType
	Timestamp_s          FixedWidthDataType
	Timestamp_ms         FixedWidthDataType
	Timestamp_us         FixedWidthDataType
	Timestamp_ns         FixedWidthDataType
	Duration_s           FixedWidthDataType
	Duration_ms          FixedWidthDataType
	Duration_us          FixedWidthDataType
	Duration_ns          FixedWidthDataType
	MonthInterval        FixedWidthDataType
	DayTimeInterval      FixedWidthDataType
	MonthDayNanoInterval FixedWidthDataType
}{
	Boolean:              &BooleanType{},
	Float16:              &Float16Type{},
	Date32:               &Date32Type{},
	Date64:               &Date64Type{},
	Time32s:              &Time32Type{Unit: Second},
	Time32ms:             &Time32Type{Unit: Millisecond},
	Time64us:             &Time64Type{Unit: Microsecond},
	Time64ns:             &Time64Type{Unit: Nanosecond},
	Timestamp_s:          &TimestampType{Unit: Second, TimeZone: "UTC"},
	Timestamp_ms:         &TimestampType{Unit: Millisecond, TimeZone: "UTC"},
	Timestamp_us:         &TimestampType{Unit: Microsecond, TimeZone: "UTC"},
	Timestamp_ns:         &TimestampType{Unit: Nanosecond, TimeZone: "UTC"},
	Duration_s:           &DurationType{Unit: Second},
	Duration_ms:          &DurationType{Unit: Millisecond},
	Duration_us:          &DurationType{Unit: Microsecond},
	Duration_ns:          &DurationType{Unit: Nanosecond},
	MonthInterval:        &MonthIntervalType{},
	DayTimeInterval:      &DayTimeIntervalType{},
	MonthDayNanoInterval: &MonthDayNanoIntervalType{},
}

var _ FixedWidthDataType = (*FixedSizeBinaryType)(nil)
