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

// ListType describes a nested type in which each slot contains a
// variable-size sequence of values, all having the same relative type.
type ListType struct {
	elem Field
}

// ListOfField returns the list type wrapping the given element field.
func ListOfField(f Field) *ListType {
	if f.Type == nil {
		panic("tabular: nil type for list field")
	}
	return &ListType{elem: f}
}

// ListOf returns the list type with element type t.
//
// ListOf panics if t is nil. The element defaults to a nullable field
// named "item".
func ListOf(t DataType) *ListType {
	if t == nil {
		panic("tabular: nil DataType")
	}
	return &ListType{elem: Field{Name: "item", Type: t, Nullable: true}}
}

// ListOfNonNullable is like ListOf but marks the element as non-nullable.
func ListOfNonNullable(t DataType) *ListType {
	if t == nil {
		panic("tabular: nil DataType")
	}
	return &ListType{elem: Field{Name: "item", Type: t, Nullable: false}}
}

func (*ListType) ID() Type     { return LIST }
func (*ListType) Name() string { return "list" }

func (t *ListType) String() string {
	if t.elem.Nullable {
		return fmt.Sprintf("list<%s: %s, nullable>", t.elem.Name, t.elem.Type)
	}
	return fmt.Sprintf("list<%s: %s>", t.elem.Name, t.elem.Type)
}

func (t *ListType) Fingerprint() string {
	return typeFingerprint(t) + "{" + t.elem.Fingerprint() + "}"
}

// Elem returns the ListType's element type.
func (t *ListType) Elem() DataType { return t.elem.Type }

func (t *ListType) ElemField() Field { return t.elem }

func (t *ListType) Fields() []Field { return []Field{t.elem} }
func (t *ListType) NumFields() int  { return 1 }

// LargeListType is a ListType with 64-bit offsets.
type LargeListType struct {
	ListType
}

func (*LargeListType) ID() Type     { return LARGE_LIST }
func (*LargeListType) Name() string { return "large_list" }
func (t *LargeListType) String() string {
	return "large_" + t.ListType.String()
}

func (t *LargeListType) Fingerprint() string {
	return typeFingerprint(t) + "{" + t.elem.Fingerprint() + "}"
}

// LargeListOfField returns the large list type wrapping the given element field.
func LargeListOfField(f Field) *LargeListType {
	if f.Type == nil {
		panic("tabular: nil type for list field")
	}
	return &LargeListType{ListType{elem: f}}
}

// LargeListOf returns the 64-bit offset list type with element type t.
func LargeListOf(t DataType) *LargeListType {
	if t == nil {
		panic("tabular: nil DataType")
	}
	return &LargeListType{ListType{elem: Field{Name: "item", Type: t, Nullable: true}}}
}

// FixedSizeListType describes a nested type in which each slot contains a
// fixed-size sequence of values, all having the same relative type.
type FixedSizeListType struct {
	n    int32
	elem Field
}

// NewFixedSizeListType returns the fixed-size list type wrapping f, with n
// elements per slot. n must be non-negative.
func NewFixedSizeListType(n int32, f Field) (*FixedSizeListType, error) {
	if f.Type == nil {
		panic("tabular: nil type for list field")
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: fixed size list length %d is negative", ErrInvalidTypeParameters, n)
	}
	return &FixedSizeListType{n: n, elem: f}, nil
}

// FixedSizeListOf returns the fixed-size list type with element type t.
// It panics if t is nil or n is negative; use NewFixedSizeListType for an
// error-returning variant.
func FixedSizeListOf(n int32, t DataType) *FixedSizeListType {
	if t == nil {
		panic("tabular: nil DataType")
	}
	dt, err := NewFixedSizeListType(n, Field{Name: "item", Type: t, Nullable: true})
	if err != nil {
		panic(err)
	}
	return dt
}

func (*FixedSizeListType) ID() Type     { return FIXED_SIZE_LIST }
func (*FixedSizeListType) Name() string { return "fixed_size_list" }
func (t *FixedSizeListType) String() string {
	if t.elem.Nullable {
		return fmt.Sprintf("fixed_size_list<%s: %s, nullable>[%d]", t.elem.Name, t.elem.Type, t.n)
	}
	return fmt.Sprintf("fixed_size_list<%s: %s>[%d]", t.elem.Name, t.elem.Type, t.n)
}

// Elem returns the FixedSizeListType's element type.
func (t *FixedSizeListType) Elem() DataType { return t.elem.Type }

// Len returns the FixedSizeListType's size.
func (t *FixedSizeListType) Len() int32 { return t.n }

func (t *FixedSizeListType) ElemField() Field { return t.elem }

func (t *FixedSizeListType) Fields() []Field { return []Field{t.elem} }
func (t *FixedSizeListType) NumFields() int  { return 1 }

func (t *FixedSizeListType) Fingerprint() string {
	return fmt.Sprintf("%s[%d]{%s}", typeFingerprint(t), t.n, t.elem.Fingerprint())
}

// StructType describes a nested type parameterized by an ordered sequence
// of relative types, called its fields. Field names need not be unique.
type StructType struct {
	fields []Field
	index  map[string][]int
}

// StructOf returns the struct type with fields fs.
//
// StructOf panics if there is a field with a nil DataType. Duplicate field
// names are permitted; by-name lookup reports the first occurrence.
func StructOf(fs ...Field) *StructType {
	n := len(fs)
	if n == 0 {
		return &StructType{}
	}

	t := &StructType{
		fields: make([]Field, n),
		index:  make(map[string][]int, n),
	}
	for i, f := range fs {
		if f.Type == nil {
			panic("tabular: field with nil DataType")
		}
		t.fields[i] = Field{
			Name:     f.Name,
			Type:     f.Type,
			Nullable: f.Nullable,
			Metadata: f.Metadata.clone(),
		}
		t.index[f.Name] = append(t.index[f.Name], i)
	}

	return t
}

func (*StructType) ID() Type     { return STRUCT }
func (*StructType) Name() string { return "struct" }

func (t *StructType) String() string {
	o := new(strings.Builder)
	o.WriteString("struct<")
	for i, f := range t.fields {
		if i > 0 {
			o.WriteString(", ")
		}
		fmt.Fprintf(o, "%s: %v", f.Name, f.Type)
	}
	o.WriteString(">")
	return o.String()
}

func (t *StructType) Fields() []Field   { return t.fields }
func (t *StructType) NumFields() int    { return len(t.fields) }
func (t *StructType) Field(i int) Field { return t.fields[i] }

// FieldByName returns the first field with the given name.
func (t *StructType) FieldByName(name string) (Field, bool) {
	i, ok := t.FieldIdx(name)
	if !ok {
		return Field{}, false
	}
	return t.fields[i], true
}

// FieldIdx returns the index of the first field with the given name.
func (t *StructType) FieldIdx(name string) (int, bool) {
	idx, ok := t.index[name]
	if !ok {
		return -1, false
	}
	return idx[0], true
}

func (t *StructType) Fingerprint() string {
	var b strings.Builder
	b.WriteString(typeFingerprint(t))
	b.WriteByte('{')
	for _, c := range t.fields {
		b.WriteString(c.Fingerprint())
		b.WriteByte(';')
	}
	b.WriteByte('}')
	return b.String()
}

// MapType describes a repeated struct of key/value entries. Its single
// child field is a non-nullable list of Struct<key, value> entries; the key
// field is always non-nullable.
type MapType struct {
	value      *ListType
	KeysSorted bool
}

// MapOf returns the map type with the given key and item types. It panics
// if either type is nil.
func MapOf(key, item DataType) *MapType {
	if key == nil || item == nil {
		panic("tabular: nil key or item type for MapType")
	}
	return &MapType{value: ListOf(StructOf(
		Field{Name: "key", Type: key},
		Field{Name: "value", Type: item, Nullable: true},
	))}
}

// MapOfField builds a map type around an existing entries field, as when
// reconstructing a map from its child record. The entries type must be a
// struct with exactly two fields (key, value) and a non-nullable key.
func MapOfField(entries Field, keysSorted bool) (*MapType, error) {
	st, ok := entries.Type.(*StructType)
	if !ok {
		return nil, fmt.Errorf("%w: map entries type must be struct, got %s", ErrInvalidTypeParameters, entries.Type)
	}
	if st.NumFields() != 2 {
		return nil, fmt.Errorf("%w: map entries struct must have exactly 2 fields, got %d", ErrInvalidTypeParameters, st.NumFields())
	}
	entries.Nullable = false
	return &MapType{value: ListOfField(entries), KeysSorted: keysSorted}, nil
}

func (*MapType) ID() Type     { return MAP }
func (*MapType) Name() string { return "map" }

func (t *MapType) String() string {
	var o strings.Builder
	fmt.Fprintf(&o, "map<%s, %s", t.KeyType(), t.ItemType())
	if t.KeysSorted {
		o.WriteString(", keys_sorted")
	}
	o.WriteString(">")
	return o.String()
}

func (t *MapType) KeyField() Field        { return t.value.Elem().(*StructType).Field(0) }
func (t *MapType) KeyType() DataType      { return t.KeyField().Type }
func (t *MapType) ItemField() Field       { return t.value.Elem().(*StructType).Field(1) }
func (t *MapType) ItemType() DataType     { return t.ItemField().Type }
func (t *MapType) ValueType() *StructType { return t.value.Elem().(*StructType) }

// ValueField returns the single child field holding the entries struct.
func (t *MapType) ValueField() Field {
	return Field{Name: "entries", Type: t.ValueType()}
}

func (t *MapType) Fields() []Field { return []Field{t.ValueField()} }
func (t *MapType) NumFields() int  { return 1 }

func (t *MapType) Fingerprint() string {
	fingerprint := typeFingerprint(t)
	if t.KeysSorted {
		fingerprint += "s"
	}
	return fingerprint + "{" + t.KeyType().Fingerprint() + t.ItemType().Fingerprint() + "}"
}

// UnionTypeCode is the on-wire discriminant identifying one union child.
// Type codes are unique within a union but need not be contiguous or sorted.
type UnionTypeCode = int8

// MaxUnionTypeCode is the largest value a union type code can take.
const MaxUnionTypeCode UnionTypeCode = 127

// UnionMode selects between the sparse and dense union layouts.
type UnionMode int8

const (
	SparseMode UnionMode = iota
	DenseMode
)

func (m UnionMode) String() string { return [...]string{"sparse", "dense"}[uint(m)&1] }

// UnionType is implemented by SparseUnionType and DenseUnionType. The two
// share all schema-level behavior and differ only in value layout.
type UnionType interface {
	NestedType
	Mode() UnionMode
	// TypeCodes returns the type-id assigned to each child, in child order.
	TypeCodes() []UnionTypeCode
}

type unionType struct {
	children  []Field
	typeCodes []UnionTypeCode
}

func (t *unionType) init(fields []Field, typeCodes []UnionTypeCode) error {
	if len(fields) != len(typeCodes) {
		return fmt.Errorf("%w: union has %d children but %d type codes", ErrInvalidTypeParameters, len(fields), len(typeCodes))
	}
	seen := make(map[UnionTypeCode]struct{}, len(typeCodes))
	for _, tc := range typeCodes {
		if tc < 0 {
			return fmt.Errorf("%w: union type code %d is negative", ErrInvalidTypeParameters, tc)
		}
		if _, dup := seen[tc]; dup {
			return fmt.Errorf("%w: duplicate union type code %d", ErrInvalidTypeParameters, tc)
		}
		seen[tc] = struct{}{}
	}
	t.children = make([]Field, len(fields))
	for i, f := range fields {
		if f.Type == nil {
			panic("tabular: field with nil DataType")
		}
		t.children[i] = Field{
			Name:     f.Name,
			Type:     f.Type,
			Nullable: f.Nullable,
			Metadata: f.Metadata.clone(),
		}
	}
	t.typeCodes = make([]UnionTypeCode, len(typeCodes))
	copy(t.typeCodes, typeCodes)
	return nil
}

func (t *unionType) Fields() []Field            { return t.children }
func (t *unionType) NumFields() int             { return len(t.children) }
func (t *unionType) TypeCodes() []UnionTypeCode { return t.typeCodes }

func (t *unionType) fingerprint() string {
	var b strings.Builder
	for _, c := range t.typeCodes {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(int(c)))
	}
	b.WriteString("{")
	for _, f := range t.children {
		b.WriteString(f.Fingerprint())
		b.WriteByte(';')
	}
	b.WriteByte('}')
	return b.String()
}

func (t *unionType) string(name string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('<')
	for i, f := range t.children {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v=%d", f.Name, f.Type, t.typeCodes[i])
	}
	b.WriteByte('>')
	return b.String()
}

// SparseUnionType is a union where each child spans the full length of the
// containing array.
type SparseUnionType struct {
	unionType
}

func (*SparseUnionType) ID() Type          { return SPARSE_UNION }
func (*SparseUnionType) Name() string      { return "sparse_union" }
func (*SparseUnionType) Mode() UnionMode   { return SparseMode }
func (t *SparseUnionType) String() string  { return t.string(t.Name()) }
func (t *SparseUnionType) Fingerprint() string {
	return typeFingerprint(t) + t.fingerprint()
}

// DenseUnionType is a union where children are packed densely and located
// through a per-slot offset.
type DenseUnionType struct {
	unionType
}

func (*DenseUnionType) ID() Type          { return DENSE_UNION }
func (*DenseUnionType) Name() string      { return "dense_union" }
func (*DenseUnionType) Mode() UnionMode   { return DenseMode }
func (t *DenseUnionType) String() string  { return t.string(t.Name()) }
func (t *DenseUnionType) Fingerprint() string {
	return typeFingerprint(t) + t.fingerprint()
}

// NewUnionType builds a sparse or dense union, validating that the type-id
// list matches the children one-to-one and contains no negative or
// duplicate codes.
func NewUnionType(mode UnionMode, fields []Field, typeCodes []UnionTypeCode) (UnionType, error) {
	switch mode {
	case SparseMode:
		t := &SparseUnionType{}
		if err := t.init(fields, typeCodes); err != nil {
			return nil, err
		}
		return t, nil
	case DenseMode:
		t := &DenseUnionType{}
		if err := t.init(fields, typeCodes); err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: invalid union mode %d", ErrInvalidTypeParameters, mode)
}

// UnionOf is NewUnionType for statically-known parameters; it panics on
// invalid input.
func UnionOf(mode UnionMode, fields []Field, typeCodes []UnionTypeCode) UnionType {
	t, err := NewUnionType(mode, fields, typeCodes)
	if err != nil {
		panic(err)
	}
	return t
}

// SparseUnionOf returns a sparse union, panicking on invalid parameters.
func SparseUnionOf(fields []Field, typeCodes []UnionTypeCode) *SparseUnionType {
	return UnionOf(SparseMode, fields, typeCodes).(*SparseUnionType)
}

// DenseUnionOf returns a dense union, panicking on invalid parameters.
func DenseUnionOf(fields []Field, typeCodes []UnionTypeCode) *DenseUnionType {
	return UnionOf(DenseMode, fields, typeCodes).(*DenseUnionType)
}

// Field is a named, nullable slot of a given logical type plus metadata.
// Fields are value objects; once placed in a schema or nested type they are
// never mutated.
type Field struct {
	Name     string   // Field name
	Type     DataType // The field's data type
	Nullable bool     // Fields can be nullable
	Metadata Metadata // The field's metadata, if any
}

func (f Field) Fingerprint() string {
	var b strings.Builder
	b.WriteByte('F')
	if f.Nullable {
		b.WriteByte('n')
	} else {
		b.WriteByte('N')
	}
	b.WriteString(f.Name)
	b.WriteByte('{')
	b.WriteString(f.Type.Fingerprint())
	b.WriteByte('}')
	return b.String()
}

func (f Field) HasMetadata() bool { return f.Metadata.Len() != 0 }

// Equal reports structural equality over name, type, nullability and
// metadata.
func (f Field) Equal(o Field) bool {
	switch {
	case f.Name != o.Name:
		return false
	case f.Nullable != o.Nullable:
		return false
	case !TypeEqual(f.Type, o.Type, CheckMetadata()):
		return false
	case !f.Metadata.Equal(o.Metadata):
		return false
	}
	return true
}

func (f Field) String() string {
	o := new(strings.Builder)
	nullable := ""
	if f.Nullable {
		nullable = ", nullable"
	}
	fmt.Fprintf(o, "%s: type=%v%v", f.Name, f.Type, nullable)
	if f.HasMetadata() {
		fmt.Fprintf(o, "\n%*.smetadata: %v", len(f.Name)+2, "", f.Metadata)
	}
	return o.String()
}

var (
	_ NestedType = (*ListType)(nil)
	_ NestedType = (*LargeListType)(nil)
	_ NestedType = (*FixedSizeListType)(nil)
	_ NestedType = (*StructType)(nil)
	_ NestedType = (*MapType)(nil)
	_ UnionType  = (*SparseUnionType)(nil)
	_ UnionType  = (*DenseUnionType)(nil)
)
