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
	"sort"
	"strings"

	"github.com/zeebo/xxh3"
)

// Metadata is an ordered sequence of key/value string pairs. Duplicate keys
// are permitted and preserved in order; there is no implicit deduplication.
type Metadata struct {
	keys   []string
	values []string
}

// NewMetadata builds metadata from parallel key and value slices. It panics
// if the lengths differ.
func NewMetadata(keys, values []string) Metadata {
	if len(keys) != len(values) {
		panic("tabular: len mismatch")
	}

	n := len(keys)
	if n == 0 {
		return Metadata{}
	}

	md := Metadata{
		keys:   make([]string, n),
		values: make([]string, n),
	}
	copy(md.keys, keys)
	copy(md.values, values)
	return md
}

// MetadataFrom builds metadata from a map, ordering pairs by sorted key.
func MetadataFrom(kv map[string]string) Metadata {
	md := Metadata{
		keys:   make([]string, 0, len(kv)),
		values: make([]string, 0, len(kv)),
	}
	for _, k := range sortedKeys(kv) {
		md.keys = append(md.keys, k)
		md.values = append(md.values, kv[k])
	}
	return md
}

func sortedKeys(kv map[string]string) []string {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (md Metadata) Len() int         { return len(md.keys) }
func (md Metadata) Keys() []string   { return md.keys }
func (md Metadata) Values() []string { return md.values }

func (md Metadata) String() string {
	o := new(strings.Builder)
	fmt.Fprintf(o, "[")
	for i := range md.keys {
		if i > 0 {
			fmt.Fprintf(o, ", ")
		}
		fmt.Fprintf(o, "%q: %q", md.keys[i], md.values[i])
	}
	fmt.Fprintf(o, "]")
	return o.String()
}

// FindKey returns the index of the first pair with the given key, or -1.
func (md Metadata) FindKey(k string) int {
	for i, v := range md.keys {
		if v == k {
			return i
		}
	}
	return -1
}

// GetValue returns the value of the first pair with the given key.
func (md Metadata) GetValue(k string) (string, bool) {
	i := md.FindKey(k)
	if i < 0 {
		return "", false
	}
	return md.values[i], true
}

// ToMap collapses the pairs into a map; later duplicates win. Pair order
// and duplicates are only preserved by the slice representation.
func (md Metadata) ToMap() map[string]string {
	m := make(map[string]string, len(md.keys))
	for i := range md.keys {
		m[md.keys[i]] = md.values[i]
	}
	return m
}

func (md Metadata) clone() Metadata {
	if len(md.keys) == 0 {
		return Metadata{}
	}
	return NewMetadata(md.keys, md.values)
}

// Equal reports pairwise equality including order and duplicates.
func (md Metadata) Equal(rhs Metadata) bool {
	if md.Len() != rhs.Len() {
		return false
	}
	for i := range md.keys {
		if md.keys[i] != rhs.keys[i] || md.values[i] != rhs.values[i] {
			return false
		}
	}
	return true
}

// Schema is an ordered sequence of fields plus schema-level metadata.
// Schemas are immutable once constructed and safe to share across
// goroutines. Field names need not be unique.
type Schema struct {
	fields []Field
	index  map[string][]int
	meta   Metadata
}

// NewSchema returns a new Schema of the given fields and metadata.
//
// NewSchema panics if a field has a nil DataType.
func NewSchema(fields []Field, metadata *Metadata) *Schema {
	sc := &Schema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string][]int, len(fields)),
	}
	if metadata != nil {
		sc.meta = metadata.clone()
	}
	for i, field := range fields {
		if field.Type == nil {
			panic("tabular: field with nil DataType")
		}
		sc.fields = append(sc.fields, field)
		sc.index[field.Name] = append(sc.index[field.Name], i)
	}
	return sc
}

func (sc *Schema) Metadata() Metadata { return sc.meta }
func (sc *Schema) Fields() []Field {
	fields := make([]Field, len(sc.fields))
	copy(fields, sc.fields)
	return fields
}
func (sc *Schema) Field(i int) Field { return sc.fields[i] }
func (sc *Schema) NumFields() int    { return len(sc.fields) }

// FieldsByName returns all fields with the given name, in schema order.
func (sc *Schema) FieldsByName(n string) ([]Field, bool) {
	indices, ok := sc.index[n]
	if !ok {
		return nil, false
	}
	fields := make([]Field, 0, len(indices))
	for _, v := range indices {
		fields = append(fields, sc.fields[v])
	}
	return fields, true
}

// FieldByName returns the unique field with the given name. A name with no
// match yields ErrFieldNotFound; a name shared by two or more fields yields
// ErrFieldNameAmbiguous rather than silently returning the first match.
// Lookup by index is unaffected by duplicates.
func (sc *Schema) FieldByName(n string) (Field, error) {
	indices, ok := sc.index[n]
	if !ok {
		return Field{}, fmt.Errorf("%w: %q", ErrFieldNotFound, n)
	}
	if len(indices) > 1 {
		return Field{}, fmt.Errorf("%w: %q matches %d fields", ErrFieldNameAmbiguous, n, len(indices))
	}
	return sc.fields[indices[0]], nil
}

// FieldIndices returns the indices of all fields with the given name, or
// nil if none match.
func (sc *Schema) FieldIndices(n string) []int {
	indices, ok := sc.index[n]
	if !ok {
		return nil
	}
	out := make([]int, len(indices))
	copy(out, indices)
	return out
}

func (sc *Schema) HasField(n string) bool { return len(sc.index[n]) > 0 }
func (sc *Schema) HasMetadata() bool      { return sc.meta.Len() > 0 }

// AddField returns a new schema with the field inserted at position i.
func (sc *Schema) AddField(i int, field Field) (*Schema, error) {
	if i < 0 || i > len(sc.fields) {
		return nil, fmt.Errorf("tabular: invalid field index %d", i)
	}
	fields := make([]Field, len(sc.fields)+1)
	copy(fields[:i], sc.fields[:i])
	fields[i] = field
	copy(fields[i+1:], sc.fields[i:])
	return NewSchema(fields, &sc.meta), nil
}

// Equal reports field-wise structural equality. Schema-level metadata is
// not compared; use EqualWithMetadata to include it.
func (sc *Schema) Equal(o *Schema) bool {
	switch {
	case sc == o:
		return true
	case sc == nil || o == nil:
		return false
	case len(sc.fields) != len(o.fields):
		return false
	}

	for i := range sc.fields {
		if !sc.fields[i].Equal(o.fields[i]) {
			return false
		}
	}
	return true
}

// EqualWithMetadata is Equal plus comparison of schema-level metadata.
func (sc *Schema) EqualWithMetadata(o *Schema) bool {
	if !sc.Equal(o) {
		return false
	}
	if sc == nil || o == nil {
		return sc == o
	}
	return sc.meta.Equal(o.meta)
}

func (sc *Schema) String() string {
	o := new(strings.Builder)
	fmt.Fprintf(o, "schema:\n  fields: %d\n", sc.NumFields())
	for i, f := range sc.fields {
		if i > 0 {
			o.WriteString("\n")
		}
		fmt.Fprintf(o, "    - %v", f)
	}
	if sc.meta.Len() > 0 {
		fmt.Fprintf(o, "\n  metadata: %v", sc.meta)
	}
	return o.String()
}

func (sc *Schema) Fingerprint() string {
	if sc == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("S{")
	for _, f := range sc.fields {
		b.WriteString(f.Fingerprint())
		b.WriteByte(';')
	}
	b.WriteByte('}')
	return b.String()
}

// HashSchema returns a 64-bit hash of the schema's fingerprint.
func HashSchema(sc *Schema) uint64 {
	return xxh3.HashString(sc.Fingerprint())
}

type mergeConfig struct {
	allowDuplicates bool
}

// MergeOption configures MergeSchemas.
type MergeOption func(*mergeConfig)

// AllowDuplicateNames permits the merged schema to contain several fields
// with the same name. Without it, a duplicate name fails the merge.
func AllowDuplicateNames() MergeOption {
	return func(cfg *mergeConfig) { cfg.allowDuplicates = true }
}

// MergeSchemas concatenates the fields of a and b into a new schema, and
// concatenates their metadata pairs in order. By default a field name
// appearing in both (or more than once overall) fails with
// ErrFieldNameAmbiguous; pass AllowDuplicateNames to permit it.
func MergeSchemas(a, b *Schema, opts ...MergeOption) (*Schema, error) {
	var cfg mergeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	fields := make([]Field, 0, len(a.fields)+len(b.fields))
	fields = append(fields, a.fields...)
	fields = append(fields, b.fields...)

	if !cfg.allowDuplicates {
		seen := make(map[string]struct{}, len(fields))
		for _, f := range fields {
			if _, dup := seen[f.Name]; dup {
				return nil, fmt.Errorf("%w: merge would duplicate field %q", ErrFieldNameAmbiguous, f.Name)
			}
			seen[f.Name] = struct{}{}
		}
	}

	meta := Metadata{
		keys:   append(append([]string(nil), a.meta.keys...), b.meta.keys...),
		values: append(append([]string(nil), a.meta.values...), b.meta.values...),
	}
	return NewSchema(fields, &meta), nil
}
