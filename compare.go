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

import "reflect"

type typeEqualsConfig struct {
	metadata bool
}

// TypeEqualOption is a functional option for TypeEqual.
type TypeEqualOption func(*typeEqualsConfig)

// CheckMetadata makes TypeEqual compare the metadata of nested child
// fields. By default metadata is excluded from the comparison.
func CheckMetadata() TypeEqualOption {
	return func(cfg *typeEqualsConfig) {
		cfg.metadata = true
	}
}

// TypeEqual reports structural equality of two type trees. Child field
// names and nullability always participate; child field metadata only when
// CheckMetadata is passed.
func TypeEqual(left, right DataType, opts ...TypeEqualOption) bool {
	var cfg typeEqualsConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return typeEqual(left, right, cfg)
}

func typeEqual(left, right DataType, cfg typeEqualsConfig) bool {
	switch {
	case left == nil || right == nil:
		return left == nil && right == nil
	case left.ID() != right.ID():
		return false
	}

	switch l := left.(type) {
	case ExtensionType:
		return l.ExtensionEquals(right.(ExtensionType))
	case *ListType:
		return fieldEqual(l.elem, right.(*ListType).elem, cfg)
	case *LargeListType:
		return fieldEqual(l.elem, right.(*LargeListType).elem, cfg)
	case *FixedSizeListType:
		r := right.(*FixedSizeListType)
		return l.n == r.n && fieldEqual(l.elem, r.elem, cfg)
	case *StructType:
		r := right.(*StructType)
		return fieldsEqual(l.fields, r.fields, cfg)
	case *MapType:
		r := right.(*MapType)
		if l.KeysSorted != r.KeysSorted {
			return false
		}
		return fieldEqual(l.ValueField(), r.ValueField(), cfg)
	case UnionType:
		r := right.(UnionType)
		if l.Mode() != r.Mode() {
			return false
		}
		lc, rc := l.TypeCodes(), r.TypeCodes()
		if len(lc) != len(rc) {
			return false
		}
		for i := range lc {
			if lc[i] != rc[i] {
				return false
			}
		}
		return fieldsEqual(l.Fields(), r.Fields(), cfg)
	case *RunEndEncodedType:
		r := right.(*RunEndEncodedType)
		return typeEqual(l.ends, r.ends, cfg) && typeEqual(l.enc, r.enc, cfg)
	case *DictionaryType:
		r := right.(*DictionaryType)
		return l.Ordered == r.Ordered &&
			typeEqual(l.IndexType, r.IndexType, cfg) &&
			typeEqual(l.ValueType, r.ValueType, cfg)
	default:
		// leaf types carry only scalar parameters
		return reflect.DeepEqual(left, right)
	}
}

func fieldEqual(l, r Field, cfg typeEqualsConfig) bool {
	switch {
	case l.Name != r.Name:
		return false
	case l.Nullable != r.Nullable:
		return false
	case cfg.metadata && !l.Metadata.Equal(r.Metadata):
		return false
	}
	return typeEqual(l.Type, r.Type, cfg)
}

func fieldsEqual(l, r []Field, cfg typeEqualsConfig) bool {
	if len(l) != len(r) {
		return false
	}
	for i := range l {
		if !fieldEqual(l[i], r[i], cfg) {
			return false
		}
	}
	return true
}
