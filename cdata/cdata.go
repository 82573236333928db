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

//go:build cgo

package cdata

// consuming side of the C Data Interface for type schema records.

// #include "arrow/c/abi.h"
// #include "arrow/c/helpers.h"
// #include <stdlib.h>
import "C"

import (
	"fmt"
	"unicode/utf8"
	"unsafe"

	"github.com/tabular-io/tabular"
)

// CArrowSchema is the C Data Interface schema record defined in abi.h.
type CArrowSchema = C.struct_ArrowSchema

// maxImportDepth bounds type tree recursion when importing a foreign
// record, so a corrupt or adversarial record cannot overflow the stack.
const maxImportDepth = 64

// importSchema converts a C schema record into a Field. Everything is
// copied out of the C memory; no references into the record survive the
// call. The record is NOT released: the producer still owns it, and the
// consumer signals it is done by calling ReleaseCSchema (or not at all, if
// the producer releases it itself).
func importSchema(schema *CArrowSchema, depth int) (ret tabular.Field, err error) {
	if depth > maxImportDepth {
		return ret, fmt.Errorf("%w: schema nesting exceeds %d levels", tabular.ErrRecursionLimitExceeded, maxImportDepth)
	}
	if schema == nil {
		return ret, fmt.Errorf("%w: nil schema record", tabular.ErrNullPointerViolation)
	}
	if schema.release == nil {
		return ret, fmt.Errorf("%w: schema record is already released", tabular.ErrNullPointerViolation)
	}
	if schema.format == nil {
		return ret, fmt.Errorf("%w: schema record has no format", tabular.ErrNullPointerViolation)
	}

	var childFields []tabular.Field
	if schema.n_children < 0 {
		return ret, fmt.Errorf("%w: negative child count %d", tabular.ErrInvalidTypeParameters, int64(schema.n_children))
	}
	if schema.n_children > 0 {
		if schema.children == nil {
			return ret, fmt.Errorf("%w: record declares %d children but the child array is null", tabular.ErrNullPointerViolation, int64(schema.n_children))
		}
		schemaChildren := unsafe.Slice(schema.children, int(schema.n_children))

		childFields = make([]tabular.Field, schema.n_children)
		for i, c := range schemaChildren {
			if c == nil {
				return ret, fmt.Errorf("%w: child %d is null", tabular.ErrNullPointerViolation, i)
			}
			childFields[i], err = importSchema(c, depth+1)
			if err != nil {
				return ret, err
			}
		}
	}

	// name may be omitted entirely; format may not.
	if schema.name != nil {
		ret.Name = C.GoString(schema.name)
		if !utf8.ValidString(ret.Name) {
			return ret, fmt.Errorf("%w: field name is not valid UTF-8", tabular.ErrInvalidUTF8)
		}
	}
	ret.Nullable = (schema.flags & C.ARROW_FLAG_NULLABLE) != 0

	if schema.metadata != nil {
		// reference the bytes directly, the decoder copies what it keeps
		const maxlen = 0x7fffffff
		ret.Metadata, err = decodeCMetadata((*[maxlen]byte)(unsafe.Pointer(schema.metadata))[:])
		if err != nil {
			return ret, err
		}
	}

	f := C.GoString(schema.format)
	if !utf8.ValidString(f) {
		return ret, fmt.Errorf("%w: format string is not valid UTF-8", tabular.ErrInvalidUTF8)
	}

	dt, err := tabular.DecodeFormat(f, childFields)
	if err != nil {
		return ret, err
	}

	if mt, ok := dt.(*tabular.MapType); ok {
		mt.KeysSorted = (schema.flags & C.ARROW_FLAG_MAP_KEYS_SORTED) != 0
	}

	if schema.dictionary != nil {
		valueField, err := importSchema(schema.dictionary, depth+1)
		if err != nil {
			return ret, err
		}
		// the ordered flag lives on the record holding the index type
		dt, err = tabular.NewDictionaryType(dt, valueField.Type,
			schema.flags&C.ARROW_FLAG_DICTIONARY_ORDERED != 0)
		if err != nil {
			return ret, err
		}
	}

	ret.Type = dt
	return applyExtension(ret), nil
}

// applyExtension reconstructs a registered extension type from the
// canonical metadata keys. An unregistered extension name keeps its storage
// type and metadata untouched so the identity survives a round trip. A
// registered name whose parameters fail to deserialize also falls back to
// the storage type.
func applyExtension(f tabular.Field) tabular.Field {
	extName, ok := f.Metadata.GetValue(tabular.ExtensionTypeKeyName)
	if !ok {
		return f
	}
	proto := tabular.GetExtensionType(extName)
	if proto == nil {
		return f
	}

	extData, _ := f.Metadata.GetValue(tabular.ExtensionMetadataKeyName)
	ext, err := proto.Deserialize(f.Type, extData)
	if err != nil {
		return f
	}

	f.Type = ext
	f.Metadata = withoutExtensionKeys(f.Metadata)
	return f
}

func withoutExtensionKeys(md tabular.Metadata) tabular.Metadata {
	keys := make([]string, 0, md.Len())
	values := make([]string, 0, md.Len())
	for i, k := range md.Keys() {
		if k == tabular.ExtensionTypeKeyName || k == tabular.ExtensionMetadataKeyName {
			continue
		}
		keys = append(keys, k)
		values = append(values, md.Values()[i])
	}
	return tabular.NewMetadata(keys, values)
}
