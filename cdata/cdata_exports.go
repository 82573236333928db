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

// #include <stdint.h>
// #include <stdlib.h>
// #include "arrow/c/abi.h"
// #include "arrow/c/helpers.h"
//
// extern void releaseExportedSchema(struct ArrowSchema* schema);
//
// void goReleaseSchema(struct ArrowSchema* schema) {
//	releaseExportedSchema(schema);
// }
import "C"

import (
	"sync/atomic"
	"unsafe"

	"github.com/tabular-io/tabular"
)

// exportedAllocs tracks every block the export path hands to C. The release
// callback decrements it; a clean producer/consumer exchange drains it back
// to zero.
var exportedAllocs atomic.Int64

// ExportedAllocations reports the number of C allocations owned by exported
// schema records that have not been released yet.
func ExportedAllocations() int64 { return exportedAllocs.Load() }

func mallocCounted(n int) unsafe.Pointer {
	exportedAllocs.Add(1)
	return C.malloc(C.size_t(n))
}

func freeCounted(p unsafe.Pointer) {
	if p == nil {
		return
	}
	exportedAllocs.Add(-1)
	C.free(p)
}

func cStringCounted(s string) *C.char {
	p := mallocCounted(len(s) + 1)
	buf := unsafe.Slice((*byte)(p), len(s)+1)
	copy(buf, s)
	buf[len(s)] = 0
	return (*C.char)(p)
}

func cBytesCounted(b []byte) *C.char {
	if len(b) == 0 {
		return nil
	}
	p := mallocCounted(len(b))
	copy(unsafe.Slice((*byte)(p), len(b)), b)
	return (*C.char)(p)
}

func allocateArrowSchemaArr(n int) []CArrowSchema {
	return unsafe.Slice((*CArrowSchema)(mallocCounted(C.sizeof_struct_ArrowSchema*n)), n)
}

func allocateArrowSchemaPtrArr(n int) []*CArrowSchema {
	return unsafe.Slice((**CArrowSchema)(mallocCounted(int(unsafe.Sizeof((*CArrowSchema)(nil)))*n)), n)
}

// schemaExporter builds the full record tree on the Go side first, then
// commits it to C memory in one pass. Nothing is allocated in C until the
// whole type tree has been translated.
type schemaExporter struct {
	format, name string

	extraMeta tabular.Metadata
	metadata  []byte
	flags     int64
	children  []schemaExporter
	dict      *schemaExporter
}

// handleExtension peels an extension type down to its storage type, staging
// the canonical metadata pairs that carry the extension identity.
func (exp *schemaExporter) handleExtension(dt tabular.DataType) tabular.DataType {
	ext, ok := dt.(tabular.ExtensionType)
	if !ok {
		return dt
	}

	exp.extraMeta = tabular.NewMetadata(
		[]string{tabular.ExtensionTypeKeyName, tabular.ExtensionMetadataKeyName},
		[]string{ext.ExtensionName(), ext.Serialize()})
	return ext.StorageType()
}

func (exp *schemaExporter) exportMeta(m tabular.Metadata) {
	finalKeys := append([]string(nil), m.Keys()...)
	finalValues := append([]string(nil), m.Values()...)

	// extension identity pairs never clobber pairs the field already has
	for i, k := range exp.extraMeta.Keys() {
		if m.FindKey(k) != -1 {
			continue
		}
		finalKeys = append(finalKeys, k)
		finalValues = append(finalValues, exp.extraMeta.Values()[i])
	}
	exp.metadata = encodeCMetadata(finalKeys, finalValues)
}

func (exp *schemaExporter) export(field tabular.Field) error {
	exp.name = field.Name

	dt := exp.handleExtension(field.Type)

	format, err := tabular.EncodeFormat(dt)
	if err != nil {
		return err
	}
	exp.format = format

	if field.Nullable {
		exp.flags |= C.ARROW_FLAG_NULLABLE
	}

	switch dt := dt.(type) {
	case *tabular.MapType:
		if dt.KeysSorted {
			exp.flags |= C.ARROW_FLAG_MAP_KEYS_SORTED
		}
	case *tabular.DictionaryType:
		// the ordered flag is carried by the record holding the index type
		if dt.Ordered {
			exp.flags |= C.ARROW_FLAG_DICTIONARY_ORDERED
		}
	}

	switch dt := dt.(type) {
	case *tabular.DictionaryType:
		exp.dict = new(schemaExporter)
		if err := exp.dict.export(tabular.Field{Type: dt.ValueType}); err != nil {
			return err
		}
	case tabular.NestedType:
		exp.children = make([]schemaExporter, dt.NumFields())
		for i, f := range dt.Fields() {
			if err := exp.children[i].export(f); err != nil {
				return err
			}
		}
	}

	exp.exportMeta(field.Metadata)
	return nil
}

// finish commits the staged export into C memory. Every allocation is
// counted and owned by the record's release callback.
func (exp *schemaExporter) finish(out *CArrowSchema) {
	out.dictionary = nil
	if exp.dict != nil {
		out.dictionary = (*CArrowSchema)(mallocCounted(C.sizeof_struct_ArrowSchema))
		exp.dict.finish(out.dictionary)
	}
	out.name = cStringCounted(exp.name)
	out.format = cStringCounted(exp.format)
	out.metadata = cBytesCounted(exp.metadata)
	out.flags = C.int64_t(exp.flags)
	out.n_children = C.int64_t(len(exp.children))

	if len(exp.children) > 0 {
		children := allocateArrowSchemaArr(len(exp.children))
		childPtrs := allocateArrowSchemaPtrArr(len(exp.children))

		for i := range exp.children {
			exp.children[i].finish(&children[i])
			childPtrs[i] = &children[i]
		}

		out.children = (**CArrowSchema)(unsafe.Pointer(&childPtrs[0]))
	} else {
		out.children = nil
	}

	out.private_data = nil
	out.release = (*[0]byte)(C.goReleaseSchema)
}

func exportField(field tabular.Field, out *CArrowSchema) error {
	var exp schemaExporter
	if err := exp.export(field); err != nil {
		return err
	}
	exp.finish(out)
	return nil
}
