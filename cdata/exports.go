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

import "unsafe"

// #include <stdlib.h>
// #include "arrow/c/helpers.h"
import "C"

// releaseExportedSchema frees everything an exported record owns. The
// consumer may call it at most once; a second call observes the released
// marker and returns. Child and dictionary records are released through
// their own callbacks first, then their storage is freed here.
//
//export releaseExportedSchema
func releaseExportedSchema(schema *CArrowSchema) {
	if C.ArrowSchemaIsReleased(schema) == 1 {
		return
	}
	defer C.ArrowSchemaMarkReleased(schema)

	freeCounted(unsafe.Pointer(schema.name))
	freeCounted(unsafe.Pointer(schema.format))
	freeCounted(unsafe.Pointer(schema.metadata))

	if schema.dictionary != nil {
		C.ArrowSchemaRelease(schema.dictionary)
		freeCounted(unsafe.Pointer(schema.dictionary))
	}

	if schema.n_children == 0 {
		return
	}

	children := unsafe.Slice(schema.children, int(schema.n_children))
	for _, c := range children {
		C.ArrowSchemaRelease(c)
	}

	freeCounted(unsafe.Pointer(children[0]))
	freeCounted(unsafe.Pointer(schema.children))
}
