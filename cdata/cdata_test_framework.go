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

//go:build test
// +build test

package cdata

// #include <stdlib.h>
// #include "arrow/c/abi.h"
// #include "arrow/c/helpers.h"
//
// void test_primitive(struct ArrowSchema* schema, const char* fmt);
// void test_metadata_primitive(struct ArrowSchema* schema);
// void test_struct_schema(struct ArrowSchema* schema);
// void test_list_schema(struct ArrowSchema* schema);
// void test_map_schema(struct ArrowSchema* schema, int keys_sorted);
// void test_dict_schema(struct ArrowSchema* schema, int ordered);
// void test_union_schema(struct ArrowSchema* schema);
// void test_null_child_schema(struct ArrowSchema* schema);
// void test_deep_schema(struct ArrowSchema* schema, int depth);
// void test_top_schema(struct ArrowSchema* schema);
// int test_released_count(void);
// int test_consume_exported(struct ArrowSchema* schema);
import "C"

import "unsafe"

const (
	flagIsNullable    = C.ARROW_FLAG_NULLABLE
	flagMapKeysSorted = C.ARROW_FLAG_MAP_KEYS_SORTED
	flagDictOrdered   = C.ARROW_FLAG_DICTIONARY_ORDERED
)

func testPrimitive(fmtstr string) CArrowSchema {
	var s CArrowSchema
	cfmt := C.CString(fmtstr)
	defer C.free(unsafe.Pointer(cfmt))
	C.test_primitive(&s, cfmt)
	return s
}

func testMetadataPrimitive() CArrowSchema {
	var s CArrowSchema
	C.test_metadata_primitive(&s)
	return s
}

func testStructSchema() CArrowSchema {
	var s CArrowSchema
	C.test_struct_schema(&s)
	return s
}

func testListSchema() CArrowSchema {
	var s CArrowSchema
	C.test_list_schema(&s)
	return s
}

func testMapSchema(keysSorted bool) CArrowSchema {
	var s CArrowSchema
	sorted := C.int(0)
	if keysSorted {
		sorted = 1
	}
	C.test_map_schema(&s, sorted)
	return s
}

func testDictSchema(ordered bool) CArrowSchema {
	var s CArrowSchema
	flag := C.int(0)
	if ordered {
		flag = 1
	}
	C.test_dict_schema(&s, flag)
	return s
}

func testUnionSchema() CArrowSchema {
	var s CArrowSchema
	C.test_union_schema(&s)
	return s
}

func testNullChildSchema() CArrowSchema {
	var s CArrowSchema
	C.test_null_child_schema(&s)
	return s
}

func testDeepSchema(depth int) CArrowSchema {
	var s CArrowSchema
	C.test_deep_schema(&s, C.int(depth))
	return s
}

func testTopSchema() CArrowSchema {
	var s CArrowSchema
	C.test_top_schema(&s)
	return s
}

func releasedCount() int { return int(C.test_released_count()) }

func schemaIsReleased(s *CArrowSchema) bool {
	return C.ArrowSchemaIsReleased(s) == 1
}

func consumeExported(s *CArrowSchema) int {
	return int(C.test_consume_exported(s))
}
