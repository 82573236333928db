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

// #include "arrow/c/abi.h"
// #include "arrow/c/helpers.h"
import "C"

import (
	"unsafe"

	"golang.org/x/xerrors"

	"github.com/tabular-io/tabular"
)

// SchemaFromPtr is a simple helper function to cast a uintptr to a
// *CArrowSchema, for record addresses received as integers across a
// foreign function boundary.
func SchemaFromPtr(ptr uintptr) *CArrowSchema { return (*CArrowSchema)(unsafe.Pointer(ptr)) }

// ImportCField copies a C schema record describing a single field into a
// Field. The metadata and type tree are copied rather than referenced, so
// the record may be released as soon as the call returns. The record is
// never released here: ownership stays with its producer.
func ImportCField(schema *CArrowSchema) (tabular.Field, error) {
	return importSchema(schema, 0)
}

// ImportCSchema copies a C schema record describing a whole schema. The
// record's top level must be a struct type whose children are the schema
// fields and whose metadata is the schema-level metadata; anything else is
// an error. As with ImportCField, the record is not released.
func ImportCSchema(schema *CArrowSchema) (*tabular.Schema, error) {
	ret, err := importSchema(schema, 0)
	if err != nil {
		return nil, err
	}

	st, ok := ret.Type.(*tabular.StructType)
	if !ok {
		return nil, xerrors.Errorf("a schema record must be a struct type, got %s", ret.Type)
	}

	md := ret.Metadata
	return tabular.NewSchema(st.Fields(), &md), nil
}

// ExportField populates the passed in CArrowSchema with the given field so
// it can be handed to a consumer of the C Data Interface. All memory
// reachable from the record is allocated with malloc and owned by the
// record's release callback; the consumer frees it by invoking release
// exactly once (directly or via ReleaseCSchema).
func ExportField(field tabular.Field, out *CArrowSchema) error {
	return exportField(field, out)
}

// ExportSchema populates the passed in CArrowSchema with the given schema,
// exported as a struct-typed record whose children are the schema's fields
// and whose metadata is the schema-level metadata.
func ExportSchema(schema *tabular.Schema, out *CArrowSchema) error {
	dummy := tabular.Field{Type: tabular.StructOf(schema.Fields()...), Metadata: schema.Metadata()}
	return exportField(dummy, out)
}

// ReleaseCSchema invokes the record's release callback if it has not been
// released yet. Safe to call any number of times.
func ReleaseCSchema(schema *CArrowSchema) {
	C.ArrowSchemaRelease(schema)
}
