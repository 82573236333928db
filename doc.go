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

/*
Package tabular describes columnar logical types, fields and schemas.

A DataType is an immutable description of a value's logical type: a
primitive, a parameterized type such as a decimal or timestamp, or a nested
type built from child fields. A Field pairs a type with a name, nullability
and key/value metadata; a Schema is an ordered list of fields with
schema-level metadata. All three are safe to share across goroutines once
constructed.

EncodeFormat and DecodeFormat translate types to and from the compact
format grammar used by the C Data Interface; the cdata subpackage moves
whole schemas across that interface.
*/
package tabular
