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

package extensions

import (
	"fmt"
	"slices"

	"github.com/tabular-io/tabular"
)

var jsonSupportedStorageTypes = []tabular.DataType{
	tabular.BinaryTypes.String,
	tabular.BinaryTypes.LargeString,
	tabular.BinaryTypes.StringView,
}

// JSONType represents a UTF-8 encoded JSON string as specified in RFC8259.
type JSONType struct {
	tabular.ExtensionBase
}

// NewJSONType creates a new JSONType with the specified storage type.
// storageType must be one of String, LargeString, StringView.
func NewJSONType(storageType tabular.DataType) (*JSONType, error) {
	if !slices.ContainsFunc(jsonSupportedStorageTypes, func(dt tabular.DataType) bool {
		return tabular.TypeEqual(dt, storageType)
	}) {
		return nil, fmt.Errorf("unsupported storage type for JSON extension type: %s", storageType)
	}
	return &JSONType{ExtensionBase: tabular.ExtensionBase{Storage: storageType}}, nil
}

func (*JSONType) ExtensionName() string { return "arrow.json" }

func (*JSONType) Serialize() string { return "" }

func (b *JSONType) Deserialize(storageType tabular.DataType, data string) (tabular.ExtensionType, error) {
	if !(data == "" || data == "{}") {
		return nil, fmt.Errorf("serialized metadata for JSON extension type must be '' or '{}', found: %s", data)
	}
	return NewJSONType(storageType)
}

func (b *JSONType) ExtensionEquals(other tabular.ExtensionType) bool {
	return b.ExtensionName() == other.ExtensionName() && tabular.TypeEqual(b.Storage, other.StorageType())
}

func (b *JSONType) String() string {
	return fmt.Sprintf("extension<%s[storage_type=%s]>", b.ExtensionName(), b.Storage)
}
