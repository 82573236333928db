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

	"github.com/tabular-io/tabular"
)

// UUID is the canonical uuid extension type instance.
var UUID = NewUUIDType()

// UUIDType is the canonical "arrow.uuid" extension: a 16-byte value stored
// as fixed size binary.
type UUIDType struct {
	tabular.ExtensionBase
}

// NewUUIDType creates a new UUIDType with the fixed size binary storage it
// requires.
func NewUUIDType() *UUIDType {
	return &UUIDType{ExtensionBase: tabular.ExtensionBase{
		Storage: &tabular.FixedSizeBinaryType{ByteWidth: 16},
	}}
}

func (*UUIDType) ExtensionName() string { return "arrow.uuid" }

func (*UUIDType) Serialize() string { return "" }

func (*UUIDType) Deserialize(storage tabular.DataType, data string) (tabular.ExtensionType, error) {
	if data != "" {
		return nil, fmt.Errorf("serialized metadata for uuid extension type must be empty, found: %q", data)
	}
	fsb, ok := storage.(*tabular.FixedSizeBinaryType)
	if !ok || fsb.ByteWidth != 16 {
		return nil, fmt.Errorf("invalid storage type for uuid extension type: %s", storage)
	}
	return NewUUIDType(), nil
}

func (t *UUIDType) ExtensionEquals(other tabular.ExtensionType) bool {
	return t.ExtensionName() == other.ExtensionName() &&
		tabular.TypeEqual(t.Storage, other.StorageType())
}

func (t *UUIDType) String() string {
	return fmt.Sprintf("extension<%s>", t.ExtensionName())
}
