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

	"github.com/goccy/go-json"

	"github.com/tabular-io/tabular"
)

// OpaqueType is a placeholder for a type from an external system that could
// not be interpreted. It preserves the producer's type name and vendor so
// the information survives a round trip.
type OpaqueType struct {
	tabular.ExtensionBase `json:"-"`

	TypeName   string `json:"type_name"`
	VendorName string `json:"vendor_name"`
}

// NewOpaqueType creates a new OpaqueType with the provided storage type,
// type name, and vendor name.
func NewOpaqueType(storageType tabular.DataType, name, vendorName string) *OpaqueType {
	return &OpaqueType{
		ExtensionBase: tabular.ExtensionBase{Storage: storageType},
		TypeName:      name,
		VendorName:    vendorName,
	}
}

func (*OpaqueType) ExtensionName() string { return "arrow.opaque" }

func (o *OpaqueType) Serialize() string {
	data, err := json.Marshal(o)
	if err != nil {
		panic(err)
	}
	return string(data)
}

func (o *OpaqueType) Deserialize(storageType tabular.DataType, data string) (tabular.ExtensionType, error) {
	var out OpaqueType
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, err
	}

	switch {
	case out.TypeName == "":
		return nil, fmt.Errorf("serialized JSON data for OpaqueType missing type_name: `%s`", data)
	case out.VendorName == "":
		return nil, fmt.Errorf("serialized JSON data for OpaqueType missing vendor_name: `%s`", data)
	}

	out.Storage = storageType
	return &out, nil
}

func (o *OpaqueType) ExtensionEquals(other tabular.ExtensionType) bool {
	rhs, ok := other.(*OpaqueType)
	if !ok {
		return false
	}

	return tabular.TypeEqual(o.Storage, rhs.Storage) &&
		o.TypeName == rhs.TypeName && o.VendorName == rhs.VendorName
}

func (o *OpaqueType) String() string {
	return fmt.Sprintf("extension<%s[storage_type=%s, type_name=%s, vendor_name=%s]>",
		o.ExtensionName(), o.Storage, o.TypeName, o.VendorName)
}
