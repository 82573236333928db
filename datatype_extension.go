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

import (
	"fmt"
	"sync"
)

// The canonical metadata keys an extension type travels under when crossing
// the C Data Interface: the format string describes only the storage type,
// and these two field-metadata pairs carry the extension identity.
const (
	ExtensionTypeKeyName     = "ARROW:extension:name"
	ExtensionMetadataKeyName = "ARROW:extension:metadata"
)

// ExtensionType is a named, parameterized logical type layered over an
// existing storage type. Two extension instances are equal iff name,
// serialized parameters and storage type all match.
type ExtensionType interface {
	DataType
	// StorageType returns the underlying type the extension is layered over.
	StorageType() DataType
	// ExtensionName is the globally unique name the type registers under.
	ExtensionName() string
	// Serialize returns the opaque parameter string exchanged via metadata.
	Serialize() string
	// Deserialize reconstructs an instance from a storage type and the
	// serialized parameter string produced by Serialize.
	Deserialize(storage DataType, data string) (ExtensionType, error)
	// ExtensionEquals reports whether other represents the same extension
	// instance.
	ExtensionEquals(other ExtensionType) bool
}

// ExtensionBase is embedded by extension type implementations to supply the
// DataType boilerplate over the storage type.
type ExtensionBase struct {
	Storage DataType
}

func (*ExtensionBase) ID() Type     { return EXTENSION }
func (*ExtensionBase) Name() string { return "extension" }

func (e *ExtensionBase) String() string {
	return fmt.Sprintf("extension<storage=%s>", e.Storage)
}

// Fingerprint covers only the storage tree. Extension identity is compared
// through ExtensionEquals; implementations with parameters that must
// participate in map-key identity should override this.
func (e *ExtensionBase) Fingerprint() string {
	return typeIDFingerprint(EXTENSION) + "{" + e.Storage.Fingerprint() + "}"
}

func (e *ExtensionBase) StorageType() DataType { return e.Storage }

var extTypeRegistry sync.Map // string -> ExtensionType

// RegisterExtensionType registers typ under its extension name so imported
// records carrying that name can be reconstructed. Registering a name twice
// is an error.
func RegisterExtensionType(typ ExtensionType) error {
	name := typ.ExtensionName()
	if _, existed := extTypeRegistry.LoadOrStore(name, typ); existed {
		return fmt.Errorf("tabular: extension type %q already registered", name)
	}
	return nil
}

// UnregisterExtensionType removes a previously registered name.
func UnregisterExtensionType(name string) error {
	if _, loaded := extTypeRegistry.LoadAndDelete(name); !loaded {
		return fmt.Errorf("tabular: no extension type registered with name %q", name)
	}
	return nil
}

// GetExtensionType returns the registered prototype for name, or nil.
func GetExtensionType(name string) ExtensionType {
	if v, ok := extTypeRegistry.Load(name); ok {
		return v.(ExtensionType)
	}
	return nil
}
