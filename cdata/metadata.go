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

package cdata

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/tabular-io/tabular"
	"github.com/tabular-io/tabular/internal/endian"
)

const int32SizeBytes = 4

// Metadata crossing the C interface is encoded as
//
//	 [int32] -> number of metadata pairs
//		for 0..n
//			[int32] -> number of bytes in key
//			[n bytes] -> key value
//			[int32] -> number of bytes in value
//			[n bytes] -> value
//
// with all integers in the producer's native byte order.
func encodeCMetadata(keys, values []string) []byte {
	if len(keys) != len(values) {
		panic("unequal metadata key/values length")
	}
	npairs := int32(len(keys))

	var b bytes.Buffer
	totalSize := int32SizeBytes
	for i := range keys {
		totalSize += 2*int32SizeBytes + len(keys[i]) + len(values[i])
	}
	b.Grow(totalSize)

	binary.Write(&b, endian.Native, npairs)
	for i := range keys {
		binary.Write(&b, endian.Native, int32(len(keys[i])))
		b.WriteString(keys[i])
		binary.Write(&b, endian.Native, int32(len(values[i])))
		b.WriteString(values[i])
	}
	return b.Bytes()
}

// decodeCMetadata parses the encoding above from an untrusted producer. Any
// truncation or negative count fails with ErrInvalidMetadataEncoding rather
// than reading past the buffer; keys and values must additionally be valid
// UTF-8.
func decodeCMetadata(data []byte) (tabular.Metadata, error) {
	if len(data) == 0 {
		return tabular.Metadata{}, nil
	}

	readint32 := func() (int32, error) {
		if len(data) < int32SizeBytes {
			return 0, fmt.Errorf("%w: truncated int32", tabular.ErrInvalidMetadataEncoding)
		}
		v := int32(endian.Native.Uint32(data))
		if v < 0 {
			return 0, fmt.Errorf("%w: negative length %d", tabular.ErrInvalidMetadataEncoding, v)
		}
		data = data[int32SizeBytes:]
		return v, nil
	}

	readstr := func() (string, error) {
		l, err := readint32()
		if err != nil {
			return "", err
		}
		if int32(len(data)) < l {
			return "", fmt.Errorf("%w: string of length %d exceeds remaining %d bytes", tabular.ErrInvalidMetadataEncoding, l, len(data))
		}
		s := string(data[:l])
		data = data[l:]
		if !utf8.ValidString(s) {
			return "", fmt.Errorf("%w: metadata string is not valid UTF-8", tabular.ErrInvalidUTF8)
		}
		return s, nil
	}

	npairs, err := readint32()
	if err != nil {
		return tabular.Metadata{}, err
	}
	if npairs == 0 {
		return tabular.Metadata{}, nil
	}

	keys := make([]string, npairs)
	vals := make([]string, npairs)

	for i := int32(0); i < npairs; i++ {
		if keys[i], err = readstr(); err != nil {
			return tabular.Metadata{}, err
		}
		if vals[i], err = readstr(); err != nil {
			return tabular.Metadata{}, err
		}
	}

	return tabular.NewMetadata(keys, vals), nil
}
