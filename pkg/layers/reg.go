/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package layers

import (
	"encoding/binary"
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	// RegLayerNum identifies the layer
	RegLayerNum = 2112

	// RegOpSize is the wire size of one register operation
	RegOpSize = 8
)

// RegOp is one register operation. A read op carries only the address and
// is answered by the probe with a write-shaped op holding the stored
// value.
type RegOp struct {
	Read  bool
	Addr  uint16
	Value uint32
}

// RegLayer is a sequence of register operations. Each op is one 64-bit
// big-endian word: bit 63 read flag, bits 32..47 register address,
// bits 0..31 value.
type RegLayer struct {
	layers.BaseLayer
	RegOps []*RegOp
}

var RegLayerType = gopacket.RegisterLayerType(RegLayerNum,
	gopacket.LayerTypeMetadata{Name: "RegLayerType", Decoder: gopacket.DecodeFunc(DecodeRegLayer)})

// LayerType returns the type of the register layer in the layer catalog
func (reg *RegLayer) LayerType() gopacket.LayerType {
	return RegLayerType
}

// Serialize writes all register ops to buf, which must hold
// len(RegOps)*RegOpSize bytes.
func (reg *RegLayer) Serialize(buf []byte) {
	for i, op := range reg.RegOps {
		word := uint64(op.Addr) << 32
		if op.Read {
			word |= 1 << 63
		} else {
			word |= uint64(op.Value)
		}
		binary.BigEndian.PutUint64(buf[i*RegOpSize:(i+1)*RegOpSize], word)
	}
}

// SerializeTo serializes the register ops into bytes and writes the bytes
// to the SerializeBuffer
func (reg *RegLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	bytes, err := b.AppendBytes(len(reg.RegOps) * RegOpSize)
	if err != nil {
		return err
	}
	reg.Serialize(bytes)
	return nil
}

func (reg *RegLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) == 0 || len(data)%RegOpSize != 0 {
		return ErrRegOpDecode{Len: len(data)}
	}
	reg.BaseLayer = layers.BaseLayer{
		Contents: data[:],
		Payload:  []byte{},
	}
	reg.RegOps = nil
	for offset := 0; offset < len(data); offset += RegOpSize {
		word := binary.BigEndian.Uint64(data[offset : offset+RegOpSize])
		op := &RegOp{
			Read:  word&(1<<63) != 0,
			Addr:  uint16((word >> 32) & 0xffff),
			Value: uint32(word & 0xffffffff),
		}
		if op.Read {
			op.Value = 0
		}
		reg.RegOps = append(reg.RegOps, op)
	}
	return nil
}

func DecodeRegLayer(data []byte, p gopacket.PacketBuilder) error {
	reg := &RegLayer{}
	err := reg.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(reg)
	return nil
}

// Hex returns the address and value of the op in the hexadecimal form used
// by the HTTP API.
func (op *RegOp) Hex() (string, string) {
	return fmt.Sprintf("0x%04x", op.Addr), fmt.Sprintf("0x%08x", op.Value)
}
