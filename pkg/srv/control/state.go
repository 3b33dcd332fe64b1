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

package control

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/forge-fi/go-probe/pkg/config"
	"github.com/forge-fi/go-probe/pkg/log"
	"github.com/forge-fi/go-probe/pkg/regmap"
)

const (
	BucketNamePrefix = "reg_"
)

// RegFile is the persistent control-register file. Register values written
// by the host survive a server restart, so a probe comes back with its
// last configuration instead of the all-zero defaults.
type RegFile struct {
	context.Context
	DB     *bbolt.DB
	bucket []byte
}

func NewRegFile(ctx context.Context, cfg *config.Config) (*RegFile, error) {
	db, err := bbolt.Open(cfg.DBPath, 0600, nil)
	if err != nil {
		return nil, err
	}
	bucket := []byte(bucketName(cfg.ProbeName))
	// seed all control registers so reads never miss
	if err = db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}
		for _, addr := range regmap.Addrs() {
			if b.Get(addrKey(addr)) == nil {
				if err := b.Put(addrKey(addr), valueBytes(0)); err != nil {
					return err
				}
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &RegFile{
		Context: ctx,
		DB:      db,
		bucket:  bucket,
	}, nil
}

func addrKey(addr uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, addr)
	return b
}

func valueBytes(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func bucketName(probeName string) string {
	return fmt.Sprintf("%s%s", BucketNamePrefix, probeName)
}

func (f *RegFile) Close() {
	f.DB.Close()
}

// Set stores a register value.
func (f *RegFile) Set(addr uint16, value uint32) error {
	log.Debug("Setting register: Addr: %x Value: %x", addr, value)
	if !regmap.Valid(addr) {
		return ErrRegNotFound{Addr: addr}
	}
	return f.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(f.bucket)
		if b == nil {
			return ErrBucketNotFound{Name: string(f.bucket)}
		}
		return b.Put(addrKey(addr), valueBytes(value))
	})
}

// Get returns a stored register value.
func (f *RegFile) Get(addr uint16) (uint32, error) {
	log.Debug("Getting register: Addr: %x", addr)
	if !regmap.Valid(addr) {
		return 0, ErrRegNotFound{Addr: addr}
	}
	var value uint32
	if err := f.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(f.bucket)
		if b == nil {
			return ErrBucketNotFound{Name: string(f.bucket)}
		}
		raw := b.Get(addrKey(addr))
		if raw == nil {
			return ErrRegNotFound{Addr: addr}
		}
		value = binary.BigEndian.Uint32(raw)
		return nil
	}); err != nil {
		return 0, err
	}
	return value, nil
}

// All returns the whole register file.
func (f *RegFile) All() (map[uint16]uint32, error) {
	regs := make(map[uint16]uint32, regmap.NumRegs)
	if err := f.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(f.bucket)
		if b == nil {
			return ErrBucketNotFound{Name: string(f.bucket)}
		}
		for _, addr := range regmap.Addrs() {
			raw := b.Get(addrKey(addr))
			if raw == nil {
				return ErrRegNotFound{Addr: addr}
			}
			regs[addr] = binary.BigEndian.Uint32(raw)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return regs, nil
}
