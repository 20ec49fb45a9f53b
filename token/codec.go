package token

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Persisted ledger record, little-endian throughout:
//
//	bytes 0..8   total supply, u64
//	bytes 8..12  balance slot count, u32
//	bytes 12..   slot count u64 balances
//
// The record is read and written as the leading contents of the storage
// account's data buffer; the offsets are fixed for wire compatibility.
const (
	supplyWidth  = 8
	countWidth   = 4
	headerWidth  = supplyWidth + countWidth
	balanceWidth = 8
)

var ErrCorruptRecord = errors.New("corrupt ledger record")

// PackedLen is the serialized footprint of a ledger with holders balance slots.
func PackedLen(holders uint64) int {
	return headerWidth + int(holders)*balanceWidth
}

// EmptyPackedLen is the footprint of a zero-supply ledger record. Rent
// exemption for a storage account is sized against this minimum.
func EmptyPackedLen() int {
	return PackedLen(0)
}

// PackedLenFor is PackedLen with an overflow check; ok is false when the
// record length for holders does not fit in an int.
func PackedLenFor(holders uint64) (int, bool) {
	if holders > (math.MaxInt-uint64(headerWidth))/balanceWidth {
		return 0, false
	}
	return PackedLen(holders), true
}

// MaxHolders reports how many balance slots a record buffer of bufLen bytes
// can carry.
func MaxHolders(bufLen int) uint64 {
	if bufLen < headerWidth {
		return 0
	}
	return uint64(bufLen-headerWidth) / balanceWidth
}

// Marshal serializes the ledger into a fresh record buffer.
func (t *ReflectionToken) Marshal() []byte {
	buf := make([]byte, PackedLen(uint64(len(t.Balances))))
	binary.LittleEndian.PutUint64(buf[0:supplyWidth], t.TotalSupply)
	binary.LittleEndian.PutUint32(buf[supplyWidth:headerWidth], uint32(len(t.Balances)))
	offset := headerWidth
	for _, balance := range t.Balances {
		binary.LittleEndian.PutUint64(buf[offset:offset+balanceWidth], balance)
		offset += balanceWidth
	}
	return buf
}

// Unmarshal decodes a ledger record from the leading bytes of data. Trailing
// bytes beyond the record are ignored; storage buffers may be oversized.
func Unmarshal(data []byte) (*ReflectionToken, error) {
	if len(data) < headerWidth {
		return nil, fmt.Errorf("%w: %d bytes, want at least %d", ErrCorruptRecord, len(data), headerWidth)
	}
	supply := binary.LittleEndian.Uint64(data[0:supplyWidth])
	count := binary.LittleEndian.Uint32(data[supplyWidth:headerWidth])
	if uint64(count) != supply {
		return nil, fmt.Errorf("%w: %d balance slots for supply %d", ErrCorruptRecord, count, supply)
	}
	if need := PackedLen(uint64(count)); len(data) < need {
		return nil, fmt.Errorf("%w: %d bytes, record needs %d", ErrCorruptRecord, len(data), need)
	}

	t := &ReflectionToken{TotalSupply: supply, Balances: make([]uint64, count)}
	offset := headerWidth
	for i := range t.Balances {
		t.Balances[i] = binary.LittleEndian.Uint64(data[offset : offset+balanceWidth])
		offset += balanceWidth
	}
	return t, nil
}
