package program

import (
	"encoding/binary"
)

// Instruction buffer layout. The tag field is the first 8 bytes of the buffer
// and holds the operation literal truncated to the field width ("transfer"
// fits exactly; only the leading 8 bytes of "initialize" are significant on
// the wire). Numeric payloads sit at fixed offsets past the tag field:
//
//	initialize: tag 0..8 | total supply u64 LE at 8..16
//	transfer:   tag 0..8 | reserved 8..16 | amount u64 LE at 16..24
const (
	tagWidth = 8

	initializeLen = 16
	transferLen   = 24

	supplyOffset = 8
	amountOffset = 16
)

var (
	initializeTag = []byte("initialize")[:tagWidth]
	transferTag   = []byte("transfer")
)

// EncodeInitialize builds an initialize instruction buffer for totalSupply.
func EncodeInitialize(totalSupply uint64) []byte {
	buf := make([]byte, initializeLen)
	copy(buf, initializeTag)
	binary.LittleEndian.PutUint64(buf[supplyOffset:supplyOffset+8], totalSupply)
	return buf
}

// EncodeTransfer builds a transfer instruction buffer for amount.
func EncodeTransfer(amount uint64) []byte {
	buf := make([]byte, transferLen)
	copy(buf, transferTag)
	binary.LittleEndian.PutUint64(buf[amountOffset:amountOffset+8], amount)
	return buf
}
