package token

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	ledger := New(4)
	ledger.Balances[0] = 7
	ledger.Balances[2] = 900
	ledger.Balances[3] = 1 << 40

	decoded, err := Unmarshal(ledger.Marshal())
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.TotalSupply != 4 {
		t.Errorf("TotalSupply = %d", decoded.TotalSupply)
	}
	for i := range ledger.Balances {
		if decoded.Balances[i] != ledger.Balances[i] {
			t.Errorf("slot %d = %d, want %d", i, decoded.Balances[i], ledger.Balances[i])
		}
	}
}

func TestUnmarshalIgnoresTrailingBytes(t *testing.T) {
	ledger := New(2)
	ledger.Balances[1] = 42

	// storage buffers may be larger than the record
	record := append(ledger.Marshal(), make([]byte, 64)...)
	decoded, err := Unmarshal(record)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.Balances[1] != 42 {
		t.Errorf("slot 1 = %d, want 42", decoded.Balances[1])
	}
}

func TestUnmarshalRejectsShortBuffer(t *testing.T) {
	for _, size := range []int{0, 1, 11} {
		if _, err := Unmarshal(make([]byte, size)); !errors.Is(err, ErrCorruptRecord) {
			t.Errorf("size %d: err = %v, want ErrCorruptRecord", size, err)
		}
	}
}

func TestUnmarshalRejectsCountSupplyMismatch(t *testing.T) {
	buf := make([]byte, PackedLen(2))
	binary.LittleEndian.PutUint64(buf[0:8], 3) // supply says 3
	binary.LittleEndian.PutUint32(buf[8:12], 2)

	if _, err := Unmarshal(buf); !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("err = %v, want ErrCorruptRecord", err)
	}
}

func TestUnmarshalRejectsTruncatedBalances(t *testing.T) {
	ledger := New(3)
	record := ledger.Marshal()

	if _, err := Unmarshal(record[:len(record)-1]); !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("err = %v, want ErrCorruptRecord", err)
	}
}

func TestEmptyPackedLen(t *testing.T) {
	if EmptyPackedLen() != 12 {
		t.Fatalf("EmptyPackedLen = %d, want 12", EmptyPackedLen())
	}
	empty := New(0)
	if len(empty.Marshal()) != EmptyPackedLen() {
		t.Fatalf("empty record is %d bytes", len(empty.Marshal()))
	}
}

func TestMaxHolders(t *testing.T) {
	cases := []struct {
		bufLen int
		want   uint64
	}{
		{0, 0},
		{EmptyPackedLen() - 1, 0},
		{EmptyPackedLen(), 0},
		{PackedLen(3), 3},
		{PackedLen(3) + 7, 3},
	}
	for _, tc := range cases {
		if got := MaxHolders(tc.bufLen); got != tc.want {
			t.Errorf("MaxHolders(%d) = %d, want %d", tc.bufLen, got, tc.want)
		}
	}
}

func TestPackedLenForOverflow(t *testing.T) {
	if got, ok := PackedLenFor(3); !ok || got != PackedLen(3) {
		t.Errorf("PackedLenFor(3) = %d, %v", got, ok)
	}
	for _, holders := range []uint64{1 << 61, math.MaxUint64} {
		if _, ok := PackedLenFor(holders); ok {
			t.Errorf("PackedLenFor(%d) accepted, want overflow rejection", holders)
		}
	}
}

func TestMarshalDeterministic(t *testing.T) {
	ledger := New(3)
	ledger.Balances[1] = 99
	if !bytes.Equal(ledger.Marshal(), ledger.Marshal()) {
		t.Fatal("marshal is not deterministic")
	}
}
