package spec

import (
	"math"
	"testing"
)

func TestZigZagInvolution(t *testing.T) {
	cases := []int32{0, -1, 1, 2, -2, 25, 17, -4096, 4095, math.MaxInt32, math.MinInt32}
	for v := int32(-100000); v <= 100000; v += 997 {
		cases = append(cases, v)
	}
	for _, v := range cases {
		if got := unzigzag(zigzag(v)); got != v {
			t.Errorf("unzigzag(zigzag(%d)) = %d", v, got)
		}
	}

	// small magnitudes map to small wire values
	for wire, want := range map[uint32]int32{0: 0, 1: -1, 2: 1, 3: -2, 4: 2} {
		if got := unzigzag(wire); got != want {
			t.Errorf("unzigzag(%d) = %d, want = %d", wire, got, want)
		}
	}
}

func TestCommandPacking(t *testing.T) {
	w := &geomWriter{}
	w.command(cmdMoveTo, 1)
	if got, want := w.buf[0], uint32(9); got != want {
		t.Errorf("MoveTo(1) = %d, want = %d", got, want)
	}

	r := &geomReader{data: []uint32{2<<cmdBits | cmdLineTo}}
	id, count, err := r.command()
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if id != cmdLineTo || count != 2 {
		t.Errorf("command = (%d, %d), want = (%d, 2)", id, count, cmdLineTo)
	}
}
