package bits

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestParseAndString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "0", want: "0"},
		{in: "00101", want: "00101"},
		{in: "1111 1010_0001\n", want: "111110100001"},
	}
	for _, tc := range tests {
		seq, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tc.in, err)
		}
		if got := seq.String(); got != tc.want {
			t.Fatalf("Parse(%q).String()=%q want=%q", tc.in, got, tc.want)
		}
		if seq.Len() != len(tc.want) {
			t.Fatalf("Parse(%q).Len()=%d want=%d", tc.in, seq.Len(), len(tc.want))
		}
	}
}

func TestParseRejectsOtherDigits(t *testing.T) {
	_, err := Parse("0102")
	if !errors.Is(err, ErrInvalidDigit) {
		t.Fatalf("expected ErrInvalidDigit, got %v", err)
	}
}

func TestReadFields(t *testing.T) {
	seq := MustParse("1101000101")
	tests := []struct {
		offset, width int
		want          uint64
		consumed      int
	}{
		{offset: 0, width: 1, want: 1, consumed: 1},
		{offset: 0, width: 5, want: 0b11010, consumed: 5},
		{offset: 5, width: 5, want: 0b00101, consumed: 5},
		{offset: 2, width: 3, want: 0b010, consumed: 3},
		{offset: 9, width: 1, want: 1, consumed: 1},
	}
	for _, tc := range tests {
		got, n := seq.Read(tc.offset, tc.width)
		if got != tc.want || n != tc.consumed {
			t.Fatalf("Read(%d,%d)=(%b,%d) want=(%b,%d)", tc.offset, tc.width, got, n, tc.want, tc.consumed)
		}
	}
}

func TestReadPastEndIsZeroWidth(t *testing.T) {
	seq := MustParse("11111")
	cases := [][2]int{{5, 1}, {3, 3}, {0, 6}, {-1, 2}, {0, 0}, {0, 65}}
	for _, c := range cases {
		got, n := seq.Read(c[0], c[1])
		if got != 0 || n != 0 {
			t.Fatalf("Read(%d,%d)=(%d,%d) want=(0,0)", c[0], c[1], got, n)
		}
	}
	if seq.Len() != 5 {
		t.Fatalf("reads must not change length, got %d", seq.Len())
	}
}

func TestReadAcrossWordBoundary(t *testing.T) {
	var b Builder
	b.AppendUint(0, 60)
	b.AppendUint(0b101101, 6)
	seq := b.Sequence()
	got, n := seq.Read(60, 6)
	if got != 0b101101 || n != 6 {
		t.Fatalf("Read across words=(%b,%d) want=(101101,6)", got, n)
	}
	full, n := MustParse("1" + seq.Slice(1, 65).String()).Read(0, 64)
	if n != 64 || full>>63 != 1 {
		t.Fatalf("64-bit read=(%x,%d)", full, n)
	}
}

func TestSliceConcatEqual(t *testing.T) {
	seq := MustParse("0011010111")
	left := seq.Slice(0, 4)
	right := seq.Slice(4, 100)
	if left.String() != "0011" || right.String() != "010111" {
		t.Fatalf("unexpected slices %q %q", left, right)
	}
	if !Concat(left, right).Equal(seq) {
		t.Fatalf("concat of slices must equal the original")
	}
	if seq.Equal(seq.Slice(0, 9)) {
		t.Fatalf("sequences of different length must not be equal")
	}
}

func TestWithSentinel(t *testing.T) {
	seq := MustParse("0001")
	if got := seq.WithSentinel().String(); got != "10001" {
		t.Fatalf("WithSentinel()=%q want=10001", got)
	}
}

func TestBinaryPackingKeepsLeadingZeros(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	inputs := []Sequence{
		{},
		MustParse("0"),
		MustParse("0000000"),
		MustParse("00000001"),
		Random(rng, 129),
	}
	for _, in := range inputs {
		data, err := in.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary: %v", err)
		}
		var out Sequence
		if err := out.UnmarshalBinary(data); err != nil {
			t.Fatalf("UnmarshalBinary: %v", err)
		}
		if !out.Equal(in) {
			t.Fatalf("packed round trip mismatch: got %q want %q", out, in)
		}
	}
}

func TestUnmarshalWithoutSentinelFails(t *testing.T) {
	var out Sequence
	if err := out.UnmarshalBinary([]byte{0, 0}); err == nil {
		t.Fatalf("expected error for blob without sentinel")
	}
}

func TestBuilderReset(t *testing.T) {
	var b Builder
	b.AppendUint(0xff, 8)
	b.Reset()
	b.AppendUint(0, 3)
	if got := b.Sequence().String(); got != "000" {
		t.Fatalf("builder after reset=%q want=000", got)
	}
}
