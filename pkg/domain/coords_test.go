package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestCoord_MarshalIntegral(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{10, "10"},
		{-42, "-42"},
		{20.0, "20"},
		{10.5, "10.5"},
		{-0.25, "-0.25"},
		{1234567.125, "1234567.125"},
	}
	for _, tc := range cases {
		b, err := json.Marshal(Normalize(tc.in))
		if err != nil {
			t.Fatalf("marshal %v: %v", tc.in, err)
		}
		if string(b) != tc.want {
			t.Fatalf("marshal %v: got %s want %s", tc.in, b, tc.want)
		}
	}
}

func TestCoord_IntegralBounds(t *testing.T) {
	if !Normalize(math.Trunc(1 << 52)).Integral() {
		t.Fatalf("2^52 should be integral")
	}
	if Normalize(1 << 53).Integral() {
		t.Fatalf("2^53 exceeds exact int64 round-trip range")
	}
	if Normalize(0.5).Integral() {
		t.Fatalf("0.5 is not integral")
	}
}

func TestCoord_MarshalRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := json.Marshal(Coord(v)); err == nil {
			t.Fatalf("expected error marshalling %v", v)
		}
	}
}

func TestCoord_RoundTrip(t *testing.T) {
	for _, v := range []float64{0, 10, 10.5, -3.25, 99999, 0.0001} {
		b, err := json.Marshal(Normalize(v))
		if err != nil {
			t.Fatalf("marshal %v: %v", v, err)
		}
		var back Coord
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if float64(back) != v {
			t.Fatalf("round-trip %v: got %v", v, float64(back))
		}
	}
}
