package rng

import "testing"

func TestLCGMatchesJavaRandom(t *testing.T) {
	r := NewLCG(0)
	if got := r.Next(32); got != -1155484576 {
		t.Errorf("Next(32) for seed 0 = %d, want -1155484576", got)
	}

	r.SetSeed(0)
	if got := r.NextLong(); got != -4962768465676381896 {
		t.Errorf("NextLong for seed 0 = %d, want -4962768465676381896", got)
	}

	r.SetSeed(0)
	if got := r.NextDouble(); got != 0.730967787376657 {
		t.Errorf("NextDouble for seed 0 = %v, want 0.730967787376657", got)
	}
}

func TestLCGNextInt(t *testing.T) {
	r := NewLCG(42)
	want := []int32{0, 3, 8, 4, 0}
	for i, w := range want {
		if got := r.NextInt(10); got != w {
			t.Errorf("NextInt(10) #%d = %d, want %d", i, got, w)
		}
	}

	r.SetSeed(12345)
	for i, w := range []int32{92, 131, 238} {
		if got := r.NextInt(256); got != w {
			t.Errorf("NextInt(256) #%d = %d, want %d", i, got, w)
		}
	}
}

func TestLCGSkip(t *testing.T) {
	a := NewLCG(7)
	b := NewLCG(7)
	for i := 0; i < 5; i++ {
		a.Next(32)
	}
	b.Skip(5)
	if a.Next(32) != b.Next(32) {
		t.Error("Skip(5) should leave the generator where five Next calls do")
	}
}

func TestXoroshiroSeedExpansion(t *testing.T) {
	x := NewXoroshiro(0)
	if x.Lo != 0x3564b439cd1e1f16 || x.Hi != 0x63cfc62a2b097592 {
		t.Fatalf("SetSeed(0) = {%#x, %#x}", x.Lo, x.Hi)
	}
	if got := x.NextLong(); got != 0x2a2ca488f66f517e {
		t.Errorf("first NextLong = %#x, want 0x2a2ca488f66f517e", got)
	}
	if got := x.NextLong(); got != 0xccbc22d72e97c372 {
		t.Errorf("second NextLong = %#x, want 0xccbc22d72e97c372", got)
	}
}

func TestXoroshiroRanges(t *testing.T) {
	x := NewXoroshiro(99)
	for i := 0; i < 10000; i++ {
		if v := x.NextInt(37); v < 0 || v >= 37 {
			t.Fatalf("NextInt(37) = %d, out of [0,37)", v)
		}
		if d := x.NextDouble(); d < 0 || d >= 1 {
			t.Fatalf("NextDouble = %v, out of [0,1)", d)
		}
	}
}

func TestPositionalSalts(t *testing.T) {
	p := NewXoroshiro(5).Positional()
	a := p.At(1, 2)
	b := p.At(3, 4)
	if a.NextLong() == b.NextLong() {
		t.Error("different salts should diverge")
	}

	c := NewXoroshiro(5).Positional().At(1, 2)
	d := NewXoroshiro(5).Positional().At(1, 2)
	if c.NextLong() != d.NextLong() {
		t.Error("equal salts from equal seeds should agree")
	}
}
