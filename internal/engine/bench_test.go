package engine

import "testing"

// benchAssembly builds a three-section bore typical of a simple instrument
// model.
func benchAssembly(b *testing.B) *Assembly {
	b.Helper()
	a := NewAssembly()
	for _, seg := range []struct {
		delay  int
		radius float64
	}{
		{32, 1.0},
		{48, 1.4},
		{24, 2.2},
	} {
		if err := a.AppendTube(seg.delay, seg.radius, 0.001); err != nil {
			b.Fatal(err)
		}
	}
	return a
}

func BenchmarkAssemblyStep(b *testing.B) {
	a := benchAssembly(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := a.Step(0.1, 0); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAssemblySumDistribution(b *testing.B) {
	a := benchAssembly(b)
	for i := 0; i < 100; i++ {
		if _, err := a.Step(0.1, 0); err != nil {
			b.Fatal(err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.SumDistribution()
	}
}

func BenchmarkTubeSumDistribution(b *testing.B) {
	t := NewTube(64, 0.001)
	for i := 0; i < 128; i++ {
		t.InsertIncoming(0.5)
		t.InsertOutgoing(-0.5)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = t.SumDistribution()
	}
}
