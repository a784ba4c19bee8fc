package chunk_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrymomot/sessionkit/pkg/chunk"
	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

func BenchmarkAssemble(b *testing.B) {
	a := newAssembler(b)
	blob := strings.Repeat("x", 3500*10)
	cookies, _ := a.Plan(cookie.Jar{}, base, blob)

	for _, u := range []int{0, 100, 1000, 10000} {
		jar := cookie.Jar{}.Apply(cookies...)
		for i := range u {
			jar[chunk.Name(base+"x", i)] = "x"
		}

		b.Run(fmt.Sprintf("noise=%d", u), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_, _ = a.Assemble(jar, base)
			}
		})
	}
}

func BenchmarkPlan(b *testing.B) {
	a := newAssembler(b)
	blob := strings.Repeat("x", 3500*10)
	jar := cookie.Jar{}

	b.ReportAllocs()
	for b.Loop() {
		_, _ = a.Plan(jar, base, blob)
	}
}
