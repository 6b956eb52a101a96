package ledger

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestRandomCode_Shape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := RandomCode()
		if err != nil {
			t.Fatalf("RandomCode failed: %v", err)
		}
		if !ValidCode(code) {
			t.Fatalf("RandomCode returned invalid code %q", code)
		}
		seen[code] = true
	}
	// 36^5 possible codes; 200 draws colliding more than a handful means a broken source
	if len(seen) < 190 {
		t.Errorf("expected mostly distinct codes, got %d distinct of 200", len(seen))
	}
}

func TestProperty_CodeNormalization(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	const pool = "abkzAMZ059"
	alnum := gen.SliceOfN(CodeLength, gen.IntRange(0, len(pool)-1)).Map(func(idx []int) string {
		var b strings.Builder
		for _, i := range idx {
			b.WriteByte(pool[i])
		}
		return b.String()
	})

	properties.Property("normalized alphanumeric codes are valid", prop.ForAll(
		func(code string) bool {
			return ValidCode(NormalizeCode("  " + code + "\n"))
		},
		alnum,
	))

	properties.Property("normalization is idempotent", prop.ForAll(
		func(s string) bool {
			once := NormalizeCode(s)
			return NormalizeCode(once) == once
		},
		gen.AnyString(),
	))

	properties.Property("valid codes have the fixed length", prop.ForAll(
		func(s string) bool {
			return !ValidCode(s) || len(s) == CodeLength
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
