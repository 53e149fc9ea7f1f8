package safety_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"rash/internal/safety"
)

func TestAlphanumericLiteralsPass(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("letters, digits and spaces never match", prop.ForAll(
		func(words []string) bool {
			lit := ""
			for i, w := range words {
				if i > 0 {
					lit += " "
				}
				lit += w
			}
			return safety.CheckLiteral(lit) == nil
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}

func TestInjectedOperatorAlwaysRejected(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	operators := []string{";", "|", "&&", "||", "$(", "`", "<<", "$VAR", "*", "?", "\x00"}
	properties.Property("operator between plain words is rejected", prop.ForAll(
		func(prefix, suffix string, idx int) bool {
			lit := prefix + operators[idx] + suffix
			return safety.CheckLiteral(lit) != nil
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.IntRange(0, len(operators)-1),
	))

	properties.Property("scan is deterministic", prop.ForAll(
		func(s string) bool {
			c1, o1, f1 := safety.Scan(s)
			c2, o2, f2 := safety.Scan(s)
			return c1 == c2 && o1 == o2 && f1 == f2
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
