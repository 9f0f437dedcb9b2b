package generator

import "strings"

// Complexity is the classifier's verdict on a raw instruction.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityComplex Complexity = "complex"
)

// complexKeywords mark instructions that need decomposition into steps.
// Matching is case-insensitive substring.
var complexKeywords = []string{
	"complete website",
	"full site",
	"entire page",
	"multiple sections",
	"navigation",
	"footer",
	"multiple pages",
	"e-commerce",
	"portfolio with",
	"business website with",
	"landing page with",
	"create everything",
	"build complete",
	"make a full",
}

const complexWordThreshold = 15

// Classify decides whether an instruction needs multi-step orchestration.
// This is a heuristic gate: a false negative degrades to a single direct
// call, a false positive only costs extra round-trips.
func Classify(instruction string) Complexity {
	lower := strings.ToLower(instruction)
	for _, kw := range complexKeywords {
		if strings.Contains(lower, kw) {
			return ComplexityComplex
		}
	}
	if len(strings.Fields(instruction)) > complexWordThreshold {
		return ComplexityComplex
	}
	return ComplexitySimple
}
