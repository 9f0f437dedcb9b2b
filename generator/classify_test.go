package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_KeywordsAreComplex(t *testing.T) {
	instructions := []string{
		"Build me a complete website",
		"I want a FULL SITE for my bakery",
		"redo the entire page",
		"add multiple sections about our services",
		"add a navigation bar",
		"put a footer at the bottom",
		"an e-commerce store for shoes",
		"a portfolio with my best photos",
		"create everything",
	}
	for _, in := range instructions {
		assert.Equal(t, ComplexityComplex, Classify(in), "instruction: %q", in)
	}
}

func TestClassify_ShortNoKeywordIsSimple(t *testing.T) {
	instructions := []string{
		"Add a testimonial section",
		"Make the hero text friendlier",
		"Add a button that says Sign Up",
	}
	for _, in := range instructions {
		assert.Equal(t, ComplexitySimple, Classify(in), "instruction: %q", in)
	}
}

func TestClassify_LongInstructionIsComplex(t *testing.T) {
	long := "please add a section that talks about our company history our values our team and also our approach to customer service"
	assert.Greater(t, len(strings.Fields(long)), complexWordThreshold)
	assert.Equal(t, ComplexityComplex, Classify(long))
}
