package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanSteps_CompleteWebsiteOnEmptyPage(t *testing.T) {
	ctx := AnalyzePage(nil)
	steps := PlanSteps("build a complete website", ctx)

	require.Len(t, steps, 4)
	for i, step := range steps {
		assert.Equal(t, i+1, step.Priority)
		assert.Equal(t, "generate", step.Kind)
	}
	assert.Contains(t, steps[0].Instruction, "navigation")
	assert.Contains(t, steps[1].Instruction, "hero")
	assert.Contains(t, steps[2].Instruction, "content")
	assert.Contains(t, steps[3].Instruction, "footer")
}

func TestPlanSteps_CompleteWebsiteSkipsExistingSections(t *testing.T) {
	ctx := AnalyzePage([]Element{
		{ID: "n", Type: ElementNavigation, Content: "Home About"},
		{ID: "f", Type: ElementFooter, Content: "© 2026"},
	})
	steps := PlanSteps("build a complete website", ctx)

	require.Len(t, steps, 2)
	assert.Contains(t, steps[0].Instruction, "hero")
	assert.Equal(t, 1, steps[0].Priority)
	assert.Contains(t, steps[1].Instruction, "content")
	assert.Equal(t, 2, steps[1].Priority)
}

func TestPlanSteps_Ecommerce(t *testing.T) {
	steps := PlanSteps("set up an e-commerce site", AnalyzePage(nil))

	require.Len(t, steps, 3)
	assert.Contains(t, steps[0].Instruction, "product showcase")
	assert.Contains(t, steps[1].Instruction, "pricing")
	assert.Contains(t, steps[2].Instruction, "call-to-action")
}

func TestPlanSteps_Portfolio(t *testing.T) {
	steps := PlanSteps("a portfolio for my design work", AnalyzePage(nil))

	require.Len(t, steps, 3)
	assert.Contains(t, steps[0].Instruction, "gallery")
	assert.Contains(t, steps[1].Instruction, "skills")
	assert.Contains(t, steps[2].Instruction, "contact")
}

// "Create a complete e-commerce website" matches both the e-commerce and the
// complete-website branches; the e-commerce branch is checked first and wins.
func TestPlanSteps_EcommerceTakesPrecedenceOverCompleteWebsite(t *testing.T) {
	steps := PlanSteps("Create a complete e-commerce website", AnalyzePage(nil))

	require.Len(t, steps, 3)
	assert.Contains(t, steps[0].Instruction, "product showcase")
	assert.Contains(t, steps[1].Instruction, "pricing")
	assert.Contains(t, steps[2].Instruction, "call-to-action")
}

func TestPlanSteps_NoMatchYieldsEmptyPlan(t *testing.T) {
	steps := PlanSteps("write something nice about our coffee", AnalyzePage(nil))
	assert.Empty(t, steps)
}

func TestPlanSteps_SortedByPriority(t *testing.T) {
	steps := PlanSteps("full site please", AnalyzePage(nil))
	for i := 1; i < len(steps); i++ {
		assert.Less(t, steps[i-1].Priority, steps[i].Priority)
	}
}
