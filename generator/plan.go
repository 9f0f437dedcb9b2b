package generator

import (
	"sort"
	"strings"
)

// PlanSteps decomposes a complex instruction into ordered sub-instructions.
//
// Branch precedence is explicit and first-match-wins:
//  1. e-commerce / shop
//  2. portfolio
//  3. complete website / full site
//
// So "create a complete e-commerce website" takes the e-commerce branch even
// though it also mentions a complete website. An instruction matching no
// branch yields an empty plan; the orchestrator then falls back to a single
// step carrying the original instruction.
func PlanSteps(instruction string, ctx PageContext) []PlanStep {
	lower := strings.ToLower(instruction)

	var steps []PlanStep
	switch {
	case strings.Contains(lower, "e-commerce") || strings.Contains(lower, "ecommerce") || strings.Contains(lower, "shop"):
		steps = []PlanStep{
			{Instruction: "Create a product showcase section highlighting the main products with images and short descriptions", Priority: 1, Kind: "generate"},
			{Instruction: "Create a pricing section laying out the available plans or product prices", Priority: 2, Kind: "generate"},
			{Instruction: "Create a prominent call-to-action section encouraging visitors to purchase", Priority: 3, Kind: "generate"},
		}
	case strings.Contains(lower, "portfolio"):
		steps = []PlanStep{
			{Instruction: "Create a project gallery section presenting selected work with titles", Priority: 1, Kind: "generate"},
			{Instruction: "Create a skills and experience section summarizing expertise", Priority: 2, Kind: "generate"},
			{Instruction: "Create a contact section inviting prospective clients to get in touch", Priority: 3, Kind: "generate"},
		}
	case strings.Contains(lower, "complete website") || strings.Contains(lower, "full site"):
		priority := 1
		if !ctx.Has(ElementNavigation) {
			steps = append(steps, PlanStep{Instruction: "Create a navigation bar with links to the main sections of the site", Priority: priority, Kind: "generate"})
			priority++
		}
		if !ctx.Has(ElementHero) {
			steps = append(steps, PlanStep{Instruction: "Create a hero section with a headline and supporting tagline", Priority: priority, Kind: "generate"})
			priority++
		}
		steps = append(steps, PlanStep{Instruction: "Create the main content sections describing the site's purpose and offering", Priority: priority, Kind: "generate"})
		priority++
		if !ctx.Has(ElementFooter) {
			steps = append(steps, PlanStep{Instruction: "Create a footer with key links and copyright information", Priority: priority, Kind: "generate"})
		}
	}

	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Priority < steps[j].Priority })
	return steps
}
