package generator

import (
	"fmt"
	"strings"
)

// Prompt is the message pair sent to the generation backend.
type Prompt struct {
	System string
	User   string
}

// maxHistorySteps caps how much conversation history a step prompt carries,
// bounding prompt growth over long plans.
const maxHistorySteps = 2

// elementSchema tells the backend the exact JSON shape it must emit.
const elementSchema = `Respond with a single JSON object and nothing else:
{
  "elements": [
    {
      "id": "unique-id",
      "type": "hero|text|button|image|gallery|contact|about|navigation|footer|testimonial|feature",
      "content": "plain text only, no HTML or markdown",
      "styles": {"backgroundColor": "#ffffff", "color": "#333333"},
      "position": {"x": 0, "y": 0},
      "size": {"width": 800, "height": 200}
    }
  ],
  "suggestions": ["next thing the user could add"],
  "reasoning": "one short paragraph explaining the choices"
}`

// improveSchema is the variant for improvement mode.
const improveSchema = `Respond with a single JSON object and nothing else:
{
  "improvedElements": [
    {
      "id": "keep the original id",
      "type": "hero|text|button|image|gallery|contact|about|navigation|footer|testimonial|feature",
      "content": "plain text only, no HTML or markdown",
      "styles": {"backgroundColor": "#ffffff", "color": "#333333"},
      "position": {"x": 0, "y": 0},
      "size": {"width": 800, "height": 200}
    }
  ],
  "improvements": ["what was changed and why"],
  "reasoning": "one short paragraph explaining the changes"
}`

// BuildGeneratePrompt compiles the direct-path generation prompt.
func BuildGeneratePrompt(ctx PageContext, instruction string) Prompt {
	var sb strings.Builder
	sb.WriteString("You are a website content generator for a drag-and-drop page builder.\n")
	sb.WriteString("Generate new page elements that fit the user's request and the current page.\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Content must be plain text. Never include HTML tags or markdown markup.\n")
	sb.WriteString("- Do not duplicate sections the page already has unless asked to.\n")
	sb.WriteString("- Keep content concise and ready to publish.\n\n")
	writeState(&sb, ctx)
	sb.WriteString("\n")
	sb.WriteString(elementSchema)

	return Prompt{
		System: sb.String(),
		User:   fmt.Sprintf("Request: %s", instruction),
	}
}

// BuildImprovePrompt compiles the improvement-mode prompt.
func BuildImprovePrompt(ctx PageContext, instruction string) Prompt {
	var sb strings.Builder
	sb.WriteString("You are a website content editor for a drag-and-drop page builder.\n")
	sb.WriteString("Improve the existing page elements per the user's request with minimal necessary changes.\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Content must be plain text. Never include HTML tags or markdown markup.\n")
	sb.WriteString("- Preserve element ids so the editor can map changes back.\n")
	sb.WriteString("- If the request does not apply, return the elements unchanged and explain why.\n\n")
	writeState(&sb, ctx)
	sb.WriteString("\n")
	sb.WriteString(improveSchema)

	return Prompt{
		System: sb.String(),
		User:   fmt.Sprintf("Request: %s", instruction),
	}
}

// BuildStepPrompt compiles the prompt for one step of a decomposed plan. The
// step sees the accumulated page state and at most the two most recent
// completed steps, so later steps build on earlier output without unbounded
// prompt growth.
func BuildStepPrompt(ctx PageContext, step PlanStep, history []StepRecord) Prompt {
	var sb strings.Builder
	sb.WriteString("You are a website content generator executing one step of a multi-step build.\n")
	sb.WriteString("Generate only the elements this step asks for; other steps handle the rest.\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Content must be plain text. Never include HTML tags or markdown markup.\n")
	sb.WriteString("- Stay consistent with sections created by earlier steps.\n\n")
	writeState(&sb, ctx)

	if n := len(history); n > 0 {
		if n > maxHistorySteps {
			history = history[n-maxHistorySteps:]
		}
		sb.WriteString("Recent steps:\n")
		for _, rec := range history {
			status := "done"
			if !rec.Succeeded {
				status = "failed"
			}
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", status, rec.Instruction))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(elementSchema)

	return Prompt{
		System: sb.String(),
		User:   fmt.Sprintf("Step: %s", step.Instruction),
	}
}

func writeState(sb *strings.Builder, ctx PageContext) {
	sb.WriteString("Current page: ")
	sb.WriteString(ctx.Summary)
	sb.WriteString("\n")
}
