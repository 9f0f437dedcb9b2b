package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultRequestTimeout bounds one generation backend call.
const DefaultRequestTimeout = 30 * time.Second

// Options tune the orchestrator. Zero values take the defaults.
type Options struct {
	// RequestTimeout bounds each individual backend call.
	RequestTimeout time.Duration
}

// Agent orchestrates content generation: it classifies the instruction,
// either makes one direct generation call or decomposes the request into
// sequential steps, and merges the step outputs into one result.
type Agent struct {
	llm      LLMClient
	store    *ConversationStore
	recorder PromptRecorder
	logger   *slog.Logger
	opts     Options
}

func NewAgent(llm LLMClient, store *ConversationStore, recorder PromptRecorder, logger *slog.Logger, opts Options) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if store == nil {
		return nil, errors.New("conversation store is required")
	}
	if recorder == nil {
		recorder = NoopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	return &Agent{llm: llm, store: store, recorder: recorder, logger: logger, opts: opts}, nil
}

// Generate handles one inbound request. The returned error is reserved for
// invalid requests; backend faults surface as Success=false results so the
// caller always receives a well-formed payload.
func (a *Agent) Generate(ctx context.Context, req Request) (GenerationResult, error) {
	if req.Instruction == "" {
		return GenerationResult{}, errors.New("instruction is required")
	}
	if req.UserID == "" {
		return GenerationResult{}, errors.New("user id is required")
	}
	if req.Mode == "" {
		req.Mode = ModeGenerate
	}

	if req.ForceOrchestration || Classify(req.Instruction) == ComplexityComplex {
		return a.generateOrchestrated(ctx, req), nil
	}
	return a.generateDirect(ctx, req), nil
}

// generateDirect is the simple path: one prompt, one call, one parse.
func (a *Agent) generateDirect(ctx context.Context, req Request) GenerationResult {
	pageCtx := AnalyzePage(req.Elements)

	var prompt Prompt
	if req.Mode == ModeImprove {
		prompt = BuildImprovePrompt(pageCtx, req.Instruction)
	} else {
		prompt = BuildGeneratePrompt(pageCtx, req.Instruction)
	}

	raw, err := a.complete(ctx, prompt)
	if err != nil {
		a.logger.Warn("direct generation failed",
			slog.String("user", req.UserID), slog.String("error", err.Error()))
		return GenerationResult{
			Success:        false,
			Suggestions:    pageCtx.Suggestions,
			Context:        &pageCtx,
			StepsCompleted: 0,
			TotalSteps:     1,
			Error:          err.Error(),
		}
	}

	parsed := ParseResponse(raw, pageCtx, req.Mode)
	a.recordPrompt(ctx, req.UserID, string(req.Mode), prompt, parsed)
	return GenerationResult{
		Success:        true,
		Elements:       parsed.Elements,
		Suggestions:    parsed.Suggestions,
		Reasoning:      parsed.Reasoning,
		Context:        &pageCtx,
		StepsCompleted: 1,
		TotalSteps:     1,
		Raw:            raw,
	}
}

// generateOrchestrated is the complex path: plan, execute steps sequentially
// against the accumulating element set, then synthesize. A failed step is
// recorded and skipped; cancellation stops starting new steps but the result
// still reflects the steps that ran.
func (a *Agent) generateOrchestrated(ctx context.Context, req Request) GenerationResult {
	pageCtx := AnalyzePage(req.Elements)
	steps := PlanSteps(req.Instruction, pageCtx)
	if len(steps) == 0 {
		steps = []PlanStep{{Instruction: req.Instruction, Priority: 1, Kind: "generate"}}
	}

	accumulated := make([]Element, len(req.Elements))
	copy(accumulated, req.Elements)

	var (
		generated   []Element
		suggestions []string
		completed   int
		lastRaw     string
	)

	for _, step := range steps {
		if ctx.Err() != nil {
			a.logger.Info("orchestration cancelled",
				slog.String("user", req.UserID), slog.Int("completed", completed))
			break
		}

		// Later steps see earlier steps' output: the context is recomputed
		// from the accumulated set before every step.
		stepCtx := AnalyzePage(accumulated)
		history := a.store.Recent(req.UserID, maxHistorySteps)
		prompt := BuildStepPrompt(stepCtx, step, history)

		raw, err := a.completeStep(ctx, prompt)
		if err != nil {
			a.logger.Warn("step failed",
				slog.String("user", req.UserID),
				slog.Int("priority", step.Priority),
				slog.String("error", err.Error()))
			a.store.Append(req.UserID, StepRecord{
				Instruction: step.Instruction,
				Succeeded:   false,
				ExecutedAt:  time.Now(),
			})
			continue
		}

		parsed := ParseResponse(raw, stepCtx, ModeGenerate)
		generated = append(generated, parsed.Elements...)
		accumulated = append(accumulated, parsed.Elements...)
		suggestions = append(suggestions, parsed.Suggestions...)
		lastRaw = raw
		completed++
		a.store.Append(req.UserID, StepRecord{
			Instruction: step.Instruction,
			Succeeded:   true,
			ExecutedAt:  time.Now(),
		})
	}

	result := GenerationResult{
		Success:        completed > 0,
		Elements:       generated,
		Suggestions:    dedupeStrings(suggestions),
		Context:        &pageCtx,
		StepsCompleted: completed,
		TotalSteps:     len(steps),
		Orchestrated:   true,
		Raw:            lastRaw,
	}
	if completed == 0 {
		result.Error = "all generation steps failed"
		result.Suggestions = pageCtx.Suggestions
		return result
	}
	result.Reasoning = fmt.Sprintf("Completed %d of %d generation steps for: %s",
		completed, len(steps), req.Instruction)
	a.recordPrompt(ctx, req.UserID, "orchestrated", Prompt{User: req.Instruction},
		ParsedResponse{Elements: generated, Reasoning: result.Reasoning})
	return result
}

// complete runs one backend call under the per-call timeout.
func (a *Agent) complete(ctx context.Context, prompt Prompt) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.opts.RequestTimeout)
	defer cancel()
	return a.llm.Complete(callCtx, prompt)
}

// completeStep is the plan-path variant: request cancellation stops new
// steps from starting, but an in-flight call finishes or hits its own
// timeout rather than leaving element state half-applied.
func (a *Agent) completeStep(ctx context.Context, prompt Prompt) (string, error) {
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.opts.RequestTimeout)
	defer cancel()
	return a.llm.Complete(callCtx, prompt)
}

// recordPrompt writes the audit entry best-effort; failures are only logged.
func (a *Agent) recordPrompt(ctx context.Context, userID, promptType string, prompt Prompt, parsed ParsedResponse) {
	summary := parsed.Reasoning
	if summary == "" {
		summary = fmt.Sprintf("%d elements generated", len(parsed.Elements))
	}
	entry := PromptEntry{
		UserID:          userID,
		PromptType:      promptType,
		PromptText:      prompt.User,
		ResponseSummary: summary,
	}
	if err := a.recorder.Record(ctx, entry); err != nil {
		a.logger.Warn("prompt audit failed",
			slog.String("user", userID), slog.String("error", err.Error()))
	}
}
