package generator

import "time"

// ElementType is the closed set of visual units a page is built from.
type ElementType string

const (
	ElementHero        ElementType = "hero"
	ElementText        ElementType = "text"
	ElementButton      ElementType = "button"
	ElementImage       ElementType = "image"
	ElementGallery     ElementType = "gallery"
	ElementContact     ElementType = "contact"
	ElementAbout       ElementType = "about"
	ElementNavigation  ElementType = "navigation"
	ElementFooter      ElementType = "footer"
	ElementTestimonial ElementType = "testimonial"
	ElementFeature     ElementType = "feature"
)

// ValidElementType reports whether t is one of the known element types.
func ValidElementType(t ElementType) bool {
	switch t {
	case ElementHero, ElementText, ElementButton, ElementImage, ElementGallery,
		ElementContact, ElementAbout, ElementNavigation, ElementFooter,
		ElementTestimonial, ElementFeature:
		return true
	}
	return false
}

// Position is the element's top-left coordinate on the canvas.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is the element's rendered dimensions.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Element is one visual unit on a page. Content is plain text; markup is
// stripped before an element leaves this package.
type Element struct {
	ID       string            `json:"id"`
	Type     ElementType       `json:"type"`
	Content  string            `json:"content"`
	Styles   map[string]string `json:"styles"`
	Position Position          `json:"position"`
	Size     Size              `json:"size"`
}

// LayoutComplexity classifies how busy the current page is.
type LayoutComplexity string

const (
	LayoutEmpty         LayoutComplexity = "empty"
	LayoutSingleElement LayoutComplexity = "single-element"
	LayoutSimple        LayoutComplexity = "simple"
	LayoutModerate      LayoutComplexity = "moderate"
	LayoutComplex       LayoutComplexity = "complex"
)

// Theme is a coarse content category inferred from the page.
type Theme string

const (
	ThemeBusiness  Theme = "business"
	ThemePortfolio Theme = "portfolio"
	ThemeBlog      Theme = "blog"
	ThemeEcommerce Theme = "ecommerce"
	ThemeContact   Theme = "contact"
	ThemeAbout     Theme = "about"
	ThemeGeneral   Theme = "general"
)

// PageContext is the derived summary of the current page. It is recomputed
// from the element set on every call and never persisted.
type PageContext struct {
	Summary      string           `json:"summary"`
	ElementTypes []ElementType    `json:"elementTypes"`
	Themes       []Theme          `json:"themes"`
	Complexity   LayoutComplexity `json:"layoutComplexity"`
	Suggestions  []string         `json:"suggestions"`
}

// Has reports whether the page contains at least one element of type t.
func (c PageContext) Has(t ElementType) bool {
	for _, et := range c.ElementTypes {
		if et == t {
			return true
		}
	}
	return false
}

// Mode selects between fresh generation and improvement of existing content.
type Mode string

const (
	ModeGenerate Mode = "generate"
	ModeImprove  Mode = "improve"
)

// PlanStep is one unit of a decomposed complex instruction. Steps are created
// by the planner, consumed once in ascending Priority order, then discarded.
type PlanStep struct {
	Instruction string
	Priority    int
	Kind        string
}

// StepRecord is one entry of a user's conversation history.
type StepRecord struct {
	Instruction string    `json:"instruction"`
	Succeeded   bool      `json:"succeeded"`
	ExecutedAt  time.Time `json:"executedAt"`
}

// Request is one inbound generation call from the page-editing surface.
type Request struct {
	Instruction        string    `json:"instruction"`
	Elements           []Element `json:"currentElements"`
	UserID             string    `json:"userId"`
	Mode               Mode      `json:"mode"`
	ForceOrchestration bool      `json:"forceOrchestration"`
}

// GenerationResult is the subsystem's output contract. Raw keeps the last
// backend response for diagnostics only; it is never parsed twice.
type GenerationResult struct {
	Success        bool         `json:"success"`
	Elements       []Element    `json:"elements"`
	Suggestions    []string     `json:"suggestions"`
	Reasoning      string       `json:"reasoning"`
	Context        *PageContext `json:"context,omitempty"`
	StepsCompleted int          `json:"stepsCompleted"`
	TotalSteps     int          `json:"totalSteps"`
	Orchestrated   bool         `json:"orchestrated"`
	Error          string       `json:"error,omitempty"`
	Raw            string       `json:"-"`
}
