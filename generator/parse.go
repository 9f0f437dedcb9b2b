package generator

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// ParsedResponse is the repaired, validated shape of one backend reply.
type ParsedResponse struct {
	Elements    []Element
	Suggestions []string
	Reasoning   string
}

// rawPayload covers both response schemas: generation mode fills
// elements/suggestions, improvement mode fills improvedElements/improvements.
type rawPayload struct {
	Elements         []Element `json:"elements"`
	Suggestions      []string  `json:"suggestions"`
	Reasoning        string    `json:"reasoning"`
	ImprovedElements []Element `json:"improvedElements"`
	Improvements     []string  `json:"improvements"`
}

// parseStrategy is one attempt at extracting a payload from raw text.
// Strategies run in order; the first success wins.
type parseStrategy func(raw string) (*rawPayload, error)

var parseStrategies = []parseStrategy{
	parseStrict,
	parseBraceExtract,
	parseFieldSalvage,
}

// ParseResponse turns raw backend text into a usable payload. It is total:
// any input, including empty or plain prose, yields at least one element.
// The fallback context supplies default suggestions when the text carries
// none. Every element's content is sanitized before return.
func ParseResponse(raw string, fallback PageContext, mode Mode) ParsedResponse {
	for _, strategy := range parseStrategies {
		payload, err := strategy(raw)
		if err != nil {
			continue
		}
		if resp, ok := payloadToResponse(payload, mode); ok {
			if len(resp.Suggestions) == 0 {
				resp.Suggestions = append([]string(nil), fallback.Suggestions...)
			}
			return resp
		}
	}
	return fallbackResponse(raw, fallback)
}

// parseStrict decodes the whole text as JSON, after trimming optional
// markdown fences.
func parseStrict(raw string) (*rawPayload, error) {
	var payload rawPayload
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// parseBraceExtract finds the first '{' and scans forward tracking brace
// depth (string-aware) to the matching '}', then decodes that substring.
// This recovers payloads wrapped in prose or truncated trailers.
func parseBraceExtract(raw string) (*rawPayload, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return nil, errors.New("no object found")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return parseStrict(raw[start : i+1])
			}
		}
	}
	return nil, errors.New("unbalanced braces")
}

// parseFieldSalvage is the last structured tier: it pulls fields out of the
// text with gjson and decodes elements one at a time, so a single malformed
// array entry does not discard the rest of an otherwise usable response.
func parseFieldSalvage(raw string) (*rawPayload, error) {
	doc := stripFences(raw)
	start := strings.IndexByte(doc, '{')
	if start < 0 {
		return nil, errors.New("no object found")
	}
	doc = doc[start:]

	payload := &rawPayload{
		Elements:         salvageElements(gjson.Get(doc, "elements")),
		ImprovedElements: salvageElements(gjson.Get(doc, "improvedElements")),
	}
	if len(payload.Elements) == 0 && len(payload.ImprovedElements) == 0 {
		return nil, errors.New("no recoverable elements")
	}
	payload.Suggestions = salvageStrings(gjson.Get(doc, "suggestions"))
	payload.Improvements = salvageStrings(gjson.Get(doc, "improvements"))
	payload.Reasoning = gjson.Get(doc, "reasoning").String()
	return payload, nil
}

func salvageElements(res gjson.Result) []Element {
	if !res.IsArray() {
		return nil
	}
	var out []Element
	for _, item := range res.Array() {
		var el Element
		if err := json.Unmarshal([]byte(item.Raw), &el); err != nil {
			continue
		}
		out = append(out, el)
	}
	return out
}

func salvageStrings(res gjson.Result) []string {
	var out []string
	for _, item := range res.Array() {
		if item.Type == gjson.String {
			out = append(out, item.String())
		}
	}
	return out
}

// payloadToResponse picks the schema for the mode and validates elements.
// A payload with no elements in either field is treated as a miss so the
// next strategy (or the fallback) gets its turn.
func payloadToResponse(payload *rawPayload, mode Mode) (ParsedResponse, bool) {
	elements := payload.Elements
	suggestions := payload.Suggestions
	// Improvement mode reads the improve schema; and either mode accepts it
	// when the backend used the wrong one but still produced elements.
	if len(payload.ImprovedElements) > 0 && (mode == ModeImprove || len(elements) == 0) {
		elements = payload.ImprovedElements
		suggestions = payload.Improvements
	}
	if len(elements) == 0 {
		return ParsedResponse{}, false
	}

	out := make([]Element, 0, len(elements))
	for _, el := range elements {
		out = append(out, normalizeElement(el))
	}
	return ParsedResponse{
		Elements:    out,
		Suggestions: dedupeStrings(suggestions),
		Reasoning:   Sanitize(payload.Reasoning),
	}, true
}

// fallbackMaxContent caps how much raw prose the last-resort element keeps.
const fallbackMaxContent = 200

// fallbackResponse is the last resort: one text element carrying the start
// of the raw output, plus the page context's own suggestions. The caller
// always gets something that renders.
func fallbackResponse(raw string, fallback PageContext) ParsedResponse {
	content := Sanitize(raw)
	if content == "" {
		content = "Generated content"
	}
	if runes := []rune(content); len(runes) > fallbackMaxContent {
		content = string(runes[:fallbackMaxContent])
	}
	return ParsedResponse{
		Elements: []Element{{
			ID:       uuid.NewString(),
			Type:     ElementText,
			Content:  content,
			Styles:   defaultStyles(),
			Position: Position{X: 0, Y: 0},
			Size:     Size{Width: 800, Height: 120},
		}},
		Suggestions: append([]string(nil), fallback.Suggestions...),
		Reasoning:   "The backend response could not be parsed as structured elements; returning it as a text section.",
	}
}

// normalizeElement is the single validation boundary for decoded elements:
// unknown types become text, missing ids are generated, zero sizes get
// defaults, and content is sanitized unconditionally.
func normalizeElement(el Element) Element {
	if el.ID == "" {
		el.ID = uuid.NewString()
	}
	if !ValidElementType(el.Type) {
		el.Type = ElementText
	}
	el.Content = Sanitize(el.Content)
	if el.Styles == nil {
		el.Styles = defaultStyles()
	}
	if el.Size.Width <= 0 {
		el.Size.Width = 800
	}
	if el.Size.Height <= 0 {
		el.Size.Height = 120
	}
	return el
}

func defaultStyles() map[string]string {
	return map[string]string{
		"backgroundColor": "#ffffff",
		"color":           "#333333",
		"padding":         "16px",
	}
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// stripFences removes a surrounding markdown code fence, with optional
// language tag, if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
