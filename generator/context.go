package generator

import (
	"fmt"
	"sort"
	"strings"
)

// starterSuggestions is returned for an empty page, where there is nothing
// to infer from yet.
var starterSuggestions = []string{
	"Add a hero section to introduce your site",
	"Add a navigation bar so visitors can find their way around",
	"Add a text section describing what you offer",
	"Add a contact section so visitors can reach you",
	"Add a footer with your key links",
}

// AnalyzePage derives a PageContext from the current element set. It is a
// total function: any input, including an empty page, yields a usable context.
func AnalyzePage(elements []Element) PageContext {
	if len(elements) == 0 {
		return PageContext{
			Summary:     "Empty page with no elements yet",
			Complexity:  LayoutEmpty,
			Suggestions: append([]string(nil), starterSuggestions...),
		}
	}

	counts := make(map[ElementType]int, len(elements))
	for _, el := range elements {
		counts[el.Type]++
	}
	types := make([]ElementType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	themes := inferThemes(elements, counts)
	complexity := classifyLayout(len(elements))

	ctx := PageContext{
		Summary:      summarize(len(elements), types, counts, complexity, themes),
		ElementTypes: types,
		Themes:       themes,
		Complexity:   complexity,
	}
	ctx.Suggestions = suggestMissing(ctx)
	return ctx
}

func classifyLayout(n int) LayoutComplexity {
	switch {
	case n == 0:
		return LayoutEmpty
	case n == 1:
		return LayoutSingleElement
	case n <= 3:
		return LayoutSimple
	case n <= 6:
		return LayoutModerate
	default:
		return LayoutComplex
	}
}

// themeKeywords maps content words to themes. Matching is substring-based on
// lowercased content, mirroring how the page editor labels sections.
var themeKeywords = map[Theme][]string{
	ThemeEcommerce: {"shop", "buy", "price", "cart", "product", "checkout"},
	ThemePortfolio: {"portfolio", "project", "my work", "showcase"},
	ThemeBlog:      {"blog", "article", "post", "read more"},
	ThemeBusiness:  {"service", "business", "client", "solution", "company"},
}

func inferThemes(elements []Element, counts map[ElementType]int) []Theme {
	seen := make(map[Theme]bool)
	var themes []Theme
	add := func(t Theme) {
		if !seen[t] {
			seen[t] = true
			themes = append(themes, t)
		}
	}

	if counts[ElementContact] > 0 {
		add(ThemeContact)
	}
	if counts[ElementAbout] > 0 {
		add(ThemeAbout)
	}
	if counts[ElementGallery] > 0 {
		add(ThemePortfolio)
	}
	if counts[ElementTestimonial] > 0 || counts[ElementFeature] > 0 {
		add(ThemeBusiness)
	}

	for _, el := range elements {
		content := strings.ToLower(el.Content)
		for theme, words := range themeKeywords {
			for _, w := range words {
				if strings.Contains(content, w) {
					add(theme)
					break
				}
			}
		}
	}

	if len(themes) == 0 {
		themes = []Theme{ThemeGeneral}
	}
	sort.Slice(themes, func(i, j int) bool { return themes[i] < themes[j] })
	return themes
}

func summarize(n int, types []ElementType, counts map[ElementType]int, complexity LayoutComplexity, themes []Theme) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		if c := counts[t]; c > 1 {
			parts = append(parts, fmt.Sprintf("%s x%d", t, c))
		} else {
			parts = append(parts, string(t))
		}
	}
	themeNames := make([]string, len(themes))
	for i, t := range themes {
		themeNames[i] = string(t)
	}
	return fmt.Sprintf("Page with %d elements (%s), %s layout, themes: %s",
		n, strings.Join(parts, ", "), complexity, strings.Join(themeNames, ", "))
}

// suggestMissing proposes up to five next sections, core structure first.
func suggestMissing(ctx PageContext) []string {
	var out []string
	add := func(s string) {
		if len(out) < 5 {
			out = append(out, s)
		}
	}

	if !ctx.Has(ElementNavigation) {
		add("Add a navigation bar so visitors can find their way around")
	}
	if !ctx.Has(ElementHero) {
		add("Add a hero section to introduce your site")
	}
	if !ctx.Has(ElementAbout) {
		add("Add an about section to tell your story")
	}
	if !ctx.Has(ElementContact) {
		add("Add a contact section so visitors can reach you")
	}
	if !ctx.Has(ElementFooter) {
		add("Add a footer with your key links")
	}
	for _, theme := range ctx.Themes {
		switch theme {
		case ThemeEcommerce:
			if !ctx.Has(ElementGallery) {
				add("Add a product gallery to showcase what you sell")
			}
		case ThemeBusiness:
			if !ctx.Has(ElementTestimonial) {
				add("Add customer testimonials to build trust")
			}
		case ThemePortfolio:
			if !ctx.Has(ElementGallery) {
				add("Add a project gallery to show your work")
			}
		}
	}
	return out
}
