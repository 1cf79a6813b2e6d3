package usecase

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"unicode"
)

// Shape detection and cleanup regexes, compiled once
var (
	leadingNumberRegex = regexp.MustCompile(`^\d+\.\s*`)
	numberedLineRegex  = regexp.MustCompile(`\d+\.`)
	numberedStartRegex = regexp.MustCompile(`^\d+\.`)
	fillerLineRegex    = regexp.MustCompile(`(?i)^(and|or|with|for)$`)
	shortStepSplit     = regexp.MustCompile(`\n|\.\s*\d+\.`)

	// Paragraph split battery. Each pattern is applied to the accumulated
	// fragment list in order, so patterns compound. Transition adverbs split
	// mid-sentence too; the verb patterns require a sentence boundary so
	// ordinary prose is not shredded.
	paragraphSplitPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\.\s+([A-Z])`), // sentence boundary before a capital
		regexp.MustCompile(`(?i)(?:\.\s*|\s)Then\s+`),
		regexp.MustCompile(`(?i)(?:\.\s*|\s)Next\s+`),
		regexp.MustCompile(`(?i)(?:\.\s*|\s)After\s+`),
		regexp.MustCompile(`(?i)(?:\.\s*|\s)Meanwhile\s+`),
		regexp.MustCompile(`(?i)(?:\.\s*|\s)While\s+`),
		regexp.MustCompile(`;\s+`),
		regexp.MustCompile(`(?i)\.\s*Add\s+`),
		regexp.MustCompile(`(?i)\.\s*Cook\s+`),
		regexp.MustCompile(`(?i)\.\s*Heat\s+`),
		regexp.MustCompile(`(?i)\.\s*Season\s+`),
	}
)

const (
	shortInstructionLimit = 100
	minParagraphFragment  = 10
	minStepLength         = 5
	maxParagraphSteps     = 15
	minAdoptedSteps       = 3
)

// InstructionService rewrites free-text cooking instructions into a clean
// numbered-step format. It never fails: malformed input falls through the
// detection chain and, when no rule adopts a rewrite, the original string is
// returned verbatim.
type InstructionService struct {
	enableDebugLogging bool
}

// NewInstructionService creates an instruction formatter
func NewInstructionService(enableDebugLogging bool) *InstructionService {
	return &InstructionService{enableDebugLogging: enableDebugLogging}
}

// formatStrategy is one detector/transformer in the ordered chain. It returns
// the rewritten text and whether the rewrite was adopted; a false return means
// the next strategy is tried on the original text.
type formatStrategy struct {
	name  string
	apply func(s *InstructionService, raw, recipeName string) (string, bool)
}

// formatChain is evaluated in order; the first strategy to adopt wins.
var formatChain = []formatStrategy{
	{"json", (*InstructionService).formatJSONLike},
	{"short", (*InstructionService).formatShort},
	{"paragraph", (*InstructionService).formatParagraph},
	{"numbered", (*InstructionService).formatNumbered},
}

// FormatInstructions rewrites raw instructions into numbered steps. The
// detection order matters: JSON-shaped text, then too-short text needing
// expansion, then single paragraphs, then messy already-numbered lists.
// Unrecognized shapes pass through unchanged.
func (s *InstructionService) FormatInstructions(raw, recipeName string) string {
	for _, strategy := range formatChain {
		if formatted, ok := strategy.apply(s, raw, recipeName); ok {
			if s.enableDebugLogging {
				log.Printf("[FORMAT] %q: %s rewrite adopted (%d steps)", recipeName, strategy.name, strings.Count(formatted, "\n")+1)
			}
			return formatted
		}
	}

	if s.enableDebugLogging {
		log.Printf("[FORMAT] %q: no changes needed or unable to improve", recipeName)
	}
	return raw
}

// formatJSONLike handles the malformed JSON array shape the seeder produced:
// {"Step one","Step two"}. Splitting trouble falls through to later rules
// instead of failing.
func (s *InstructionService) formatJSONLike(raw, recipeName string) (string, bool) {
	if !strings.HasPrefix(raw, "{") || !strings.Contains(raw, `","`) {
		return "", false
	}

	content := raw
	content = strings.TrimPrefix(content, "{")
	content = strings.TrimSuffix(content, "}")

	var steps []string
	for _, part := range strings.Split(content, `","`) {
		step := strings.TrimSpace(part)
		step = strings.TrimPrefix(step, `"`)
		step = strings.TrimSuffix(step, `"`)
		step = strings.TrimSpace(step)
		step = leadingNumberRegex.ReplaceAllString(step, "")
		step = capitalizeFirst(step)
		step = ensurePunctuation(step)
		if step != "" {
			steps = append(steps, step)
		}
	}

	if len(steps) == 0 {
		return "", false
	}
	return numberSteps(steps), true
}

// formatShort expands instructions under 100 characters. Already-numbered text
// that splits into 3+ steps is left for later rules; everything else goes
// through the short-recipe expansion, adopted only when it yields 3+ steps.
func (s *InstructionService) formatShort(raw, recipeName string) (string, bool) {
	if len(raw) >= shortInstructionLimit {
		return "", false
	}

	if numberedStartRegex.MatchString(raw) {
		existing := 0
		for _, part := range shortStepSplit.Split(raw, -1) {
			if strings.TrimSpace(part) != "" {
				existing++
			}
		}
		if existing >= minAdoptedSteps {
			return "", false
		}
	}

	expanded := expandShortRecipe(raw, recipeName)
	if len(expanded) < minAdoptedSteps {
		return "", false
	}
	return numberSteps(expanded), true
}

// formatParagraph splits a single long paragraph on sentence boundaries and
// cooking transition phrases. Fragments compound through the pattern battery;
// trivial fragments are dropped and the list is capped at 15 steps.
func (s *InstructionService) formatParagraph(raw, recipeName string) (string, bool) {
	if strings.Contains(raw, "\n") || len(raw) <= shortInstructionLimit {
		return "", false
	}

	steps := []string{raw}
	for _, pattern := range paragraphSplitPatterns {
		var next []string
		for _, step := range steps {
			next = append(next, splitKeepingCapital(pattern, step)...)
		}
		steps = next
	}

	var cleaned []string
	for _, step := range steps {
		step = strings.TrimSpace(step)
		if len(step) <= minParagraphFragment {
			continue
		}
		step = leadingNumberRegex.ReplaceAllString(step, "")
		step = capitalizeFirst(step)
		step = ensurePunctuation(step)
		if len(step) > minStepLength {
			cleaned = append(cleaned, step)
		}
	}

	if len(cleaned) > maxParagraphSteps {
		cleaned = cleaned[:maxParagraphSteps]
	}

	if len(cleaned) < minAdoptedSteps {
		return "", false
	}
	return numberSteps(cleaned), true
}

// splitKeepingCapital splits on the pattern. The sentence-boundary pattern
// captures the leading capital of the next sentence; the capital is restored
// to the following fragment so words are not truncated.
func splitKeepingCapital(pattern *regexp.Regexp, text string) []string {
	matches := pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []string{text}
	}

	var parts []string
	last := 0
	for _, m := range matches {
		parts = append(parts, text[last:m[0]])
		// Restore a captured capital letter to the next fragment
		if len(m) > 2 && m[2] >= 0 {
			last = m[2]
		} else {
			last = m[1]
		}
	}
	parts = append(parts, text[last:])
	return parts
}

// formatNumbered cleans up an existing numbered list: strips stale numbering,
// drops trivial or filler lines, normalizes capitalization and punctuation,
// and renumbers sequentially.
func (s *InstructionService) formatNumbered(raw, recipeName string) (string, bool) {
	if !strings.Contains(raw, "\n") || !numberedLineRegex.MatchString(raw) {
		return "", false
	}

	var cleaned []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = leadingNumberRegex.ReplaceAllString(line, "")
		if len(line) < minStepLength || fillerLineRegex.MatchString(line) {
			continue
		}
		line = capitalizeFirst(line)
		line = ensurePunctuation(line)
		cleaned = append(cleaned, line)
	}

	if len(cleaned) < minAdoptedSteps {
		return "", false
	}
	return numberSteps(cleaned), true
}

// expandShortRecipe synthesizes numbered steps for a too-short instruction
// string by matching dish-type hints in the recipe name and text. Each matched
// dish type emits a fixed, hand-authored step sequence; unmatched recipes fall
// back to fragment splitting and, at minimum, a two-step cleanup-and-serve
// sequence. Never returns an empty list.
func expandShortRecipe(instructions, recipeName string) []string {
	lowerName := strings.ToLower(recipeName)
	lowerInstr := strings.ToLower(instructions)

	var steps []string

	switch {
	case strings.Contains(lowerName, "toast") && strings.Contains(lowerInstr, "bread"):
		steps = append(steps, "Toast bread slice until golden brown and crispy")
		if strings.Contains(lowerInstr, "butter") || strings.Contains(lowerInstr, "almond") {
			steps = append(steps, "Spread almond butter or nut butter evenly over warm toast")
		}
		if strings.Contains(lowerInstr, "topping") || strings.Contains(lowerInstr, "seeds") || strings.Contains(lowerInstr, "fruit") {
			steps = append(steps, "Add desired toppings such as seeds, fruit, or spices")
		}
		steps = append(steps, "Serve immediately while warm")

	case strings.Contains(lowerName, "smoothie") || strings.Contains(lowerName, "blend"):
		steps = []string{
			"Add all liquid ingredients to blender first for optimal blending",
			"Add solid ingredients including fruits, vegetables, and protein powder",
			"Blend on high speed for 60-90 seconds until completely smooth",
			"Pour into glass and serve immediately for best texture and nutrition",
		}

	case strings.Contains(lowerName, "salad") && strings.Contains(lowerInstr, "mix"):
		steps = append(steps,
			"Prepare all vegetables by washing and chopping to desired size",
			"Combine vegetables in large serving bowl")
		if strings.Contains(lowerInstr, "dress") || strings.Contains(lowerInstr, "oil") {
			steps = append(steps, "Drizzle with olive oil and seasonings, toss gently to coat")
		}
		steps = append(steps, "Serve immediately or chill for enhanced flavors")

	case strings.Contains(lowerName, "burrito") || strings.Contains(lowerName, "wrap"):
		if strings.Contains(lowerInstr, "egg") {
			steps = append(steps, "Scramble eggs with salt and pepper until fluffy and cooked through")
		}
		steps = append(steps,
			"Warm tortilla in dry skillet or microwave until pliable",
			"Add filling ingredients to center of tortilla in a line",
			"Fold sides of tortilla inward, then roll tightly from bottom to top",
			"Serve immediately while warm or wrap for later")

	case strings.Contains(lowerName, "bowl") && containsAny(lowerInstr, "grain", "quinoa", "farro", "kamut", "rice", "bean", "cook", "mix"):
		steps = expandBowlRecipe(lowerName, lowerInstr)

	case strings.Contains(lowerName, "grill") || strings.Contains(lowerInstr, "grill"):
		steps = []string{
			"Preheat grill to medium-high heat and oil grates to prevent sticking",
			"Season ingredients with salt, pepper, and desired spices",
			"Grill ingredients according to thickness, turning once halfway through",
			"Check for proper doneness and remove when cooked through",
			"Let rest for 2-3 minutes before serving",
		}

	default:
		return expandGeneric(instructions)
	}

	return steps
}

// expandBowlRecipe picks the bowl sequence matching the grain or base hinted
// at in the name and instructions.
func expandBowlRecipe(lowerName, lowerInstr string) []string {
	switch {
	case containsAny(lowerInstr, "farro", "kamut", "grain", "quinoa"):
		grain := "grains"
		if strings.Contains(lowerName, "farro") {
			grain = "farro"
		} else if strings.Contains(lowerName, "kamut") {
			grain = "kamut"
		}
		return []string{
			fmt.Sprintf("Cook %s according to package directions until tender", grain),
			"Drain and fluff with fork when cooked through",
			"Prepare fresh vegetables and toppings by washing and chopping",
			"Combine cooked grains with prepared ingredients in serving bowl",
			"Season with salt, pepper, and herbs to taste",
			"Serve immediately while warm or at room temperature",
		}
	case containsAny(lowerInstr, "bean", "rice"):
		base := "Cook rice with spices and broth for enhanced flavor"
		if strings.Contains(lowerInstr, "bean") {
			base = "Cook beans with aromatic spices until tender"
		}
		return []string{
			base,
			"Prepare additional vegetables by chopping and seasoning",
			"Heat oil in large skillet over medium heat",
			"Combine cooked base with prepared vegetables",
			"Adjust seasoning with salt, pepper, and fresh herbs",
			"Serve hot in bowls garnished with fresh ingredients",
		}
	default:
		return []string{
			"Prepare all ingredients by washing, chopping, and measuring",
			"Cook base ingredients until tender and flavorful",
			"Combine all components in large serving bowl",
			"Season generously with salt, pepper, and desired spices",
			"Toss gently to distribute flavors evenly",
			"Serve immediately or chill for enhanced flavors",
		}
	}
}

// expandGeneric splits unmatched short instructions on punctuation; when even
// that yields fewer than two usable fragments, it synthesizes a minimal
// two-step sequence from the cleaned original.
func expandGeneric(instructions string) []string {
	var parts []string
	for _, part := range strings.FieldsFunc(instructions, func(r rune) bool {
		return r == ',' || r == '.' || r == ';'
	}) {
		part = strings.TrimSpace(part)
		if len(part) > minStepLength {
			parts = append(parts, ensurePunctuation(capitalizeFirst(part)))
		}
	}

	if len(parts) >= 2 {
		return parts
	}

	cleaned := ensurePunctuation(capitalizeFirst(strings.TrimSpace(instructions)))
	return []string{cleaned, "Serve immediately while fresh"}
}

// numberSteps renders steps as "1. ...\n2. ..." lines
func numberSteps(steps []string) string {
	var b strings.Builder
	for i, step := range steps {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, step)
	}
	return b.String()
}

// capitalizeFirst upper-cases the first letter of a step
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ensurePunctuation appends a period unless the step already ends in
// terminal punctuation
func ensurePunctuation(s string) string {
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
