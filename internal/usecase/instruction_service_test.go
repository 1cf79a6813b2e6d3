package usecase

import (
	"strings"
	"testing"
)

func TestFormatInstructionsJSONLike(t *testing.T) {
	svc := NewInstructionService(false)

	t.Run("rewrites malformed JSON array into numbered steps", func(t *testing.T) {
		raw := `{"Preheat oven to 400F","Bake for 20 minutes","Serve warm"}`
		got := svc.FormatInstructions(raw, "Baked Chips")

		want := "1. Preheat oven to 400F.\n2. Bake for 20 minutes.\n3. Serve warm."
		if got != want {
			t.Errorf("FormatInstructions = %q, want %q", got, want)
		}
	})

	t.Run("strips stale numbering inside steps", func(t *testing.T) {
		raw := `{"1. chop vegetables","2. mix them well","serve"}`
		got := svc.FormatInstructions(raw, "Veggie Mix")

		want := "1. Chop vegetables.\n2. Mix them well.\n3. Serve."
		if got != want {
			t.Errorf("FormatInstructions = %q, want %q", got, want)
		}
	})

	t.Run("plain text with braces is not treated as JSON", func(t *testing.T) {
		raw := "Mix everything together {optional: add salt} and serve over greens today"
		got := svc.FormatInstructions(raw, "Salsa")

		if got != raw {
			t.Errorf("FormatInstructions = %q, want passthrough", got)
		}
	})
}

func TestFormatInstructionsParagraph(t *testing.T) {
	svc := NewInstructionService(false)

	t.Run("splits a long paragraph on sentence and transition boundaries", func(t *testing.T) {
		raw := "Mix flour and water. Let rest for ten minutes then shape and bake at 350 degrees for twenty five minutes until golden."
		got := svc.FormatInstructions(raw, "Flatbread")

		lines := strings.Split(got, "\n")
		if len(lines) < 3 {
			t.Fatalf("got %d steps, want at least 3:\n%s", len(lines), got)
		}
		for i, line := range lines {
			if !numberedStartRegex.MatchString(line) {
				t.Errorf("line %d not numbered: %q", i, line)
			}
			body := leadingNumberRegex.ReplaceAllString(line, "")
			if body == "" {
				t.Fatalf("line %d empty after numbering", i)
			}
			if first := body[0]; first < 'A' || first > 'Z' {
				t.Errorf("line %d not capitalized: %q", i, line)
			}
			if last := body[len(body)-1]; last != '.' && last != '!' && last != '?' {
				t.Errorf("line %d not punctuated: %q", i, line)
			}
		}
	})

	t.Run("caps runaway paragraphs at fifteen steps", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 30; i++ {
			b.WriteString("Stir the mixture thoroughly once more. ")
		}
		got := svc.FormatInstructions(strings.TrimSpace(b.String()), "Endless Stir")

		if n := strings.Count(got, "\n") + 1; n > 15 {
			t.Errorf("got %d steps, want at most 15", n)
		}
	})

	t.Run("text with newlines is not paragraph material", func(t *testing.T) {
		raw := "Mix the dry ingredients together carefully in a large bowl until combined.\nPour into the prepared baking dish and smooth the surface before it goes in."
		got := svc.FormatInstructions(raw, "Casserole")

		if got != raw {
			t.Errorf("FormatInstructions rewrote multi-line prose: %q", got)
		}
	})
}

func TestFormatInstructionsShort(t *testing.T) {
	svc := NewInstructionService(false)

	t.Run("expands a short bowl recipe into a full sequence", func(t *testing.T) {
		got := svc.FormatInstructions("Cook rice.", "Coconut Rice Bowl")

		lines := strings.Split(got, "\n")
		if len(lines) < 5 {
			t.Fatalf("got %d steps, want at least 5:\n%s", len(lines), got)
		}
		for _, line := range lines {
			body := leadingNumberRegex.ReplaceAllString(line, "")
			if body == "Cook rice." {
				t.Errorf("original text leaked into expansion: %q", got)
			}
		}
	})

	t.Run("expands a smoothie recipe", func(t *testing.T) {
		got := svc.FormatInstructions("Blend all.", "Berry Smoothie")

		if n := strings.Count(got, "\n") + 1; n != 4 {
			t.Errorf("got %d steps, want 4:\n%s", n, got)
		}
		if !strings.Contains(got, "blender") {
			t.Errorf("expected blender step, got:\n%s", got)
		}
	})

	t.Run("short but already numbered text with enough steps is left to the numbered rule", func(t *testing.T) {
		raw := "1. chop\n2. mix well together\n3. serve it chilled"
		got := svc.FormatInstructions(raw, "Quick Salad")

		// The numbered rule drops the too-short first line, leaving 2 steps,
		// which is below the adoption minimum. The text passes through.
		if got != raw {
			t.Errorf("FormatInstructions = %q, want passthrough", got)
		}
	})

	t.Run("generic short text splits on punctuation", func(t *testing.T) {
		got := svc.FormatInstructions("Chop the carrots, steam until tender, season to taste.", "Steamed Carrots")

		want := "1. Chop the carrots.\n2. Steam until tender.\n3. Season to taste."
		if got != want {
			t.Errorf("FormatInstructions = %q, want %q", got, want)
		}
	})
}

func TestFormatInstructionsNumbered(t *testing.T) {
	svc := NewInstructionService(false)

	t.Run("renumbers and cleans a messy numbered list", func(t *testing.T) {
		raw := "3. preheat the oven to 350\n1. mix the batter until smooth\nand\n7. bake until golden brown\n2. cool on a wire rack fully"
		// Over 100 chars so the short rule does not claim it.
		if len(raw) <= shortInstructionLimit {
			t.Fatalf("fixture too short: %d chars", len(raw))
		}
		got := svc.FormatInstructions(raw, "Basic Cake")

		want := "1. Preheat the oven to 350.\n2. Mix the batter until smooth.\n3. Bake until golden brown.\n4. Cool on a wire rack fully."
		if got != want {
			t.Errorf("FormatInstructions = %q, want %q", got, want)
		}
	})

	t.Run("filler and trivial lines are dropped", func(t *testing.T) {
		raw := "1. marinate the chicken thighs overnight\nand\nor\n2. ok\n3. grill over medium heat until done\n4. rest before slicing and serving"
		got := svc.FormatInstructions(raw, "Grilled Chicken")

		for _, line := range strings.Split(got, "\n") {
			body := leadingNumberRegex.ReplaceAllString(line, "")
			if body == "And." || body == "Or." || body == "Ok." {
				t.Errorf("filler line survived: %q", got)
			}
		}
		if n := strings.Count(got, "\n") + 1; n != 3 {
			t.Errorf("got %d steps, want 3:\n%s", n, got)
		}
	})
}

func TestFormatInstructionsPassthrough(t *testing.T) {
	svc := NewInstructionService(false)

	t.Run("well formed instructions are returned verbatim", func(t *testing.T) {
		raw := "1. Preheat the oven to 350 degrees.\n2. Mix the batter until smooth and lump free.\n3. Bake until golden brown on top."
		got := svc.FormatInstructions(raw, "Cake")

		if got != raw {
			t.Errorf("FormatInstructions = %q, want unchanged", got)
		}
	})

	t.Run("formatting its own output is stable", func(t *testing.T) {
		raw := "Mix flour and water. Let rest for ten minutes then shape and bake at 350 degrees for twenty five minutes until golden."
		once := svc.FormatInstructions(raw, "Flatbread")
		twice := svc.FormatInstructions(once, "Flatbread")

		if once != twice {
			t.Errorf("second pass changed output:\nonce:  %q\ntwice: %q", once, twice)
		}
	})
}
