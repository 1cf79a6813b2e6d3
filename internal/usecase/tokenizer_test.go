package usecase

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tok := NewTokenizer(TokenizerConfig{})

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "lowercases and strips punctuation and digits",
			input: "2 cups of Fresh Tomatoes, diced!",
			want:  []string{"tomato", "diced"},
		},
		{
			name:  "drops short words before singularizing",
			input: "a an of to mix",
			want:  []string{"mix"},
		},
		{
			name:  "filters stop words after singularizing",
			input: "cups and tbsp with kale",
			want:  []string{"kale"},
		},
		{
			name:  "preserves order and duplicates",
			input: "salmon spinach salmon",
			want:  []string{"salmon", "spinach", "salmon"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "only punctuation",
			input: "1. 2. 3. !!!",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeStability(t *testing.T) {
	tok := NewTokenizer(TokenizerConfig{})

	inputs := []string{
		"2 cups of Fresh Tomatoes, diced!",
		"kale leaves, baby spinach and chopped almonds",
		"1 chicken breast with garlic cloves",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once := tok.Tokenize(input)
			twice := tok.Tokenize(strings.Join(once, " "))
			if !reflect.DeepEqual(once, twice) {
				t.Errorf("re-tokenizing changed tokens: %v -> %v", once, twice)
			}
		})
	}
}

func TestSingularize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"tomatoes", "tomato"},
		{"berries", "berry"},
		{"chilies", "chily"}, // heuristic, not a stemmer
		{"almonds", "almond"},
		{"glass", "glass"}, // double-s words are not plural
		{"kale", "kale"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := singularize(tt.input); got != tt.want {
				t.Errorf("singularize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	tok := NewTokenizer(TokenizerConfig{})

	t.Run("adds canonical key and variants for a variant token", func(t *testing.T) {
		expanded := tok.Expand([]string{"garbanzo"})

		for _, want := range []string{"garbanzo", "chickpea", "chickpeas", "garbanzos"} {
			if !expanded[want] {
				t.Errorf("Expand missing %q, got %v", want, expanded)
			}
		}
	})

	t.Run("adds variants for a canonical token", func(t *testing.T) {
		expanded := tok.Expand([]string{"tomato"})

		for _, want := range []string{"tomato", "tomatoes", "cherrytomatoes", "romatomatoes"} {
			if !expanded[want] {
				t.Errorf("Expand missing %q, got %v", want, expanded)
			}
		}
	})

	t.Run("multi-word keys are added verbatim", func(t *testing.T) {
		expanded := tok.Expand([]string{"peppers"})

		// The canonical key keeps its internal space; variants have it stripped.
		if !expanded["bell pepper"] {
			t.Errorf("Expand missing canonical key %q, got %v", "bell pepper", expanded)
		}
		if !expanded["redpepper"] {
			t.Errorf("Expand missing %q, got %v", "redpepper", expanded)
		}
	})

	t.Run("unknown tokens pass through untouched", func(t *testing.T) {
		expanded := tok.Expand([]string{"rutabaga"})
		if len(expanded) != 1 || !expanded["rutabaga"] {
			t.Errorf("Expand = %v, want only rutabaga", expanded)
		}
	})

	t.Run("injected tables override defaults", func(t *testing.T) {
		small := NewTokenizer(TokenizerConfig{
			StopWords: []string{"filler"},
			Synonyms:  map[string][]string{"kale": {"leafy greens"}},
		})

		expanded := small.Expand([]string{"kale"})
		if !expanded["leafygreens"] {
			t.Errorf("Expand missing injected synonym, got %v", expanded)
		}
		if expanded["garbanzo"] {
			t.Errorf("Expand leaked default tables: %v", expanded)
		}
	})
}
