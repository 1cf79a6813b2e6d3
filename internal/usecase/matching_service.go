package usecase

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/glycoguide/backend/internal/domain"
)

// Scoring constants. The arithmetic is load-bearing: audit reports from the
// previous curation runs were produced with these exact values, so scores must
// stay reproducible.
const (
	forbiddenPenalty      = 50 // flat, applied once regardless of how many terms hit
	categoryBonus         = 20
	categoryPenalty       = 10
	lowOverlapThreshold   = 0.2
	highConfidenceScore   = 80
	mediumConfidenceScore = 50

	// Primary selector floor: candidates at or below this score are rejected
	// outright, not merely outscored.
	selectorFloor = -20

	// Fallback scoring weights
	fallbackPatternWeight    = 15
	fallbackProteinBonus     = 25
	fallbackIngredientWeight = 10
	fallbackFloor            = 10
)

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	Categories         map[string][]string
	Forbidden          []string
	CategoryPatterns   map[string][]string
	Proteins           []string
	EnableDebugLogging bool
}

// MatchingService pairs recipes with stock images by scoring token overlap,
// category alignment, and forbidden-ingredient mismatches.
type MatchingService struct {
	tokenizer          *Tokenizer
	categories         map[string][]string
	forbidden          []string
	categoryPatterns   map[string][]string
	proteins           []string
	enableDebugLogging bool
}

// NewMatchingService creates a matching service with the given tables.
// Nil tables fall back to the production defaults.
func NewMatchingService(tokenizer *Tokenizer, config MatchConfig) *MatchingService {
	categories := config.Categories
	if categories == nil {
		categories = defaultMealCategories
	}

	forbidden := config.Forbidden
	if forbidden == nil {
		forbidden = defaultForbiddenMismatches
	}

	patterns := config.CategoryPatterns
	if patterns == nil {
		patterns = defaultCategoryPatterns
	}

	proteins := config.Proteins
	if proteins == nil {
		proteins = defaultProteins
	}

	return &MatchingService{
		tokenizer:          tokenizer,
		categories:         categories,
		forbidden:          forbidden,
		categoryPatterns:   patterns,
		proteins:           proteins,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// CalculateMatchScore computes the similarity/penalty score between a recipe's
// ingredient tokens and a candidate image's tokens.
//
// Scoring, in order:
//  1. Forbidden mismatch: any forbidden term in the image but not the recipe
//     costs a flat -50 (once, not per term) and records an issue.
//  2. Category alignment (only when mealCategory is given): +20 when a
//     category keyword appears in the image tokens, otherwise -10 plus an issue.
//  3. Ingredient overlap: round(|recipe ∩ image| / max(|recipe|, 1) * 100)
//     added to the score; below 20% overlap an issue is logged without
//     changing the score.
//
// Negative scores are valid and expected when penalties apply.
func (s *MatchingService) CalculateMatchScore(recipeTokens, imageTokens []string, mealCategory string) domain.ScoreResult {
	issues := []string{}
	score := 0

	expandedRecipe := s.tokenizer.Expand(recipeTokens)
	expandedImage := s.tokenizer.Expand(imageTokens)

	// Forbidden mismatches (critical)
	var forbiddenFound []string
	for _, forbidden := range s.forbidden {
		if expandedImage[forbidden] && !expandedRecipe[forbidden] {
			forbiddenFound = append(forbiddenFound, forbidden)
		}
	}
	if len(forbiddenFound) > 0 {
		issues = append(issues, fmt.Sprintf("Forbidden ingredients in image: %s", strings.Join(forbiddenFound, ", ")))
		score -= forbiddenPenalty
	}

	// Category alignment (important)
	if mealCategory != "" {
		categoryMatch := false
		for _, keyword := range s.categories[mealCategory] {
			if expandedImage[keyword] {
				categoryMatch = true
				break
			}
		}
		if categoryMatch {
			score += categoryBonus
		} else {
			issues = append(issues, fmt.Sprintf("Image doesn't match meal category: %s", mealCategory))
			score -= categoryPenalty
		}
	}

	// Ingredient overlap (core matching)
	common := 0
	for token := range expandedRecipe {
		if expandedImage[token] {
			common++
		}
	}
	overlapRatio := float64(common) / math.Max(float64(len(expandedRecipe)), 1)
	score += int(math.Round(overlapRatio * 100))

	if overlapRatio < lowOverlapThreshold {
		issues = append(issues, fmt.Sprintf("Low ingredient overlap: %d%%", int(math.Round(overlapRatio*100))))
	}

	var confidence domain.Confidence
	switch {
	case score >= highConfidenceScore && len(issues) == 0:
		confidence = domain.ConfidenceHigh
	case score >= mediumConfidenceScore && len(forbiddenFound) == 0:
		confidence = domain.ConfidenceMedium
	default:
		confidence = domain.ConfidenceLow
	}

	return domain.ScoreResult{Score: score, Confidence: confidence, Issues: issues}
}

// FindBestMatch scans the candidate images and returns the highest-scoring one
// above the selector floor, falling back to looser category-pattern matching
// when nothing clears it. Returns nil when neither path produces a match.
// Ties keep the first candidate encountered (strict > comparison, stable
// left-to-right scan).
func (s *MatchingService) FindBestMatch(recipeTokens []string, mealCategory string, candidates []domain.ImageCandidate) *domain.ImageMatch {
	var bestMatch *domain.ImageMatch
	bestScore := -999

	expandedRecipe := s.tokenizer.Expand(recipeTokens)

	for _, image := range candidates {
		result := s.CalculateMatchScore(recipeTokens, image.Tokens, mealCategory)

		if s.enableDebugLogging {
			log.Printf("[MATCH] Image: %q | Score: %d | Issues: %v", image.Filename, result.Score, result.Issues)
		}

		if result.Score > bestScore && result.Score > selectorFloor {
			bestScore = result.Score
			bestMatch = &domain.ImageMatch{
				Filename:   image.Filename,
				Tokens:     image.Tokens,
				Categories: []string{mealCategory},
				Confidence: result.Score,
				Reason:     fmt.Sprintf("Score: %d, Issues: %s", result.Score, joinIssues(result.Issues)),
			}
		}
	}

	// No decent primary match: try category-based fallback
	if bestMatch == nil || bestScore < 0 {
		if fallback := s.findCategoryFallback(mealCategory, setToSlice(expandedRecipe), candidates); fallback != nil && fallback.Confidence > bestScore {
			bestMatch = fallback
		}
	}

	if s.enableDebugLogging && bestMatch != nil {
		log.Printf("[MATCH] Best match: %q (score: %d)", bestMatch.Filename, bestMatch.Confidence)
	}

	return bestMatch
}

// findCategoryFallback scores candidates on category filename patterns,
// protein presence, and raw token overlap. The result is only accepted when it
// is at least minimally relevant (score above the fallback floor).
func (s *MatchingService) findCategoryFallback(mealCategory string, recipeTokens []string, candidates []domain.ImageCandidate) *domain.ImageMatch {
	patterns := s.categoryPatterns[mealCategory]

	// Look for a protein type in the recipe
	recipeProtein := ""
	for _, protein := range s.proteins {
		for _, token := range recipeTokens {
			if strings.Contains(token, protein) {
				recipeProtein = protein
				break
			}
		}
		if recipeProtein != "" {
			break
		}
	}

	var bestMatch *domain.ImageMatch
	bestScore := -999

	for _, image := range candidates {
		score := 0

		patternMatches := 0
		for _, pattern := range patterns {
			for _, token := range image.Tokens {
				if strings.Contains(token, pattern) {
					patternMatches++
					break
				}
			}
		}
		score += patternMatches * fallbackPatternWeight

		if recipeProtein != "" {
			for _, token := range image.Tokens {
				if strings.Contains(token, recipeProtein) {
					score += fallbackProteinBonus
					break
				}
			}
		}

		commonIngredients := 0
		for _, token := range recipeTokens {
			if containsString(image.Tokens, token) {
				commonIngredients++
			}
		}
		score += commonIngredients * fallbackIngredientWeight

		if score > bestScore {
			bestScore = score
			bestMatch = &domain.ImageMatch{
				Filename:   image.Filename,
				Tokens:     image.Tokens,
				Categories: []string{mealCategory},
				Confidence: score,
				Reason: fmt.Sprintf("Category fallback: %s (%d pattern matches, %d ingredient matches)",
					mealCategory, patternMatches, commonIngredients),
			}
		}
	}

	if bestScore > fallbackFloor {
		return bestMatch
	}
	return nil
}

func joinIssues(issues []string) string {
	if len(issues) == 0 {
		return "None"
	}
	return strings.Join(issues, "; ")
}

func setToSlice(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for token := range set {
		out = append(out, token)
	}
	return out
}
