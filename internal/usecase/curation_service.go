package usecase

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/glycoguide/backend/internal/domain"
)

// CurationService runs the offline data-quality jobs: re-pairing recipes with
// stock images and rewriting malformed instructions. All loops are sequential
// and single-threaded; each row is updated with its own statement and partial
// progress survives a failed run. Running two instances concurrently is not a
// supported workload.
type CurationService struct {
	repo      domain.RecipeRepository
	images    domain.ImageSource
	tokenizer *Tokenizer
	matcher   *MatchingService
	formatter *InstructionService
	logger    *zap.Logger
}

// NewCurationService creates a curation service with its collaborators
func NewCurationService(
	repo domain.RecipeRepository,
	images domain.ImageSource,
	tokenizer *Tokenizer,
	matcher *MatchingService,
	formatter *InstructionService,
	logger *zap.Logger,
) *CurationService {
	return &CurationService{
		repo:      repo,
		images:    images,
		tokenizer: tokenizer,
		matcher:   matcher,
		formatter: formatter,
		logger:    logger,
	}
}

// RematchSummary reports what a rematch run did
type RematchSummary struct {
	Scanned   int
	Updated   int
	Unmatched int
}

// RematchImages pairs every recipe with the best-fitting indexed image and
// writes the new image_url back row by row. A failed update aborts the run;
// rows already written stay written.
func (s *CurationService) RematchImages(ctx context.Context) (*RematchSummary, error) {
	recipes, err := s.repo.FetchAllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch recipes: %w", err)
	}

	candidates, err := s.images.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load image candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoCandidates
	}

	s.logger.Info("Starting image rematch run",
		zap.Int("recipes", len(recipes)),
		zap.Int("candidates", len(candidates)))

	summary := &RematchSummary{}
	for _, recipe := range recipes {
		summary.Scanned++

		tokens := s.tokenizer.Tokenize(strings.Join(recipe.Ingredients, " "))
		match := s.matcher.FindBestMatch(tokens, recipe.Category, candidates)
		if match == nil {
			summary.Unmatched++
			s.logger.Warn("No suitable image found",
				zap.String("recipe", recipe.Name),
				zap.String("category", recipe.Category))
			continue
		}

		if path.Base(recipe.ImageURL) == match.Filename {
			continue
		}

		if err := s.repo.UpdateImageURL(ctx, recipe.ID, match.Filename); err != nil {
			return summary, fmt.Errorf("update image for recipe %s: %w", recipe.ID, err)
		}
		summary.Updated++

		s.logger.Info("Updated recipe image",
			zap.String("recipe", recipe.Name),
			zap.String("image", match.Filename),
			zap.Int("score", match.Confidence),
			zap.String("reason", match.Reason))
	}

	s.logger.Info("Image rematch run complete",
		zap.Int("scanned", summary.Scanned),
		zap.Int("updated", summary.Updated),
		zap.Int("unmatched", summary.Unmatched))
	return summary, nil
}

// ReformatSummary reports what a reformat run did
type ReformatSummary struct {
	Scanned int
	Updated int
	Skipped int
}

// ReformatInstructions rewrites malformed instruction text into numbered
// steps. A rewrite is only persisted when it changed the text and produced at
// least three steps, mirroring the adoption rule of the original cleanup job.
func (s *CurationService) ReformatInstructions(ctx context.Context) (*ReformatSummary, error) {
	recipes, err := s.repo.FetchReformatCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch reformat candidates: %w", err)
	}

	s.logger.Info("Starting instruction reformat run", zap.Int("candidates", len(recipes)))

	summary := &ReformatSummary{}
	for _, recipe := range recipes {
		summary.Scanned++

		formatted := s.formatter.FormatInstructions(recipe.Instructions, recipe.Name)
		steps := strings.Count(formatted, "\n") + 1
		if formatted == recipe.Instructions || steps < minAdoptedSteps {
			summary.Skipped++
			continue
		}

		if err := s.repo.UpdateInstructions(ctx, recipe.ID, formatted); err != nil {
			return summary, fmt.Errorf("update instructions for recipe %s: %w", recipe.ID, err)
		}
		summary.Updated++

		s.logger.Info("Reformatted instructions",
			zap.String("recipe", recipe.Name),
			zap.Int("steps", steps))
	}

	s.logger.Info("Instruction reformat run complete",
		zap.Int("scanned", summary.Scanned),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}

// AuditImages scores every recipe against its currently assigned image and
// returns a read-only report. Nothing is written back.
func (s *CurationService) AuditImages(ctx context.Context) (*domain.AuditReport, error) {
	recipes, err := s.repo.FetchAllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch recipes: %w", err)
	}

	candidates, err := s.images.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load image candidates: %w", err)
	}

	indexed := make(map[string]domain.ImageCandidate, len(candidates))
	for _, c := range candidates {
		indexed[c.Filename] = c
	}

	report := &domain.AuditReport{
		RunID: uuid.NewString(),
		Total: len(recipes),
	}

	for _, recipe := range recipes {
		recipeTokens := s.tokenizer.Tokenize(strings.Join(recipe.Ingredients, " "))
		imageTokens := s.tokensForImage(recipe.ImageURL, indexed)

		result := s.matcher.CalculateMatchScore(recipeTokens, imageTokens, recipe.Category)
		switch result.Confidence {
		case domain.ConfidenceHigh:
			report.High++
		case domain.ConfidenceMedium:
			report.Medium++
		default:
			report.Low++
		}

		report.Entries = append(report.Entries, domain.AuditEntry{
			RecipeID:   recipe.ID,
			RecipeName: recipe.Name,
			ImageURL:   recipe.ImageURL,
			Score:      result.Score,
			Confidence: result.Confidence,
			Issues:     result.Issues,
		})
	}

	s.logger.Info("Image audit complete",
		zap.String("run_id", report.RunID),
		zap.Int("total", report.Total),
		zap.Int("high", report.High),
		zap.Int("medium", report.Medium),
		zap.Int("low", report.Low))
	return report, nil
}

// tokensForImage resolves the token set for a recipe's current image, falling
// back to tokenizing the bare filename when the image is not in the index.
func (s *CurationService) tokensForImage(imageURL string, indexed map[string]domain.ImageCandidate) []string {
	filename := path.Base(imageURL)
	if c, ok := indexed[filename]; ok {
		return c.Tokens
	}
	name := strings.TrimSuffix(filename, path.Ext(filename))
	return s.tokenizer.Tokenize(name)
}
