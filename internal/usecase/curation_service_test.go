package usecase

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/glycoguide/backend/internal/domain"
)

type fakeRepo struct {
	recipes    []domain.Recipe
	candidates []domain.Recipe

	imageUpdates       map[string]string
	instructionUpdates map[string]string

	failImageUpdateFor string
	fetchErr           error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		imageUpdates:       make(map[string]string),
		instructionUpdates: make(map[string]string),
	}
}

func (r *fakeRepo) FetchAllRecipes(ctx context.Context) ([]domain.Recipe, error) {
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return r.recipes, nil
}

func (r *fakeRepo) FetchReformatCandidates(ctx context.Context) ([]domain.Recipe, error) {
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return r.candidates, nil
}

func (r *fakeRepo) UpdateImageURL(ctx context.Context, recipeID, imageURL string) error {
	if recipeID == r.failImageUpdateFor {
		return errors.New("write failed")
	}
	r.imageUpdates[recipeID] = imageURL
	return nil
}

func (r *fakeRepo) UpdateInstructions(ctx context.Context, recipeID, instructions string) error {
	r.instructionUpdates[recipeID] = instructions
	return nil
}

type fakeImageSource struct {
	candidates []domain.ImageCandidate
	err        error
}

func (s *fakeImageSource) Candidates(ctx context.Context) ([]domain.ImageCandidate, error) {
	return s.candidates, s.err
}

func newTestCurationService(repo domain.RecipeRepository, images domain.ImageSource) *CurationService {
	tok := NewTokenizer(TokenizerConfig{})
	return NewCurationService(
		repo,
		images,
		tok,
		NewMatchingService(tok, MatchConfig{}),
		NewInstructionService(false),
		zap.NewNop(),
	)
}

func TestRematchImages(t *testing.T) {
	ctx := context.Background()

	saladImages := &fakeImageSource{candidates: []domain.ImageCandidate{
		{Filename: "kale_salad.png", Tokens: []string{"kale", "salad"}},
		{Filename: "chicken_curry.png", Tokens: []string{"chicken", "curry"}},
	}}

	t.Run("updates recipes whose best image differs from the current one", func(t *testing.T) {
		repo := newFakeRepo()
		repo.recipes = []domain.Recipe{
			{ID: "r1", Name: "Kale Salad", Category: "lunch", Ingredients: []string{"kale", "lettuce"}, ImageURL: "/img/old.png"},
		}

		svc := newTestCurationService(repo, saladImages)
		summary, err := svc.RematchImages(ctx)
		if err != nil {
			t.Fatalf("RematchImages error: %v", err)
		}

		if summary.Scanned != 1 || summary.Updated != 1 {
			t.Errorf("summary = %+v, want 1 scanned 1 updated", summary)
		}
		if repo.imageUpdates["r1"] != "kale_salad.png" {
			t.Errorf("imageUpdates = %v, want kale_salad.png for r1", repo.imageUpdates)
		}
	})

	t.Run("skips recipes already pointing at the best image", func(t *testing.T) {
		repo := newFakeRepo()
		repo.recipes = []domain.Recipe{
			{ID: "r1", Name: "Kale Salad", Category: "lunch", Ingredients: []string{"kale", "lettuce"}, ImageURL: "/img/kale_salad.png"},
		}

		svc := newTestCurationService(repo, saladImages)
		summary, err := svc.RematchImages(ctx)
		if err != nil {
			t.Fatalf("RematchImages error: %v", err)
		}

		if summary.Updated != 0 {
			t.Errorf("Updated = %d, want 0", summary.Updated)
		}
		if len(repo.imageUpdates) != 0 {
			t.Errorf("imageUpdates = %v, want none", repo.imageUpdates)
		}
	})

	t.Run("counts recipes with no acceptable image as unmatched", func(t *testing.T) {
		repo := newFakeRepo()
		repo.recipes = []domain.Recipe{
			{ID: "r1", Name: "Mystery Dish", Category: "", Ingredients: []string{"rutabaga"}, ImageURL: ""},
		}
		images := &fakeImageSource{candidates: []domain.ImageCandidate{
			{Filename: "rice_plate.png", Tokens: []string{"rice"}},
		}}

		svc := newTestCurationService(repo, images)
		summary, err := svc.RematchImages(ctx)
		if err != nil {
			t.Fatalf("RematchImages error: %v", err)
		}

		if summary.Unmatched != 1 {
			t.Errorf("Unmatched = %d, want 1", summary.Unmatched)
		}
	})

	t.Run("a failed update aborts the run but keeps earlier writes", func(t *testing.T) {
		repo := newFakeRepo()
		repo.recipes = []domain.Recipe{
			{ID: "r1", Name: "Kale Salad", Category: "lunch", Ingredients: []string{"kale", "lettuce"}, ImageURL: "/img/old.png"},
			{ID: "r2", Name: "Chicken Curry", Category: "dinner", Ingredients: []string{"chicken", "onion"}, ImageURL: "/img/old.png"},
		}
		repo.failImageUpdateFor = "r2"

		svc := newTestCurationService(repo, saladImages)
		summary, err := svc.RematchImages(ctx)
		if err == nil {
			t.Fatal("RematchImages error = nil, want failure")
		}

		if repo.imageUpdates["r1"] != "kale_salad.png" {
			t.Errorf("first write lost: %v", repo.imageUpdates)
		}
		if summary == nil || summary.Updated != 1 {
			t.Errorf("summary = %+v, want partial progress with 1 update", summary)
		}
	})

	t.Run("empty candidate set is an error", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestCurationService(repo, &fakeImageSource{})

		_, err := svc.RematchImages(ctx)
		if !errors.Is(err, domain.ErrNoCandidates) {
			t.Errorf("error = %v, want ErrNoCandidates", err)
		}
	})
}

func TestReformatInstructions(t *testing.T) {
	ctx := context.Background()

	t.Run("persists adopted rewrites only", func(t *testing.T) {
		repo := newFakeRepo()
		repo.candidates = []domain.Recipe{
			{ID: "r1", Name: "Baked Chips", Instructions: `{"Preheat oven to 400F","Bake for 20 minutes","Serve warm"}`},
			{ID: "r2", Name: "Cake", Instructions: "1. Preheat the oven to 350 degrees.\n2. Mix the batter until smooth and lump free.\n3. Bake until golden brown on top."},
		}

		svc := newTestCurationService(repo, &fakeImageSource{})
		summary, err := svc.ReformatInstructions(ctx)
		if err != nil {
			t.Fatalf("ReformatInstructions error: %v", err)
		}

		if summary.Updated != 1 || summary.Skipped != 1 {
			t.Errorf("summary = %+v, want 1 updated 1 skipped", summary)
		}
		if _, ok := repo.instructionUpdates["r1"]; !ok {
			t.Errorf("r1 rewrite not persisted: %v", repo.instructionUpdates)
		}
		if _, ok := repo.instructionUpdates["r2"]; ok {
			t.Errorf("unchanged r2 was persisted: %v", repo.instructionUpdates)
		}
	})

	t.Run("fetch failure surfaces the error", func(t *testing.T) {
		repo := newFakeRepo()
		repo.fetchErr = errors.New("db down")

		svc := newTestCurationService(repo, &fakeImageSource{})
		if _, err := svc.ReformatInstructions(ctx); err == nil {
			t.Fatal("ReformatInstructions error = nil, want failure")
		}
	})
}

func TestAuditImages(t *testing.T) {
	ctx := context.Background()

	t.Run("tallies confidence tiers without writing", func(t *testing.T) {
		repo := newFakeRepo()
		repo.recipes = []domain.Recipe{
			{ID: "r1", Name: "Kale Salad", Category: "lunch", Ingredients: []string{"kale"}, ImageURL: "/img/kale_salad.png"},
			{ID: "r2", Name: "Mystery", Category: "dinner", Ingredients: []string{"rutabaga"}, ImageURL: "/img/rice_plate.png"},
		}
		images := &fakeImageSource{candidates: []domain.ImageCandidate{
			{Filename: "kale_salad.png", Tokens: []string{"kale", "salad"}},
			{Filename: "rice_plate.png", Tokens: []string{"rice", "plate"}},
		}}

		svc := newTestCurationService(repo, images)
		report, err := svc.AuditImages(ctx)
		if err != nil {
			t.Fatalf("AuditImages error: %v", err)
		}

		if report.RunID == "" {
			t.Error("RunID is empty")
		}
		if report.Total != 2 {
			t.Errorf("Total = %d, want 2", report.Total)
		}
		if report.High != 1 || report.Low != 1 {
			t.Errorf("tiers = high %d medium %d low %d, want 1 high 1 low", report.High, report.Medium, report.Low)
		}
		if len(repo.imageUpdates)+len(repo.instructionUpdates) != 0 {
			t.Errorf("audit wrote to the repository: %v %v", repo.imageUpdates, repo.instructionUpdates)
		}
		if len(report.Entries) != 2 {
			t.Errorf("Entries = %d, want 2", len(report.Entries))
		}
	})

	t.Run("unindexed images fall back to filename tokens", func(t *testing.T) {
		repo := newFakeRepo()
		repo.recipes = []domain.Recipe{
			{ID: "r1", Name: "Kale Salad", Category: "lunch", Ingredients: []string{"kale"}, ImageURL: "/img/kale_salad.png"},
		}

		svc := newTestCurationService(repo, &fakeImageSource{})
		report, err := svc.AuditImages(ctx)
		if err != nil {
			t.Fatalf("AuditImages error: %v", err)
		}

		if report.High != 1 {
			t.Errorf("High = %d, want 1 (filename tokens kale, salad)", report.High)
		}
	})
}
