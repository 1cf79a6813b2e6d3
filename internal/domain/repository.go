package domain

import (
	"context"
	"time"
)

// RecipeRepository defines the persistence operations the batch tools need.
// Implementations issue one statement per call; the curation loops do not
// batch or wrap multiple rows in a transaction.
type RecipeRepository interface {
	FetchAllRecipes(ctx context.Context) ([]Recipe, error)
	// FetchReformatCandidates returns recipes whose instructions look
	// malformed (JSON-shaped, single paragraph, very short, or messy
	// numbering).
	FetchReformatCandidates(ctx context.Context) ([]Recipe, error)
	UpdateImageURL(ctx context.Context, recipeID, imageURL string) error
	UpdateInstructions(ctx context.Context, recipeID, instructions string) error
}

// ImageSource provides the candidate images the selector scans.
type ImageSource interface {
	Candidates(ctx context.Context) ([]ImageCandidate, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
