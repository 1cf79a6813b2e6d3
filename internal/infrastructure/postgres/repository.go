package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/glycoguide/backend/internal/domain"
)

// RecipeRepository reads and updates meal rows through a pgx connection pool.
// Updates are issued one statement at a time; the curation loops rely on that
// best-effort model rather than transactions.
type RecipeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewRecipeRepository connects a pool and verifies it with a ping
func NewRecipeRepository(ctx context.Context, dsn string, logger *zap.Logger) (*RecipeRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	logger.Info("PostgreSQL connected")
	return &RecipeRepository{db: pool, logger: logger}, nil
}

// Close shuts down the connection pool
func (r *RecipeRepository) Close() {
	r.db.Close()
}

// FetchAllRecipes returns every meal row
func (r *RecipeRepository) FetchAllRecipes(ctx context.Context) ([]domain.Recipe, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(category, 'general'),
		       COALESCE(ingredients, '{}'), COALESCE(instructions, ''), COALESCE(image_url, '')
		FROM meals
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query meals: %w", err)
	}
	defer rows.Close()

	return scanRecipes(rows)
}

// FetchReformatCandidates returns rows whose instructions look malformed:
// JSON-shaped, a single long paragraph, very short, or numbered lists with
// lowercase step starts. Mirrors the selection query of the original
// formatting job.
func (r *RecipeRepository) FetchReformatCandidates(ctx context.Context) ([]domain.Recipe, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(category, 'general'),
		       COALESCE(ingredients, '{}'), COALESCE(instructions, ''), COALESCE(image_url, '')
		FROM meals
		WHERE (instructions LIKE '{%' AND instructions LIKE '%",%')
		   OR ((LENGTH(instructions) - LENGTH(REPLACE(instructions, E'\n', ''))) + 1 = 1 AND LENGTH(instructions) > 100)
		   OR (LENGTH(instructions) < 100)
		   OR (instructions ~ '\d+\.' AND (instructions ~ '\d+\. [a-z]' OR instructions ~ '\d+\.[^A-Z]'))
		ORDER BY LENGTH(instructions) DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("query reformat candidates: %w", err)
	}
	defer rows.Close()

	return scanRecipes(rows)
}

// UpdateImageURL overwrites a recipe's image_url in place
func (r *RecipeRepository) UpdateImageURL(ctx context.Context, recipeID, imageURL string) error {
	tag, err := r.db.Exec(ctx, `UPDATE meals SET image_url = $1 WHERE id = $2`, imageURL, recipeID)
	if err != nil {
		return fmt.Errorf("update image_url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Image update matched no rows", zap.String("recipe_id", recipeID))
	}
	return nil
}

// UpdateInstructions overwrites a recipe's instructions in place
func (r *RecipeRepository) UpdateInstructions(ctx context.Context, recipeID, instructions string) error {
	tag, err := r.db.Exec(ctx, `UPDATE meals SET instructions = $1 WHERE id = $2`, instructions, recipeID)
	if err != nil {
		return fmt.Errorf("update instructions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Instruction update matched no rows", zap.String("recipe_id", recipeID))
	}
	return nil
}

// rowScanner is satisfied by pgx.Rows
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRecipes(rows rowScanner) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	for rows.Next() {
		var recipe domain.Recipe
		if err := rows.Scan(
			&recipe.ID,
			&recipe.Name,
			&recipe.Description,
			&recipe.Category,
			&recipe.Ingredients,
			&recipe.Instructions,
			&recipe.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("scan meal row: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal rows: %w", err)
	}
	return recipes, nil
}
