package domain

// Recipe represents a recipe row from the meals table.
// The batch tools only ever write back ImageURL and Instructions.
type Recipe struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Category     string   `json:"category"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	ImageURL     string   `json:"imageUrl"`
}

// Meal categories recognized by the matcher.
const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
	CategorySnack     = "snack"
	CategorySoup      = "soup"
	CategoryDessert   = "dessert"
	CategoryBeverage  = "beverage"
)

// ImageCandidate is an indexed stock image: its filename plus the token set
// derived from tokenizing the cleaned filename.
type ImageCandidate struct {
	Filename   string   `json:"filename"`
	FullPath   string   `json:"fullPath,omitempty"`
	Tokens     []string `json:"tokens"`
	Categories []string `json:"categories,omitempty"`
}

// Confidence classifies how trustworthy a match score is
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// ScoreResult is the outcome of scoring one recipe against one image.
// Negative scores are valid when forbidden-ingredient penalties apply.
type ScoreResult struct {
	Score      int        `json:"score"`
	Confidence Confidence `json:"confidence"`
	Issues     []string   `json:"issues"`
}

// ImageMatch is a selected replacement image for a recipe. Confidence here is
// the raw selector score, not a tier; Reason is human-readable and not a
// stable contract.
type ImageMatch struct {
	Filename   string   `json:"filename"`
	Tokens     []string `json:"tokens"`
	Categories []string `json:"categories"`
	Confidence int      `json:"confidence"`
	Reason     string   `json:"reason"`
}

// AuditEntry is one recipe's line in an image audit report.
type AuditEntry struct {
	RecipeID   string     `json:"recipeId"`
	RecipeName string     `json:"recipeName"`
	ImageURL   string     `json:"imageUrl"`
	Score      int        `json:"score"`
	Confidence Confidence `json:"confidence"`
	Issues     []string   `json:"issues,omitempty"`
}

// AuditReport summarizes a read-only scan of every recipe's current image.
type AuditReport struct {
	RunID   string       `json:"runId"`
	Total   int          `json:"total"`
	High    int          `json:"high"`
	Medium  int          `json:"medium"`
	Low     int          `json:"low"`
	Entries []AuditEntry `json:"entries"`
}
