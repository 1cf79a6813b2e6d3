package imageindex

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/glycoguide/backend/internal/domain"
)

// Filename cleanup: generated images carry hash or timestamp suffixes like
// _c703225f or _1699999999999 that carry no matching signal.
var (
	hashSuffixRegex      = regexp.MustCompile(`_[a-f0-9]{8,}$`)
	timestampSuffixRegex = regexp.MustCompile(`_\d{13,}$`)
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// tokenizer is the slice of the usecase tokenizer the builder needs
type tokenizer interface {
	Tokenize(text string) []string
}

// Builder scans a directory of stock images and produces the searchable
// candidate index the matcher runs against.
type Builder struct {
	imageDir  string
	tokenizer tokenizer
	logger    *zap.Logger
}

// NewBuilder creates an index builder for the given image directory
func NewBuilder(imageDir string, tok tokenizer, logger *zap.Logger) *Builder {
	return &Builder{imageDir: imageDir, tokenizer: tok, logger: logger}
}

// Build scans the image directory and returns one candidate per image file,
// with tokens derived from the cleaned filename and categories detected from
// filename patterns.
func (b *Builder) Build() ([]domain.ImageCandidate, error) {
	entries, err := os.ReadDir(b.imageDir)
	if err != nil {
		return nil, fmt.Errorf("scan image directory: %w", err)
	}

	var index []domain.ImageCandidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		filename := entry.Name()
		if !imageExtensions[strings.ToLower(filepath.Ext(filename))] {
			continue
		}

		tokens := b.tokenizer.Tokenize(CleanFilename(filename))
		index = append(index, domain.ImageCandidate{
			Filename:   filename,
			FullPath:   filepath.Join(b.imageDir, filename),
			Tokens:     tokens,
			Categories: detectCategories(filename, tokens),
		})
	}

	b.logger.Info("Image index built",
		zap.String("dir", b.imageDir),
		zap.Int("images", len(index)))
	return index, nil
}

// CleanFilename strips the extension and generated hash/timestamp suffixes
func CleanFilename(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	name = hashSuffixRegex.ReplaceAllString(name, "")
	name = timestampSuffixRegex.ReplaceAllString(name, "")
	return name
}

// detectCategories infers meal categories from filename patterns and food
// types from tokens; images with no detectable category get "general".
func detectCategories(filename string, tokens []string) []string {
	var categories []string
	lower := strings.ToLower(filename)

	if strings.Contains(lower, "breakfast") || strings.Contains(lower, "morning") {
		categories = append(categories, "breakfast")
	}
	if strings.Contains(lower, "lunch") || strings.Contains(lower, "salad") || strings.Contains(lower, "wrap") {
		categories = append(categories, "lunch")
	}
	if strings.Contains(lower, "dinner") || strings.Contains(lower, "stir") || strings.Contains(lower, "curry") {
		categories = append(categories, "dinner")
	}
	if strings.Contains(lower, "snack") || strings.Contains(lower, "bites") || strings.Contains(lower, "energy") {
		categories = append(categories, "snack")
	}
	if strings.Contains(lower, "dessert") || strings.Contains(lower, "ice_cream") || strings.Contains(lower, "mousse") {
		categories = append(categories, "dessert")
	}
	if strings.Contains(lower, "smoothie") || strings.Contains(lower, "juice") || strings.Contains(lower, "drink") {
		categories = append(categories, "beverage")
	}

	if hasAnyToken(tokens, "pizza", "flatbread") {
		categories = append(categories, "pizza")
	}
	if hasAnyToken(tokens, "bowl", "buddha", "grain") {
		categories = append(categories, "bowl")
	}
	if hasAnyToken(tokens, "soup", "broth", "stew") {
		categories = append(categories, "soup")
	}
	if hasAnyToken(tokens, "salad", "green", "lettuce") {
		categories = append(categories, "salad")
	}

	if len(categories) == 0 {
		return []string{"general"}
	}
	return categories
}

func hasAnyToken(tokens []string, wanted ...string) bool {
	for _, token := range tokens {
		for _, w := range wanted {
			if token == w {
				return true
			}
		}
	}
	return false
}

// Save writes the index to a JSON file for later runs and for the preview API
func (b *Builder) Save(index []domain.ImageCandidate, outputPath string) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal image index: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write image index: %w", err)
	}
	b.logger.Info("Image index saved", zap.String("path", outputPath))
	return nil
}

// FileSource serves candidates from a previously saved JSON index
type FileSource struct {
	path string
}

// NewFileSource creates an image source backed by a saved index file
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Candidates loads and decodes the index file
func (s *FileSource) Candidates(ctx context.Context) ([]domain.ImageCandidate, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrIndexUnavailable, s.path, err)
	}
	var index []domain.ImageCandidate
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrIndexUnavailable, s.path, err)
	}
	return index, nil
}

// DirSource builds candidates from the image directory on demand
type DirSource struct {
	builder *Builder
}

// NewDirSource creates an image source that scans the directory each run
func NewDirSource(builder *Builder) *DirSource {
	return &DirSource{builder: builder}
}

// Candidates scans the directory
func (s *DirSource) Candidates(ctx context.Context) ([]domain.ImageCandidate, error) {
	return s.builder.Build()
}
