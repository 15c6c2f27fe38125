package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/claimsight/claimsight/internal/core/domain"
)

// Library is an in-memory policy document index loaded from a YAML manifest.
// Each manifest entry names a policy markdown file relative to the manifest.
type Library struct {
	docs []domain.PolicyDocument
}

type manifest struct {
	Policies []domain.PolicyDocument `yaml:"policies"`
}

func LoadManifest(path string) (*Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse policy manifest: %w", err)
	}

	baseDir := filepath.Dir(path)
	docs := make([]domain.PolicyDocument, 0, len(m.Policies))
	for _, doc := range m.Policies {
		if doc.ID == "" || doc.Path == "" {
			return nil, fmt.Errorf("policy manifest entry missing id or path: %+v", doc)
		}
		contentPath := doc.Path
		if !filepath.IsAbs(contentPath) {
			contentPath = filepath.Join(baseDir, contentPath)
		}
		content, err := os.ReadFile(contentPath)
		if err != nil {
			return nil, fmt.Errorf("read policy %s: %w", doc.ID, err)
		}
		doc.Content = string(content)
		docs = append(docs, doc)
	}
	return &Library{docs: docs}, nil
}

func NewFromDocuments(docs []domain.PolicyDocument) *Library {
	return &Library{docs: docs}
}

// Search ranks policies by keyword overlap between the query and the policy
// title plus content. Scores are the fraction of query terms found.
func (l *Library) Search(query string, limit int) ([]domain.PolicyDocument, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = len(l.docs)
	}

	scored := make([]domain.PolicyDocument, 0, len(l.docs))
	for _, doc := range l.docs {
		haystack := strings.ToLower(doc.Title + " " + doc.Content)
		matched := 0
		for term := range terms {
			if strings.Contains(haystack, term) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		doc.Score = float64(matched) / float64(len(terms))
		scored = append(scored, doc)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func tokenize(query string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, field := range strings.Fields(strings.ToLower(query)) {
		term := strings.Trim(field, ".,;:!?\"'()[]{}")
		if len(term) < 3 {
			continue
		}
		terms[term] = struct{}{}
	}
	return terms
}
