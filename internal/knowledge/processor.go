// Package knowledge loads support knowledge-base articles and prepares them
// for the external vector retrieval service. Persistence of the index itself
// is the retrieval service's concern; this package only shapes and ships the
// documents.
package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"convoscore/internal/domain"
	"convoscore/internal/logging"
	"convoscore/internal/retrieval"
)

// articleFile is the on-disk knowledge base shape.
type articleFile struct {
	Articles []domain.Article `json:"articles"`
}

// Stats summarizes the loaded knowledge base.
type Stats struct {
	TotalArticles int            `json:"totalArticles"`
	Categories    map[string]int `json:"categories"`
	Priorities    map[string]int `json:"priorities"`
}

// Processor loads articles and upserts them into the retrieval index.
type Processor struct {
	retriever retrieval.Retriever
	log       *logging.Logger

	articles []domain.Article
}

// NewProcessor creates a processor that ships articles through the given
// retriever.
func NewProcessor(r retrieval.Retriever, log *logging.Logger) *Processor {
	return &Processor{retriever: r, log: log.Sub("knowledge")}
}

// Load reads articles from a JSON file, or falls back to the built-in sample
// knowledge base when path is empty or the file does not exist.
func (p *Processor) Load(path string) error {
	if path == "" {
		p.articles = SampleArticles()
		p.log.Info().Int("articles", len(p.articles)).Msg("loaded built-in sample knowledge base")
		return nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		p.articles = SampleArticles()
		p.log.Warn().Str("path", path).Msg("knowledge base file missing, using built-in samples")
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading knowledge base: %w", err)
	}

	var file articleFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing knowledge base: %w", err)
	}
	if len(file.Articles) == 0 {
		return fmt.Errorf("knowledge base %s contains no articles", path)
	}

	p.articles = file.Articles
	p.log.Info().Str("path", path).Int("articles", len(p.articles)).Msg("knowledge base loaded")
	return nil
}

// Articles returns the loaded articles.
func (p *Processor) Articles() []domain.Article {
	return p.articles
}

// Sync converts the loaded articles to documents and upserts them into the
// retrieval index.
func (p *Processor) Sync(ctx context.Context) error {
	if len(p.articles) == 0 {
		return fmt.Errorf("no articles loaded")
	}

	docs := make([]domain.Document, len(p.articles))
	for i, a := range p.articles {
		docs[i] = toDocument(a)
	}

	if err := p.retriever.Upsert(ctx, docs); err != nil {
		return fmt.Errorf("upserting %d articles: %w", len(docs), err)
	}
	p.log.Info().Int("documents", len(docs)).Msg("knowledge base synced to retrieval index")
	return nil
}

// Stats returns category and priority distributions over the loaded articles.
func (p *Processor) Stats() Stats {
	s := Stats{
		TotalArticles: len(p.articles),
		Categories:    map[string]int{},
		Priorities:    map[string]int{},
	}
	for _, a := range p.articles {
		category := a.Category
		if category == "" {
			category = "general"
		}
		priority := a.Priority
		if priority == "" {
			priority = "medium"
		}
		s.Categories[category]++
		s.Priorities[priority]++
	}
	return s
}

// toDocument shapes an article for the vector index. Title is prepended to the
// content so title words are searchable too.
func toDocument(a domain.Article) domain.Document {
	return domain.Document{
		ID:       a.ID,
		Title:    a.Title,
		Content:  a.Title + " " + a.Content,
		Category: a.Category,
		Tags:     a.Tags,
	}
}
