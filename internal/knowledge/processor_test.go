package knowledge

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"convoscore/internal/domain"
	"convoscore/internal/logging"
	"convoscore/internal/retrieval"
)

func testLog() *logging.Logger {
	return logging.New(nil, "silent")
}

func TestLoadBuiltInSamples(t *testing.T) {
	p := NewProcessor(&retrieval.MockRetriever{}, testLog())

	require.NoError(t, p.Load(""))
	assert.Len(t, p.Articles(), 10)
	assert.Equal(t, "kb_001", p.Articles()[0].ID)
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	p := NewProcessor(&retrieval.MockRetriever{}, testLog())

	require.NoError(t, p.Load(filepath.Join(t.TempDir(), "nope.json")))
	assert.Len(t, p.Articles(), 10)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	data, err := json.Marshal(articleFile{Articles: []domain.Article{
		{ID: "a1", Title: "Shipping times", Content: "Orders ship in 2 days.", Category: "shipping"},
	}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	p := NewProcessor(&retrieval.MockRetriever{}, testLog())
	require.NoError(t, p.Load(path))

	require.Len(t, p.Articles(), 1)
	assert.Equal(t, "Shipping times", p.Articles()[0].Title)
}

func TestLoadRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	p := NewProcessor(&retrieval.MockRetriever{}, testLog())
	assert.Error(t, p.Load(path))

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"articles": []}`), 0o600))
	assert.Error(t, p.Load(empty))
}

func TestSync(t *testing.T) {
	mock := &retrieval.MockRetriever{}
	p := NewProcessor(mock, testLog())
	require.NoError(t, p.Load(""))

	require.NoError(t, p.Sync(context.Background()))

	require.Len(t, mock.Upserted, 10)
	first := mock.Upserted[0]
	assert.Equal(t, "kb_001", first.ID)
	assert.Contains(t, first.Content, "How to Reset Your Password", "title folded into searchable content")
	assert.Contains(t, first.Content, "Forgot Password")
	assert.Equal(t, "account_management", first.Category)
}

func TestSyncWithoutArticles(t *testing.T) {
	p := NewProcessor(&retrieval.MockRetriever{}, testLog())
	assert.Error(t, p.Sync(context.Background()))
}

func TestSyncPropagatesRetrieverError(t *testing.T) {
	p := NewProcessor(retrieval.Unavailable(), testLog())
	require.NoError(t, p.Load(""))
	assert.Error(t, p.Sync(context.Background()))
}

func TestStats(t *testing.T) {
	p := NewProcessor(&retrieval.MockRetriever{}, testLog())
	require.NoError(t, p.Load(""))

	s := p.Stats()
	assert.Equal(t, 10, s.TotalArticles)
	assert.Equal(t, 2, s.Categories["billing"])
	assert.Equal(t, 2, s.Categories["account_management"])
	assert.Equal(t, 2, s.Priorities["critical"])
	assert.Equal(t, 5, s.Priorities["high"])
}
