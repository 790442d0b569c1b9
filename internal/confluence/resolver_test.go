package confluence

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	pagesByID    map[string]*Page
	pagesByTitle map[string]*Page // key: space + ":" + title
	searchHits   []Summary
	err          error

	idCalls     int
	titleCalls  int
	searchCalls int
}

func (f *fakeSource) PageByID(_ context.Context, id string) (*Page, error) {
	f.idCalls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.pagesByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (f *fakeSource) PageByTitle(_ context.Context, space, title string) (*Page, error) {
	f.titleCalls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.pagesByTitle[space+":"+title]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (f *fakeSource) Search(_ context.Context, _, _ string, limit int) ([]Summary, error) {
	f.searchCalls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.searchHits) > limit {
		return f.searchHits[:limit], nil
	}
	return f.searchHits, nil
}

func TestResolveNumericReferenceUsesIDLookup(t *testing.T) {
	src := &fakeSource{pagesByID: map[string]*Page{
		"42": {ID: "42", Title: "Runbook", SpaceKey: "OPS", BodyHTML: "<p>restart it</p>"},
	}}
	r := NewResolver(src, []string{"DEV", "OPS"})

	doc := r.ResolveReference(context.Background(), `load page 42`)

	require.NotNil(t, doc)
	assert.Equal(t, "Runbook", doc.Title)
	assert.Equal(t, "id:42", doc.Key)
	assert.Equal(t, 1, src.idCalls)
	assert.Zero(t, src.titleCalls, "numeric references must not consult the space list")
}

func TestResolveTitleTriesSpacesInOrder(t *testing.T) {
	src := &fakeSource{pagesByTitle: map[string]*Page{
		"OPS:Project Overview": {ID: "7", Title: "Project Overview", SpaceKey: "OPS",
			BodyHTML: "<p>ship quarterly</p>"},
	}}
	r := NewResolver(src, []string{"DEV", "OPS"})

	doc := r.ResolveReference(context.Background(), `open the page "Project Overview"`)

	require.NotNil(t, doc)
	assert.Equal(t, "OPS", doc.Space)
	assert.Equal(t, "OPS:Project Overview", doc.Key)
	assert.Equal(t, "ship quarterly", doc.Content)
	assert.Equal(t, 2, src.titleCalls, "DEV miss, then OPS hit")
}

func TestResolveSecondLookupHitsCache(t *testing.T) {
	src := &fakeSource{pagesByTitle: map[string]*Page{
		"DEV:Project Overview": {ID: "7", Title: "Project Overview", SpaceKey: "DEV",
			BodyHTML: "<p>same bytes</p>"},
	}}
	r := NewResolver(src, []string{"DEV"})

	first := r.ResolveReference(context.Background(), `read document "Project Overview"`)
	second := r.ResolveReference(context.Background(), `read document "Project Overview"`)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, 1, src.titleCalls, "second resolution must be a cache hit")
}

func TestResolveSourceErrorDegradesToNil(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	r := NewResolver(src, []string{"DEV"})

	assert.Nil(t, r.ResolveReference(context.Background(), `load page "Anything"`))
	assert.Nil(t, r.ResolveReference(context.Background(), `load page 42`))
}

func TestResolveNoReference(t *testing.T) {
	src := &fakeSource{}
	r := NewResolver(src, []string{"DEV"})

	assert.Nil(t, r.ResolveReference(context.Background(), "hello there, how are you?"))
	assert.Zero(t, src.idCalls)
	assert.Zero(t, src.titleCalls)
}

func TestSearchCapped(t *testing.T) {
	src := &fakeSource{}
	for i := 0; i < 8; i++ {
		src.searchHits = append(src.searchHits, Summary{
			ID: fmt.Sprintf("%d", i), Title: fmt.Sprintf("Page %d", i), Space: "DEV",
		})
	}
	r := NewResolver(src, nil)

	hits := r.Search(context.Background(), "deployment", "")

	assert.Len(t, hits, 5)
}

func TestSearchErrorDegradesToEmpty(t *testing.T) {
	r := NewResolver(&fakeSource{err: errors.New("down")}, nil)
	assert.Empty(t, r.Search(context.Background(), "anything", ""))
}

func TestDocCacheEviction(t *testing.T) {
	c := newDocCache(2)
	c.put("a", &Document{Key: "a"})
	c.put("b", &Document{Key: "b"})
	c.put("c", &Document{Key: "c"})

	_, ok := c.get("a")
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok = c.get("c")
	assert.True(t, ok)
}
