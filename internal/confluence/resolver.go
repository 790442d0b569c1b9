package confluence

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	searchLimit   = 5
	cacheCapacity = 32
)

// Document is an extracted, cacheable page.
type Document struct {
	Key     string // cache key: "SPACE:Title" or "id:<id>"
	ID      string
	Title   string
	Space   string
	Content string
	URL     string
}

// Source is the external document collaborator the resolver fetches through.
type Source interface {
	PageByID(ctx context.Context, id string) (*Page, error)
	PageByTitle(ctx context.Context, spaceKey, title string) (*Page, error)
	Search(ctx context.Context, query, spaceKey string, limit int) ([]Summary, error)
}

// Reference detection is ordered: a quoted title wins over a command phrase,
// which wins over a bare capitalized phrase. The capitalized-phrase pattern
// matches ordinary proper nouns too; those lookups simply come back empty.
var refPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"([^"]+)"`),
	regexp.MustCompile(`(?i)\b(?:load|open|show|read)\s+(?:the\s+)?(?:page|document|doc)\s+(.+?)[.?!]?\s*$`),
	regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\b`),
}

var numericRe = regexp.MustCompile(`^\d+$`)

// Resolver detects references to Confluence pages in free text and resolves
// them through a shared bounded cache. Resolution is best-effort: every
// source failure degrades to "no result" and is only visible in logs.
type Resolver struct {
	source Source
	spaces []string
	cache  *docCache
}

func NewResolver(source Source, spaces []string) *Resolver {
	return &Resolver{
		source: source,
		spaces: spaces,
		cache:  newDocCache(cacheCapacity),
	}
}

// ResolveReference finds the first page reference in the text and returns the
// cached or freshly fetched document, or nil when nothing resolves.
func (r *Resolver) ResolveReference(ctx context.Context, text string) *Document {
	ref := detectReference(text)
	if ref == "" {
		return nil
	}

	if numericRe.MatchString(ref) {
		return r.byID(ctx, ref)
	}
	return r.byTitle(ctx, ref)
}

func detectReference(text string) string {
	for _, p := range refPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func (r *Resolver) byID(ctx context.Context, id string) *Document {
	key := "id:" + id
	if doc, ok := r.cache.get(key); ok {
		return doc
	}

	page, err := r.source.PageByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Str("page_id", id).Msg("page fetch failed")
		}
		return nil
	}
	return r.store(key, page)
}

// byTitle tries the configured spaces in order and takes the first hit.
func (r *Resolver) byTitle(ctx context.Context, title string) *Document {
	for _, space := range r.spaces {
		key := space + ":" + title
		if doc, ok := r.cache.get(key); ok {
			return doc
		}

		page, err := r.source.PageByTitle(ctx, space, title)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				log.Warn().Err(err).Str("space", space).Str("title", title).
					Msg("page lookup failed")
			}
			continue
		}
		return r.store(key, page)
	}
	return nil
}

func (r *Resolver) store(key string, page *Page) *Document {
	doc := &Document{
		Key:     key,
		ID:      page.ID,
		Title:   page.Title,
		Space:   page.SpaceKey,
		Content: ExtractText(page.BodyHTML),
		URL:     page.URL,
	}
	r.cache.put(key, doc)
	return doc
}

// Search runs a capped full-text query and returns summaries without bodies.
// Failures degrade to an empty result.
func (r *Resolver) Search(ctx context.Context, query, space string) []Summary {
	results, err := r.source.Search(ctx, query, space, searchLimit)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("search failed")
		return nil
	}
	if len(results) > searchLimit {
		results = results[:searchLimit]
	}
	return results
}

// Cached returns a document without touching the source.
func (r *Resolver) Cached(key string) (*Document, bool) {
	return r.cache.get(key)
}

// ClearCache drops all cached documents.
func (r *Resolver) ClearCache() {
	r.cache.clear()
}
