package bot_test

import (
	"context"

	"confluencebot/internal/ai"
	"confluencebot/internal/confluence"
)

type fakeBackend struct {
	reply string
	err   error

	calls    int
	payloads [][]ai.Message
}

func (f *fakeBackend) Complete(_ context.Context, msgs []ai.Message, _ int, _ float32) (string, error) {
	f.calls++
	f.payloads = append(f.payloads, msgs)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeSource struct {
	pagesByID    map[string]*confluence.Page
	pagesByTitle map[string]*confluence.Page
	searchHits   []confluence.Summary

	searchCalls int
}

func (f *fakeSource) PageByID(_ context.Context, id string) (*confluence.Page, error) {
	if p, ok := f.pagesByID[id]; ok {
		return p, nil
	}
	return nil, confluence.ErrNotFound
}

func (f *fakeSource) PageByTitle(_ context.Context, space, title string) (*confluence.Page, error) {
	if p, ok := f.pagesByTitle[space+":"+title]; ok {
		return p, nil
	}
	return nil, confluence.ErrNotFound
}

func (f *fakeSource) Search(_ context.Context, _, _ string, limit int) ([]confluence.Summary, error) {
	f.searchCalls++
	if len(f.searchHits) > limit {
		return f.searchHits[:limit], nil
	}
	return f.searchHits, nil
}
