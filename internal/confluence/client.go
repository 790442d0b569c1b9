package confluence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound means the lookup succeeded but no page matched.
var ErrNotFound = errors.New("confluence: page not found")

// Page is a raw document as the API returns it; the body is storage-format
// markup and needs extraction before use.
type Page struct {
	ID       string
	Title    string
	SpaceKey string
	BodyHTML string
	URL      string
}

// Summary is a lightweight search hit without a body.
type Summary struct {
	ID    string
	Title string
	Space string
	URL   string
}

// User is the identity the client is authenticated as.
type User struct {
	Username    string
	DisplayName string
}

// Space is one partition of the knowledge source.
type Space struct {
	Key  string
	Name string
}

// Client is a minimal Confluence REST client with basic auth. Cloud instances
// serve the API under /wiki; everything else is treated as a server install.
type Client struct {
	baseURL string
	apiBase string
	user    string
	pass    string
	client  *http.Client
}

func NewClient(rawURL, username, password string) *Client {
	base := strings.TrimRight(rawURL, "/")
	apiBase := base + "/rest/api"
	if strings.Contains(base, "atlassian.net") && !strings.HasSuffix(base, "/wiki") {
		apiBase = base + "/wiki/rest/api"
	}

	return &Client{
		baseURL: base,
		apiBase: apiBase,
		user:    username,
		pass:    password,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type contentPayload struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Space struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"space"`
	Body struct {
		Storage struct {
			Value string `json:"value"`
		} `json:"storage"`
	} `json:"body"`
	Links struct {
		WebUI string `json:"webui"`
	} `json:"_links"`
}

type contentListPayload struct {
	Results []contentPayload `json:"results"`
}

func (c *Client) PageByID(ctx context.Context, id string) (*Page, error) {
	var payload contentPayload
	err := c.get(ctx, "/content/"+url.PathEscape(id), url.Values{
		"expand": {"body.storage,space"},
	}, &payload)
	if err != nil {
		return nil, err
	}
	return c.toPage(payload), nil
}

func (c *Client) PageByTitle(ctx context.Context, spaceKey, title string) (*Page, error) {
	var payload contentListPayload
	err := c.get(ctx, "/content", url.Values{
		"spaceKey": {spaceKey},
		"title":    {title},
		"expand":   {"body.storage,space"},
	}, &payload)
	if err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		return nil, ErrNotFound
	}
	return c.toPage(payload.Results[0]), nil
}

// Search runs a CQL full-text query, optionally scoped to one space.
func (c *Client) Search(ctx context.Context, query, spaceKey string, limit int) ([]Summary, error) {
	cql := fmt.Sprintf("type=page AND text ~ %q", query)
	if spaceKey != "" {
		cql += fmt.Sprintf(" AND space=%q", spaceKey)
	}

	var payload contentListPayload
	err := c.get(ctx, "/content/search", url.Values{
		"cql":    {cql},
		"limit":  {strconv.Itoa(limit)},
		"expand": {"space"},
	}, &payload)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(payload.Results))
	for _, r := range payload.Results {
		out = append(out, Summary{
			ID:    r.ID,
			Title: r.Title,
			Space: r.Space.Key,
			URL:   c.baseURL + r.Links.WebUI,
		})
	}
	return out, nil
}

// CurrentUser resolves the authenticated identity; used as a startup
// connectivity check.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var payload struct {
		Username    string `json:"username"`
		DisplayName string `json:"displayName"`
	}
	if err := c.get(ctx, "/user/current", nil, &payload); err != nil {
		return nil, err
	}
	return &User{Username: payload.Username, DisplayName: payload.DisplayName}, nil
}

// Spaces lists the spaces the credential can see.
func (c *Client) Spaces(ctx context.Context, limit int) ([]Space, error) {
	var payload struct {
		Results []struct {
			Key  string `json:"key"`
			Name string `json:"name"`
		} `json:"results"`
	}
	err := c.get(ctx, "/space", url.Values{"limit": {strconv.Itoa(limit)}}, &payload)
	if err != nil {
		return nil, err
	}

	out := make([]Space, 0, len(payload.Results))
	for _, r := range payload.Results {
		out = append(out, Space{Key: r.Key, Name: r.Name})
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	u := c.apiBase + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.user, c.pass)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("confluence api error: %s body=%s", resp.Status, body)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}

func (c *Client) toPage(p contentPayload) *Page {
	return &Page{
		ID:       p.ID,
		Title:    p.Title,
		SpaceKey: p.Space.Key,
		BodyHTML: p.Body.Storage.Value,
		URL:      c.baseURL + p.Links.WebUI,
	}
}
