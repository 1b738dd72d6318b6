// Package wordpress talks to the WordPress REST API with application
// passwords. Posts are always written as drafts.
package wordpress

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is an authenticated WordPress REST client for one site.
type Client struct {
	baseURL     string
	user        string
	appPassword string
	httpClient  *http.Client
}

func NewClient(baseURL, user, appPassword string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		user:        user,
		appPassword: appPassword,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// PostResult identifies a created or updated post.
type PostResult struct {
	ID   int    `json:"id"`
	Link string `json:"link"`
}

type postSummary struct {
	ID    int    `json:"id"`
	Link  string `json:"link"`
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
}

type draftPayload struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Status     string `json:"status"`
	Categories []int  `json:"categories"`
	Tags       []int  `json:"tags,omitempty"`
}

func (c *Client) authHeader() string {
	token := base64.StdEncoding.EncodeToString([]byte(c.user + ":" + c.appPassword))
	return "Basic " + token
}

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// normalizeTitle undoes the HTML-entity encoding WordPress applies to
// rendered titles so searches can compare against the raw title.
func normalizeTitle(title string) string {
	return strings.TrimSpace(entityReplacer.Replace(title))
}

// FindPostByTitle searches for a post whose rendered title matches exactly.
// Returns nil when no post matches.
func (c *Client) FindPostByTitle(ctx context.Context, title string) (*PostResult, error) {
	endpoint := fmt.Sprintf("%s/wp-json/wp/v2/posts?search=%s&per_page=100",
		c.baseURL, url.QueryEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.authHeader())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wordpress search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("wordpress search failed (%d): %s", resp.StatusCode, string(body))
	}

	var posts []postSummary
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("wordpress search response: %w", err)
	}

	want := normalizeTitle(title)
	for _, post := range posts {
		if normalizeTitle(post.Title.Rendered) == want {
			return &PostResult{ID: post.ID, Link: post.Link}, nil
		}
	}
	return nil, nil
}

// CreateDraft creates a new draft post.
func (c *Client) CreateDraft(ctx context.Context, title, content string, categoryID int, tagIDs []int) (*PostResult, error) {
	endpoint := c.baseURL + "/wp-json/wp/v2/posts"
	return c.writeDraft(ctx, endpoint, title, content, categoryID, tagIDs)
}

// UpdateDraft rewrites an existing post back to draft status.
func (c *Client) UpdateDraft(ctx context.Context, id int, title, content string, categoryID int, tagIDs []int) (*PostResult, error) {
	endpoint := fmt.Sprintf("%s/wp-json/wp/v2/posts/%d", c.baseURL, id)
	return c.writeDraft(ctx, endpoint, title, content, categoryID, tagIDs)
}

func (c *Client) writeDraft(ctx context.Context, endpoint, title, content string, categoryID int, tagIDs []int) (*PostResult, error) {
	payload := draftPayload{
		Title:      title,
		Content:    content,
		Status:     "draft",
		Categories: []int{categoryID},
		Tags:       tagIDs,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wordpress write request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("wordpress write failed (%d): %s", resp.StatusCode, string(raw))
	}

	var result PostResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("wordpress write response: %w", err)
	}
	if result.ID == 0 || result.Link == "" {
		return nil, fmt.Errorf("wordpress response missing id or link")
	}
	return &result, nil
}
