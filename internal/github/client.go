package github

import (
	"fmt"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/siftbot/gh-sift/pkg/models"
)

// Client wraps GitHub API operations
type Client struct {
	rest *api.RESTClient
}

// NewClient creates a new GitHub client. Auth comes from GITHUB_TOKEN or
// the ambient gh configuration, resolved by go-gh.
func NewClient() (*Client, error) {
	rest, err := api.DefaultRESTClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}

	return &Client{rest: rest}, nil
}

// Close releases resources
func (c *Client) Close() error {
	return nil
}

// ParseRepo splits "owner/repo" into owner and repo
func ParseRepo(fullRepo string) (string, string, error) {
	parts := strings.Split(fullRepo, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repo format: %s (expected owner/repo)", fullRepo)
	}
	return parts[0], parts[1], nil
}

// Issue represents a GitHub issue from the API
type Issue struct {
	Number      int          `json:"number"`
	Title       string       `json:"title"`
	Body        string       `json:"body"`
	State       string       `json:"state"`
	HTMLURL     string       `json:"html_url"`
	User        User         `json:"user"`
	Labels      []Label      `json:"labels"`
	PullRequest *PullRef     `json:"pull_request,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// PullRef marks an issue as a pull request in the issues endpoint
type PullRef struct {
	URL string `json:"url"`
}

// PullRequest represents a GitHub pull request from the API
type PullRequest struct {
	Number       int       `json:"number"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	State        string    `json:"state"`
	HTMLURL      string    `json:"html_url"`
	User         User      `json:"user"`
	Additions    int       `json:"additions"`
	Deletions    int       `json:"deletions"`
	ChangedFiles int       `json:"changed_files"`
	Head         Ref       `json:"head"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Ref is a branch reference on a pull request
type Ref struct {
	SHA string `json:"sha"`
	Ref string `json:"ref"`
}

// User represents a GitHub user
type User struct {
	Login string `json:"login"`
}

// Label represents a GitHub label
type Label struct {
	Name string `json:"name"`
}

// Comment represents a GitHub comment
type Comment struct {
	ID        int       `json:"id"`
	Body      string    `json:"body"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// ToItem converts an API Issue to a models.Item
func (i *Issue) ToItem(org, repo string) *models.Item {
	kind := models.KindIssue
	if i.PullRequest != nil {
		kind = models.KindPull
	}

	return &models.Item{
		Org:       org,
		Repo:      repo,
		Number:    i.Number,
		Kind:      kind,
		Title:     i.Title,
		Body:      i.Body,
		State:     i.State,
		Author:    i.User.Login,
		URL:       i.HTMLURL,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// ToItem converts an API PullRequest to a models.Item
func (p *PullRequest) ToItem(org, repo string) *models.Item {
	return &models.Item{
		Org:          org,
		Repo:         repo,
		Number:       p.Number,
		Kind:         models.KindPull,
		Title:        p.Title,
		Body:         p.Body,
		State:        p.State,
		Author:       p.User.Login,
		URL:          p.HTMLURL,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Additions:    p.Additions,
		Deletions:    p.Deletions,
		ChangedFiles: p.ChangedFiles,
	}
}
