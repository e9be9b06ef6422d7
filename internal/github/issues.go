package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/siftbot/gh-sift/pkg/models"
)

// ListOptions configures item listing
type ListOptions struct {
	State   string // "open", "closed", "all"
	PerPage int
	Page    int
	Since   time.Time
	Sort    string // "created" or "updated"
}

// ListIssues fetches issues from a repository, excluding pull requests
func (c *Client) ListIssues(ctx context.Context, org, repo string, opts ListOptions) ([]*models.Item, error) {
	apiIssues, err := c.listRaw(ctx, org, repo, opts)
	if err != nil {
		return nil, err
	}

	items := make([]*models.Item, 0, len(apiIssues))
	for _, ai := range apiIssues {
		if ai.PullRequest != nil {
			continue
		}
		items = append(items, ai.ToItem(org, repo))
	}

	return items, nil
}

// ListRecent fetches the most recently created items of one kind,
// newest first, up to limit
func (c *Client) ListRecent(ctx context.Context, org, repo string, kind models.ItemKind, limit int) ([]*models.Item, error) {
	if kind == models.KindPull {
		return c.ListRecentPulls(ctx, org, repo, limit)
	}

	opts := ListOptions{State: "open", PerPage: limit, Sort: "created"}
	items, err := c.ListIssues(ctx, org, repo, opts)
	if err != nil {
		return nil, err
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// GetIssue fetches a single issue
func (c *Client) GetIssue(ctx context.Context, org, repo string, number int) (*models.Item, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/issues/%d", org, repo, number)

	var ai Issue
	if err := c.rest.Get(endpoint, &ai); err != nil {
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return ai.ToItem(org, repo), nil
}

// ListAllItems fetches issues and pull requests using pagination
func (c *Client) ListAllItems(ctx context.Context, org, repo string, state string, batchSize int) ([]*models.Item, error) {
	var allItems []*models.Item
	page := 1

	for {
		apiIssues, err := c.listRaw(ctx, org, repo, ListOptions{
			State:   state,
			PerPage: batchSize,
			Page:    page,
		})
		if err != nil {
			return nil, err
		}

		if len(apiIssues) == 0 {
			break
		}

		for _, ai := range apiIssues {
			allItems = append(allItems, ai.ToItem(org, repo))
		}

		if len(apiIssues) < batchSize {
			break
		}
		page++
	}

	return allItems, nil
}

// listRaw fetches one page from the issues endpoint. The endpoint
// returns pull requests too; callers decide whether to keep them.
func (c *Client) listRaw(ctx context.Context, org, repo string, opts ListOptions) ([]Issue, error) {
	if opts.PerPage == 0 {
		opts.PerPage = 100
	}
	if opts.State == "" {
		opts.State = "all"
	}
	if opts.Page == 0 {
		opts.Page = 1
	}
	if opts.Sort == "" {
		opts.Sort = "updated"
	}

	params := url.Values{}
	params.Set("state", opts.State)
	params.Set("per_page", strconv.Itoa(opts.PerPage))
	params.Set("page", strconv.Itoa(opts.Page))
	params.Set("sort", opts.Sort)
	params.Set("direction", "desc")
	if !opts.Since.IsZero() {
		params.Set("since", opts.Since.Format(time.RFC3339))
	}

	endpoint := fmt.Sprintf("repos/%s/%s/issues?%s", org, repo, params.Encode())

	var apiIssues []Issue
	if err := c.rest.Get(endpoint, &apiIssues); err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	return apiIssues, nil
}
