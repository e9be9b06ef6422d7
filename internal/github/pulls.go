package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/siftbot/gh-sift/pkg/models"
)

// PullFile is a changed file on a pull request
type PullFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// GetPullRequest fetches a single pull request with diff stats
func (c *Client) GetPullRequest(ctx context.Context, org, repo string, number int) (*models.Item, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/pulls/%d", org, repo, number)

	var pr PullRequest
	if err := c.rest.Get(endpoint, &pr); err != nil {
		return nil, fmt.Errorf("failed to get pull request: %w", err)
	}

	return pr.ToItem(org, repo), nil
}

// ListPullFiles fetches the changed file paths of a pull request
func (c *Client) ListPullFiles(ctx context.Context, org, repo string, number int) ([]string, error) {
	var paths []string
	page := 1
	perPage := 100

	for {
		endpoint := fmt.Sprintf("repos/%s/%s/pulls/%d/files?per_page=%d&page=%d",
			org, repo, number, perPage, page)

		var files []PullFile
		if err := c.rest.Get(endpoint, &files); err != nil {
			return nil, fmt.Errorf("failed to list pull request files: %w", err)
		}

		for _, f := range files {
			paths = append(paths, f.Filename)
		}

		if len(files) < perPage {
			break
		}
		page++
	}

	return paths, nil
}

// ListRecentPulls fetches the most recently created pull requests,
// newest first, up to limit
func (c *Client) ListRecentPulls(ctx context.Context, org, repo string, limit int) ([]*models.Item, error) {
	params := url.Values{}
	params.Set("state", "open")
	params.Set("per_page", strconv.Itoa(limit))
	params.Set("sort", "created")
	params.Set("direction", "desc")

	endpoint := fmt.Sprintf("repos/%s/%s/pulls?%s", org, repo, params.Encode())

	var prs []PullRequest
	if err := c.rest.Get(endpoint, &prs); err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}

	items := make([]*models.Item, 0, len(prs))
	for i := range prs {
		items = append(items, prs[i].ToItem(org, repo))
	}
	if len(items) > limit {
		items = items[:limit]
	}

	return items, nil
}

// CombinedStatus is the aggregate commit status for a ref
type CombinedStatus struct {
	State string `json:"state"` // "success", "pending", "failure"
}

// IsCIPassing reports whether the combined status of a commit is success
func (c *Client) IsCIPassing(ctx context.Context, org, repo, sha string) (bool, error) {
	if sha == "" {
		return false, nil
	}

	endpoint := fmt.Sprintf("repos/%s/%s/commits/%s/status", org, repo, sha)

	var status CombinedStatus
	if err := c.rest.Get(endpoint, &status); err != nil {
		return false, fmt.Errorf("failed to get combined status: %w", err)
	}

	return status.State == "success", nil
}

// GetHeadSHA fetches the head commit SHA of a pull request
func (c *Client) GetHeadSHA(ctx context.Context, org, repo string, number int) (string, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/pulls/%d", org, repo, number)

	var pr PullRequest
	if err := c.rest.Get(endpoint, &pr); err != nil {
		return "", fmt.Errorf("failed to get pull request: %w", err)
	}

	return pr.Head.SHA, nil
}
