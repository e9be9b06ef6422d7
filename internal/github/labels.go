package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// defaultLabelColor is used when the bot has to create a missing label
const defaultLabelColor = "ededed"

// EnsureLabel checks that a label exists in the repository and creates
// it when missing
func (c *Client) EnsureLabel(ctx context.Context, org, repo, label string) error {
	endpoint := fmt.Sprintf("repos/%s/%s/labels/%s", org, repo, label)

	var existing Label
	err := c.rest.Get(endpoint, &existing)
	if err == nil {
		return nil
	}
	if !strings.Contains(err.Error(), "404") {
		return fmt.Errorf("failed to check label: %w", err)
	}

	payload := map[string]string{"name": label, "color": defaultLabelColor}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	createEndpoint := fmt.Sprintf("repos/%s/%s/labels", org, repo)
	if err := c.rest.Post(createEndpoint, bytes.NewReader(jsonBody), nil); err != nil {
		return fmt.Errorf("failed to create label: %w", err)
	}

	return nil
}

// AddLabels attaches labels to an item, skipping any already present.
// Re-requesting an attached label is a no-op, never an error.
func (c *Client) AddLabels(ctx context.Context, org, repo string, number int, labels []string) error {
	if len(labels) == 0 {
		return nil
	}

	current, err := c.listItemLabels(ctx, org, repo, number)
	if err != nil {
		return err
	}

	var missing []string
	for _, label := range labels {
		if !current[label] {
			missing = append(missing, label)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	endpoint := fmt.Sprintf("repos/%s/%s/issues/%d/labels", org, repo, number)

	payload := map[string][]string{"labels": missing}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if err := c.rest.Post(endpoint, bytes.NewReader(jsonBody), nil); err != nil {
		return fmt.Errorf("failed to add labels: %w", err)
	}

	return nil
}

// RemoveLabel removes a label from an item
func (c *Client) RemoveLabel(ctx context.Context, org, repo string, number int, label string) error {
	endpoint := fmt.Sprintf("repos/%s/%s/issues/%d/labels/%s", org, repo, number, label)

	if err := c.rest.Delete(endpoint, nil); err != nil {
		return fmt.Errorf("failed to remove label: %w", err)
	}

	return nil
}

// listItemLabels returns the labels currently on an item as a set
func (c *Client) listItemLabels(ctx context.Context, org, repo string, number int) (map[string]bool, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/issues/%d/labels", org, repo, number)

	var labels []Label
	if err := c.rest.Get(endpoint, &labels); err != nil {
		return nil, fmt.Errorf("failed to list item labels: %w", err)
	}

	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[l.Name] = true
	}
	return set, nil
}
