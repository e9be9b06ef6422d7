package github

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/siftbot/gh-sift/pkg/models"
)

// Event represents a GitHub webhook event payload for issues and
// pull requests
type Event struct {
	Action      string       `json:"action"`
	Issue       *EventIssue  `json:"issue"`
	PullRequest *EventPull   `json:"pull_request"`
	Repo        *EventRepo   `json:"repository"`
	Sender      *EventSender `json:"sender"`
}

// EventIssue represents issue data in an event
type EventIssue struct {
	Number  int          `json:"number"`
	Title   string       `json:"title"`
	Body    string       `json:"body"`
	State   string       `json:"state"`
	HTMLURL string       `json:"html_url"`
	User    *EventSender `json:"user"`
	Labels  []Label      `json:"labels"`
}

// EventPull represents pull request data in an event
type EventPull struct {
	Number       int          `json:"number"`
	Title        string       `json:"title"`
	Body         string       `json:"body"`
	State        string       `json:"state"`
	HTMLURL      string       `json:"html_url"`
	User         *EventSender `json:"user"`
	Additions    int          `json:"additions"`
	Deletions    int          `json:"deletions"`
	ChangedFiles int          `json:"changed_files"`
	Head         Ref          `json:"head"`
}

// EventRepo represents repository data in an event
type EventRepo struct {
	FullName string `json:"full_name"`
	Owner    struct {
		Login string `json:"login"`
	} `json:"owner"`
	Name string `json:"name"`
}

// EventSender represents the user who triggered the event
type EventSender struct {
	Login string `json:"login"`
}

// ParseEventFile reads and parses a GitHub event JSON file
func ParseEventFile(path string) (*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event file: %w", err)
	}

	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to parse event JSON: %w", err)
	}

	return &event, nil
}

// ToItem converts the event payload to a models.Item, or nil when the
// event carries neither an issue nor a pull request
func (e *Event) ToItem() *models.Item {
	if e.Repo == nil {
		return nil
	}

	if e.PullRequest != nil {
		author := ""
		if e.PullRequest.User != nil {
			author = e.PullRequest.User.Login
		}
		return &models.Item{
			Org:          e.Repo.Owner.Login,
			Repo:         e.Repo.Name,
			Number:       e.PullRequest.Number,
			Kind:         models.KindPull,
			Title:        e.PullRequest.Title,
			Body:         e.PullRequest.Body,
			State:        e.PullRequest.State,
			Author:       author,
			URL:          e.PullRequest.HTMLURL,
			Additions:    e.PullRequest.Additions,
			Deletions:    e.PullRequest.Deletions,
			ChangedFiles: e.PullRequest.ChangedFiles,
		}
	}

	if e.Issue != nil {
		author := ""
		if e.Issue.User != nil {
			author = e.Issue.User.Login
		}
		return &models.Item{
			Org:    e.Repo.Owner.Login,
			Repo:   e.Repo.Name,
			Number: e.Issue.Number,
			Kind:   models.KindIssue,
			Title:  e.Issue.Title,
			Body:   e.Issue.Body,
			State:  e.Issue.State,
			Author: author,
			URL:    e.Issue.HTMLURL,
		}
	}

	return nil
}

// HeadSHA returns the PR head commit SHA, or empty for issue events
func (e *Event) HeadSHA() string {
	if e.PullRequest == nil {
		return ""
	}
	return e.PullRequest.Head.SHA
}

// IsIssueEvent checks if this is an issue event
func (e *Event) IsIssueEvent() bool {
	return e.Issue != nil && e.PullRequest == nil
}

// IsPullEvent checks if this is a pull request event
func (e *Event) IsPullEvent() bool {
	return e.PullRequest != nil
}

// IsOpenedAction checks if the triggering action is "opened"
func (e *Event) IsOpenedAction() bool {
	return e.Action == "opened"
}

// IsEditedAction checks if the triggering action is "edited"
func (e *Event) IsEditedAction() bool {
	return e.Action == "edited"
}

// IsSynchronizeAction checks if the triggering action is "synchronize"
func (e *Event) IsSynchronizeAction() bool {
	return e.Action == "synchronize"
}
