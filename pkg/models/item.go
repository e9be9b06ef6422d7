package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ItemKind distinguishes issues from pull requests
type ItemKind string

const (
	KindIssue ItemKind = "issue"
	KindPull  ItemKind = "pr"
)

// Item represents a GitHub issue or pull request with its metadata
type Item struct {
	Org       string    `json:"org"`
	Repo      string    `json:"repo"`
	Number    int       `json:"number"`
	Kind      ItemKind  `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	State     string    `json:"state"` // "open" or "closed"
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Pull request only
	Additions    int `json:"additions,omitempty"`
	Deletions    int `json:"deletions,omitempty"`
	ChangedFiles int `json:"changed_files,omitempty"`
}

// FullRepo returns the full repository name (org/repo)
func (i *Item) FullRepo() string {
	return fmt.Sprintf("%s/%s", i.Org, i.Repo)
}

// UUID generates a deterministic UUID based on org/repo#number and kind
func (i *Item) UUID() string {
	return ItemUUID(i.Org, i.Repo, i.Number, i.Kind)
}

// IsClosed reports whether the item is closed
func (i *Item) IsClosed() bool {
	return i.State == "closed"
}

// ItemUUID generates a deterministic UUID from item identity.
// Kind is part of the identity so an issue and a PR sharing a number
// map to distinct store points (unique on repo, number, kind).
func ItemUUID(org, repo string, number int, kind ItemKind) string {
	data := fmt.Sprintf("%s/%s#%d:%s", org, repo, number, kind)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(data)).String()
}
