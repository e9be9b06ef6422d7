package github

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/siftbot/gh-sift/pkg/models"
)

func writeEvent(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write event file: %v", err)
	}
	return path
}

func TestParseEventFile_IssueOpened(t *testing.T) {
	path := writeEvent(t, `{
		"action": "opened",
		"issue": {
			"number": 42,
			"title": "Login fails on Safari",
			"body": "Safari users cannot log in",
			"state": "open",
			"html_url": "https://github.com/myorg/myrepo/issues/42",
			"user": {"login": "reporter"}
		},
		"repository": {
			"full_name": "myorg/myrepo",
			"owner": {"login": "myorg"},
			"name": "myrepo"
		}
	}`)

	event, err := ParseEventFile(path)
	if err != nil {
		t.Fatalf("ParseEventFile() error = %v", err)
	}

	if !event.IsIssueEvent() {
		t.Errorf("IsIssueEvent() = false")
	}
	if event.IsPullEvent() {
		t.Errorf("IsPullEvent() = true for issue event")
	}
	if !event.IsOpenedAction() {
		t.Errorf("IsOpenedAction() = false")
	}

	item := event.ToItem()
	if item == nil {
		t.Fatalf("ToItem() = nil")
	}
	if item.Kind != models.KindIssue {
		t.Errorf("Kind = %v, want issue", item.Kind)
	}
	if item.Number != 42 || item.Org != "myorg" || item.Repo != "myrepo" {
		t.Errorf("item identity = %s#%d", item.FullRepo(), item.Number)
	}
	if item.Author != "reporter" {
		t.Errorf("Author = %v, want reporter", item.Author)
	}
}

func TestParseEventFile_PullSynchronize(t *testing.T) {
	path := writeEvent(t, `{
		"action": "synchronize",
		"pull_request": {
			"number": 7,
			"title": "Add session refresh",
			"body": "Refreshes tokens before expiry",
			"state": "open",
			"html_url": "https://github.com/myorg/myrepo/pull/7",
			"user": {"login": "author"},
			"additions": 50,
			"deletions": 10,
			"changed_files": 2,
			"head": {"sha": "abc123"}
		},
		"repository": {
			"full_name": "myorg/myrepo",
			"owner": {"login": "myorg"},
			"name": "myrepo"
		}
	}`)

	event, err := ParseEventFile(path)
	if err != nil {
		t.Fatalf("ParseEventFile() error = %v", err)
	}

	if !event.IsPullEvent() {
		t.Errorf("IsPullEvent() = false")
	}
	if !event.IsSynchronizeAction() {
		t.Errorf("IsSynchronizeAction() = false")
	}
	if event.HeadSHA() != "abc123" {
		t.Errorf("HeadSHA() = %v, want abc123", event.HeadSHA())
	}

	item := event.ToItem()
	if item == nil {
		t.Fatalf("ToItem() = nil")
	}
	if item.Kind != models.KindPull {
		t.Errorf("Kind = %v, want pr", item.Kind)
	}
	if item.Additions != 50 || item.Deletions != 10 || item.ChangedFiles != 2 {
		t.Errorf("diff stats = +%d -%d (%d files)", item.Additions, item.Deletions, item.ChangedFiles)
	}
}

func TestEvent_NoItem(t *testing.T) {
	path := writeEvent(t, `{"action": "labeled", "repository": {"name": "r", "owner": {"login": "o"}}}`)

	event, err := ParseEventFile(path)
	if err != nil {
		t.Fatalf("ParseEventFile() error = %v", err)
	}

	if event.ToItem() != nil {
		t.Errorf("ToItem() != nil for event without issue or PR")
	}
}

func TestParseRepo(t *testing.T) {
	org, repo, err := ParseRepo("myorg/myrepo")
	if err != nil {
		t.Fatalf("ParseRepo() error = %v", err)
	}
	if org != "myorg" || repo != "myrepo" {
		t.Errorf("ParseRepo() = %v/%v", org, repo)
	}

	if _, _, err := ParseRepo("not-a-repo"); err == nil {
		t.Errorf("ParseRepo() expected error for invalid format")
	}
}
