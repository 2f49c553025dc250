package model

import "time"

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypePush                     WebhookEventType = "push"
	EventTypeIssueComment             WebhookEventType = "issue_comment"
	EventTypeCommitComment            WebhookEventType = "commit_comment"
	EventTypeDiscussionComment        WebhookEventType = "discussion_comment"
	EventTypeDiscussion               WebhookEventType = "discussion"
	EventTypeIssues                   WebhookEventType = "issues"
	EventTypeProjectCard              WebhookEventType = "project_card"
	EventTypePullRequest              WebhookEventType = "pull_request"
	EventTypePullRequestReview        WebhookEventType = "pull_request_review"
	EventTypePullRequestReviewComment WebhookEventType = "pull_request_review_comment"
	EventTypeRelease                  WebhookEventType = "release"
	EventTypeUnknown                  WebhookEventType = "unknown"
)

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID         string           // Retrieved from X-GitHub-Delivery header
	Type       WebhookEventType // Retrieved from X-GitHub-Event header
	Action     string           // Event action (e.g., opened, created, submitted)
	Repository string           // Repository name
	Sender     string           // Sender username
	ReceivedAt time.Time        // Time when the event was received
	RawPayload []byte           // Raw JSON payload
}

// IsSupportedEvent checks if the event kind can ever yield mentions for
// the relay. Action-level filtering (e.g. only "created" comments) is
// the normalizer's job; this gate only rules out kinds the relay never
// handles. Release events are excluded: release notes aggregate commit
// titles and could reference many unrelated cards.
func (e *WebhookEvent) IsSupportedEvent() bool {
	switch e.Type {
	case EventTypePush,
		EventTypeIssues,
		EventTypeIssueComment,
		EventTypeCommitComment,
		EventTypeDiscussionComment,
		EventTypeDiscussion,
		EventTypeProjectCard,
		EventTypePullRequest,
		EventTypePullRequestReview,
		EventTypePullRequestReviewComment:
		return true
	default:
		return false
	}
}
