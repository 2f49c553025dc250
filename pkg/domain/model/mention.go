package model

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MentionType labels the kind of repository activity a mention came from.
// The value is rendered into the comment with only its first letter
// capitalized, so acronym types keep their own casing ("PR review").
type MentionType string

const (
	MentionBranch            MentionType = "branch"
	MentionCommit            MentionType = "commit"
	MentionIssue             MentionType = "issue"
	MentionIssueComment      MentionType = "issue comment"
	MentionCommitComment     MentionType = "commit comment"
	MentionDiscussion        MentionType = "discussion"
	MentionDiscussionComment MentionType = "discussion comment"
	MentionProjectCard       MentionType = "project card"
	MentionPullRequest       MentionType = "PR"
	MentionPRReview          MentionType = "PR review"
	MentionPRReviewComment   MentionType = "PR review comment"
)

// Author identifies who triggered a mention. Structured identities fill
// Login/Email/URL; a free-text author carries only Name.
type Author struct {
	Name  string
	Login string
	Email string
	URL   string // Profile page, when the payload provides one
}

// DisplayName resolves the name to render: name, then login, then email,
// falling back to the literal "unknown".
func (a Author) DisplayName() string {
	switch {
	case a.Name != "":
		return a.Name
	case a.Login != "":
		return a.Login
	case a.Email != "":
		return a.Email
	default:
		return "unknown"
	}
}

// ProfileURL resolves the author's profile link. When the payload carries
// no explicit URL but a login is known, the github.com profile URL is
// constructed from it.
func (a Author) ProfileURL() string {
	if a.URL != "" {
		return a.URL
	}
	if a.Login != "" {
		return "https://github.com/" + a.Login
	}
	return ""
}

// RepoRef points at the repository a mention originated from
type RepoRef struct {
	FullName string
	HTMLURL  string
}

// Mention is a normalized representation of one notable event sub-item
// (a commit, a comment, an issue, ...) eligible for card reference
// scanning. Title and Body are empty when the event has none.
type Mention struct {
	Type   MentionType
	URL    string
	Title  string
	Body   string
	Author Author
	Repo   *RepoRef
}

// Haystack returns the text scanned for card references: title and body
// joined with a single space when both are present.
func (m *Mention) Haystack() string {
	if m.Title != "" && m.Body != "" {
		return m.Title + " " + m.Body
	}
	return m.Title + m.Body
}

// FormatComment renders the markdown notification body posted onto each
// referenced card. Present fragments are joined by a single space; absent
// ones are omitted entirely.
func (m *Mention) FormatComment() string {
	author := m.Author.DisplayName()
	if url := m.Author.ProfileURL(); url != "" {
		author = fmt.Sprintf("[%s](%s)", author, url)
	}

	fragments := []string{
		fmt.Sprintf("[%s](%s)", capitalize(string(m.Type)), m.URL),
	}
	if m.Repo != nil {
		fragments = append(fragments, fmt.Sprintf("*in [%s](%s)*", m.Repo.FullName, m.Repo.HTMLURL))
	}
	fragments = append(fragments, fmt.Sprintf("*by %s:*", author))
	if m.Title != "" {
		fragments = append(fragments, fmt.Sprintf("\n[**%s**](%s)", m.Title, m.URL))
	}
	if m.Body != "" {
		fragments = append(fragments, "\n"+m.Body)
	}

	return strings.Join(fragments, " ")
}

// capitalize uppercases only the first rune, leaving the rest as supplied
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
