package model

// CardComment is one intended Favro comment: the sequential ID of the
// referenced card and the markdown body generated for it. The relay
// returns one per extracted reference whether or not the network post
// succeeded or was skipped.
type CardComment struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}
