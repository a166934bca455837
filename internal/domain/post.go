package domain

import "time"

// Post is a short text entry owned by a single user. Posts never outlive
// their owner: account deletion removes the user and all owned posts in
// one transaction.
type Post struct {
	ID        int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}

// PostWithAuthor is a post joined with its author's display name. CanDelete
// is computed per caller by the service layer (owner or admin) and is the
// only deletion hint exposed to clients.
type PostWithAuthor struct {
	Post
	Username  string
	CanDelete bool
}
