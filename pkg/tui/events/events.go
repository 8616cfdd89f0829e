// Package events defines the messages exchanged between the root program and
// its components.
package events

import "tableflip.dev/posts/pkg/post"

// PostsLoadedMsg carries the result of the one posts fetch. Err is set when
// the fetch failed; Posts is then empty.
type PostsLoadedMsg struct {
	Posts []post.Post
	Err   error
}
