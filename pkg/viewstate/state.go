// Package viewstate holds the posts currently displayed by a view.
package viewstate

import (
	"sync"

	"tableflip.dev/posts/pkg/post"
)

// Status reports where a ViewState is in its one-shot lifecycle.
type Status int

const (
	// Loading is the initial status; no result has been applied.
	Loading Status = iota
	// Populated means a successful fetch replaced the posts.
	Populated
	// Errored means the fetch failed and the posts stay empty.
	Errored
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Populated:
		return "populated"
	case Errored:
		return "errored"
	}
	return "unknown"
}

// ViewState is the ordered sequence of posts owned by a single view. It is
// written at most once, through Resolve.
type ViewState struct {
	mu     sync.RWMutex
	posts  []post.Post
	status Status
	err    error
}

// New returns an empty ViewState in the Loading status.
func New() *ViewState {
	return &ViewState{posts: []post.Post{}}
}

// Resolve applies the result of the one fetch. A nil err replaces the posts
// wholesale; a non-nil err leaves them empty. Only the first call has an
// effect; later calls return false.
func (s *ViewState) Resolve(posts []post.Post, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != Loading {
		return false
	}
	if err != nil {
		s.status = Errored
		s.err = err
		return true
	}
	s.posts = append([]post.Post{}, posts...)
	s.status = Populated
	return true
}

// Posts returns a copy of the held posts in response order.
func (s *ViewState) Posts() []post.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]post.Post{}, s.posts...)
}

// Len is the number of held posts.
func (s *ViewState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// At returns the post at index i, or false if i is out of range.
func (s *ViewState) At(i int) (post.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.posts) {
		return post.Post{}, false
	}
	return s.posts[i], true
}

// Status returns the current lifecycle status.
func (s *ViewState) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Err returns the fetch error for an Errored state. It is meant for operator
// diagnostics, not for rendering.
func (s *ViewState) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
