// Package post defines the post record and the client that fetches posts
// from a remote REST endpoint.
package post

import (
	"context"
	"fmt"
)

// DefaultURL is the endpoint queried when no other URL is configured.
const DefaultURL = "https://jsonplaceholder.typicode.com/posts"

// Post is a single record as served by the posts endpoint.
type Post struct {
	UserID int    `json:"userId,omitempty"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Fetcher retrieves the full ordered list of posts.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Post, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]Post, error)

// Fetch calls f(ctx).
func (f FetcherFunc) Fetch(ctx context.Context) ([]Post, error) {
	return f(ctx)
}

// FetchFailure is the only error kind returned by Client.Fetch. Network
// errors, non-2xx statuses and undecodable bodies all surface as a
// FetchFailure; the wrapped cause is kept for diagnostics only.
type FetchFailure struct {
	URL string
	Err error
}

func (f *FetchFailure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("fetch %s failed", f.URL)
	}
	return fmt.Sprintf("fetch %s: %v", f.URL, f.Err)
}

// Unwrap returns the underlying cause.
func (f *FetchFailure) Unwrap() error {
	return f.Err
}
