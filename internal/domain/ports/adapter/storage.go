package adapter

import "context"

// ImageStore fetches result artifacts to local disk so they can be re-uploaded
// to the chat. Remove is best-effort cleanup of the local copy.
type ImageStore interface {
	Download(ctx context.Context, url string) (path string, err error)
	Remove(path string) error
}
