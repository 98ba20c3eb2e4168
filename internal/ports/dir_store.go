package ports

import "context"

type DirStore interface {
	IsDir(ctx context.Context, path string) (bool, error)
	// HasEntries reports whether path is a directory holding at least one entry.
	HasEntries(ctx context.Context, path string) (bool, error)
	RemoveAll(ctx context.Context, path string) error
	EnsureDir(ctx context.Context, path string) error
	// CopyContents copies every entry below src into dst, preserving structure.
	CopyContents(ctx context.Context, src, dst string) error
}
