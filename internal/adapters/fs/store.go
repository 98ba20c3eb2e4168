package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bnema/workshop-sync/internal/ports"
	"github.com/spf13/afero"
)

const (
	dirMode     = 0o755
	maxLinkHops = 40
)

var ErrNotDirectory = errors.New("not a directory")

type Store struct {
	fs afero.Fs
}

var _ ports.DirStore = (*Store)(nil)

func NewStore(fs afero.Fs) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs}
}

func (s *Store) IsDir(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	ok, err := afero.DirExists(s.fs, path)
	if err != nil {
		return false, fmt.Errorf("stat %q: %w", path, err)
	}
	return ok, nil
}

func (s *Store) HasEntries(ctx context.Context, path string) (bool, error) {
	ok, err := s.IsDir(ctx, path)
	if err != nil || !ok {
		return false, err
	}

	empty, err := afero.IsEmpty(s.fs, path)
	if err != nil {
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return !empty, nil
}

func (s *Store) RemoveAll(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.fs.RemoveAll(path); err != nil {
		return fmt.Errorf("remove %q: %w", path, err)
	}
	return nil
}

func (s *Store) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.fs.MkdirAll(path, dirMode); err != nil {
		return fmt.Errorf("create directory %q: %w", path, err)
	}
	return nil
}

// CopyContents copies the entries of src into dst. A symlinked src is followed;
// links below it are recreated as links.
func (s *Store) CopyContents(ctx context.Context, src, dst string) error {
	ok, err := s.IsDir(ctx, src)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("copy from %q: %w", src, ErrNotDirectory)
	}
	if err := s.EnsureDir(ctx, dst); err != nil {
		return err
	}

	src, err = s.resolveLinks(src)
	if err != nil {
		return err
	}

	return afero.Walk(s.fs, src, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walk %q: %w", path, walkErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("resolve %q relative to %q: %w", path, src, err)
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dst, rel)

		switch mode := info.Mode(); {
		case mode.IsDir():
			if err := s.fs.MkdirAll(target, mode.Perm()|0o700); err != nil {
				return fmt.Errorf("create directory %q: %w", target, err)
			}
		case mode&os.ModeSymlink != 0:
			return s.copySymlink(path, target)
		case mode.IsRegular():
			return s.copyFile(path, target, mode.Perm())
		}
		return nil
	})
}

func (s *Store) copyFile(src, dst string, perm os.FileMode) error {
	in, err := s.fs.Open(src)
	if err != nil {
		return fmt.Errorf("open %q: %w", src, err)
	}
	defer in.Close()

	out, err := s.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create %q: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %q to %q: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %q: %w", dst, err)
	}
	return nil
}

func (s *Store) copySymlink(src, dst string) error {
	reader, ok := s.fs.(afero.LinkReader)
	if !ok {
		return nil
	}
	linker, ok := s.fs.(afero.Linker)
	if !ok {
		return nil
	}

	target, err := reader.ReadlinkIfPossible(src)
	if err != nil {
		return fmt.Errorf("read link %q: %w", src, err)
	}
	if err := s.fs.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("replace %q: %w", dst, err)
	}
	if err := linker.SymlinkIfPossible(target, dst); err != nil {
		return fmt.Errorf("link %q: %w", dst, err)
	}
	return nil
}

// resolveLinks follows symlinks at path until it names a non-link entry.
func (s *Store) resolveLinks(path string) (string, error) {
	lstater, ok := s.fs.(afero.Lstater)
	if !ok {
		return path, nil
	}
	reader, ok := s.fs.(afero.LinkReader)
	if !ok {
		return path, nil
	}

	for range maxLinkHops {
		info, _, err := lstater.LstatIfPossible(path)
		if err != nil {
			return "", fmt.Errorf("stat %q: %w", path, err)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}

		target, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", fmt.Errorf("read link %q: %w", path, err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = target
	}

	return "", fmt.Errorf("resolve %q: too many levels of symbolic links", path)
}
