package manifest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/workshop-sync/internal/domain"
	"github.com/bnema/workshop-sync/internal/ports"
	"github.com/spf13/afero"
)

const DefaultName = "mods.txt"

type Loader struct {
	fs afero.Fs
}

var _ ports.ManifestLoader = (*Loader)(nil)

func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs}
}

func (l *Loader) Load(ctx context.Context, path string) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := l.fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: manifest %s not found", domain.ErrConfig, path)
		}
		return nil, fmt.Errorf("stat manifest: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: manifest %s is not a regular file", domain.ErrConfig, path)
	}

	file, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer file.Close()

	items, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", path, err)
	}
	return items, nil
}

// Parse reads one item per line. Every line must hold an item: a blank or
// malformed line fails the whole manifest. Repeated ids are kept in order; the
// later entries find the mod already installed.
func Parse(r io.Reader) ([]domain.Item, error) {
	var items []domain.Item

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		item, err := domain.ParseItemLine(line)
		if err != nil {
			return nil, fmt.Errorf("%d: %w", lineNo, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return items, nil
}
