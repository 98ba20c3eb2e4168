package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const idMarker = "?id="

type ItemID int64

func (id ItemID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

type Item struct {
	ID   ItemID
	Name string
	// SourceRef is the workshop URL the item was listed with.
	SourceRef string
}

// Line formats the item the way it appears in a manifest.
func (i Item) Line() string {
	return i.SourceRef + " " + i.Name
}

func ParseItemLine(line string) (Item, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Item{}, fmt.Errorf("%w: expected \"<url> <name>\", got %q", ErrManifestFormat, line)
	}

	ref := fields[0]
	id, err := ParseItemID(ref)
	if err != nil {
		return Item{}, err
	}

	return Item{
		ID:        id,
		Name:      strings.Join(fields[1:], " "),
		SourceRef: ref,
	}, nil
}

// ParseItemID extracts the numeric identifier following "?id=" in a workshop URL.
// The identifier ends at the next '&' or '#', so "?id=1&searchtext=x" yields 1
// where a strict reader of the whole remainder would reject the line.
func ParseItemID(ref string) (ItemID, error) {
	_, raw, ok := strings.Cut(ref, idMarker)
	if !ok {
		return 0, fmt.Errorf("%w: %q has no %q marker", ErrManifestFormat, ref, idMarker)
	}
	if end := strings.IndexAny(raw, "&#"); end >= 0 {
		raw = raw[:end]
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id %q in %q", ErrManifestFormat, raw, ref)
	}

	return ItemID(id), nil
}
