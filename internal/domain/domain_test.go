package domain

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseItemLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Item
	}{
		{
			name: "single word name",
			line: "https://steamcommunity.com/sharedfiles/filedetails/?id=2009463077 Harmony",
			want: Item{ID: 2009463077, Name: "Harmony", SourceRef: "https://steamcommunity.com/sharedfiles/filedetails/?id=2009463077"},
		},
		{
			name: "name tokens are rejoined with single spaces",
			line: "http://x?id=123   Cool    Mod",
			want: Item{ID: 123, Name: "Cool Mod", SourceRef: "http://x?id=123"},
		},
		{
			name: "trailing query parameters are ignored",
			line: "https://steamcommunity.com/sharedfiles/filedetails/?id=818773962&searchtext=hugs HugsLib",
			want: Item{ID: 818773962, Name: "HugsLib", SourceRef: "https://steamcommunity.com/sharedfiles/filedetails/?id=818773962&searchtext=hugs"},
		},
		{
			name: "carriage return from windows line endings",
			line: "http://x?id=7 Seven\r",
			want: Item{ID: 7, Name: "Seven", SourceRef: "http://x?id=7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseItemLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseItemLineRejectsMalformedLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "empty", line: ""},
		{name: "url without name", line: "http://x?id=123"},
		{name: "missing id marker", line: "http://x/item/123 Cool Mod"},
		{name: "id is not numeric", line: "http://x?id=abc Cool Mod"},
		{name: "id overflows int64", line: "http://x?id=99999999999999999999 Big"},
		{name: "empty id", line: "http://x?id= Nothing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseItemLine(tt.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrManifestFormat)
		})
	}
}

func TestItemLineRoundTripsIdentifier(t *testing.T) {
	word := rapid.StringMatching(`[A-Za-z0-9'()\[\]-]{1,12}`)

	rapid.Check(t, func(t *rapid.T) {
		id := ItemID(rapid.Int64Range(0, 1<<62).Draw(t, "id"))
		words := rapid.SliceOfN(word, 1, 5).Draw(t, "words")
		host := rapid.SampledFrom([]string{
			"https://steamcommunity.com/sharedfiles/filedetails/",
			"https://steamcommunity.com/workshop/filedetails/",
			"http://x",
		}).Draw(t, "host")

		item := Item{ID: id, Name: strings.Join(words, " "), SourceRef: host + "?id=" + id.String()}

		parsed, err := ParseItemLine(item.Line())
		if err != nil {
			t.Fatalf("parse %q: %v", item.Line(), err)
		}
		if parsed != item {
			t.Fatalf("round trip mismatch: got %+v, want %+v", parsed, item)
		}
	})
}

func TestRootsForDerivesDirectoriesFromIdentifier(t *testing.T) {
	roots := Roots{Destination: filepath.Join("mods"), Staging: filepath.Join("steam", "294100")}

	placement := roots.For(123)

	assert.Equal(t, filepath.Join("mods", "123"), placement.Destination)
	assert.Equal(t, filepath.Join("steam", "294100", "123"), placement.Staging)
}

func TestDownloadErrorUnwrapsToSentinel(t *testing.T) {
	err := error(&DownloadError{ItemID: 42, Name: "Answer"})

	assert.True(t, errors.Is(err, ErrDownloadFailed))
	assert.EqualError(t, err, "error downloading mod Answer (42)")

	var downloadErr *DownloadError
	require.True(t, errors.As(err, &downloadErr))
	assert.Equal(t, ItemID(42), downloadErr.ItemID)
}

func TestActionLabel(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{action: ActionSkip, want: "already installed"},
		{action: ActionReuse, want: "copied from staging"},
		{action: ActionDownload, want: "downloaded"},
		{action: Action("other"), want: "other"},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.action.Label())
		})
	}
}
