package tag_test

import (
	"os"
	"path/filepath"
	"testing"

	id3v2 "github.com/bogem/id3v2/v2"

	"github.com/alnah/go-audiobook/internal/tag"
)

// fakeMP3 writes a minimal untagged MP3-ish file.
func fakeMP3(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "track.mp3")
	// Two MPEG frame sync bytes followed by padding.
	data := append([]byte{0xFF, 0xFB}, make([]byte, 64)...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWrite_SetsAllFrames(t *testing.T) {
	t.Parallel()

	path := fakeMP3(t)
	m := tag.Metadata{
		Title:    "My Book",
		Artist:   "Jane Doe",
		Album:    "My Book",
		Genre:    "Audiobook",
		Language: "pt-BR",
	}

	if err := tag.Write(path, m); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = f.Close() }()

	if got := f.Title(); got != "My Book" {
		t.Errorf("Title = %q", got)
	}
	if got := f.Artist(); got != "Jane Doe" {
		t.Errorf("Artist = %q", got)
	}
	if got := f.Album(); got != "My Book" {
		t.Errorf("Album = %q", got)
	}
	if got := f.Genre(); got != "Audiobook" {
		t.Errorf("Genre = %q", got)
	}
}

func TestWrite_SkipsEmptyFields(t *testing.T) {
	t.Parallel()

	path := fakeMP3(t)
	if err := tag.Write(path, tag.Metadata{Title: "Only Title"}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = f.Close() }()

	if got := f.Title(); got != "Only Title" {
		t.Errorf("Title = %q", got)
	}
	if got := f.Artist(); got != "" {
		t.Errorf("Artist = %q, want empty", got)
	}
}

func TestWrite_MissingFile(t *testing.T) {
	t.Parallel()

	err := tag.Write(filepath.Join(t.TempDir(), "nope.mp3"), tag.Metadata{Title: "x"})
	if err == nil {
		t.Error("Write on missing file returned nil error")
	}
}
