// Package tag writes ID3v2 metadata onto finished MP3 files.
package tag

import (
	"fmt"

	id3v2 "github.com/bogem/id3v2/v2"
)

// Metadata holds the tags applied to an output track.
type Metadata struct {
	Title    string
	Artist   string
	Album    string
	Genre    string
	Language string
}

// Write applies metadata to the MP3 at path. Empty fields are skipped.
func Write(path string, m Metadata) error {
	f, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open mp3 for tagging: %w", err)
	}
	defer func() { _ = f.Close() }()

	if m.Title != "" {
		f.SetTitle(m.Title)
	}
	if m.Artist != "" {
		f.SetArtist(m.Artist)
	}
	if m.Album != "" {
		f.SetAlbum(m.Album)
	}
	if m.Genre != "" {
		f.SetGenre(m.Genre)
	}
	if m.Language != "" {
		f.AddTextFrame(f.CommonID("Language"), id3v2.EncodingUTF8, m.Language)
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("save mp3 tags: %w", err)
	}
	return nil
}
