package ytlink

import "testing"

func TestExtractID(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID string
		wantOK bool
	}{
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"bare id with spaces", "  dQw4w9WgXcQ ", "dQw4w9WgXcQ", true},
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ", true},
		{"music host", "https://music.youtube.com/watch?v=abcdefghijk", "abcdefghijk", true},
		{"short link", "https://youtu.be/dQw4w9WgXcQ?si=x", "dQw4w9WgXcQ", true},
		{"short link without id", "https://youtu.be/", "", false},
		{"shorts", "https://youtube.com/shorts/AbCdEfGhIjK", "AbCdEfGhIjK", true},
		{"embed", "https://www.youtube.com/embed/AbCdEfGhIjK", "AbCdEfGhIjK", true},
		{"live", "https://www.youtube.com/live/AbCdEfGhIjK?feature=share", "AbCdEfGhIjK", true},
		{"attribution", "https://www.youtube.com/attribution_link?u=%2Fwatch%3Fv%3DdQw4w9WgXcQ%26feature%3Dshare", "dQw4w9WgXcQ", true},
		{"search results", "https://www.youtube.com/results?search_query=dewa+19", "", false},
		{"channel", "https://www.youtube.com/channel/UC123", "", false},
		{"handle", "https://www.youtube.com/@someone", "", false},
		{"playlist", "https://www.youtube.com/playlist?list=PL1", "", false},
		{"feed", "https://www.youtube.com/feed/trending", "", false},
		{"foreign host", "https://vimeo.com/watch?v=dQw4w9WgXcQ", "", false},
		{"lookalike host", "https://notyoutube.com/watch?v=dQw4w9WgXcQ", "", false},
		{"plain text", "dewa 19 kangen", "", false},
		{"home page", "https://www.youtube.com/", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractID(tt.input)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("ExtractID(%q) = (%q, %v), want (%q, %v)", tt.input, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestNormalisedLinks(t *testing.T) {
	watch, ok := WatchURL("https://youtu.be/dQw4w9WgXcQ")
	if !ok || watch != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("WatchURL() = %q, %v", watch, ok)
	}

	short, ok := ShortURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if !ok || short != "https://youtu.be/dQw4w9WgXcQ" {
		t.Errorf("ShortURL() = %q, %v", short, ok)
	}

	if _, ok := WatchURL("https://example.com"); ok {
		t.Error("WatchURL() accepted a foreign link")
	}
}

func TestSearchURL(t *testing.T) {
	got := SearchURL("  Dewa 19 Kangen ")
	want := "https://www.youtube.com/results?search_query=Dewa+19+Kangen"
	if got != want {
		t.Errorf("SearchURL() = %q, want %q", got, want)
	}
	if !IsResultsURL(got) {
		t.Error("IsResultsURL() should accept a search link")
	}
	if IsResultsURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ") {
		t.Error("IsResultsURL() accepted a watch link")
	}
}
