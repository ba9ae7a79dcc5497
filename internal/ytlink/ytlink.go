// Package ytlink normalises YouTube links and video ids for the track helper.
package ytlink

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	bareID      = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	videoHost   = regexp.MustCompile(`(^|\.)((music\.)?youtube\.com|youtu\.be)$`)
	resultsLink = regexp.MustCompile(`(?i)https?://(www\.)?youtube\.com/results\?`)
)

// non-video pages on youtube.com
var rejectedPrefixes = []string{"/results", "/channel", "/@", "/playlist", "/feed"}

// ExtractID returns the video id referenced by input, which may be a bare id
// or a watch, youtu.be, shorts, embed, live or attribution link. ok is false
// for anything that does not point at a single video.
func ExtractID(input string) (id string, ok bool) {
	s := strings.TrimSpace(input)
	if bareID.MatchString(s) {
		return s, true
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	if !videoHost.MatchString(host) {
		return "", false
	}
	for _, prefix := range rejectedPrefixes {
		if strings.HasPrefix(u.Path, prefix) {
			return "", false
		}
	}

	if u.Path == "/attribution_link" {
		if inner := u.Query().Get("u"); inner != "" {
			if iu, err := url.Parse("https://youtube.com" + inner); err == nil {
				if v := iu.Query().Get("v"); v != "" {
					return v, true
				}
			}
		}
	}

	if v := u.Query().Get("v"); v != "" {
		return v, true
	}

	parts := segments(u.Path)
	if strings.HasSuffix(host, "youtu.be") {
		if len(parts) > 0 {
			return parts[0], true
		}
		return "", false
	}

	if len(parts) >= 2 {
		switch parts[0] {
		case "shorts", "embed", "live":
			return parts[1], true
		}
	}
	return "", false
}

func segments(path string) []string {
	var out []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// WatchURL returns the canonical watch link for input
func WatchURL(input string) (string, bool) {
	id, ok := ExtractID(input)
	if !ok {
		return "", false
	}
	return "https://www.youtube.com/watch?v=" + id, true
}

// ShortURL returns the youtu.be link for input
func ShortURL(input string) (string, bool) {
	id, ok := ExtractID(input)
	if !ok {
		return "", false
	}
	return "https://youtu.be/" + id, true
}

// SearchURL builds a YouTube search link for a free-text query
func SearchURL(query string) string {
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape(strings.TrimSpace(query))
}

// IsResultsURL reports whether input is a YouTube search results link
func IsResultsURL(input string) bool {
	return resultsLink.MatchString(input)
}
