package validation

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	youtubeIDRegex = regexp.MustCompile(`(?:v=|youtu\.be/|/embed/|/shorts/)([A-Za-z0-9_-]{6,})`)
	multiSpace     = regexp.MustCompile(`\s+`)
)

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	return emailRegex.MatchString(email)
}

// ValidatePassword validates password strength
func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasNumber  bool
		hasSpecial bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		case strings.ContainsRune("@$!%*?&", char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasNumber && hasSpecial
}

// ValidateUsername validates username format
func ValidateUsername(username string) bool {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 30 {
		return false
	}
	// Allow alphanumeric, underscore, and hyphen
	matched, _ := regexp.MatchString("^[a-zA-Z0-9_-]+$", username)
	return matched
}

// NormalizeFolderKey turns a user-chosen display name into a folder key:
// trimmed, runs of whitespace replaced by a single underscore.
// "Annual Meeting 2025" -> "Annual_Meeting_2025".
func NormalizeFolderKey(name string) string {
	name = strings.TrimSpace(name)
	return multiSpace.ReplaceAllString(name, "_")
}

// FolderDisplayName is the inverse of NormalizeFolderKey for UI purposes.
func FolderDisplayName(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

// ParseYouTubeID extracts the video ID from a watch, share, embed or
// shorts URL. Returns "" when no ID can be found.
func ParseYouTubeID(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err == nil && u.Host != "" {
		host := strings.ToLower(u.Host)
		if strings.Contains(host, "youtube.com") {
			if v := u.Query().Get("v"); v != "" {
				return v
			}
		} else if strings.Contains(host, "youtu.be") {
			return strings.TrimPrefix(u.Path, "/")
		}
	}
	if m := youtubeIDRegex.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return ""
}

// ValidateYouTubeURL reports whether the URL resolves to a YouTube video
func ValidateYouTubeURL(rawURL string) bool {
	return ParseYouTubeID(rawURL) != ""
}

// YouTubeThumbURL returns the hqdefault thumbnail for a video URL, or ""
func YouTubeThumbURL(rawURL string) string {
	id := ParseYouTubeID(rawURL)
	if id == "" {
		return ""
	}
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}

// YouTubeEmbedURL returns the embeddable player URL for a video URL, or ""
func YouTubeEmbedURL(rawURL string) string {
	id := ParseYouTubeID(rawURL)
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}

// SanitizeString removes potentially harmful characters
func SanitizeString(input string) string {
	// Basic sanitization
	input = strings.TrimSpace(input)
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}
