package validation

import "testing"

func TestNormalizeFolderKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Annual Meeting 2025", "Annual_Meeting_2025"},
		{"  padded  ", "padded"},
		{"double  space", "double_space"},
		{"tab\tand\nnewline", "tab_and_newline"},
		{"already_keyed", "already_keyed"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeFolderKey(tt.in); got != tt.want {
			t.Errorf("NormalizeFolderKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFolderDisplayName(t *testing.T) {
	if got := FolderDisplayName("Annual_Meeting_2025"); got != "Annual Meeting 2025" {
		t.Errorf("got %q", got)
	}
}

func TestParseYouTubeID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short URL", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed URL", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts URL", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"mobile host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"not youtube", "https://vimeo.com/12345", ""},
		{"garbage", "not a url", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseYouTubeID(tt.url); got != tt.want {
				t.Errorf("ParseYouTubeID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestYouTubeHelperURLs(t *testing.T) {
	const watch = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	if got := YouTubeThumbURL(watch); got != "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg" {
		t.Errorf("thumb: %q", got)
	}
	if got := YouTubeEmbedURL(watch); got != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Errorf("embed: %q", got)
	}
	if YouTubeThumbURL("https://example.com") != "" || YouTubeEmbedURL("junk") != "" {
		t.Error("helpers should return empty for non-YouTube input")
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last+tag@sub.example.org", " Spaces@Example.COM "}
	invalid := []string{"", "plain", "@example.com", "user@", "user@host"}

	for _, e := range valid {
		if !ValidateEmail(e) {
			t.Errorf("ValidateEmail(%q) = false, want true", e)
		}
	}
	for _, e := range invalid {
		if ValidateEmail(e) {
			t.Errorf("ValidateEmail(%q) = true, want false", e)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Passw0rd!", true},
		{"short1!A", true},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoNumbers!", false},
		{"NoSpecial1", false},
		{"Sh0rt!", false},
	}
	for _, tt := range tests {
		if got := ValidatePassword(tt.password); got != tt.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00world  "); got != "helloworld" {
		t.Errorf("got %q", got)
	}
}
