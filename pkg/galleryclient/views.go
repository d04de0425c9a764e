package galleryclient

import "sort"

// FolderKind says how a folder should be presented: photo folders get a
// photo grid, video folders a thumbnail list. A folder with any
// YouTube entry counts as a video folder.
type FolderKind string

const (
	FolderPhotos FolderKind = "photos"
	FolderVideos FolderKind = "videos"
)

// Clean drops entries with nothing to render, then drops folders left
// empty. Defensive: old documents accumulated malformed entries from
// earlier tooling.
func Clean(doc Document) Document {
	out := Document{Gallery: map[string][]Media{}, Slider: cleanList(doc.Slider)}
	for key, items := range doc.Gallery {
		if kept := cleanList(items); len(kept) > 0 {
			out.Gallery[key] = kept
		}
	}
	return out
}

func cleanList(items []Media) []Media {
	kept := make([]Media, 0, len(items))
	for _, m := range items {
		if m.Valid() {
			kept = append(kept, m)
		}
	}
	return kept
}

// Kind classifies a folder's contents.
func Kind(items []Media) FolderKind {
	for _, m := range items {
		if m.Youtube {
			return FolderVideos
		}
	}
	return FolderPhotos
}

// PreviewURL picks a folder's cover image: the first renderable entry.
func PreviewURL(items []Media) string {
	for _, m := range items {
		if u := m.DisplayURL(); u != "" {
			return u
		}
	}
	return ""
}

// FolderKeys returns the gallery's folder keys in a stable sorted
// order for rendering.
func FolderKeys(doc Document) []string {
	keys := make([]string, 0, len(doc.Gallery))
	for k := range doc.Gallery {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
