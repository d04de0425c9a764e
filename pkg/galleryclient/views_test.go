package galleryclient

import (
	"reflect"
	"testing"
)

func TestClean(t *testing.T) {
	doc := Document{
		Gallery: map[string][]Media{
			"Good":      {{URL: "a"}, {}, {Thumb: "t"}},
			"All_Empty": {{}, {}},
		},
		Slider: []Media{{URL: "h"}, {}},
	}

	got := Clean(doc)
	if len(got.Gallery["Good"]) != 2 {
		t.Errorf("Good: %+v", got.Gallery["Good"])
	}
	if _, exists := got.Gallery["All_Empty"]; exists {
		t.Error("folder of empty entries survived")
	}
	if len(got.Slider) != 1 {
		t.Errorf("slider: %+v", got.Slider)
	}
}

func TestKind(t *testing.T) {
	if Kind([]Media{{URL: "a"}, {URL: "b"}}) != FolderPhotos {
		t.Error("image-only folder not classified as photos")
	}
	if Kind([]Media{{URL: "a"}, {URL: "v", Youtube: true}}) != FolderVideos {
		t.Error("folder with a YouTube entry not classified as videos")
	}
	if Kind(nil) != FolderPhotos {
		t.Error("empty folder should default to photos")
	}
}

func TestPreviewURL(t *testing.T) {
	items := []Media{{}, {Optimized: "opt"}, {URL: "u"}}
	if got := PreviewURL(items); got != "opt" {
		t.Errorf("got %q", got)
	}
	if PreviewURL(nil) != "" {
		t.Error("empty folder should have no preview")
	}
}

func TestFolderKeysSorted(t *testing.T) {
	doc := Document{Gallery: map[string][]Media{
		"Zebra_Walk": {{URL: "z"}},
		"Annual_Day": {{URL: "a"}},
		"Mid_Event":  {{URL: "m"}},
	}}
	want := []string{"Annual_Day", "Mid_Event", "Zebra_Walk"}
	if got := FolderKeys(doc); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("Annual_Meeting_2025"); got != "Annual Meeting 2025" {
		t.Errorf("got %q", got)
	}
}
