package services

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bharatheeyaseva/backend/internal/config"
)

func testMediaService(t *testing.T, ts int64) *MediaService {
	t.Helper()
	cfg := &config.Config{
		ImageHostCloudName: "testcloud",
		ImageHostAPIKey:    "key123",
		ImageHostAPISecret: "shhh",
	}
	return &MediaService{cfg: cfg, now: func() time.Time { return time.Unix(ts, 0) }}
}

func TestSignUpload(t *testing.T) {
	const ts = int64(1700000000)
	svc := testMediaService(t, ts)

	cred, err := svc.SignUpload("events/Annual_Meeting_2025")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if cred.Timestamp != ts {
		t.Errorf("timestamp %d, want %d", cred.Timestamp, ts)
	}
	if cred.APIKey != "key123" || cred.CloudName != "testcloud" {
		t.Errorf("credential leaked wrong identifiers: %+v", cred)
	}

	sum := sha1.Sum([]byte(fmt.Sprintf("folder=events/Annual_Meeting_2025&timestamp=%dshhh", ts)))
	if want := hex.EncodeToString(sum[:]); cred.Signature != want {
		t.Errorf("signature %q, want %q", cred.Signature, want)
	}
}

func TestSignUploadFolderScoped(t *testing.T) {
	svc := testMediaService(t, 1700000000)

	a, err := svc.SignUpload("events/A")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	b, err := svc.SignUpload("events/B")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if a.Signature == b.Signature {
		t.Error("signatures for different folders are interchangeable")
	}
}

func TestSignUploadUnconfigured(t *testing.T) {
	svc := &MediaService{cfg: &config.Config{}, now: time.Now}
	if _, err := svc.SignUpload("events/A"); !errors.Is(err, ErrImageHostNotConfigured) {
		t.Errorf("got %v, want ErrImageHostNotConfigured", err)
	}
}

func TestValidateImage(t *testing.T) {
	// Minimal real magic numbers.
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}

	if err := ValidateImage("a.png", png); err != nil {
		t.Errorf("png rejected: %v", err)
	}
	if err := ValidateImage("a.jpg", jpeg); err != nil {
		t.Errorf("jpeg rejected: %v", err)
	}
	if err := ValidateImage("a.svg", []byte("<svg xmlns=\"http://www.w3.org/2000/svg\"/>")); err != nil {
		t.Errorf("svg rejected: %v", err)
	}
	if err := ValidateImage("notes.txt", []byte("hello world")); !errors.Is(err, ErrNotAnImage) {
		t.Errorf("text accepted: %v", err)
	}
	if err := ValidateImage("evil.exe", []byte{0x4D, 0x5A, 0x90, 0x00}); !errors.Is(err, ErrNotAnImage) {
		t.Errorf("binary accepted: %v", err)
	}
}

func TestOwnsObject(t *testing.T) {
	svc := &MediaService{cfg: &config.Config{}}

	if !svc.OwnsObject("events/Annual_Meeting_2025/abc.jpg") {
		t.Error("events/ object not recognized as ours")
	}
	if !svc.OwnsObject("slider/abc.jpg") {
		t.Error("slider/ object not recognized as ours")
	}
	if svc.OwnsObject("samples/external-host-id") {
		t.Error("external host identifier claimed as ours")
	}
	if svc.OwnsObject("") {
		t.Error("empty identifier claimed as ours")
	}
}

func TestObjectURL(t *testing.T) {
	svc := &MediaService{cfg: &config.Config{
		MediaS3Endpoint:   "https://storage.example.com",
		MediaImagesBucket: "photos",
	}}
	if got := svc.objectURL("events/Big_Day/a.jpg"); got != "https://storage.example.com/photos/events/Big_Day/a.jpg" {
		t.Errorf("got %q", got)
	}

	svc.cfg.MediaPublicURL = "https://cdn.example.com/"
	if got := svc.objectURL("slider/a.jpg"); got != "https://cdn.example.com/slider/a.jpg" {
		t.Errorf("got %q", got)
	}
}
