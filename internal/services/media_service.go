package services

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go/logging"
	"github.com/bharatheeyaseva/backend/internal/config"
	"github.com/google/uuid"
)

var (
	ErrImageHostNotConfigured = errors.New("image host signing credentials not configured")
	ErrNotAnImage             = errors.New("file is not an image")
	ErrStorageNotConfigured   = errors.New("media object storage not configured")
)

// UploadCredential is the signed credential the browser exchanges for a
// direct upload to the image host.
type UploadCredential struct {
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	APIKey    string `json:"apiKey"`
	CloudName string `json:"cloudName"`
}

// MediaService issues signed upload credentials for direct
// browser-to-host uploads and, as a fallback, proxies uploads through
// the server into S3-compatible object storage.
type MediaService struct {
	cfg      *config.Config
	s3Client *s3.Client
	now      func() time.Time
}

func NewMediaService(cfg *config.Config) (*MediaService, error) {
	svc := &MediaService{cfg: cfg, now: time.Now}
	if cfg.MediaS3AccessKeyID != "" {
		client, err := buildS3Client(cfg.MediaS3Endpoint, cfg.MediaS3Region, cfg.MediaS3AccessKeyID, cfg.MediaS3SecretAccessKey, cfg.MediaS3UsePathStyle)
		if err != nil {
			return nil, err
		}
		svc.s3Client = client
	}
	return svc, nil
}

func buildS3Client(endpoint, region, key, secret string, pathStyle bool) (*s3.Client, error) {
	resolver := awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
		func(service, rgn string, options ...interface{}) (aws.Endpoint, error) {
			if endpoint != "" {
				return aws.Endpoint{URL: endpoint, SigningRegion: region}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		}))
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")),
		resolver,
		awsconfig.WithLogger(logging.NewStandardLogger(nil)),
	)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = pathStyle
		if endpoint != "" {
			o.BaseEndpoint = &endpoint
		}
	})
	return client, nil
}

// SignUpload produces a credential scoped to a destination folder. The
// signature covers the folder and timestamp, signed with the host API
// secret (Cloudinary signing scheme: SHA-1 over the parameter string
// with the secret appended).
func (s *MediaService) SignUpload(folder string) (*UploadCredential, error) {
	if s.cfg.ImageHostAPISecret == "" || s.cfg.ImageHostAPIKey == "" || s.cfg.ImageHostCloudName == "" {
		return nil, ErrImageHostNotConfigured
	}
	ts := s.now().Unix()
	payload := fmt.Sprintf("folder=%s&timestamp=%d%s", folder, ts, s.cfg.ImageHostAPISecret)
	sum := sha1.Sum([]byte(payload))
	return &UploadCredential{
		Timestamp: ts,
		Signature: hex.EncodeToString(sum[:]),
		APIKey:    s.cfg.ImageHostAPIKey,
		CloudName: s.cfg.ImageHostCloudName,
	}, nil
}

// ValidateImage rejects non-image payloads by sniffing content.
func ValidateImage(filename string, data []byte) error {
	ctype := http.DetectContentType(data)
	if strings.HasPrefix(ctype, "image/") {
		return nil
	}
	// SVG and some newer formats do not content-sniff as image/*.
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".svg", ".webp", ".avif":
		return nil
	}
	return ErrNotAnImage
}

// UploadImage stores an image in the media bucket under a folder-scoped
// key and returns the public URL and opaque identifier, shaped like the
// direct-upload result so the metadata layer cannot tell them apart.
func (s *MediaService) UploadImage(ctx context.Context, folder, filename string, data []byte) (string, string, error) {
	if s.s3Client == nil {
		return "", "", ErrStorageNotConfigured
	}
	if err := ValidateImage(filename, data); err != nil {
		return "", "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)
	ctype := http.DetectContentType(data)

	uploader := manager.NewUploader(s.s3Client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      &s.cfg.MediaImagesBucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &ctype,
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", "", fmt.Errorf("upload to media bucket failed: %w", err)
	}
	return s.objectURL(key), key, nil
}

// DeleteObject removes a proxy-uploaded object. Identifiers issued by
// the external image host are not ours to delete and are skipped.
func (s *MediaService) DeleteObject(ctx context.Context, publicID string) error {
	if s.s3Client == nil || !s.OwnsObject(publicID) {
		return nil
	}
	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.cfg.MediaImagesBucket,
		Key:    &publicID,
	})
	return err
}

// OwnsObject reports whether a public_id refers to an object in our
// media bucket rather than the external image host.
func (s *MediaService) OwnsObject(publicID string) bool {
	return strings.HasPrefix(publicID, "events/") || strings.HasPrefix(publicID, "slider/")
}

func (s *MediaService) objectURL(key string) string {
	base := s.cfg.MediaPublicURL
	if base == "" {
		base = fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.MediaS3Endpoint, "/"), s.cfg.MediaImagesBucket)
	}
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(base, "/"), strings.Join(segments, "/"))
}
