package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/disintegration/imaging"
	"google.golang.org/api/option"
)

const thumbnailMaxEdge = 256

// getGoogleClient initializes a Google Cloud Storage client
func getGoogleClient(ctx context.Context) (*storage.Client, error) {
	// Prefer ADC (Cloud Run service account / GOOGLE_APPLICATION_CREDENTIALS).
	// If you need to provide explicit JSON (e.g. locally), set GCS_CREDENTIALS_JSON.
	if credJSON := os.Getenv("GCS_CREDENTIALS_JSON"); strings.TrimSpace(credJSON) != "" {
		client, err := storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// GCSMediaStorage implements the workflow's media uploader against Google
// Cloud Storage. Damage photos additionally get a thumbnail object next to
// the original under thumbs/.
type GCSMediaStorage struct{}

func NewGCSMediaStorage() *GCSMediaStorage { return &GCSMediaStorage{} }

func (g *GCSMediaStorage) UploadFile(ctx context.Context, objectName string, content []byte) (string, error) {
	bucketName := os.Getenv("GCS_BUCKET")
	if bucketName == "" {
		return "", errors.New("GCS_BUCKET is required")
	}

	client, err := getGoogleClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	mimeType := http.DetectContentType(content)

	if err := writeObject(ctx, client, bucketName, objectName, mimeType, content); err != nil {
		return "", err
	}

	if strings.HasPrefix(mimeType, "image/") {
		if err := writeThumbnail(ctx, client, bucketName, objectName, content); err != nil {
			// The original upload already succeeded; a missing thumbnail is
			// not worth failing the caller over.
			fmt.Printf("thumbnail generation failed for %s: %v\n", objectName, err)
		}
	}

	return BuildObjectAccessURL(objectName), nil
}

func writeObject(ctx context.Context, client *storage.Client, bucketName, objectName, mimeType string, content []byte) error {
	wc := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = mimeType
	wc.Metadata = map[string]string{
		"x-goog-acl": "public-read",
	}
	if _, err := wc.Write(content); err != nil {
		return err
	}
	return wc.Close()
}

func writeThumbnail(ctx context.Context, client *storage.Client, bucketName, objectName string, content []byte) error {
	img, err := imaging.Decode(bytes.NewReader(content))
	if err != nil {
		return err
	}
	thumb := imaging.Fit(img, thumbnailMaxEdge, thumbnailMaxEdge, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return err
	}

	dir, file := path.Split(objectName)
	thumbName := path.Join(dir, "thumbs", file)
	return writeObject(ctx, client, bucketName, thumbName, "image/jpeg", buf.Bytes())
}
