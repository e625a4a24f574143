package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var AllowImage = []string{"image/png", "image/jpeg", "image/jpg", "image/gif", "image/webp"}

type (
	Client interface {
		UploadFile(fileName string, payload []byte, contentType, folder string, allowed ...string) (string, error)
		UpdateFile(objectKey string, payload []byte, contentType string, allowed ...string) (string, error)
		DeleteFile(objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() Client {
	region := os.Getenv("AWS_S3_REGION")
	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY"),
			os.Getenv("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Fatalf("unable to load AWS config: %v", err)
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: os.Getenv("AWS_S3_BUCKET"),
		region: region,
	}
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "bin"
	}
}

func contentTypeAllowed(contentType string, allowed []string) bool {
	for _, a := range allowed {
		if a == contentType {
			return true
		}
	}
	return false
}

// UploadFile stores the payload under "<folder>/<fileName>.<ext>" and
// returns the object key.
func (a *awsS3) UploadFile(fileName string, payload []byte, contentType, folder string, allowed ...string) (string, error) {
	if len(allowed) > 0 && !contentTypeAllowed(contentType, allowed) {
		return "", fmt.Errorf("content type %s is not allowed", contentType)
	}

	objectKey := fmt.Sprintf("%s/%s.%s", folder, fileName, extensionFor(contentType))
	_, err := a.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return objectKey, nil
}

// UpdateFile replaces the object behind objectKey with the new payload.
// The key keeps its folder and base name but follows the new content
// type's extension, so the returned key may differ from the old one.
func (a *awsS3) UpdateFile(objectKey string, payload []byte, contentType string, allowed ...string) (string, error) {
	folder, fileName := "", objectKey
	if idx := strings.LastIndex(objectKey, "/"); idx != -1 {
		folder, fileName = objectKey[:idx], objectKey[idx+1:]
	}
	if idx := strings.LastIndex(fileName, "."); idx != -1 {
		fileName = fileName[:idx]
	}

	newKey, err := a.UploadFile(fileName, payload, contentType, folder, allowed...)
	if err != nil {
		return "", err
	}

	if newKey != objectKey {
		if err := a.DeleteFile(objectKey); err != nil {
			return "", err
		}
	}

	return newKey, nil
}

func (a *awsS3) DeleteFile(objectKey string) error {
	_, err := a.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", a.bucket, a.region)
	return strings.TrimPrefix(link, prefix)
}
