// Package imagebed uploads event images to S3-compatible object storage and
// hands back public URLs.
package imagebed

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	appconfig "campus-connect/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type ImageBed struct {
	Endpoint     string
	BaseURL      string
	Bucket       string
	Region       string
	Prefix       string
	UsePathStyle bool

	accessKey string
	secretKey string

	s3Client *s3.Client
	uploader *manager.Uploader
}

// Default is the process-wide image bed, nil when S3 is not configured.
var Default *ImageBed

func Init() {
	cfg := appconfig.Get().S3
	if cfg.Bucket == "" {
		return
	}
	Default = &ImageBed{
		Endpoint:     cfg.Endpoint,
		BaseURL:      cfg.BaseURL,
		Bucket:       cfg.Bucket,
		Region:       cfg.Region,
		Prefix:       cfg.Prefix,
		UsePathStyle: cfg.UsePathStyle,
		accessKey:    cfg.AccessKey,
		secretKey:    cfg.SecretAccessKey,
	}
}

// Enabled reports whether an object storage bucket is configured.
func Enabled() bool {
	return Default != nil
}

// InitS3 lazily builds the S3 client; safe to call repeatedly.
func (ib *ImageBed) InitS3(ctx context.Context) error {
	if ib.s3Client != nil {
		return nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(ib.Region),
	}
	if ib.accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(ib.accessKey, ib.secretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	ib.s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if ib.Endpoint != "" {
			o.BaseEndpoint = aws.String(ib.Endpoint)
		}
		o.UsePathStyle = ib.UsePathStyle
	})
	ib.uploader = manager.NewUploader(ib.s3Client)
	return nil
}

// UploadImage streams an uploaded file into the bucket and returns its
// public URL. Keys are nanosecond timestamps to avoid collisions.
func (ib *ImageBed) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if err := ib.InitS3(ctx); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	ext := strings.ToLower(path.Ext(fileHeader.Filename))
	key := path.Join(strings.Trim(ib.Prefix, "/"), fmt.Sprintf("%d%s", time.Now().UnixNano(), ext))
	key = strings.TrimLeft(key, "/")

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = ib.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ib.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return ib.publicURL(key), nil
}

func (ib *ImageBed) publicURL(key string) string {
	base := strings.TrimRight(ib.BaseURL, "/")
	if base == "" {
		base = strings.TrimRight(ib.Endpoint, "/")
	}
	if ib.UsePathStyle {
		return base + "/" + ib.Bucket + "/" + key
	}
	return base + "/" + key
}
