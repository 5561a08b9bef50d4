package imagebed

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignedUploadRequest describes the file the client wants to upload.
type PresignedUploadRequest struct {
	Filename    string
	ContentType string
	// ExpiresIn in seconds, defaults to 15 minutes.
	ExpiresIn int64
}

// PresignedUploadResponse is everything the client needs for a direct PUT.
type PresignedUploadResponse struct {
	UploadURL string            `json:"upload_url"`
	FileKey   string            `json:"file_key"`
	FileURL   string            `json:"file_url"`
	ExpiresAt time.Time         `json:"expires_at"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
}

// GeneratePresignedUploadURL lets the frontend upload straight to the bucket
// without proxying the bytes through this service.
func (ib *ImageBed) GeneratePresignedUploadURL(ctx context.Context, req PresignedUploadRequest) (*PresignedUploadResponse, error) {
	if err := ib.InitS3(ctx); err != nil {
		return nil, err
	}

	if ib.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket not configured")
	}
	if req.Filename == "" {
		return nil, fmt.Errorf("filename must not be empty")
	}

	if req.ExpiresIn <= 0 {
		req.ExpiresIn = 900
	}

	ext := strings.ToLower(path.Ext(req.Filename))
	uniqueFilename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)

	key := path.Join(strings.Trim(ib.Prefix, "/"), uniqueFilename)
	key = strings.TrimLeft(key, "/")

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	presignClient := s3.NewPresignClient(ib.s3Client)

	presignedReq, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ib.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(req.ExpiresIn) * time.Second
	})
	if err != nil {
		return nil, fmt.Errorf("presign upload url: %w", err)
	}

	response := &PresignedUploadResponse{
		UploadURL: presignedReq.URL,
		FileKey:   key,
		FileURL:   ib.publicURL(key),
		ExpiresAt: time.Now().Add(time.Duration(req.ExpiresIn) * time.Second),
		Method:    presignedReq.Method,
		Headers: map[string]string{
			"Content-Type": contentType,
		},
	}

	for k, v := range presignedReq.SignedHeader {
		if len(v) > 0 {
			response.Headers[k] = v[0]
		}
	}

	return response, nil
}

// GeneratePresignedDownloadURL grants temporary access to a private object.
func (ib *ImageBed) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn int64) (string, error) {
	if err := ib.InitS3(ctx); err != nil {
		return "", err
	}

	if expiresIn <= 0 {
		expiresIn = 3600
	}

	presignClient := s3.NewPresignClient(ib.s3Client)

	presignedReq, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ib.Bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(expiresIn) * time.Second
	})
	if err != nil {
		return "", fmt.Errorf("presign download url: %w", err)
	}

	return presignedReq.URL, nil
}
