package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/plateful/backend/config"
)

// ImageService stores recipe images in S3 and hands back their public
// URLs for the recipe's image list.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance.
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadRecipeImage uploads image bytes under a fresh uuid-based key
// and returns the public URL. ext is the original file extension
// (".jpg", ".png"); unknown extensions are stored as octet-stream.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID int, imageData []byte, ext string) (string, error) {
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = http.DetectContentType(imageData)
	}

	fileName := fmt.Sprintf("recipe-images/%d/%s%s", recipeID, uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageService] uploaded recipe %d image to %s", recipeID, publicURL)
	return publicURL, nil
}
