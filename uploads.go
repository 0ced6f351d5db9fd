package main

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/kygo/wedding-site/utils"
)

const uploadPrefix = "wedding-site/images/"

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// handleAdminUploadImage accepts a multipart image upload and stores it
// in the S3 bucket under a random object key. The returned URL can then
// be added to the gallery or background lists.
func handleAdminUploadImage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		if err := re.Request.ParseMultipartForm(utils.MaxImageFileSize); err != nil {
			return utils.BadRequestResponse(re, "Invalid multipart form")
		}

		file, header, err := re.Request.FormFile("image")
		if err != nil {
			return utils.BadRequestResponse(re, "Missing image file")
		}
		defer file.Close()

		if header.Size > utils.MaxImageFileSize {
			return utils.BadRequestResponse(re, "Image exceeds the 10MB size limit")
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		contentType, ok := allowedImageTypes[ext]
		if !ok {
			return utils.BadRequestResponse(re, "Unsupported image type")
		}

		cfg, err := loadS3Config()
		if err != nil {
			log.Printf("[Uploads] %v", err)
			return utils.InternalErrorResponse(re, "Image storage is not configured")
		}

		ctx := re.Request.Context()
		client, err := newS3Client(ctx, cfg)
		if err != nil {
			log.Printf("[Uploads] %v", err)
			return utils.InternalErrorResponse(re, "Failed to upload image")
		}

		key := fmt.Sprintf("%s%s%s", uploadPrefix, uuid.NewString(), ext)
		_, err = client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(cfg.Bucket),
			Key:         aws.String(key),
			Body:        file,
			ContentType: aws.String(contentType),
		})
		if err != nil {
			log.Printf("[Uploads] put object failed: %v", err)
			return utils.InternalErrorResponse(re, "Failed to upload image")
		}

		url := publicObjectURL(cfg, key)

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "image_upload",
			ResourceType: utils.CollectionSiteSettings,
			ResourceID:   key,
		})

		return utils.DataResponse(re, http.StatusCreated, map[string]any{
			"url": url,
			"key": key,
		})
	}
}

func publicObjectURL(cfg s3Config, key string) string {
	if cfg.PublicURL != "" {
		return strings.TrimSuffix(cfg.PublicURL, "/") + "/" + key
	}
	if cfg.Endpoint != "" {
		return strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", cfg.Bucket, key)
}
