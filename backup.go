package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pocketbase/pocketbase"
	"github.com/spf13/cobra"
)

const (
	backupPrefix  = "wedding-site/database/"
	backupHour    = 4 // 4 AM local
	retentionDays = 30
)

// scheduleBackups waits until the next backup hour and runs a backup
// once a day thereafter.
func scheduleBackups(app *pocketbase.PocketBase) {
	// Let the app finish starting up before scheduling.
	time.Sleep(30 * time.Second)

	loc := time.Local
	if tz := os.Getenv("BACKUP_TIMEZONE"); tz != "" {
		if parsed, err := time.LoadLocation(tz); err == nil {
			loc = parsed
		} else {
			log.Printf("[Backup] invalid BACKUP_TIMEZONE %q, using local time: %v", tz, err)
		}
	}

	for {
		now := time.Now().In(loc)
		next := time.Date(now.Year(), now.Month(), now.Day(), backupHour, 0, 0, 0, loc)
		if now.After(next) {
			next = next.Add(24 * time.Hour)
		}

		log.Printf("[Backup] next backup at %s (in %v)", next.Format("2006-01-02 15:04 MST"), time.Until(next).Round(time.Minute))
		time.Sleep(time.Until(next))

		if err := runBackup(app); err != nil {
			log.Printf("[Backup] failed: %v", err)
		}
	}
}

// runBackup snapshots the database and ships it to object storage.
func runBackup(app *pocketbase.PocketBase) error {
	log.Printf("[Backup] starting backup")

	backupName := fmt.Sprintf("wedding-site-db-%s.zip", time.Now().Format("2006-01-02"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := app.CreateBackup(ctx, backupName); err != nil {
		return fmt.Errorf("create backup: %w", err)
	}

	backupPath := filepath.Join(app.DataDir(), "backups", backupName)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file not found at %s", backupPath)
	}

	if err := uploadBackup(ctx, backupPath, backupName); err != nil {
		return fmt.Errorf("upload backup: %w", err)
	}

	// The S3 copy is the one that matters; drop the local file.
	if err := os.Remove(backupPath); err != nil {
		log.Printf("[Backup] failed to delete local backup: %v", err)
	}

	if err := pruneOldBackups(ctx); err != nil {
		log.Printf("[Backup] failed to prune old backups: %v", err)
	}

	log.Printf("[Backup] completed: %s", backupName)
	return nil
}

func uploadBackup(ctx context.Context, localPath, backupName string) error {
	cfg, err := loadS3Config()
	if err != nil {
		return err
	}
	client, err := newS3Client(ctx, cfg)
	if err != nil {
		return err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	defer file.Close()

	key := backupPrefix + backupName
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(cfg.Bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}

	log.Printf("[Backup] uploaded to s3://%s/%s", cfg.Bucket, key)
	return nil
}

// pruneOldBackups removes stored backups older than retentionDays.
func pruneOldBackups(ctx context.Context) error {
	cfg, err := loadS3Config()
	if err != nil {
		return nil // not configured, nothing to prune
	}
	client, err := newS3Client(ctx, cfg)
	if err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(cfg.Bucket),
		Prefix: aws.String(backupPrefix),
	})

	var toDelete []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.LastModified != nil && obj.LastModified.Before(cutoff) {
				toDelete = append(toDelete, *obj.Key)
			}
		}
	}

	for _, key := range toDelete {
		_, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(cfg.Bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			log.Printf("[Backup] failed to delete %s: %v", key, err)
		} else {
			log.Printf("[Backup] deleted old backup: %s", key)
		}
	}

	if len(toDelete) > 0 {
		log.Printf("[Backup] pruned %d old backup(s)", len(toDelete))
	}
	return nil
}

// registerBackupCommand adds a backup-now command for manual backups.
func registerBackupCommand(app *pocketbase.PocketBase) {
	app.RootCmd.AddCommand(&cobra.Command{
		Use:   "backup-now",
		Short: "Create a database backup and upload it to object storage",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runBackup(app); err != nil {
				fmt.Fprintf(os.Stderr, "backup failed: %v\n", err)
				os.Exit(1)
			}
		},
	})
}
