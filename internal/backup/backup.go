// Package backup copies the note base path to an S3 bucket.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/Paintersrp/notepy/internal/config"
	"github.com/Paintersrp/notepy/internal/pathutil"
)

var ErrDisabled = errors.New("backup is not configured: set backup.bucket")

// Uploader is implemented by *manager.Uploader.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type Backup struct {
	uploader Uploader
	bucket   string
	prefix   string
	logger   *zap.Logger
}

type Result struct {
	Files int
	Bytes int64
}

// New builds an S3 uploader from the default AWS credential chain.
func New(ctx context.Context, cfg config.BackupConfig, logger *zap.Logger) (*Backup, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewWithUploader(manager.NewUploader(s3.NewFromConfig(awsCfg)), cfg, logger)
}

func NewWithUploader(uploader Uploader, cfg config.BackupConfig, logger *zap.Logger) (*Backup, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Backup{
		uploader: uploader,
		bucket:   cfg.Bucket,
		prefix:   cfg.Prefix,
		logger:   logger,
	}, nil
}

// Key returns the object key for a path relative to the base path.
func (b *Backup) Key(rel string) string {
	return path.Join(b.prefix, filepath.ToSlash(rel))
}

// Location returns the s3:// URL files are uploaded to.
func (b *Backup) Location() string {
	return "s3://" + path.Join(b.bucket, b.prefix)
}

// Run uploads every regular file below basePath. Hidden directories are
// skipped.
func (b *Backup) Run(ctx context.Context, basePath string) (Result, error) {
	var result Result

	err := filepath.WalkDir(basePath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if p != basePath && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := pathutil.VaultRelative(basePath, p)
		if err != nil {
			return err
		}

		size, err := b.upload(ctx, p, b.Key(rel))
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", rel, err)
		}

		result.Files++
		result.Bytes += size
		return nil
	})
	if err != nil {
		return result, err
	}

	b.logger.Info("backup finished",
		zap.String("bucket", b.bucket),
		zap.String("prefix", b.prefix),
		zap.Int("files", result.Files),
		zap.Int64("bytes", result.Bytes),
	)
	return result, nil
}

func (b *Backup) upload(ctx context.Context, filename, key string) (int64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType := contentType(filename); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := b.uploader.Upload(ctx, input); err != nil {
		return 0, err
	}

	b.logger.Debug("uploaded file", zap.String("key", key), zap.Int64("bytes", info.Size()))
	return info.Size(), nil
}

func contentType(filename string) string {
	switch filepath.Ext(filename) {
	case ".md":
		return "text/markdown; charset=utf-8"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return mime.TypeByExtension(filepath.Ext(filename))
	}
}
