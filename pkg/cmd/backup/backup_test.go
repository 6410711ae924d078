package backup

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/Paintersrp/notepy/internal/backup"
	"github.com/Paintersrp/notepy/internal/config"
	"github.com/Paintersrp/notepy/pkg/cmd/cmdtest"
)

type memoryUploader struct {
	keys []string
}

func (u *memoryUploader) Upload(_ context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if _, err := io.Copy(io.Discard, input.Body); err != nil {
		return nil, err
	}
	u.keys = append(u.keys, aws.ToString(input.Key))
	return &manager.UploadOutput{}, nil
}

func stubBackup(t *testing.T, uploader backup.Uploader) *config.BackupConfig {
	t.Helper()

	var used config.BackupConfig
	original := newBackup
	newBackup = func(_ context.Context, cfg config.BackupConfig, logger *zap.Logger) (*backup.Backup, error) {
		used = cfg
		return backup.NewWithUploader(uploader, cfg, logger)
	}
	t.Cleanup(func() { newBackup = original })
	return &used
}

func TestBackupUploadsNotes(t *testing.T) {
	s := cmdtest.NewState(t, "backup:", "  bucket: notes", "  prefix: laptop")
	cmdtest.AddNote(t, s, "a", "x", "tag")
	cmdtest.AddNote(t, s, "b", "")

	uploader := &memoryUploader{}
	stubBackup(t, uploader)

	out, err := cmdtest.Run(NewCmdBackup(s), "")
	if err != nil {
		t.Fatalf("backup returned error: %v", err)
	}
	if !strings.Contains(out, "s3://notes/laptop") {
		t.Fatalf("unexpected output %q", out)
	}

	sort.Strings(uploader.keys)
	want := []string{"laptop/a/README.md", "laptop/a/tags.txt", "laptop/b/README.md"}
	for _, key := range want {
		i := sort.SearchStrings(uploader.keys, key)
		if i == len(uploader.keys) || uploader.keys[i] != key {
			t.Fatalf("expected %q to be uploaded, got %v", key, uploader.keys)
		}
	}
}

func TestBackupFlagOverrides(t *testing.T) {
	s := cmdtest.NewState(t)
	used := stubBackup(t, &memoryUploader{})

	if _, err := cmdtest.Run(NewCmdBackup(s), "", "--bucket", "other", "--prefix", "p"); err != nil {
		t.Fatalf("backup returned error: %v", err)
	}
	if used.Bucket != "other" || used.Prefix != "p" {
		t.Fatalf("unexpected backup config %+v", *used)
	}
}

func TestBackupDisabled(t *testing.T) {
	s := cmdtest.NewState(t)
	stubBackup(t, &memoryUploader{})

	if _, err := cmdtest.Run(NewCmdBackup(s), ""); !errors.Is(err, backup.ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
