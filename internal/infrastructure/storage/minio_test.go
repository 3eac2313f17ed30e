package storage

import (
	"context"
	"strings"
	"testing"
)

func TestBuildObjectKey_SanitizesUnsafeChars(t *testing.T) {
	key := BuildObjectKey("weekly sync (final)?.mp4")
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		t.Fatalf("expected timestamp prefix in key %q", key)
	}
	if parts[1] != "weekly_sync__final__.mp4" {
		t.Fatalf("unexpected sanitized name %q", parts[1])
	}
}

func TestBuildObjectKey_KeepsSafeChars(t *testing.T) {
	key := BuildObjectKey("notes-2026.08.txt")
	if !strings.HasSuffix(key, "-notes-2026.08.txt") {
		t.Fatalf("safe characters should be preserved, got %q", key)
	}
}

func TestUpload_SoftSkipsWithoutBucket(t *testing.T) {
	m := &MinIOClient{bucket: ""}
	res, err := m.Upload(context.Background(), nil, 0, "a.txt", "text/plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != nil {
		t.Fatal("expected nil result in storage-less mode")
	}
}

func TestDownloadURL_SoftSkipsWithoutBucket(t *testing.T) {
	m := &MinIOClient{bucket: ""}
	url, err := m.DownloadURL(context.Background(), "some-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "" {
		t.Fatalf("expected empty url, got %q", url)
	}
}
