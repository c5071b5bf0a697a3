// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const defaultTTL = 24 * time.Hour

// Cache stores fetched collaborator payloads (search results, ticket
// searches) by key.
type Cache interface {
	// IsFresh reports whether key was stored within the TTL.
	IsFresh(ctx context.Context, key string) bool
	// Exists reports whether key has data, fresh or stale.
	Exists(ctx context.Context, key string) bool
	Load(ctx context.Context, key string) ([]byte, error)
	Store(ctx context.Context, key string, data []byte) error
}

type Metadata struct {
	Key          string `json:"key"`
	DownloadedAt string `json:"downloaded_at"`
}

// File is a Cache backed by a directory. Each key is stored as a data file
// plus a metadata file named after the key's hash.
type File struct {
	dir string
	ttl time.Duration
}

func New(dir string) *File {
	return &File{dir: dir, ttl: defaultTTL}
}

// DefaultDir returns the cache directory under XDG_DATA_HOME, or under the
// home directory when that is unset.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "vendor-assess"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(home, ".vendor-assess", "cache"), nil
}

func (c *File) IsFresh(_ context.Context, key string) bool {
	meta, err := c.loadMetadata(key)
	if err != nil {
		return false
	}
	downloadedAt, err := time.Parse(time.RFC3339, meta.DownloadedAt)
	if err != nil {
		return false
	}
	return time.Since(downloadedAt) < c.ttl
}

func (c *File) Store(_ context.Context, key string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	if err := os.WriteFile(c.dataPath(key), data, 0o644); err != nil {
		return fmt.Errorf("writing cache data: %w", err)
	}
	meta := Metadata{Key: key, DownloadedAt: time.Now().UTC().Format(time.RFC3339)}
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	if err := os.WriteFile(c.metaPath(key), metaBytes, 0o644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

func (c *File) Load(_ context.Context, key string) ([]byte, error) {
	return os.ReadFile(c.dataPath(key))
}

func (c *File) Exists(_ context.Context, key string) bool {
	_, err := os.Stat(c.dataPath(key))
	return err == nil
}

func (c *File) loadMetadata(key string) (*Metadata, error) {
	data, err := os.ReadFile(c.metaPath(key))
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (c *File) dataPath(key string) string {
	return filepath.Join(c.dir, fileID(key)+".json")
}

func (c *File) metaPath(key string) string {
	return filepath.Join(c.dir, fileID(key)+".metadata.json")
}

// fileID turns an arbitrary key (often a search query) into a safe name.
func fileID(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
