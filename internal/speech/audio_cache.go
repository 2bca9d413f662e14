package speech

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// AudioCache keeps synthesized audio on disk so a phrase is only requested once per voice.
type AudioCache struct {
	rootDir string
}

func NewAudioCache(cacheDirectory string) *AudioCache {
	return &AudioCache{
		rootDir: cacheDirectory,
	}
}

func audioKey(model, voice, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + voice + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func (cache *AudioCache) filePath(key string) string {
	return filepath.Join(cache.rootDir, key+".pcm")
}

// Fetch returns the cached audio for key, or calls f and stores a non-empty result.
func (cache *AudioCache) Fetch(key string, f func() ([]byte, error)) ([]byte, error) {
	localFilePath := cache.filePath(key)
	contents, err := os.ReadFile(localFilePath)
	if err == nil {
		return contents, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", localFilePath, err)
	}

	contents, err = f()
	if err != nil {
		return nil, err
	}
	if len(contents) == 0 {
		return contents, nil
	}

	if err := os.MkdirAll(cache.rootDir, 0o755); err != nil {
		return contents, fmt.Errorf("os.MkdirAll(%s) > %w", cache.rootDir, err)
	}
	if err := os.WriteFile(localFilePath, contents, 0o644); err != nil {
		return contents, fmt.Errorf("os.WriteFile(%s) > %w", localFilePath, err)
	}
	return contents, nil
}
