package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jwebster45206/itemshuffle/pkg/seed"
	"github.com/jwebster45206/itemshuffle/pkg/storage"
)

// Seed operations (filesystem-backed)

func (r *RedisStorage) seedsDir() string {
	return filepath.Join(r.dataDir, "seeds")
}

func isSeedFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

// ListSeeds maps seed names to file names. Unreadable seed files are
// skipped.
func (r *RedisStorage) ListSeeds(ctx context.Context) (map[string]string, error) {
	seeds := make(map[string]string)

	err := filepath.WalkDir(r.seedsDir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !isSeedFile(path) {
			return nil
		}

		s, err := seed.Load(path)
		if err != nil {
			r.logger.Warn("Failed to load seed file", "path", path, "error", err)
			return nil
		}

		seeds[s.Name] = s.FileName
		return nil
	})

	if err != nil {
		r.logger.Error("Failed to walk seeds directory", "error", err)
		return nil, fmt.Errorf("failed to list seeds: %w", err)
	}

	return seeds, nil
}

func (r *RedisStorage) GetSeed(ctx context.Context, filename string) (*seed.Seed, error) {
	if filename != filepath.Base(filename) || !isSeedFile(filename) {
		return nil, fmt.Errorf("%w: %s", storage.ErrSeedNotFound, filename)
	}

	path := filepath.Join(r.seedsDir(), filename)
	r.logger.Debug("Loading seed", "filename", filename, "full_path", path)

	s, err := seed.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrSeedNotFound, filename)
		}
		return nil, err
	}
	return s, nil
}
