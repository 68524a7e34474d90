package supabase

import (
	"bytes"
	"context"
	"fmt"

	storage "github.com/supabase-community/storage-go"

	"lumina-backend/internal/vision"
)

// AssetStorage persists generated rasters to a Supabase storage bucket and
// hands back public URLs. It satisfies the pipeline's AssetStore interface.
type AssetStorage struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewAssetStorage(supabaseURL, serviceRoleKey, bucket string) (*AssetStorage, error) {
	// Ensure URL doesn't have trailing slash
	baseURL := supabaseURL
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &AssetStorage{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// StoreAsset uploads one data URI under users/{user_id}/assets/{name} and
// returns the public URL.
func (s *AssetStorage) StoreAsset(ctx context.Context, userID, name string, dataURI string) (string, error) {
	mime, data, err := vision.DecodeDataURI(dataURI)
	if err != nil {
		return "", fmt.Errorf("failed to decode asset payload: %w", err)
	}

	storagePath := fmt.Sprintf("users/%s/assets/%s", userID, name)

	upsert := true
	_, err = s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &mime,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}

	return s.PublicURL(storagePath), nil
}

func (s *AssetStorage) PublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, storagePath)
}

// DeleteUserAssets removes every stored asset under one user's prefix. Called
// on account teardown.
func (s *AssetStorage) DeleteUserAssets(userID string) error {
	prefix := fmt.Sprintf("users/%s/assets/", userID)

	files, err := s.client.ListFiles(s.bucket, prefix, storage.FileSearchOptions{
		Limit: 1000,
	})
	if err != nil {
		return fmt.Errorf("failed to list assets: %w", err)
	}

	if len(files) > 0 {
		paths := make([]string, len(files))
		for i, file := range files {
			paths[i] = file.Name
		}
		_, err = s.client.RemoveFile(s.bucket, paths)
		if err != nil {
			return fmt.Errorf("failed to delete assets: %w", err)
		}
	}

	return nil
}
