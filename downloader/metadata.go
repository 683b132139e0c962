package downloader

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// AssetMetadata describes a fetched release asset
type AssetMetadata struct {
	Owner     string `json:"owner"`
	Repo      string `json:"repo"`
	Tag       string `json:"tag"`
	AssetName string `json:"asset_name"`
	AssetID   int64  `json:"asset_id"`
	Size      int64  `json:"size,omitempty"`
}

// metadataFilename is the sidecar written next to the cached asset
const metadataFilename = ".ghfetch-metadata.json"

// SaveMetadata writes metadata next to the cached asset
func SaveMetadata(cachePath string, metadata AssetMetadata) error {
	metadataPath := filepath.Join(cachePath, metadataFilename)

	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(metadataPath, data, 0644)
}

// LoadMetadata reads metadata from the cache directory
func LoadMetadata(cachePath string) (*AssetMetadata, error) {
	metadataPath := filepath.Join(cachePath, metadataFilename)

	data, err := os.ReadFile(metadataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // No metadata file, not an error
		}
		return nil, err
	}

	var metadata AssetMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, err
	}

	return &metadata, nil
}
