package middleware

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	assetVersions     map[string]string
	assetVersionsOnce sync.Once
)

// StaticAssets are the files under static/ the layout links with a version
var StaticAssets = []string{"css/app.css", "js/notifications.js"}

// InitAssetVersions hashes the static assets once for cache busting
func InitAssetVersions(staticDir string) {
	assetVersionsOnce.Do(func() {
		assetVersions = make(map[string]string, len(StaticAssets))
		for _, name := range StaticAssets {
			version := computeFileHash(filepath.Join(staticDir, name))
			if version == "" {
				version = "1"
			}
			assetVersions[name] = version
		}
		log.Printf("[INFO] Asset versions initialized: %d files", len(assetVersions))
	})
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}
	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// AssetURL returns the versioned URL of a static asset
func AssetURL(name string) string {
	version := "1"
	if v, ok := assetVersions[name]; ok {
		version = v
	}
	return "/static/" + name + "?v=" + version
}
