package store

import (
	"path"

	"github.com/goliatone/go-exercisedb/exercise"
	"github.com/goliatone/go-exercisedb/internal/enrich"
)

// ThumbnailEntry records the derived thumbnail for one original asset. The
// store only tracks names and target dimensions; byte resizing is an
// external collaborator.
type ThumbnailEntry struct {
	Thumbnail  string `json:"thumbnail"`
	Dimensions string `json:"dimensions"`
}

// ThumbnailManifest maps original asset names to their derived thumbnails.
type ThumbnailManifest map[string]ThumbnailEntry

// BuildThumbnailManifest collects one entry per distinct image across the
// valid record set, keyed by the asset's base name.
func BuildThumbnailManifest(records []exercise.Exercise, suffix, dimensions string) ThumbnailManifest {
	manifest := ThumbnailManifest{}
	for _, record := range records {
		for _, image := range record.Images {
			base := path.Base(image)
			if _, ok := manifest[base]; ok {
				continue
			}
			manifest[base] = ThumbnailEntry{
				Thumbnail:  enrich.ThumbnailName(base, suffix),
				Dimensions: dimensions,
			}
		}
	}
	return manifest
}
