package exercise

import "time"

// Exercise is the canonical record produced by the content pipeline and
// served by the query API. JSON field names are the wire contract shared by
// every persisted artifact and API response.
type Exercise struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	PrimaryMuscles   []string  `json:"primaryMuscles"`
	SecondaryMuscles []string  `json:"secondaryMuscles,omitempty"`
	Equipment        []string  `json:"equipment,omitempty"`
	Difficulty       string    `json:"difficulty"`
	Tags             []string  `json:"tags,omitempty"`
	Description      string    `json:"description,omitempty"`
	Instructions     []string  `json:"instructions,omitempty"`
	Tips             []string  `json:"tips,omitempty"`
	Variations       []string  `json:"variations,omitempty"`
	Images           []string  `json:"images,omitempty"`
	Videos           []string  `json:"videos,omitempty"`
	Mobile           *Mobile   `json:"mobile,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Mobile carries presentation metadata derived by the enricher. Thumbnails
// correspond positionally to the record's Images.
type Mobile struct {
	DisplayOrder        int      `json:"displayOrder"`
	CategoryDisplayName string   `json:"categoryDisplayName"`
	EstimatedTime       int      `json:"estimatedTime"`
	HasVideo            bool     `json:"hasVideo"`
	Thumbnails          []string `json:"thumbnails,omitempty"`
}

// Muscles returns the union of primary and secondary muscles. Membership
// filters check against this set.
func (e *Exercise) Muscles() []string {
	out := make([]string, 0, len(e.PrimaryMuscles)+len(e.SecondaryMuscles))
	seen := map[string]struct{}{}
	for _, group := range [][]string{e.PrimaryMuscles, e.SecondaryMuscles} {
		for _, m := range group {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}
