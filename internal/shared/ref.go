package shared

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// EntityRef references an existing entity by id in request bodies.
// Any other fields sent alongside the id are ignored.
type EntityRef struct {
	ID int64 `json:"id"`
}

func (r EntityRef) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID,
			validation.Required.Error("id must be positive"),
			validation.Min(int64(1)).Error("id must be positive"),
		),
	)
}

// RefIDs returns the distinct ids in refs, keeping first-seen order
func RefIDs(refs []EntityRef) []int64 {
	seen := make(map[int64]struct{}, len(refs))
	ids := make([]int64, 0, len(refs))
	for _, r := range refs {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		ids = append(ids, r.ID)
	}
	return ids
}
