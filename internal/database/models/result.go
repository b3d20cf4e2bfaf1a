package models

// UpdateResult mirrors what the driver reports for single-document writes.
type UpdateResult struct {
	Matched  int64 `json:"matchedCount"`
	Modified int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Deleted int64 `json:"deletedCount"`
}
