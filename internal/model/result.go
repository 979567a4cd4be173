package model

// InsertResult reports the id of a newly stored record. InsertedID is nil when nothing was inserted.
type InsertResult struct {
	Message    string  `json:"message,omitempty"`
	InsertedID *string `json:"insertedId"`
}

// UpdateResult reports how many records matched and how many changed.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports how many records were removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// Inserted builds an InsertResult for id.
func Inserted(id string) InsertResult {
	return InsertResult{InsertedID: &id}
}
