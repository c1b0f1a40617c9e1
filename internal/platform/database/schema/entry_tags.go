package schema

// EntryTagsTable represents the 'entry_tags' link table
type EntryTagsTable struct {
	Table     string
	EntryID   string
	TagID     string
	Seq       string
	CreatedAt string
}

// EntryTags is the schema definition for entry_tags
var EntryTags = EntryTagsTable{
	Table:     "entry_tags",
	EntryID:   "entry_id",
	TagID:     "tag_id",
	Seq:       "seq",
	CreatedAt: "created_at",
}
