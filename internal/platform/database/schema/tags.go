package schema

// TagsTable represents the 'tags' table
type TagsTable struct {
	Table         string
	ID            string
	DefaultLocale string
	CreatedAt     string
}

// Tags is the schema definition for tags
var Tags = TagsTable{
	Table:         "tags",
	ID:            "id",
	DefaultLocale: "default_locale",
	CreatedAt:     "created_at",
}

// TagNamesTable represents the 'tag_names' table
type TagNamesTable struct {
	Table  string
	TagID  string
	Locale string
	Name   string

	// NameKey is the unique index over (locale, lower(name)).
	NameKey string
}

// TagNames is the schema definition for tag_names
var TagNames = TagNamesTable{
	Table:   "tag_names",
	TagID:   "tag_id",
	Locale:  "locale",
	Name:    "name",
	NameKey: "tag_names_locale_name_key",
}
