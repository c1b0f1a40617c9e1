package schema

// EntriesTable represents the 'entries' table
type EntriesTable struct {
	Table     string
	ID        string
	Text      string
	CreatedAt string
	UpdatedAt string
}

// Entries is the schema definition for entries
var Entries = EntriesTable{
	Table:     "entries",
	ID:        "id",
	Text:      "text",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t EntriesTable) Columns() []string {
	return []string{t.ID, t.Text, t.CreatedAt, t.UpdatedAt}
}
