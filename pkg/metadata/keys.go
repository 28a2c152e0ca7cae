package metadata

// Legacy bare-string keys kept for producers that predate the registered
// property catalog. They resolve as generic entries unless a catalog
// property claims the same qualified name.
const (
	Format      = "format"
	Identifier  = "identifier"
	Modified    = "modified"
	Contributor = "contributor"
	Coverage    = "coverage"
	Creator     = "creator"
	Description = "description"
	Language    = "language"
	Publisher   = "publisher"
	Relation    = "relation"
	Rights      = "rights"
	Source      = "source"
	Subject     = "subject"
	Title       = "title"
	Type        = "type"
)
