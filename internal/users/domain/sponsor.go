package domain

// Sponsor is an entry in the read-only sponsor directory.
type Sponsor struct {
	ID   int64
	Name string
}
