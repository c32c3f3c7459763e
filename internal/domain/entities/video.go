package entities

// Video is a catalog entry. Only the stored filename is kept; the
// uploader is checked at upload time but not persisted with the entry.
type Video struct {
	Filename string
}
