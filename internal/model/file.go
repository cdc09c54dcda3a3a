package model

// The File struct represents an uploaded file (resume or avatar) with an ID,
// content stored as bytes, and an extension used to derive the content type
// when serving it back.
type File struct {
	ID        int `gorm:"primaryKey"`
	Content   []byte
	Extension string
}
