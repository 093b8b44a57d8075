package domain

import "time"

// MaterialFileTypes is the set of recognized study material extensions.
// Anything else is stored as "other".
var MaterialFileTypes = map[string]struct{}{
	"pdf": {}, "doc": {}, "docx": {}, "ppt": {}, "pptx": {},
	"xls": {}, "xlsx": {}, "txt": {},
}

// Material is a downloadable study document for a semester.
type Material struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FileURL     string    `json:"file_url"`
	FileType    string    `json:"file_type"`
	Semester    int       `json:"semester"`
	Size        int64     `json:"size"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ClassifyFileType maps a lowercase file extension (without dot) to the
// stored file type.
func ClassifyFileType(ext string) string {
	if _, ok := MaterialFileTypes[ext]; ok {
		return ext
	}
	return "other"
}
