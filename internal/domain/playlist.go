package domain

// Track is one audio file inside a playlist directory.
// RelativePath ("<playlist>/<filename>") is the public streaming key.
type Track struct {
	Title        string `json:"title"`
	Filename     string `json:"filename"`
	RelativePath string `json:"relativePath"`
	Duration     int    `json:"duration"` // never computed, always 0
}

// Playlist is an immediate subdirectory of the media root.
type Playlist struct {
	Name  string  `json:"name"`
	Songs []Track `json:"songs"`
}
