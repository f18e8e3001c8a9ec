package models

import "time"

// UploadedFile is the projection of one stored application form, rebuilt
// from the backend listing on every fetch. It has no identity of its own:
// the storage path is the key.
type UploadedFile struct {
	Name       string    `json:"name" msgpack:"name"`
	Path       string    `json:"path" msgpack:"path"` // always <clientId>/<name>
	Size       int64     `json:"size" msgpack:"size"`
	UploadedAt time.Time `json:"uploadedAt" msgpack:"uploadedAt"`
	URL        string    `json:"url,omitempty" msgpack:"url,omitempty"` // time-limited signed URL
}
