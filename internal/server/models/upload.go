package models

// PhotoUpload describes a presigned upload slot. The client PUTs the image
// bytes to UploadURL and then stores PhotoURL on an entry.
type PhotoUpload struct {
	UploadURL string `json:"uploadUrl"`
	PhotoURL  string `json:"photoUrl"`
	Key       string `json:"key"`
}
