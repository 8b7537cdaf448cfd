package types

type UploadResponse struct {
	Message     string `json:"message"`
	ChunksCount int    `json:"chunks_count"`
	DocumentID  string `json:"document_id"`
}

type QueryResponse struct {
	Answer     string `json:"answer"`
	Sources    string `json:"sources"`
	Mode       Mode   `json:"mode"`
	ImageData  string `json:"image_data,omitempty"`
	DocumentID string `json:"document_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
