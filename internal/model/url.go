package model

// ShortenRequest is the JSON body accepted by the POST and DELETE
// endpoints. Every field is optional at the decoding level; handlers
// enforce what their route requires.
type ShortenRequest struct {
	URL       string `json:"url,omitempty"`        // target URL to shorten
	CustomKey string `json:"custom_key,omitempty"` // caller-chosen short key
	Password  string `json:"password,omitempty"`   // fallback auth when no Authorization header
	ShortKey  string `json:"short_key,omitempty"`  // key to delete (body-based delete)
}

// CreateResponse is returned on a successful shortening request.
type CreateResponse struct {
	Success     bool   `json:"success"`
	ShortKey    string `json:"short_key"`
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
}

// StatusResponse is returned by administrative routes and deletes.
type StatusResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
