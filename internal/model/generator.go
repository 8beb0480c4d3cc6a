package model

// GenerateRequest represents a password generation request.
// A zero Length falls back to the configured default.
type GenerateRequest struct {
	Length       int    `json:"length"`
	Digits       bool   `json:"digits"`
	Special      bool   `json:"special"`
	SpecialChars string `json:"special_chars"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
}
