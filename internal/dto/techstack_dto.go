package dto

// SuggestionsResponse is the payload of GET /techstack/suggestions. The
// success flag and message carry failure information instead of raw errors.
type SuggestionsResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    []string `json:"data"`
}

type TechLogoDTO struct {
	Tech string `json:"tech"`
	URL  string `json:"url"`
	Doc  string `json:"doc"`
}

type TechLogosResponse struct {
	Success bool          `json:"success"`
	Data    []TechLogoDTO `json:"data"`
}
