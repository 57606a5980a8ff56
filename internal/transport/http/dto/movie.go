package dto

type CreateMovieRequest struct {
	Title       string   `json:"title" validate:"required"`
	ImageURL    string   `json:"image_url" validate:"required"`
	Studio      string   `json:"studio" validate:"required"`
	RunningTime int      `json:"running_time" validate:"required,min=1"`
	Genre       []string `json:"genre"`
	Director    string   `json:"director" validate:"required"`
	Year        int      `json:"year" validate:"required,min=1888"`
}

// UpdateMovieRequest mirrors CreateMovieRequest except the image URL, which
// keeps its stored value when omitted.
type UpdateMovieRequest struct {
	Title       string   `json:"title" validate:"required"`
	ImageURL    string   `json:"image_url"`
	Studio      string   `json:"studio" validate:"required"`
	RunningTime int      `json:"running_time" validate:"required,min=1"`
	Genre       []string `json:"genre"`
	Director    string   `json:"director" validate:"required"`
	Year        int      `json:"year" validate:"required,min=1888"`
}
