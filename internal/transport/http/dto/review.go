package dto

type ReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=10"`
	Review string `json:"review" validate:"required"`
}
