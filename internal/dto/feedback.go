package dto

// CreateFeedbackRequest is the payload for leaving feedback
type CreateFeedbackRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}
