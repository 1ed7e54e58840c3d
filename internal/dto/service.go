package dto

// CreateServiceRequest is the payload for adding a catalog entry
type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateServiceRequest is the payload for updating a catalog entry
type UpdateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
