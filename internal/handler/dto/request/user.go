package request

type UpdateDescriptionRequest struct {
	Description string `json:"description" binding:"max=500"`
}

type AddContactInfoRequest struct {
	Type  string `json:"type" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type ContactInfoQuery struct {
	UserID *int64 `form:"userId" binding:"omitempty,gt=0"`
}
