package dto

// ==================== VIDEO CMS DTOs ====================

type CreateVideoRequest struct {
	Title       string `json:"title" validate:"required,max=200" example:"Earthquake Drop-Cover-Hold"`
	Description string `json:"description,omitempty"`
	VideoRef    string `json:"video_ref" validate:"required" example:"dQw4w9WgXcQ"`
	Duration    string `json:"duration,omitempty" example:"4:32"`
	Category    string `json:"category,omitempty" example:"earthquake"`
	HoverText   string `json:"hover_text,omitempty"`
	SortOrder   int    `json:"sort_order,omitempty"`
}

func (r CreateVideoRequest) Validate() error {
	return GetValidator().Struct(r)
}

// UpdateVideoRequest is a partial update; nil fields are left untouched.
type UpdateVideoRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty"`
	VideoRef    *string `json:"video_ref,omitempty"`
	Duration    *string `json:"duration,omitempty"`
	Category    *string `json:"category,omitempty"`
	HoverText   *string `json:"hover_text,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
}

func (r UpdateVideoRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SetVideoActiveRequest struct {
	IsActive bool `json:"is_active"`
}

type VideoListResponse struct {
	Videos []VideoResponse `json:"videos"`
	Total  int             `json:"total"`
}

type MediaUploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
}
