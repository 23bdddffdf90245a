package dto

type CreateCommentDto struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message" binding:"required"`
	PostSlug  string `json:"post_slug" binding:"required"`
	UserImage string `json:"user_image"`
}

type UpdateCommentDto struct {
	CommentID string `json:"comment_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

type DeleteCommentDto struct {
	CommentID string `json:"comment_id" binding:"required"`
}
