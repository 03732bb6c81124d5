package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Account requests / responses ---

type profileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=64"`
	LastName  *string `json:"last_name"  validate:"omitempty,max=64"`
}

type changePasswordRequest struct {
	Password string `json:"password" validate:"required,min=4,max=72"`
}

type profileResponse struct {
	Login     string   `json:"login"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Roles     []string `json:"roles"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Profile profileResponse `json:"profile"`
}

type rolesResponse struct {
	Login string   `json:"login"`
	Roles []string `json:"roles"`
}

// --- Forum requests / responses ---

type newPostRequest struct {
	Title   string   `json:"title"   validate:"required,max=200"`
	Content string   `json:"content" validate:"required"`
	Author  string   `json:"author"  validate:"required"`
	Tags    []string `json:"tags"    validate:"omitempty,dive,required"`
}

type updatePostRequest struct {
	Content string `json:"content" validate:"required"`
}

type newCommentRequest struct {
	User    string `json:"user"    validate:"required"`
	Message string `json:"message" validate:"required"`
}

type tagsRequest struct {
	Tags []string `json:"tags" validate:"required,min=1,dive,required"`
}

// periodRequest bounds are YYYY-MM-DD; parsing happens in the service.
type periodRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to"   validate:"required"`
}

type commentResponse struct {
	User        string    `json:"user"`
	Message     string    `json:"message"`
	DateCreated time.Time `json:"date_created"`
	Likes       int       `json:"likes"`
}

type postResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	Author      string            `json:"author"`
	Tags        []string          `json:"tags"`
	DateCreated time.Time         `json:"date_created"`
	Likes       int               `json:"likes"`
	Comments    []commentResponse `json:"comments"`
}

type likeResponse struct {
	Liked bool `json:"liked"`
}
