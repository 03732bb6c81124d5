package handler

import (
	"github.com/ashkelon/forum/internal/core/domain"
	"github.com/ashkelon/forum/internal/core/ports"
)

// --- Request → Service input ---

func toProfileInput(r profileRequest) ports.ProfileInput {
	return ports.ProfileInput{FirstName: r.FirstName, LastName: r.LastName}
}

func toPostInput(r newPostRequest) ports.PostInput {
	return ports.PostInput{
		Title:   r.Title,
		Content: r.Content,
		Author:  r.Author,
		Tags:    r.Tags,
	}
}

// --- Service result → HTTP response ---

func roleLabels(roles []domain.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}

func toProfileResponse(p *domain.Profile) profileResponse {
	return profileResponse{
		Login:     p.Login,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Roles:     roleLabels(p.Roles),
	}
}

func toPostResponse(p *domain.Post) postResponse {
	comments := make([]commentResponse, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, commentResponse{
			User:        c.User,
			Message:     c.Message,
			DateCreated: c.DateCreated,
			Likes:       c.Likes,
		})
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return postResponse{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		Author:      p.Author,
		Tags:        tags,
		DateCreated: p.DateCreated,
		Likes:       p.Likes,
		Comments:    comments,
	}
}

func toPostResponses(posts []*domain.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}
