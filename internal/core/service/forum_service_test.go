package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ashkelon/forum/internal/core/domain"
	"github.com/ashkelon/forum/internal/core/ports"
)

func newForumSvc(posts *stubPostRepo, accounts *stubAccountRepo, audit *stubAudit) *ForumService {
	return NewForumService(posts, accounts, stubCodec{}, audit, zerolog.Nop())
}

func seededPost(id, author string, created time.Time, tags ...string) *domain.Post {
	return &domain.Post{
		ID:          id,
		Title:       "title " + id,
		Content:     "content " + id,
		Author:      author,
		Tags:        tags,
		DateCreated: created,
		Likes:       3,
	}
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestForumService_CreatePost(t *testing.T) {
	posts := newStubPostRepo()
	svc := newForumSvc(posts, newStubAccountRepo(), &stubAudit{})

	post, err := svc.CreatePost(context.Background(), ports.PostInput{
		Title:   "Hello",
		Content: "World",
		Author:  "alice",
		Tags:    []string{"go"},
	})
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	if post.ID == "" {
		t.Fatalf("expected generated id")
	}
	if post.DateCreated.IsZero() || post.Likes != 0 || len(post.Comments) != 0 {
		t.Fatalf("unexpected initial state: %+v", post)
	}
	if _, ok := posts.posts[post.ID]; !ok {
		t.Fatalf("expected post to be stored")
	}

	got, err := svc.GetPost(context.Background(), post.ID)
	if err != nil || got.Title != "Hello" {
		t.Fatalf("GetPost: %+v, %v", got, err)
	}
}

func TestForumService_GetPost_NotFound(t *testing.T) {
	svc := newForumSvc(newStubPostRepo(), newStubAccountRepo(), &stubAudit{})

	if _, err := svc.GetPost(context.Background(), "missing"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestForumService_DeletePost_Permissions(t *testing.T) {
	cases := []struct {
		name    string
		actor   *domain.Account
		wantErr error
	}{
		{"author", account("alice"), nil},
		{"admin", account("root", domain.RoleAdmin), nil},
		{"moderator", account("mod", domain.RoleUser, domain.RoleModerator), nil},
		{"stranger", account("eve"), domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			posts := newStubPostRepo(seededPost("p1", "alice", time.Now()))
			accounts := newStubAccountRepo(account("alice"), tc.actor)
			audit := &stubAudit{}
			svc := newForumSvc(posts, accounts, audit)

			post, err := svc.DeletePost(context.Background(), "p1", tc.actor.Login+":pw")
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if _, ok := posts.posts["p1"]; !ok {
					t.Fatalf("post must survive a denied delete")
				}
				return
			}
			if err != nil {
				t.Fatalf("DeletePost returned error: %v", err)
			}
			if post.ID != "p1" || post.Author != "alice" || post.Likes != 3 {
				t.Fatalf("expected pre-deletion snapshot, got %+v", post)
			}
			if _, ok := posts.posts["p1"]; ok {
				t.Fatalf("expected post to be deleted")
			}
			if len(audit.events) != 1 || audit.events[0].Action != domain.AuditPostDeleted || audit.events[0].Actor != tc.actor.Login {
				t.Fatalf("unexpected audit events: %+v", audit.events)
			}
		})
	}
}

func TestForumService_DeletePost_AbsentSkipsToken(t *testing.T) {
	svc := newForumSvc(newStubPostRepo(), newStubAccountRepo(), &stubAudit{})

	// token is garbage but the post lookup fails first
	if _, err := svc.DeletePost(context.Background(), "missing", "garbage"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestForumService_DeletePost_BadToken(t *testing.T) {
	posts := newStubPostRepo(seededPost("p1", "alice", time.Now()))
	svc := newForumSvc(posts, newStubAccountRepo(account("alice")), &stubAudit{})

	if _, err := svc.DeletePost(context.Background(), "p1", "garbage"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestForumService_UpdatePost_AuthorOnly(t *testing.T) {
	created := time.Now().UTC()
	posts := newStubPostRepo(seededPost("p1", "alice", created, "go", "db"))
	accounts := newStubAccountRepo(account("alice"), account("root", domain.RoleAdmin))
	svc := newForumSvc(posts, accounts, &stubAudit{})

	if _, err := svc.UpdatePost(context.Background(), "p1", "hacked", "root:pw"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin, got %v", err)
	}
	if posts.posts["p1"].Content != "content p1" {
		t.Fatalf("content changed on denied update")
	}

	post, err := svc.UpdatePost(context.Background(), "p1", "edited", "alice:pw")
	if err != nil {
		t.Fatalf("UpdatePost returned error: %v", err)
	}
	if post.Content != "edited" {
		t.Fatalf("expected returned content to be updated, got %q", post.Content)
	}

	stored := posts.posts["p1"]
	if stored.Content != "edited" {
		t.Fatalf("expected stored content to be updated")
	}
	if stored.Author != "alice" || stored.ID != "p1" || stored.Likes != 3 || len(stored.Tags) != 2 || !stored.DateCreated.Equal(created) {
		t.Fatalf("fields other than content changed: %+v", stored)
	}
}

func TestForumService_UpdatePost_NotFound(t *testing.T) {
	svc := newForumSvc(newStubPostRepo(), newStubAccountRepo(), &stubAudit{})

	if _, err := svc.UpdatePost(context.Background(), "missing", "x", "alice:pw"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestForumService_AddLike(t *testing.T) {
	posts := newStubPostRepo(seededPost("p1", "alice", time.Now()))
	svc := newForumSvc(posts, newStubAccountRepo(), &stubAudit{})

	ok, err := svc.AddLike(context.Background(), "p1")
	if err != nil || !ok {
		t.Fatalf("AddLike = %v, %v", ok, err)
	}
	if posts.posts["p1"].Likes != 4 {
		t.Fatalf("expected 4 likes, got %d", posts.posts["p1"].Likes)
	}

	ok, err = svc.AddLike(context.Background(), "missing")
	if err != nil || ok {
		t.Fatalf("AddLike on missing post = %v, %v; want false, nil", ok, err)
	}
}

func TestForumService_AddComment(t *testing.T) {
	posts := newStubPostRepo(seededPost("p1", "alice", time.Now()))
	svc := newForumSvc(posts, newStubAccountRepo(), &stubAudit{})

	post, err := svc.AddComment(context.Background(), "p1", ports.CommentInput{User: "bob", Message: "nice"})
	if err != nil {
		t.Fatalf("AddComment returned error: %v", err)
	}
	if len(post.Comments) != 1 || post.Comments[0].User != "bob" || post.Comments[0].Message != "nice" {
		t.Fatalf("unexpected comments: %+v", post.Comments)
	}
	if post.Comments[0].DateCreated.IsZero() {
		t.Fatalf("expected comment timestamp")
	}

	if _, err := svc.AddComment(context.Background(), "missing", ports.CommentInput{User: "bob"}); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestForumService_FindByTagsAndAuthor(t *testing.T) {
	posts := newStubPostRepo(
		seededPost("p1", "alice", time.Now(), "go"),
		seededPost("p2", "bob", time.Now(), "java"),
		seededPost("p3", "alice", time.Now(), "db", "go"),
	)
	svc := newForumSvc(posts, newStubAccountRepo(), &stubAudit{})

	byTags, err := svc.FindByTags(context.Background(), []string{"go", "rust"})
	if err != nil {
		t.Fatalf("FindByTags returned error: %v", err)
	}
	if len(byTags) != 2 || byTags[0].ID != "p1" || byTags[1].ID != "p3" {
		t.Fatalf("unexpected tag results: %v", ids(byTags))
	}

	byAuthor, err := svc.FindByAuthor(context.Background(), "bob")
	if err != nil {
		t.Fatalf("FindByAuthor returned error: %v", err)
	}
	if len(byAuthor) != 1 || byAuthor[0].ID != "p2" {
		t.Fatalf("unexpected author results: %v", ids(byAuthor))
	}
}

func TestForumService_FindByDateRange_Inclusive(t *testing.T) {
	posts := newStubPostRepo(
		seededPost("before", "a", day("2023-12-31 23:59")),
		seededPost("first", "a", day("2024-01-01 00:00")),
		seededPost("middle", "a", day("2024-01-15 12:00")),
		seededPost("last", "a", day("2024-01-31 23:59")),
		seededPost("after", "a", day("2024-02-01 00:00")),
	)
	svc := newForumSvc(posts, newStubAccountRepo(), &stubAudit{})

	got, err := svc.FindByDateRange(context.Background(), "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("FindByDateRange returned error: %v", err)
	}
	want := []string{"first", "middle", "last"}
	if gotIDs := ids(got); len(gotIDs) != len(want) || gotIDs[0] != want[0] || gotIDs[1] != want[1] || gotIDs[2] != want[2] {
		t.Fatalf("FindByDateRange = %v, want %v", gotIDs, want)
	}
}

func TestForumService_FindByDateRange_ParseError(t *testing.T) {
	svc := newForumSvc(newStubPostRepo(), newStubAccountRepo(), &stubAudit{})

	for _, tc := range [][2]string{{"2024-13-01", "2024-01-31"}, {"2024-01-01", "yesterday"}} {
		if _, err := svc.FindByDateRange(context.Background(), tc[0], tc[1]); !errors.Is(err, domain.ErrInvalidDate) {
			t.Fatalf("FindByDateRange(%q, %q): expected ErrInvalidDate, got %v", tc[0], tc[1], err)
		}
	}
}

func ids(posts []*domain.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}
