package services

import (
	"testing"
	"time"

	"designhub_backend/internal/models"
	"designhub_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlogRepo struct {
	posts  map[int64]*models.BlogPost
	nextID int64
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{posts: make(map[int64]*models.BlogPost), nextID: 1}
}

func (r *fakeBlogRepo) CreatePost(_ repositories.SQLExecutor, post *models.BlogPost) (*models.BlogPost, error) {
	stored := *post
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.posts[stored.ID] = &stored
	r.nextID++
	result := stored
	return &result, nil
}

func (r *fakeBlogRepo) GetPostByID(id int64) (*models.BlogPost, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	result := *post
	return &result, nil
}

func (r *fakeBlogRepo) GetPosts(publishedOnly bool) ([]models.BlogPost, error) {
	var out []models.BlogPost
	for _, post := range r.posts {
		if publishedOnly && !post.Published {
			continue
		}
		out = append(out, *post)
	}
	return out, nil
}

func (r *fakeBlogRepo) UpdatePost(_ repositories.SQLExecutor, post *models.BlogPost) error {
	if _, ok := r.posts[post.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *post
	r.posts[post.ID] = &stored
	return nil
}

func (r *fakeBlogRepo) DeletePost(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakeBlogRepo) CountPosts() (int, error) {
	return len(r.posts), nil
}

func TestBlogDraftVisibility(t *testing.T) {
	svc := NewBlogService(newFakeBlogRepo(), nil)

	draft, err := svc.CreatePost(1, CreateBlogPostRequest{Title: "Draft", Content: "wip"})
	require.NoError(t, err)
	published, err := svc.CreatePost(1, CreateBlogPostRequest{Title: "Live", Content: "done", Published: true})
	require.NoError(t, err)

	// Anonymous readers only see published posts.
	posts, err := svc.GetPosts(false)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, published.ID, posts[0].ID)

	_, err = svc.GetPostByID(draft.ID, false)
	assert.ErrorIs(t, err, ErrBlogPostNotFound)

	// Admins see drafts.
	got, err := svc.GetPostByID(draft.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "Draft", got.Title)

	all, err := svc.GetPosts(true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBlogUpdateAndDelete(t *testing.T) {
	svc := NewBlogService(newFakeBlogRepo(), nil)

	post, err := svc.CreatePost(1, CreateBlogPostRequest{Title: "Original", Content: "body"})
	require.NoError(t, err)

	newTitle := "Revised"
	publish := true
	updated, err := svc.UpdatePost(post.ID, UpdateBlogPostRequest{Title: &newTitle, Published: &publish})
	require.NoError(t, err)
	assert.Equal(t, "Revised", updated.Title)
	assert.True(t, updated.Published)

	empty := ""
	_, err = svc.UpdatePost(post.ID, UpdateBlogPostRequest{Title: &empty})
	assert.ErrorIs(t, err, ErrBlogValidation)

	require.NoError(t, svc.DeletePost(post.ID))
	assert.ErrorIs(t, svc.DeletePost(post.ID), ErrBlogPostNotFound)
}
