package domain

import "time"

type PostKind string

const (
	PostKindText  PostKind = "text"
	PostKindImage PostKind = "image"
	PostKindVideo PostKind = "video"
	PostKindLink  PostKind = "link"
)

func (k PostKind) Valid() bool {
	switch k {
	case PostKindText, PostKindImage, PostKindVideo, PostKindLink:
		return true
	}
	return false
}

type Comment struct {
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Post struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Kind      PostKind  `json:"kind"`
	Content   string    `json:"content,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	VideoURL  string    `json:"video_url,omitempty"`
	LinkURL   string    `json:"link_url,omitempty"`
	LikedBy   []string  `json:"liked_by"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasLike reports whether the given user already liked this post.
func (p *Post) HasLike(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// PostContent carries the mutable content fields of a post. Which of them is
// meaningful depends on the post kind; no cross-field rule is enforced.
type PostContent struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
	VideoURL string `json:"video_url"`
	LinkURL  string `json:"link_url"`
}

type PostRepository interface {
	FindByID(id string) (*Post, error)
	FindByIDAndOwner(id, ownerID string) (*Post, error)
	FindByOwner(ownerID string) ([]*Post, error)
	// CreateForOwner inserts the post and appends its id to the owner's
	// post_ids back-reference in a single transaction.
	CreateForOwner(post *Post) error
	// DeleteForOwner removes the post and pulls its id from the owner's
	// post_ids back-reference in a single transaction.
	DeleteForOwner(post *Post) error
	Update(post *Post) error
}

type PostService interface {
	CreatePost(username string, kind PostKind, content PostContent) (*Post, error)
	ListPosts(username string) ([]*Post, error)
	UpdatePost(username, postID string, content PostContent) (*Post, error)
	DeletePost(username, postID string) (*Post, error)
	LikePost(likerUsername, postID string) error
	AddComment(commenterUsername, postID, text string) error
}
