package portal

import (
	"context"
	"fmt"
)

// Boards lists the community board categories.
func (c *Client) Boards(ctx context.Context) ([]Board, error) {
	var boards []Board
	if err := c.get(ctx, "board", &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// Posts lists the posts of a board.
func (c *Client) Posts(ctx context.Context, boardID int64) ([]Post, error) {
	var posts []Post
	if err := c.get(ctx, fmt.Sprintf("board/posts/board/%d", boardID), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Post fetches a single post.
func (c *Client) Post(ctx context.Context, postID int64) (*Post, error) {
	var post Post
	if err := c.get(ctx, fmt.Sprintf("board/posts/%d", postID), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost creates a board post. Requires authentication.
func (c *Client) CreatePost(ctx context.Context, post NewPost) error {
	return c.post(ctx, "board/posts/create", post, nil)
}

// Comments lists the comments on a post.
func (c *Client) Comments(ctx context.Context, postID int64) ([]Comment, error) {
	var comments []Comment
	if err := c.get(ctx, fmt.Sprintf("board/comments/post/%d", postID), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment adds a comment to a post. Requires authentication.
func (c *Client) CreateComment(ctx context.Context, comment NewComment) error {
	return c.post(ctx, "board/comments/create", comment, nil)
}
