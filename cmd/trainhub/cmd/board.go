package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trainhub/trainhub/internal/adapter/outbound/portal"
)

var (
	postBoardID  int64
	postTitle    string
	postContent  string
	postCategory string
	commentBody  string
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse the community boards",
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards",
	RunE:  runBoardList,
}

var boardPostsCmd = &cobra.Command{
	Use:   "posts <board-id>",
	Short: "List posts on a board",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardPosts,
}

var boardShowCmd = &cobra.Command{
	Use:   "show <post-id>",
	Short: "Show a post with its comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardShow,
}

var boardPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Write a new post",
	RunE:  runBoardPost,
}

var boardCommentCmd = &cobra.Command{
	Use:   "comment <post-id>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardComment,
}

func init() {
	boardPostCmd.Flags().Int64Var(&postBoardID, "board", 0, "board ID")
	boardPostCmd.Flags().StringVar(&postTitle, "title", "", "post title")
	boardPostCmd.Flags().StringVar(&postContent, "content", "", "post body")
	boardPostCmd.Flags().StringVar(&postCategory, "category", "", "post category")
	boardCommentCmd.Flags().StringVar(&commentBody, "content", "", "comment body")

	boardCmd.AddCommand(boardListCmd, boardPostsCmd, boardShowCmd, boardPostCmd, boardCommentCmd)
	rootCmd.AddCommand(boardCmd)
}

func runBoardList(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	boards, err := app.client.Boards(cmd.Context())
	if err != nil {
		return err
	}
	if len(boards) == 0 {
		fmt.Println("No boards found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, b := range boards {
		fmt.Fprintf(w, "%d\t%s\n", b.ID, b.Name)
	}
	return w.Flush()
}

func runBoardPosts(cmd *cobra.Command, args []string) error {
	boardID, err := parseID(args[0], "board")
	if err != nil {
		return err
	}

	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	posts, err := app.client.Posts(cmd.Context(), boardID)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Println("No posts found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tVIEWS\tCREATED")
	for _, p := range posts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			p.ID, p.Title, p.AuthorNickname, p.ViewCount, p.CreatedAt)
	}
	return w.Flush()
}

func runBoardShow(cmd *cobra.Command, args []string) error {
	postID, err := parseID(args[0], "post")
	if err != nil {
		return err
	}

	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	post, err := app.client.Post(cmd.Context(), postID)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", post.Title)
	fmt.Printf("by %s on %s, %d views\n\n", post.AuthorNickname, post.CreatedAt, post.ViewCount)
	fmt.Println(post.Content)

	comments, err := app.client.Comments(cmd.Context(), postID)
	if err != nil {
		return err
	}
	if len(comments) > 0 {
		fmt.Printf("\nComments (%d):\n", len(comments))
		for _, c := range comments {
			fmt.Printf("  %s: %s\n", c.User, c.Content)
		}
	}
	return nil
}

func runBoardPost(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	if err := app.requireAuth(); err != nil {
		return err
	}
	if postBoardID == 0 || postTitle == "" || postContent == "" {
		return fmt.Errorf("--board, --title and --content are required")
	}

	err = app.client.CreatePost(cmd.Context(), portal.NewPost{
		Title:    postTitle,
		Content:  postContent,
		Category: postCategory,
		BoardID:  postBoardID,
	})
	if err != nil {
		return err
	}
	fmt.Println("Post created.")
	return nil
}

func runBoardComment(cmd *cobra.Command, args []string) error {
	postID, err := parseID(args[0], "post")
	if err != nil {
		return err
	}

	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	if err := app.requireAuth(); err != nil {
		return err
	}
	if commentBody == "" {
		return fmt.Errorf("--content is required")
	}

	err = app.client.CreateComment(cmd.Context(), portal.NewComment{
		PostID:  postID,
		Content: commentBody,
	})
	if err != nil {
		return err
	}
	fmt.Println("Comment created.")
	return nil
}

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s ID %q", what, raw)
	}
	return id, nil
}
