package posts

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/crucial707/springboard/cmd/cli/output"
	"github.com/spf13/cobra"
)

type post struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

type postListItem struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	ModifiedDate time.Time `json:"modifiedDate"`
}

// ==========================
// Init Posts
// ==========================
func InitPosts(rootCmd *cobra.Command) {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Manage posts",
	}

	postsCmd.AddCommand(
		listPostsCmd(),
		getPostCmd(),
		createPostCmd(),
		updatePostCmd(),
		deletePostCmd(),
	)

	rootCmd.AddCommand(postsCmd)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q", arg)
	}
	return id, nil
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

// ==========================
// LIST
// ==========================
func listPostsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []postListItem
			if err := apiRequest("GET", "/api/v1/posts", nil, &list); err != nil {
				return err
			}

			if asJSON {
				return printJSON(list)
			}

			rows := make([][]interface{}, 0, len(list))
			for _, p := range list {
				rows = append(rows, []interface{}{p.ID, p.Title, p.Author, p.ModifiedDate.Local().Format("2006-01-02 15:04")})
			}
			output.RenderTable([]string{"ID", "Title", "Author", "Modified"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")

	return cmd
}

// ==========================
// GET
// ==========================
func getPostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var p post
			if err := apiRequest("GET", fmt.Sprintf("/api/v1/posts/%d", id), nil, &p); err != nil {
				return err
			}
			return printJSON(p)
		},
	}
}

// ==========================
// CREATE
// ==========================
func createPostCmd() *cobra.Command {
	var title, content, author string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"title":   title,
				"content": content,
				"author":  author,
			}
			var id int64
			if err := apiRequest("POST", "/api/v1/posts", payload, &id); err != nil {
				return err
			}
			fmt.Printf("Created post %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "post title")
	cmd.Flags().StringVar(&content, "content", "", "post content")
	cmd.Flags().StringVar(&author, "author", "", "post author")

	return cmd
}

// ==========================
// UPDATE
// ==========================
func updatePostCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Replace the title and content of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			payload := map[string]string{
				"title":   title,
				"content": content,
			}
			var updated int64
			if err := apiRequest("PUT", fmt.Sprintf("/api/v1/posts/%d", id), payload, &updated); err != nil {
				return err
			}
			fmt.Printf("Updated post %d\n", updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new content")

	return cmd
}

// ==========================
// DELETE
// ==========================
func deletePostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := apiRequest("DELETE", fmt.Sprintf("/api/v1/posts/%d", id), nil, nil); err != nil {
				return err
			}
			fmt.Printf("Deleted post %d\n", id)
			return nil
		},
	}
}
