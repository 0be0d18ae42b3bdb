package sitectl

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/louisbranch/louisbranch.dev/internal/site/storage"
)

var (
	postTitle   string
	postSlug    string
	postContent string
	postFile    string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Create, inspect, and edit blog posts",
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a blog post",
	Long: `Create a blog post from flags.

Content comes from --content or --file. When --slug is omitted it is
derived from the title.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := resolveContent()
		if err != nil {
			return err
		}
		if strings.TrimSpace(postTitle) == "" {
			return fmt.Errorf("--title is required")
		}
		if content == "" {
			return fmt.Errorf("post content is required (--content or --file)")
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		post, err := store.CreatePost(cmd.Context(), storage.Post{
			Title:   postTitle,
			Slug:    postSlug,
			Content: content,
		})
		if err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created post %d (%s)\n", post.ID, post.Slug)
		return nil
	},
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		posts, err := store.ListPosts(cmd.Context())
		if err != nil {
			return fmt.Errorf("list posts: %w", err)
		}
		if len(posts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No posts found.")
			return nil
		}
		for _, post := range posts {
			fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s  %s (%s)\n",
				post.ID, post.CreatedAt.UTC().Format("2006-01-02"), post.Title, post.Slug)
		}
		return nil
	},
}

var postShowCmd = &cobra.Command{
	Use:   "show <id|slug>",
	Short: "Show a post by id or slug",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		post, err := lookupPost(cmd, store, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "id:      %d\n", post.ID)
		fmt.Fprintf(out, "title:   %s\n", post.Title)
		fmt.Fprintf(out, "slug:    %s\n", post.Slug)
		fmt.Fprintf(out, "created: %s\n", post.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "updated: %s\n", post.UpdatedAt.UTC().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "\n%s\n", post.Content)
		return nil
	},
}

var postUpdateCmd = &cobra.Command{
	Use:   "update <id|slug>",
	Short: "Update a post's title or content",
	Long: `Update a post in place. Only the provided flags change; the slug is
never rewritten so published URLs stay stable.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := resolveContent()
		if err != nil {
			return err
		}
		if strings.TrimSpace(postTitle) == "" && content == "" {
			return fmt.Errorf("nothing to update (--title, --content, or --file)")
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		post, err := lookupPost(cmd, store, args[0])
		if err != nil {
			return err
		}
		if strings.TrimSpace(postTitle) != "" {
			post.Title = postTitle
		}
		if content != "" {
			post.Content = content
		}

		updated, err := store.UpdatePost(cmd.Context(), post)
		if err != nil {
			return fmt.Errorf("update post: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated post %d (%s)\n", updated.ID, updated.Slug)
		return nil
	},
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <id|slug>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		post, err := lookupPost(cmd, store, args[0])
		if err != nil {
			return err
		}
		if err := store.DeletePost(cmd.Context(), post.ID); err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted post %d (%s)\n", post.ID, post.Slug)
		return nil
	},
}

func init() {
	postCreateCmd.Flags().StringVar(&postTitle, "title", "", "post title")
	postCreateCmd.Flags().StringVar(&postSlug, "slug", "", "post slug (derived from title when omitted)")
	postCreateCmd.Flags().StringVar(&postContent, "content", "", "post body")
	postCreateCmd.Flags().StringVar(&postFile, "file", "", "read the post body from a file")

	postUpdateCmd.Flags().StringVar(&postTitle, "title", "", "new post title")
	postUpdateCmd.Flags().StringVar(&postContent, "content", "", "new post body")
	postUpdateCmd.Flags().StringVar(&postFile, "file", "", "read the new post body from a file")

	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postListCmd)
	postCmd.AddCommand(postShowCmd)
	postCmd.AddCommand(postUpdateCmd)
	postCmd.AddCommand(postDeleteCmd)
}

func resolveContent() (string, error) {
	if strings.TrimSpace(postFile) != "" {
		data, err := os.ReadFile(postFile)
		if err != nil {
			return "", fmt.Errorf("read content file: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
	return postContent, nil
}

// lookupPost resolves a numeric id first, then falls back to a slug match.
func lookupPost(cmd *cobra.Command, store storage.PostStore, ref string) (storage.Post, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil && id > 0 {
		post, err := store.GetPost(cmd.Context(), id)
		if err != nil {
			return storage.Post{}, fmt.Errorf("get post %d: %w", id, err)
		}
		return post, nil
	}
	post, err := store.GetPostBySlug(cmd.Context(), ref)
	if err != nil {
		return storage.Post{}, fmt.Errorf("get post %q: %w", ref, err)
	}
	return post, nil
}
