// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	postServer  string
	postToken   string
	postTitle   string
	postContent string
	postTags    []string
)

// postCmd submits an entry to a running server through the entries API.
var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Submit a post to a running JotPress server",
	Long: `Submit a post through the entries API of a running server.

The content can be passed with --content or piped on stdin. Hashtags in
the content become tags, and the category is picked automatically.

Examples:
  jotpress post --token $API_TOKEN --title "随手记" --content "下午散步 #生活"
  cat note.md | jotpress post --token $API_TOKEN --title "Note"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPost()
	},
}

func init() {
	postCmd.Flags().StringVar(&postServer, "server", "http://localhost:8080", "Base URL of the server")
	postCmd.Flags().StringVar(&postToken, "token", os.Getenv("API_TOKEN"), "API token (defaults to $API_TOKEN)")
	postCmd.Flags().StringVar(&postTitle, "title", "", "Post title (required)")
	postCmd.Flags().StringVar(&postContent, "content", "", "Post content; read from stdin when empty")
	postCmd.Flags().StringSliceVar(&postTags, "tag", nil, "Explicit tag, repeatable")
	rootCmd.AddCommand(postCmd)
}

func runPost() error {
	if postToken == "" {
		return fmt.Errorf("no API token: pass --token or set API_TOKEN")
	}
	if postTitle == "" {
		return fmt.Errorf("--title is required")
	}

	content := postContent
	if content == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		content = string(data)
	}

	body, err := json.Marshal(map[string]any{
		"title":   postTitle,
		"content": content,
		"tags":    postTags,
		"source":  "api",
	})
	if err != nil {
		return err
	}

	url := strings.TrimSuffix(postServer, "/") + "/api/entries"
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+postToken)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("submit post: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var created struct {
		PostID   int      `json:"postId"`
		Category string   `json:"category"`
		Tags     []string `json:"tags"`
	}
	if err := json.Unmarshal(payload, &created); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	fmt.Printf("created post %d in category %q", created.PostID, created.Category)
	if len(created.Tags) > 0 {
		fmt.Printf(" with tags %s", strings.Join(created.Tags, ", "))
	}
	fmt.Println()
	return nil
}
