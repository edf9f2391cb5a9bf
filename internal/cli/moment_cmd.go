package cli

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/bluum/internal/cli/formatter"
	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/spf13/cobra"
)

func newMomentCmd(app *App, opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moment",
		Short: "Capture and browse gratitude moments",
	}
	cmd.AddCommand(
		newMomentAddCmd(app, opts),
		newMomentListCmd(app, opts),
	)
	return cmd
}

func newMomentAddCmd(app *App, opts *globalOpts) *cobra.Command {
	var imagePath, imageURL string

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Save a moment with text, an image, or both",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, err := opts.currentUser(cmd, app)
			if err != nil {
				return err
			}
			if imagePath != "" && imageURL != "" {
				return domain.Validationf("Use either --image or --image-url, not both")
			}

			if imagePath != "" {
				imageURL, err = uploadImageFile(cmd, app, user, imagePath)
				if err != nil {
					return err
				}
			}

			view, err := app.Moments.Create(ctx, user, contract.MomentCreateRequest{
				Text:     joinArgs(args),
				ImageURL: imageURL,
			})
			if err != nil {
				return err
			}
			return opts.render(cmd, view, func() string { return formatter.FormatMoment(view) })
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "Path to a JPEG, PNG, WebP or HEIC image to upload")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "URL of an already uploaded image")
	return cmd
}

func uploadImageFile(cmd *cobra.Command, app *App, user *domain.User, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", domain.Validationf("Cannot read image %s", filepath.Base(path))
	}
	defer f.Close()

	br := bufio.NewReader(f)
	head, _ := br.Peek(512)
	contentType := imageContentType(head, path)

	url, err := app.Moments.UploadImage(cmd.Context(), user, contentType, br)
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", filepath.Base(path), err)
	}
	return url, nil
}

// imageContentType sniffs the bytes, falling back to the extension for
// formats the sniffer does not know.
func imageContentType(head []byte, path string) string {
	ct := http.DetectContentType(head)
	if ct != "application/octet-stream" {
		return ct
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".heic", ".heif":
		return "image/heic"
	case ".webp":
		return "image/webp"
	}
	return ct
}

func newMomentListCmd(app *App, opts *globalOpts) *cobra.Command {
	req := contract.NewMomentListRequest()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List moments, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := opts.currentUser(cmd, app)
			if err != nil {
				return err
			}
			resp, err := app.Moments.List(cmd.Context(), user, req)
			if err != nil {
				return err
			}
			return opts.render(cmd, resp, func() string { return formatter.FormatMoments(resp, app.now()) })
		},
	}

	cmd.Flags().StringVar(&req.Cursor, "cursor", "", "Continue after this moment id")
	cmd.Flags().StringVarP(&req.Search, "search", "s", "", "Only moments whose text contains this")
	cmd.Flags().IntVar(&req.Limit, "limit", contract.DefaultMomentLimit, "Page size (1-100)")
	return cmd
}
