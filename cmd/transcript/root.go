package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
	"github.com/anatolykoptev/go_transcript/internal/transcriptserver"
	"github.com/anatolykoptev/go_transcript/internal/youtube"
	"github.com/spf13/cobra"
)

func newRootCommand(getenv func(string) string) *cobra.Command {
	var (
		langs   []string
		html    bool
		asJSON  bool
		apiKey  string
		timeout time.Duration
		verbose bool
	)

	cmd := &cobra.Command{
		Use:           "transcript <video-url-or-id>",
		Short:         "Rebuild a readable article from YouTube captions",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				return fmt.Errorf("provide one video URL or ID. Example: transcript https://youtu.be/dQw4w9WgXcQ")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			if apiKey == "" {
				apiKey = getenv("YOUTUBE_API_KEY")
			}
			yt := youtube.NewClient(youtube.Options{
				HTTPClient: &http.Client{Timeout: timeout},
				APIKeys:    []string{apiKey},
			})
			svc := transcriptserver.NewService(yt, yt, transcript.NewBuilder(transcript.WithLanguages(langs)))

			out, err := svc.Transcript(cmd.Context(), engine.TranscriptInput{
				Video: args[0],
				HTML:  html,
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			_, err = fmt.Fprintln(w, out.Text)
			return err
		},
	}

	cmd.Flags().StringSliceVarP(&langs, "lang", "l", nil, "Accepted caption languages (default en-GB,en,en-US,ru)")
	cmd.Flags().BoolVar(&html, "html", false, "Render paragraph breaks as <br><br>")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "YouTube Data API key (default $YOUTUBE_API_KEY)")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "HTTP timeout per upstream request")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")
	return cmd
}
