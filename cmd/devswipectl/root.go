package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"devswipe/pkg/client"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	server    string
	tokenFile string
	verbose   bool
}

// storedToken is what login writes to the token file.
type storedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".devswipe-token"
	}
	return filepath.Join(dir, "devswipe", "token.json")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "devswipectl",
		Short:         "Command line client for the DevSwipe API",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&g.server, "server", envOr("DEVSWIPE_SERVER", "http://localhost:8080"), "API base URL")
	root.PersistentFlags().StringVar(&g.tokenFile, "token-file", envOr("DEVSWIPE_TOKEN_FILE", defaultTokenFile()), "where the session token is kept")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log retries to stderr")

	root.AddCommand(
		newRegisterCmd(g),
		newLoginCmd(g),
		newLogoutCmd(g),
		newMeCmd(g),
		newProjectsCmd(g),
		newCollabsCmd(g),
		newSendCmd(g),
		newConversationsCmd(g),
		newMessagesCmd(g),
		newUnreadCmd(g),
		newWatchCmd(g),
	)
	return root
}

func (g *globalFlags) client() (*client.Client, error) {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return client.New(g.server, client.WithLogger(logger), client.WithUserAgent("devswipectl"))
}

// session loads the stored token. A missing file yields an empty session so
// authenticated commands fail with client.ErrNotAuthenticated.
func (g *globalFlags) session() (*client.Session, error) {
	s := client.NewSession()
	if tok := os.Getenv("DEVSWIPE_TOKEN"); tok != "" {
		s.Restore(tok, time.Time{})
		return s, nil
	}
	data, err := os.ReadFile(g.tokenFile)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}
	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse token file %s: %w", g.tokenFile, err)
	}
	s.Restore(st.Token, st.ExpiresAt)
	return s, nil
}

func (g *globalFlags) saveSession(s *client.Session) error {
	data, err := json.Marshal(storedToken{Token: s.Token(), ExpiresAt: s.ExpiresAt()})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(g.tokenFile), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	return os.WriteFile(g.tokenFile, data, 0o600)
}

func (g *globalFlags) clearSession() error {
	if err := os.Remove(g.tokenFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
