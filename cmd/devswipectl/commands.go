package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"devswipe/pkg/client"

	"github.com/spf13/cobra"
)

func newRegisterCmd(g *globalFlags) *cobra.Command {
	var in client.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			s := client.NewSession()
			res, err := c.Register(cmd.Context(), s, in)
			if err != nil {
				return err
			}
			if err := g.saveSession(s); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res.User)
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Username, "username", "", "public handle")
	cmd.Flags().StringVar(&in.Password, "password", "", "at least 8 characters")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(g *globalFlags) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			if password == "" {
				password = os.Getenv("DEVSWIPE_PASSWORD")
			}
			s := client.NewSession()
			res, err := c.Login(cmd.Context(), s, email, password)
			if err != nil {
				return err
			}
			if err := g.saveSession(s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (token expires %s)\n", res.User.Username, res.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password (or DEVSWIPE_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			s, err := g.session()
			if err != nil {
				return err
			}
			logoutErr := c.Logout(cmd.Context(), s)
			if err := g.clearSession(); err != nil {
				return err
			}
			if logoutErr != nil && !errors.Is(logoutErr, client.ErrNotAuthenticated) {
				return logoutErr
			}
			return nil
		},
	}
}

func newMeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, s, err := g.authed()
			if err != nil {
				return err
			}
			u, err := c.Me(cmd.Context(), s)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}
}

func newProjectsCmd(g *globalFlags) *cobra.Command {
	var q client.ProjectQuery
	var mine bool
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List project ideas",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			var page *client.List[client.Project]
			if mine {
				s, err := g.session()
				if err != nil {
					return err
				}
				page, err = c.MyProjects(cmd.Context(), s, q.ListOptions)
				if err != nil {
					return err
				}
			} else if page, err = c.ListProjects(cmd.Context(), q); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range page.Items {
				fmt.Fprintf(out, "%5d  %-12s  %s  [%s]\n", p.ID, p.Difficulty, p.Title, strings.Join(p.Tags, ", "))
			}
			fmt.Fprintf(out, "%d of %d\n", len(page.Items), page.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Tag, "tag", "", "only projects with this tag")
	cmd.Flags().StringVar(&q.Difficulty, "difficulty", "", "beginner, intermediate or advanced")
	cmd.Flags().StringVarP(&q.Search, "query", "q", "", "title or description substring")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "page size")
	cmd.Flags().IntVar(&q.Offset, "offset", 0, "skip this many")
	cmd.Flags().BoolVar(&mine, "mine", false, "list your own projects")
	return cmd
}

func newCollabsCmd(g *globalFlags) *cobra.Command {
	var q client.CollabQuery
	cmd := &cobra.Command{
		Use:   "collabs",
		Short: "List collaboration posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			page, err := c.ListCollabs(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range page.Items {
				fmt.Fprintf(out, "%5d  %-9s  %d/%d  %s\n", p.ID, p.Status, p.CurrentTeamSize, p.TargetTeamSize, p.Title)
			}
			fmt.Fprintf(out, "%d of %d\n", len(page.Items), page.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Skill, "skill", "", "only posts needing this skill")
	cmd.Flags().StringVar(&q.Status, "status", "", "active, filled, completed or cancelled")
	cmd.Flags().StringVarP(&q.Search, "query", "q", "", "title or description substring")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "page size")
	cmd.Flags().IntVar(&q.Offset, "offset", 0, "skip this many")
	return cmd
}

func newSendCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "send <user-id> <message>",
		Short: "Send a direct message",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			c, s, err := g.authed()
			if err != nil {
				return err
			}
			res, err := c.SendMessage(cmd.Context(), s, client.SendRequest{ReceiverID: to, Content: strings.Join(args[1:], " ")})
			if err != nil {
				return err
			}
			if !res.Success {
				return fmt.Errorf("%s: %s", res.Failure, res.Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent message %d\n", res.Message.ID)
			return nil
		},
	}
}

func newConversationsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "conversations",
		Aliases: []string{"inbox"},
		Short:   "List conversations, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, s, err := g.authed()
			if err != nil {
				return err
			}
			convs, err := c.Conversations(cmd.Context(), s)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, cv := range convs {
				fmt.Fprintf(out, "%5d  %-20s  (%d unread)  %s\n", cv.OtherUser.ID, cv.OtherUser.Username, cv.UnreadCount, cv.LastMessage)
			}
			return nil
		},
	}
}

func newMessagesCmd(g *globalFlags) *cobra.Command {
	var page, size int
	var markRead bool
	cmd := &cobra.Command{
		Use:   "messages <user-id>",
		Short: "Show the conversation with a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			other, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			c, s, err := g.authed()
			if err != nil {
				return err
			}
			mp, err := c.Messages(cmd.Context(), s, other, page, size)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range mp.Messages {
				fmt.Fprintf(out, "%s  %-16s  %s\n", m.CreatedAt.Local().Format("01-02 15:04"), m.Sender.Username, m.Content)
			}
			if mp.HasMore {
				fmt.Fprintf(out, "more: --page %d\n", mp.Page+1)
			}
			if markRead {
				if _, err := c.MarkAsRead(cmd.Context(), s, other); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "zero-based page")
	cmd.Flags().IntVar(&size, "size", 0, "messages per page")
	cmd.Flags().BoolVar(&markRead, "mark-read", false, "mark the conversation as read afterwards")
	return cmd
}

func newUnreadCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "unread",
		Short: "Print the number of unread messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, s, err := g.authed()
			if err != nil {
				return err
			}
			n, err := c.UnreadCount(cmd.Context(), s)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newWatchCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print realtime events until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, s, err := g.authed()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			err = c.StreamNotifications(ctx, s, func(e client.Event) error {
				switch e.Type {
				case client.EventNewMessage:
					m, err := e.Message()
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "message from %s: %s\n", m.Sender.Username, m.Content)
				case client.EventMessagesRead:
					r, err := e.MessagesRead()
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "user %d read %d message(s)\n", r.ReaderID, r.Count)
				case client.EventMessagesDropped:
					fmt.Fprintln(out, "some events were dropped; refresh your inbox")
				default:
					fmt.Fprintf(out, "%s %s\n", e.Type, e.Payload)
				}
				return nil
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func (g *globalFlags) authed() (*client.Client, *client.Session, error) {
	c, err := g.client()
	if err != nil {
		return nil, nil, err
	}
	s, err := g.session()
	if err != nil {
		return nil, nil, err
	}
	if !s.Authenticated() {
		return nil, nil, errors.New("not signed in: run devswipectl login")
	}
	return c, s, nil
}

func parseUserID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid user id %q", raw)
	}
	return uint(id), nil
}
