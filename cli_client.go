package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careerconnect/careerconnect/client"
	"github.com/careerconnect/careerconnect/web/service"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:5000"

func openClient(cmd *cobra.Command) (*client.Client, error) {
	url, _ := cmd.Flags().GetString("url")
	store, err := client.DefaultFileStore()
	if err != nil {
		return nil, err
	}
	session, err := client.OpenSession(store)
	if err != nil {
		return nil, err
	}
	return client.New(url, session), nil
}

// clientRun wraps a client action with a session-backed client and a
// command-scoped context.
func clientRun(fn func(ctx context.Context, c *client.Client, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := openClient(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		return fn(ctx, c, cmd, args)
	}
}

func newClientCmd() *cobra.Command {
	var clientCmd = &cobra.Command{
		Use:          "client",
		Short:        "Talk to a running server",
		SilenceUsage: true,
	}
	clientCmd.PersistentFlags().String("url", defaultAPIURL, "server base URL")

	var registerCmd = &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: clientRun(func(ctx context.Context, c *client.Client, cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if _, err := c.Register(ctx, name, email, password); err != nil {
				return err
			}
			fmt.Println("Registration successful, you can now log in")
			return nil
		}),
	}
	registerCmd.Flags().String("name", "", "display name")
	registerCmd.Flags().String("email", "", "login email")
	registerCmd.Flags().String("password", "", "login password")

	var loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		RunE: clientRun(func(ctx context.Context, c *client.Client, cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			u, err := c.Login(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s)\n", u.Name, u.Role)
			return nil
		}),
	}
	loginCmd.Flags().String("email", "", "login email")
	loginCmd.Flags().String("password", "", "login password")

	var logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: clientRun(func(ctx context.Context, c *client.Client, _ *cobra.Command, _ []string) error {
			if err := c.Logout(ctx); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		}),
	}

	var profileCmd = &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in account",
		RunE: clientRun(func(ctx context.Context, c *client.Client, _ *cobra.Command, _ []string) error {
			u, err := c.Profile(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s> role=%s\n", u.Name, u.Email, u.Role)
			p := u.Profile
			for _, f := range [][2]string{
				{"Full name", p.FullName},
				{"Education", p.Education},
				{"Degree", p.Degree},
				{"Skills", p.Skills},
				{"Projects", p.Projects},
				{"Certifications", p.Certifications},
			} {
				if f[1] != "" {
					fmt.Printf("  %-15s %s\n", f[0]+":", f[1])
				}
			}
			return nil
		}),
	}

	var jobsCmd = &cobra.Command{
		Use:   "jobs",
		Short: "List job postings",
		RunE: clientRun(func(ctx context.Context, c *client.Client, _ *cobra.Command, _ []string) error {
			jobs, err := c.Jobs(ctx)
			if err != nil {
				return err
			}
			for _, j := range jobs {
				salary := "-"
				if j.Salary != nil {
					salary = fmt.Sprintf("%.0f", *j.Salary)
				}
				fmt.Printf("%s  %s @ %s (%s) salary=%s\n", j.ID, j.Title, j.Company, j.Location, salary)
			}
			return nil
		}),
	}

	var applyCmd = &cobra.Command{
		Use:   "apply JOB_ID",
		Short: "Apply to a job",
		Args:  cobra.ExactArgs(1),
		RunE: clientRun(func(ctx context.Context, c *client.Client, cmd *cobra.Command, args []string) error {
			resume, _ := cmd.Flags().GetString("resume")
			cover, _ := cmd.Flags().GetString("cover-letter")
			var err error
			if resume == "" {
				_, err = c.ApplyWithProfile(ctx, args[0], cover)
			} else {
				_, err = c.Apply(ctx, args[0], service.ApplyInput{Resume: resume, CoverLetter: cover})
			}
			if err != nil {
				return err
			}
			fmt.Println("Application submitted")
			return nil
		}),
	}
	applyCmd.Flags().String("resume", "", "resume text (defaults to the stored profile)")
	applyCmd.Flags().String("cover-letter", "", "cover letter")

	var trackCmd = &cobra.Command{
		Use:   "track",
		Short: "Follow the status of your applications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			interval, _ := cmd.Flags().GetDuration("interval")
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}
			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			if !c.Session().LoggedIn() {
				return client.ErrNotLoggedIn
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			t := client.NewTracker(c, printSnapshot)
			t.Interval = interval
			if err := t.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
	trackCmd.Flags().Duration("interval", client.DefaultPollInterval, "poll interval")

	clientCmd.AddCommand(registerCmd, loginCmd, logoutCmd, profileCmd, jobsCmd, applyCmd, trackCmd)
	return clientCmd
}

func printSnapshot(s client.Snapshot) {
	ts := s.At.Format(time.TimeOnly)
	if s.Err != nil {
		fmt.Printf("[%s] poll failed: %v\n", ts, s.Err)
		return
	}
	st := s.Stats
	fmt.Printf("[%s] total=%d approved=%d rejected=%d pending=%d success=%.1f%%\n",
		ts, st.Total, st.Approved, st.Rejected, st.Pending, st.SuccessRate)
	for _, a := range s.Applications {
		title := "(deleted job)"
		if a.Job != nil {
			title = a.Job.Title
		}
		fmt.Printf("  %-10s %s\n", a.Status, title)
	}
}
