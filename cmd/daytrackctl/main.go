package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/daytrack/daytrack/analytics"
	"github.com/daytrack/daytrack/client"
	"github.com/daytrack/daytrack/report"
)

var serviceURL string
var debug bool

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "daytrackctl",
		Short: "daytrackctl manages activities, reminders and reports",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})

			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				_ = os.Setenv("DAYTRACK_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	defaultURL := getEnv("DAYTRACK_SERVICE_URL", "http://localhost:5000")
	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", defaultURL, "Base URL of the activity store")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newListTasksCmd())
	rootCmd.AddCommand(newCreateTaskCmd())
	rootCmd.AddCommand(newCompleteTaskCmd())
	rootCmd.AddCommand(newDeleteTaskCmd())
	rootCmd.AddCommand(newListRemindersCmd())
	rootCmd.AddCommand(newAddReminderCmd())
	rootCmd.AddCommand(newDeleteReminderCmd())
	rootCmd.AddCommand(newTopActivitiesCmd())
	rootCmd.AddCommand(newOverviewCmd())
	rootCmd.AddCommand(newGenerateReportCmd())

	return rootCmd
}

func newClient() (*client.Client, error) {
	return client.New(serviceURL)
}

// authedClient builds a client and restores the stored session. Commands
// that talk to the store need a valid token before doing anything else.
func authedClient(ctx context.Context) (*client.Client, error) {
	c, err := newClient()
	if err != nil {
		return nil, err
	}
	c.Session().Restore(ctx)
	if c.Session().Status() != client.StatusAuthenticated {
		return nil, fmt.Errorf("not logged in; run `daytrackctl login` first")
	}
	return c, nil
}

func newLoginCmd() *cobra.Command {
	var name, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			res := c.Session().Login(ctx, name, password)
			if !res.Success {
				return fmt.Errorf("%s", res.Message)
			}
			fmt.Printf("Logged in as %s\n", c.Session().User().Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Account name (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var name, password string
	var noWait bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []client.Option
			if noWait {
				opts = append(opts, client.WithRegisterDelay(0))
			}
			c, err := client.New(serviceURL, opts...)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			if !noWait {
				fmt.Println("Creating your account...")
			}
			res := c.Session().Register(ctx, name, password)
			if !res.Success {
				return fmt.Errorf("%s", res.Message)
			}
			fmt.Printf("Registered as %s\n", c.Session().User().Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Account name (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Skip the registration processing delay")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			c.Session().Logout()
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			c, err := authedClient(ctx)
			if err != nil {
				return err
			}
			u := c.Session().User()
			fmt.Printf("%s (%s)\n", u.Name, u.ID)
			return nil
		},
	}
}

func newListTasksCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list-tasks",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			c, err := authedClient(ctx)
			if err != nil {
				return err
			}
			tasks, err := c.ListTasks(ctx)
			if err != nil {
				return err
			}
			if status != "" {
				filtered := tasks[:0]
				for _, t := range tasks {
					if t.Status == client.TaskStatus(status) {
						filtered = append(filtered, t)
					}
				}
				tasks = filtered
			}
			fmt.Println(renderTasks(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending|completed)")
	return cmd
}

func newCreateTaskCmd() *cobra.Command {
	var name, date, timeOfDay string

	cmd := &cobra.Command{
		Use:   "create-task",
		Short: "Record a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			c, err := authedClient(ctx)
			if err != nil {
				return err
			}
			t, err := c.CreateTask(ctx, client.CreateTaskRequest{Name: name, Date: date, Time: timeOfDay})
			if err != nil {
				return err
			}
			fmt.Printf("Task created: %s - %s\n", t.ID, t.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Activity name (required)")
	cmd.Flags().StringVar(&date, "date", "", "Date, 2006-01-02 (required)")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "Time, 15:04 (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func newCompleteTaskCmd() *cobra.Command {
	var taskID string

	cmd := &cobra.Command{
		Use:   "complete-task",
		Short: "Mark a task as completed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			c, err := authedClient(ctx)
			if err != nil {
				return err
			}
			if err := c.CompleteTask(ctx, taskID); err != nil {
				return err
			}
			fmt.Println("Task marked as completed")
			return nil
		},
	}

	cmd.Flags().StringVar(&taskID, "id", "", "Task ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newDeleteTaskCmd() *cobra.Command {
	var taskID string

	cmd := &cobra.Command{
		Use:   "delete-task",
		Short: "Delete a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			c, err := authedClient(ctx)
			if err != nil {
				return err
			}
			if err := c.DeleteTask(ctx, taskID); err != nil {
				return err
			}
			fmt.Println("Task deleted")
			return nil
		},
	}

	cmd.Flags().StringVar(&taskID, "id", "", "Task ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newListRemindersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-reminders",
		Short: "List reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			c, err := authedClient(ctx)
			if err != nil {
				return err
			}
			reminders, err := c.ListReminders(ctx)
			if err != nil {
				return err
			}
			fmt.Println(renderReminders(reminders))
			return nil
		},
	}
}

func newAddReminderCmd() *cobra.Command {
	var text, date, timeOfDay string

	cmd := &cobra.Command{
		Use:   "add-reminder",
		Short: "Record a new reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			c, err := authedClient(ctx)
			if err != nil {
				return err
			}
			r, err := c.CreateReminder(ctx, client.CreateReminderRequest{Text: text, Date: date, Time: timeOfDay})
			if err != nil {
				return err
			}
			fmt.Printf("Reminder added: %s\n", r.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Reminder text (required)")
	cmd.Flags().StringVar(&date, "date", "", "Date, 2006-01-02 (required)")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "Time, 15:04 (required)")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func newDeleteReminderCmd() *cobra.Command {
	var reminderID string

	cmd := &cobra.Command{
		Use:   "delete-reminder",
		Short: "Delete a reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			c, err := authedClient(ctx)
			if err != nil {
				return err
			}
			if err := c.DeleteReminder(ctx, reminderID); err != nil {
				return err
			}
			fmt.Println("Reminder deleted")
			return nil
		},
	}

	cmd.Flags().StringVar(&reminderID, "id", "", "Reminder ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newTopActivitiesCmd() *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "top-activities",
		Short: "Show the most frequently performed activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			c, err := authedClient(ctx)
			if err != nil {
				return err
			}
			tasks, err := c.ListTasks(ctx)
			if err != nil {
				return err
			}
			fmt.Println(renderFrequency(analytics.RankByFrequency(tasks, topN)))
			return nil
		},
	}

	cmd.Flags().IntVar(&topN, "top", analytics.DefaultTopN, "Number of entries to show")
	return cmd
}

func newOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show the weekday distribution of activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			c, err := authedClient(ctx)
			if err != nil {
				return err
			}
			tasks, err := c.ListTasks(ctx)
			if err != nil {
				return err
			}
			fmt.Println(renderWeekdays(analytics.BucketByWeekday(tasks)))
			return nil
		},
	}
}

func newGenerateReportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "generate-report",
		Short: "Build the weekly report and persist its metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			c, err := authedClient(ctx)
			if err != nil {
				return err
			}
			tasks, err := c.ListTasks(ctx)
			if err != nil {
				return err
			}

			rep, perr := report.NewSynthesizer(c).Generate(ctx, tasks)
			artifact := renderReport(rep)

			if outPath == "" {
				outPath = fmt.Sprintf("weekly-report-%s.txt", rep.ID)
			}
			if err := os.WriteFile(outPath, []byte(artifact), 0o644); err != nil {
				return err
			}
			fmt.Println(artifact)
			fmt.Printf("Report written to %s\n", outPath)

			// The artifact stands even when the metadata persist failed.
			if perr != nil {
				log.Warn().Err(perr).Msg("report metadata was not persisted")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Artifact output path")
	return cmd
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
