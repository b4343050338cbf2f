// Command taskctl is the terminal client for the taskdesk backend: the
// role-gated views of the web UI (tasks, reports, statistics, users,
// notifications) rendered as subcommands over the same REST contract.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/taskdesk/client-go/internal/core/domain"
	"github.com/taskdesk/client-go/internal/core/ports"
	"github.com/taskdesk/client-go/internal/core/service"
	"github.com/taskdesk/client-go/internal/infrastructure/config"
	"github.com/taskdesk/client-go/internal/infrastructure/rest"
	filestate "github.com/taskdesk/client-go/internal/infrastructure/state/file"
	redisstate "github.com/taskdesk/client-go/internal/infrastructure/state/redis"
	"github.com/taskdesk/client-go/internal/notify"
	"github.com/taskdesk/client-go/pkg/logger"
)

type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	store   ports.StateStore
	session *service.SessionService
	theme   *service.ThemeService
	auth    ports.AuthAPI
	tasks   ports.TaskAPI
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	// Session recovery runs once before any command, exactly like the
	// provider bootstrap in the web client. Commands other than login
	// see either a recovered session or a clean unauthenticated state.
	a.session.CheckAuth(ctx)

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if credErr, ok := err.(*rest.CredentialError); ok {
			fmt.Fprintln(os.Stderr, "error:", credErr.Message())
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	var store ports.StateStore
	switch cfg.State.Backend {
	case "redis":
		client, err := redisstate.Connect(ctx, redisstate.Config{
			Addr: cfg.State.Redis.Addr,
			DB:   cfg.State.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		store = redisstate.NewStore(client)
	default:
		fs, err := filestate.NewStore(cfg.State.Dir)
		if err != nil {
			return nil, err
		}
		store = fs
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	client := rest.NewClient(cfg.APIBaseURL, store, httpClient, log)
	auth := rest.NewAuthAPI(client)
	tasks := rest.NewTaskAPI(client)

	theme := service.NewThemeService(store, nil, ports.ThemeApplierFunc(func(t domain.Theme) {
		log.Debug().Str("theme", string(t)).Msg("theme applied")
	}), domain.Theme(cfg.Theme.Default), log)

	return &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		session: service.NewSessionService(store, auth, log),
		theme:   theme,
		auth:    auth,
		tasks:   tasks,
	}, nil
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "logout":
		a.session.Logout()
		fmt.Println("logged out")
		return nil
	case "whoami":
		return a.whoami()
	case "tasks":
		return a.listTasks(ctx, args)
	case "task":
		return a.showTask(ctx, args)
	case "create-task":
		return a.createTask(ctx, args)
	case "update-task":
		return a.updateTask(ctx, args)
	case "delete-task":
		return a.deleteTask(ctx, args)
	case "complete":
		return a.completeTask(ctx, args)
	case "reject":
		return a.rejectTask(ctx, args)
	case "reports":
		return a.listReports(ctx, args)
	case "review":
		return a.reviewReport(ctx, args)
	case "notifications":
		return a.notifications(ctx, args)
	case "stats":
		return a.statistics(ctx)
	case "users":
		return a.listUsers(ctx)
	case "create-user":
		return a.createUser(ctx, args)
	case "update-user":
		return a.updateUser(ctx, args)
	case "delete-user":
		return a.deleteUser(ctx, args)
	case "theme":
		return a.themeCmd(args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) requireAuth() (*domain.User, error) {
	user := a.session.CurrentUser()
	if user == nil {
		return nil, fmt.Errorf("not logged in, run: taskctl login")
	}
	return user, nil
}

func (a *app) requireManager() (*domain.User, error) {
	user, err := a.requireAuth()
	if err != nil {
		return nil, err
	}
	if !domain.IsManager(user) {
		return nil, fmt.Errorf("command requires a manager role")
	}
	return user, nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	_ = fs.Parse(args)

	err := a.session.Login(ctx, ports.LoginData{Username: *username, Password: *password})
	if err != nil {
		return err
	}
	user := a.session.CurrentUser()
	fmt.Printf("logged in as %s (%s)\n", user.Username, user.Profile.Role)
	return nil
}

func (a *app) whoami() error {
	user, err := a.requireAuth()
	if err != nil {
		return err
	}
	fmt.Printf("%s %s <%s> role=%s tasks=%d/%d\n",
		user.FirstName, user.LastName, user.Email, user.Profile.Role,
		user.Profile.CurrentTaskCount, user.Profile.MaxTasks)
	return nil
}

func (a *app) listTasks(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks", flag.ExitOnError)
	mine := fs.Bool("mine", false, "only tasks assigned to me")
	_ = fs.Parse(args)

	user, err := a.requireAuth()
	if err != nil {
		return err
	}
	tasks, err := a.tasks.GetTasks(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDIFFICULTY\tSTATUS\tASSIGNEE")
	for _, t := range tasks {
		// Worker views only ever show own tasks; the endpoint itself is
		// unfiltered, so the narrowing happens here.
		if (*mine || domain.IsWorker(user)) && (t.AssignedTo == nil || *t.AssignedTo != user.ID) {
			continue
		}
		assignee := "-"
		if t.AssignedToName != "" {
			assignee = t.AssignedToName
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Difficulty, t.Status, assignee)
	}
	return w.Flush()
}

func (a *app) showTask(ctx context.Context, args []string) error {
	id, err := idArg(args, "task")
	if err != nil {
		return err
	}
	if _, err := a.requireAuth(); err != nil {
		return err
	}
	task, err := a.tasks.GetTask(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("#%d %s [%s]\n%s\nstatus=%s priority=%d estimated=%.1fh\n",
		task.ID, task.Title, task.Difficulty, task.Description, task.Status, task.Priority, task.EstimatedHours)
	return nil
}

func (a *app) createTask(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-task", flag.ExitOnError)
	title := fs.String("title", "", "task title")
	desc := fs.String("desc", "", "task description")
	difficulty := fs.String("difficulty", "regular", "adiestrado|regular|especialista")
	hours := fs.Float64("hours", 1, "estimated hours")
	priority := fs.Int("priority", 1, "priority")
	_ = fs.Parse(args)

	if _, err := a.requireManager(); err != nil {
		return err
	}
	result, err := a.tasks.CreateTask(ctx, domain.CreateTaskData{
		Title:          *title,
		Description:    *desc,
		Difficulty:     domain.TaskDifficulty(*difficulty),
		EstimatedHours: *hours,
		Priority:       *priority,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s (task #%d)\n", result.Message, result.Task.ID)
	return nil
}

func (a *app) updateTask(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-task", flag.ExitOnError)
	title := fs.String("title", "", "new title")
	desc := fs.String("desc", "", "new description")
	difficulty := fs.String("difficulty", "", "adiestrado|regular|especialista")
	hours := fs.Float64("hours", 0, "new estimated hours")
	priority := fs.Int("priority", 0, "new priority")
	id, err := parseIDThenFlags(fs, args)
	if err != nil {
		return err
	}

	if _, err := a.requireManager(); err != nil {
		return err
	}

	// Only flags the caller passed end up on the wire.
	var data domain.UpdateTaskData
	if *title != "" {
		data.Title = title
	}
	if *desc != "" {
		data.Description = desc
	}
	if *difficulty != "" {
		d := domain.TaskDifficulty(*difficulty)
		data.Difficulty = &d
	}
	if *hours > 0 {
		data.EstimatedHours = hours
	}
	if *priority > 0 {
		data.Priority = priority
	}

	result, err := a.tasks.UpdateTask(ctx, id, data)
	if err != nil {
		return err
	}
	fmt.Println(result.Message)
	return nil
}

func (a *app) deleteTask(ctx context.Context, args []string) error {
	id, err := idArg(args, "delete-task")
	if err != nil {
		return err
	}
	if _, err := a.requireManager(); err != nil {
		return err
	}
	msg, err := a.tasks.DeleteTask(ctx, id)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func (a *app) completeTask(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("complete", flag.ExitOnError)
	report := fs.String("report", "", "report text")
	hours := fs.Float64("hours", 0, "hours worked")
	challenges := fs.String("challenges", "", "challenges faced")
	solutions := fs.String("solutions", "", "solutions applied")
	id, err := parseIDThenFlags(fs, args)
	if err != nil {
		return err
	}

	if _, err := a.requireAuth(); err != nil {
		return err
	}
	result, err := a.tasks.CompleteTask(ctx, id, domain.TaskCompletionData{
		ReportText:       *report,
		HoursWorked:      *hours,
		ChallengesFaced:  *challenges,
		SolutionsApplied: *solutions,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s (report #%d)\n", result.Message, result.Report.ID)
	return nil
}

func (a *app) rejectTask(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reject", flag.ExitOnError)
	reason := fs.String("reason", "", "rejection reason")
	id, err := parseIDThenFlags(fs, args)
	if err != nil {
		return err
	}

	if _, err := a.requireAuth(); err != nil {
		return err
	}
	if err := a.tasks.RejectTask(ctx, id, domain.TaskRejectionData{Reason: *reason}); err != nil {
		return err
	}
	fmt.Println("task rejected")
	return nil
}

func (a *app) listReports(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reports", flag.ExitOnError)
	status := fs.String("status", "", "pending_review|approved|rejected|needs_correction")
	_ = fs.Parse(args)

	if _, err := a.requireManager(); err != nil {
		return err
	}
	reports, err := a.tasks.GetReports(ctx, domain.ReportStatus(*status))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTASK\tHOURS\tSTATUS\tSUBMITTED")
	for _, r := range reports {
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%s\t%s\n", r.ID, r.TaskTitle, r.HoursWorked, r.Status, r.SubmittedAt)
	}
	return w.Flush()
}

func (a *app) reviewReport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	action := fs.String("action", "", "approve|reject|needs_correction")
	notes := fs.String("notes", "", "review notes")
	id, err := parseIDThenFlags(fs, args)
	if err != nil {
		return err
	}

	if _, err := a.requireManager(); err != nil {
		return err
	}
	err = a.tasks.ReviewReport(ctx, id, domain.ReviewReportData{
		Action:      domain.ReviewAction(*action),
		ReviewNotes: *notes,
	})
	if err != nil {
		return err
	}
	fmt.Println("report reviewed")
	return nil
}

func (a *app) notifications(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("notifications", flag.ExitOnError)
	watch := fs.Bool("watch", false, "poll for new notifications")
	markRead := fs.Bool("mark-read", false, "mark listed notifications as read")
	_ = fs.Parse(args)

	if _, err := a.requireAuth(); err != nil {
		return err
	}

	if *watch {
		watcher := notify.NewWatcher(a.tasks, 0, a.log)
		watcher.Run(ctx, printNotifications)
		return nil
	}

	list, err := a.tasks.GetNotifications(ctx)
	if err != nil {
		return err
	}
	printNotifications(*list)

	if *markRead && len(list.Notifications) > 0 {
		ids := make([]int, 0, len(list.Notifications))
		for _, n := range list.Notifications {
			if !n.IsRead {
				ids = append(ids, n.ID)
			}
		}
		if len(ids) > 0 {
			return a.tasks.MarkNotificationsAsRead(ctx, ids)
		}
	}
	return nil
}

func printNotifications(list domain.NotificationList) {
	fmt.Printf("%d unread\n", list.UnreadCount)
	for _, n := range list.Notifications {
		marker := " "
		if !n.IsRead {
			marker = "*"
		}
		fmt.Printf("%s [%s] %s: %s\n", marker, n.Type, n.Title, n.Message)
	}
}

func (a *app) statistics(ctx context.Context) error {
	if _, err := a.requireManager(); err != nil {
		return err
	}
	stats, err := a.tasks.GetStatistics(ctx)
	if err != nil {
		return err
	}
	g := stats.General
	fmt.Printf("tasks: total=%d completed=%d pending=%d assigned=%d rate=%.1f%%\n",
		g.TotalTasks, g.CompletedTasks, g.PendingTasks, g.AssignedTasks, g.CompletionRate)
	fmt.Println("top completers:")
	for _, u := range stats.TopCompleters {
		fmt.Printf("  %s (%d)\n", u.Username, u.Profile.TasksCompleted)
	}
	fmt.Println("top rejecters:")
	for _, u := range stats.TopRejecters {
		fmt.Printf("  %s (%d)\n", u.Username, u.Profile.TasksRejected)
	}
	return nil
}

func (a *app) listUsers(ctx context.Context) error {
	if _, err := a.requireManager(); err != nil {
		return err
	}
	users, err := a.auth.GetUsers(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tROLE\tACTIVE\tTASKS")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s %s\t%s\t%t\t%d/%d\n",
			u.ID, u.Username, u.FirstName, u.LastName, u.Profile.Role,
			u.Profile.IsActiveWorker, u.Profile.CurrentTaskCount, u.Profile.MaxTasks)
	}
	return w.Flush()
}

func (a *app) requireUserAdmin() (*domain.User, error) {
	user, err := a.requireAuth()
	if err != nil {
		return nil, err
	}
	if !domain.CanManageUsers(user) {
		return nil, fmt.Errorf("command requires the superuser role")
	}
	return user, nil
}

func (a *app) createUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "initial password")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	role := fs.String("role", "regular", "adiestrado|regular|especialista|admin|superuser")
	_ = fs.Parse(args)

	if _, err := a.requireUserAdmin(); err != nil {
		return err
	}
	user, err := a.auth.CreateUser(ctx, domain.CreateUserData{
		Username:  *username,
		Email:     *email,
		Password:  *password,
		FirstName: *first,
		LastName:  *last,
		Role:      domain.Role(*role),
	})
	if err != nil {
		return err
	}
	fmt.Printf("created user %s (#%d)\n", user.Username, user.ID)
	return nil
}

func (a *app) updateUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-user", flag.ExitOnError)
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "email address")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	role := fs.String("role", "", "adiestrado|regular|especialista|admin|superuser")
	active := fs.Bool("active", true, "worker is active")
	maxTasks := fs.Int("max-tasks", 0, "maximum concurrent tasks")
	id, err := parseIDThenFlags(fs, args)
	if err != nil {
		return err
	}

	if _, err := a.requireUserAdmin(); err != nil {
		return err
	}

	// The endpoint replaces the full identity block, so the current values
	// backfill any flag the caller left out.
	current, err := a.auth.GetUsers(ctx)
	if err != nil {
		return err
	}
	var existing *domain.User
	for i := range current {
		if current[i].ID == id {
			existing = &current[i]
			break
		}
	}
	if existing == nil {
		return fmt.Errorf("no user with id %d", id)
	}

	data := domain.UpdateUserData{
		Username:  pick(*username, existing.Username),
		Email:     pick(*email, existing.Email),
		FirstName: pick(*first, existing.FirstName),
		LastName:  pick(*last, existing.LastName),
		Role:      domain.Role(pick(*role, string(existing.Profile.Role))),
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "active" {
			data.IsActiveWorker = active
		}
	})
	if *maxTasks > 0 {
		data.MaxTasks = maxTasks
	}

	user, err := a.auth.UpdateUser(ctx, id, data)
	if err != nil {
		return err
	}
	fmt.Printf("updated user %s (#%d)\n", user.Username, user.ID)
	return nil
}

func (a *app) deleteUser(ctx context.Context, args []string) error {
	id, err := idArg(args, "delete-user")
	if err != nil {
		return err
	}
	me, err := a.requireUserAdmin()
	if err != nil {
		return err
	}
	if me.ID == id {
		return fmt.Errorf("refusing to delete your own account")
	}
	if err := a.auth.DeleteUser(ctx, id); err != nil {
		return err
	}
	fmt.Println("user deleted")
	return nil
}

func pick(flagVal, fallback string) string {
	if flagVal != "" {
		return flagVal
	}
	return fallback
}

func (a *app) themeCmd(args []string) error {
	fs := flag.NewFlagSet("theme", flag.ExitOnError)
	set := fs.String("set", "", "light|dark")
	toggle := fs.Bool("toggle", false, "flip the theme")
	_ = fs.Parse(args)

	switch {
	case *set != "":
		if !domain.ValidTheme(*set) {
			return fmt.Errorf("invalid theme %q", *set)
		}
		a.theme.Set(domain.Theme(*set))
	case *toggle:
		a.theme.Toggle()
	}
	fmt.Println(a.theme.Current())
	return nil
}

// parseIDThenFlags parses "taskctl <cmd> <id> [flags]".
func parseIDThenFlags(fs *flag.FlagSet, args []string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing id argument")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	_ = fs.Parse(args[1:])
	return id, nil
}

func idArg(args []string, cmd string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("usage: taskctl %s <id>", cmd)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: taskctl <command> [flags]

session:
  login -u <user> -p <pass>   authenticate and persist the session
  logout                      clear the persisted session
  whoami                      show the current user

tasks:
  tasks [--mine]              list tasks (workers always see only their own)
  task <id>                   show one task
  create-task --title … --desc … [--difficulty --hours --priority]
  update-task <id> [--title --desc --difficulty --hours --priority]
  delete-task <id>
  complete <id> --report … --hours …
  reject <id> --reason …

review (managers):
  reports [--status s]        list reports, filtered server-side
  review <id> --action approve|reject|needs_correction [--notes …]
  stats                       system statistics

admin (superuser):
  users                       list users
  create-user --username … --email … --password … --first … --last … --role …
  update-user <id> [--username --email --first --last --role --active --max-tasks]
  delete-user <id>

misc:
  notifications [--watch] [--mark-read]
  theme [--set light|dark] [--toggle]`)
}
