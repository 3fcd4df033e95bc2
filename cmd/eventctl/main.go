package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"eventhub/internal/client"
	"eventhub/internal/models"
	"eventhub/internal/rsvp"
	"eventhub/internal/session"
)

const timeLayout = "2006-01-02 15:04"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	baseURL := os.Getenv("EVENTHUB_ADDR")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	store := session.NewStore(sessionPath())
	if err := store.Load(); err != nil {
		fail(err)
	}

	api := client.New(baseURL, store)
	ctx := context.Background()

	var err error

	switch os.Args[1] {
	case "register":
		err = cmdRegister(ctx, store, api, os.Args[2:])
	case "login":
		err = cmdLogin(ctx, store, api, os.Args[2:])
	case "logout":
		err = store.SignOut(ctx, api)
	case "whoami":
		err = cmdWhoami(ctx, store, api)
	case "list":
		err = cmdList(ctx, api)
	case "show":
		err = cmdShow(ctx, api, os.Args[2:])
	case "create":
		err = cmdCreate(ctx, api, os.Args[2:])
	case "update":
		err = cmdUpdate(ctx, api, os.Args[2:])
	case "delete":
		err = cmdDelete(ctx, api, os.Args[2:])
	case "rsvp":
		err = cmdRSVP(ctx, api, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fail(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: eventctl <command> [flags]

commands:
  register  -email -password [-name]     create an account and sign in
  login     -email -password             sign in
  logout                                 sign out
  whoami                                 show the signed-in user
  list                                   list visible events
  show      <event-id>                   show one event with its RSVPs
  create    -title -start -end [...]     create an event
  update    <event-id> [flags]           update an event you own
  delete    <event-id>                   delete an event you own
  rsvp      <event-id> -status <s>       respond going|maybe|not_going`)
}

func fail(err error) {
	var (
		authErr  *client.AuthError
		valErr   *client.ValidationError
		permErr  *client.PermissionError
		notFound *client.NotFoundError
		netErr   *client.NetworkError
	)

	switch {
	case errors.As(err, &authErr):
		color.Red("not signed in: %s", authErr.Message)
	case errors.As(err, &valErr):
		color.Red("invalid input: %s", valErr.Message)
	case errors.As(err, &permErr):
		color.Red("not allowed: %s", permErr.Message)
	case errors.As(err, &notFound):
		color.Red("not found: %s", notFound.Message)
	case errors.As(err, &netErr):
		color.Red("cannot reach server: %v", netErr)
	default:
		color.Red("error: %v", err)
	}

	os.Exit(1)
}

func sessionPath() string {
	if p := os.Getenv("EVENTHUB_SESSION"); p != "" {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".eventhub-session.json"
	}

	return filepath.Join(home, ".eventhub", "session.json")
}

func cmdRegister(ctx context.Context, store *session.Store, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password, 8 characters minimum")
	name := fs.String("name", "", "display name")
	_ = fs.Parse(args)

	user, err := store.SignUp(ctx, api, *email, *password, *name)
	if err != nil {
		return err
	}

	color.Green("registered and signed in as %s", user.Email)

	return nil
}

func cmdLogin(ctx context.Context, store *session.Store, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)

	user, err := store.SignIn(ctx, api, *email, *password)
	if err != nil {
		return err
	}

	color.Green("signed in as %s", user.Email)

	return nil
}

func cmdWhoami(ctx context.Context, store *session.Store, api *client.Client) error {
	user, err := store.CurrentUser(ctx, api)
	if err != nil {
		return err
	}

	if user == nil {
		fmt.Println("not signed in")
		return nil
	}

	fmt.Printf("%s", user.Email)
	if user.FullName != "" {
		fmt.Printf(" (%s)", user.FullName)
	}
	fmt.Println()

	return nil
}

func cmdList(ctx context.Context, api *client.Client) error {
	events, err := api.ListEvents(ctx)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("no events")
		return nil
	}

	for _, ev := range events {
		printEventLine(ev)
	}

	return nil
}

func cmdShow(ctx context.Context, api *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: eventctl show <event-id>")
	}

	detail, err := api.GetEvent(ctx, args[0])
	if err != nil {
		return err
	}

	printEventDetail(detail)

	return nil
}

func cmdCreate(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "event title")
	description := fs.String("description", "", "event description")
	location := fs.String("location", "", "where the event happens")
	start := fs.String("start", "", "start time, e.g. 2026-09-01 18:00")
	end := fs.String("end", "", "end time")
	capacity := fs.Int("capacity", 0, "max attendees, 0 for unlimited")
	private := fs.Bool("private", false, "hide from non-owners")
	_ = fs.Parse(args)

	startTime, err := time.Parse(timeLayout, *start)
	if err != nil {
		return fmt.Errorf("bad -start: %w", err)
	}
	endTime, err := time.Parse(timeLayout, *end)
	if err != nil {
		return fmt.Errorf("bad -end: %w", err)
	}
	if endTime.Before(startTime) {
		return fmt.Errorf("-end must not be before -start")
	}

	in := models.EventCreate{
		Title:       *title,
		Description: *description,
		Location:    *location,
		StartTime:   startTime,
		EndTime:     endTime,
	}
	if *capacity > 0 {
		in.MaxAttendees = capacity
	}
	if *private {
		public := false
		in.IsPublic = &public
	}

	ev, err := api.CreateEvent(ctx, in)
	if err != nil {
		return err
	}

	color.Green("created event %s", ev.ID)
	printEventLine(*ev)

	return nil
}

func cmdUpdate(ctx context.Context, api *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: eventctl update <event-id> [flags]")
	}
	id := args[0]

	fs := flag.NewFlagSet("update", flag.ExitOnError)
	title := fs.String("title", "", "new title")
	description := fs.String("description", "", "new description")
	location := fs.String("location", "", "new location")
	capacity := fs.Int("capacity", 0, "new max attendees")
	_ = fs.Parse(args[1:])

	var in models.EventUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			in.Title = title
		case "description":
			in.Description = description
		case "location":
			in.Location = location
		case "capacity":
			in.MaxAttendees = capacity
		}
	})

	ev, err := api.UpdateEvent(ctx, id, in)
	if err != nil {
		return err
	}

	color.Green("updated event %s", ev.ID)
	printEventLine(*ev)

	return nil
}

func cmdDelete(ctx context.Context, api *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: eventctl delete <event-id>")
	}

	if err := api.DeleteEvent(ctx, args[0]); err != nil {
		return err
	}

	color.Green("deleted event %s", args[0])

	return nil
}

func cmdRSVP(ctx context.Context, api *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: eventctl rsvp <event-id> -status going|maybe|not_going")
	}
	id := args[0]

	fs := flag.NewFlagSet("rsvp", flag.ExitOnError)
	status := fs.String("status", "", "going, maybe or not_going")
	_ = fs.Parse(args[1:])

	if !rsvp.ValidStatus(*status) {
		return fmt.Errorf("bad -status %q: want going, maybe or not_going", *status)
	}

	detail, err := api.GetEvent(ctx, id)
	if err != nil {
		return err
	}

	full := rsvp.IsFull(detail.Event.MaxAttendees, detail.RSVPs)
	if !rsvp.CanRSVP(*status, full, detail.CurrentUserRSVP) {
		return fmt.Errorf("event is full")
	}

	if _, err := api.RSVP(ctx, id, *status); err != nil {
		return err
	}

	// Re-fetch so the printed counts reflect what the server recorded,
	// not what we hoped it would record.
	detail, err = api.GetEvent(ctx, id)
	if err != nil {
		return err
	}

	color.Green("you are %s", *status)
	printEventDetail(detail)

	return nil
}

func printEventLine(ev models.Event) {
	when := ev.StartTime.Local().Format(timeLayout)

	capacity := "unlimited"
	if ev.MaxAttendees != nil {
		capacity = fmt.Sprintf("%d/%d", ev.AttendeesCount, *ev.MaxAttendees)
	} else if ev.AttendeesCount > 0 {
		capacity = fmt.Sprintf("%d going", ev.AttendeesCount)
	}

	visibility := ""
	if !ev.IsPublic {
		visibility = color.YellowString(" [private]")
	}

	fmt.Printf("%s  %s  %s  %s%s\n", ev.ID, when, color.CyanString(ev.Title), capacity, visibility)
}

func printEventDetail(detail *client.EventDetail) {
	ev := detail.Event

	fmt.Println(color.CyanString(ev.Title))
	if ev.Description != "" {
		fmt.Println(ev.Description)
	}
	if ev.Location != "" {
		fmt.Printf("where: %s\n", ev.Location)
	}
	fmt.Printf("when:  %s - %s\n",
		ev.StartTime.Local().Format(timeLayout), ev.EndTime.Local().Format(timeLayout))

	attending := rsvp.AttendingCount(detail.RSVPs)
	if ev.MaxAttendees != nil {
		fmt.Printf("going: %d of %d  %s\n", attending, *ev.MaxAttendees, fillBar(rsvp.FillRatio(ev.MaxAttendees, detail.RSVPs)))
		if rsvp.IsFull(ev.MaxAttendees, detail.RSVPs) {
			color.Red("this event is full")
		}
	} else {
		fmt.Printf("going: %d\n", attending)
	}

	if detail.CurrentUserRSVP != rsvp.StatusNone {
		fmt.Printf("you:   %s\n", colorStatus(detail.CurrentUserRSVP))
	}
}

func fillBar(ratio float64) string {
	const width = 20

	filled := int(ratio * width)
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
	if ratio >= 1 {
		return color.RedString("[%s]", bar)
	}

	return "[" + bar + "]"
}

func colorStatus(status string) string {
	switch status {
	case rsvp.StatusGoing:
		return color.GreenString(status)
	case rsvp.StatusMaybe:
		return color.YellowString(status)
	default:
		return status
	}
}
