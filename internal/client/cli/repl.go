package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a stub.
type execIface interface {
	isLoggedIn() bool
	pages() []string
	Go(ctx context.Context, path string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Vehicles(ctx context.Context, args []string) error
	AddVehicle(ctx context.Context) error
	EditVehicle(ctx context.Context, id string) error
	DeleteVehicle(ctx context.Context, id string) error
	Reservations(ctx context.Context, args []string) error
	Reserve(ctx context.Context) error
	Cancel(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
	DeleteAccount(ctx context.Context) error
}

const (
	helpGuest = "Available commands: login, register, reset-password, go <path>, whoami, exit"
	helpUser  = "Available commands: reservations [status|query], reserve, cancel <id>, complete <id>, " +
		"vehicles [filters], addvehicle, editvehicle <id>, deletevehicle <id>, dashboard, profile, " +
		"deleteaccount, go <path>, whoami, logout, exit"
)

// runREPL reads commands line by line and dispatches them to a. Page
// commands go through the router, so a guest asking for "vehicles" ends up
// on the login page. Command errors have already been shown to the user and
// are dropped here. The loop ends on EOF, "exit"/"quit", or when ctx is
// done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("rk (%s)> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpUser)
			} else {
				printlnFn(helpGuest)
			}
			printlnFn("Pages: " + strings.Join(a.pages(), ", "))

		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Go(ctx, args[0])

		case "login":
			_ = a.Go(ctx, "/auth/login")
		case "register":
			_ = a.Go(ctx, "/auth/register")
		case "reset-password":
			_ = a.Go(ctx, "/auth/reset-password")
		case "dashboard":
			_ = a.Go(ctx, "/dashboard")
		case "profile":
			_ = a.Go(ctx, "/profile/edit")

		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)

		case "vehicles", "v":
			_ = a.Vehicles(ctx, args)
		case "addvehicle":
			_ = a.AddVehicle(ctx)

		case "reservations", "r":
			_ = a.Reservations(ctx, args)
		case "reserve":
			_ = a.Reserve(ctx)

		case "editvehicle", "deletevehicle", "cancel", "complete":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "editvehicle":
				_ = a.EditVehicle(ctx, args[0])
			case "deletevehicle":
				_ = a.DeleteVehicle(ctx, args[0])
			case "cancel":
				_ = a.Cancel(ctx, args[0])
			case "complete":
				_ = a.Complete(ctx, args[0])
			}

		case "deleteaccount":
			_ = a.DeleteAccount(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
