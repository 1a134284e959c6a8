package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// command runs one REPL command with the words that followed its name.
type command func(ctx context.Context, args []string) error

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Whoami(ctx context.Context, args []string) error
	Strength(ctx context.Context, args []string) error
	ForgotPassword(ctx context.Context, args []string) error
	ResetPassword(ctx context.Context, args []string) error
	ChangePassword(ctx context.Context, args []string) error

	MyAds(ctx context.Context, args []string) error
	NewAd(ctx context.Context, args []string) error
	EditAd(ctx context.Context, args []string) error
	DeleteAd(ctx context.Context, args []string) error
	DeleteImage(ctx context.Context, args []string) error
	ClearImages(ctx context.Context, args []string) error
	SaveImage(ctx context.Context, args []string) error
	Contact(ctx context.Context, args []string) error

	Panel(ctx context.Context, args []string) error
	Users(ctx context.Context, args []string) error
	AdList(ctx context.Context, args []string) error
	BlockUser(ctx context.Context, args []string) error
	UnblockUser(ctx context.Context, args []string) error
	DeleteUser(ctx context.Context, args []string) error
	SetUserPassword(ctx context.Context, args []string) error
	CreateAdmin(ctx context.Context, args []string) error
	PromoteAdmin(ctx context.Context, args []string) error
	BlockAd(ctx context.Context, args []string) error
	UnblockAd(ctx context.Context, args []string) error
	RemoveAd(ctx context.Context, args []string) error
	RemoveAdImage(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
}

const (
	helpGuest = "Available commands: register, login, forgot, reset, strength, exit"
	helpUser  = "Available commands: whoami, ads, newad, editad <ad-id>, delad <ad-id>, delimg <image-id>, " +
		"clearimgs <ad-id>, image <url>, contact, passwd, strength, logout, exit"
	helpAdmin = "Admin commands: panel, users [filter], adlist [filter], block <user-id>, unblock <user-id>, " +
		"deluser <user-id>, setpw <user-id>, mkadmin, promote <email>, blockad <ad-id>, unblockad <ad-id>, " +
		"rmad <ad-id>, rmimg <ad-id> <image-id>, export [file]"
)

// userCommands and adminCommands map command names to handlers.
func userCommands(a execIface) map[string]command {
	return map[string]command{
		"register":  a.Register,
		"login":     a.Login,
		"logout":    a.Logout,
		"whoami":    a.Whoami,
		"strength":  a.Strength,
		"forgot":    a.ForgotPassword,
		"reset":     a.ResetPassword,
		"passwd":    a.ChangePassword,
		"ads":       a.MyAds,
		"newad":     a.NewAd,
		"editad":    a.EditAd,
		"delad":     a.DeleteAd,
		"delimg":    a.DeleteImage,
		"clearimgs": a.ClearImages,
		"image":     a.SaveImage,
		"contact":   a.Contact,
	}
}

func adminCommands(a execIface) map[string]command {
	return map[string]command{
		"panel":     a.Panel,
		"users":     a.Users,
		"adlist":    a.AdList,
		"block":     a.BlockUser,
		"unblock":   a.UnblockUser,
		"deluser":   a.DeleteUser,
		"setpw":     a.SetUserPassword,
		"mkadmin":   a.CreateAdmin,
		"promote":   a.PromoteAdmin,
		"blockad":   a.BlockAd,
		"unblockad": a.UnblockAd,
		"rmad":      a.RemoveAd,
		"rmimg":     a.RemoveAdImage,
		"export":    a.Export,
	}
}

// runREPL starts a read–eval–print loop for the classifieds CLI.
//
// It reads a line from reader, parses the first word as the command and
// passes the remaining words to its handler. The loop exits on EOF or when
// the user types "exit" or "quit".
//
// Admin commands are refused before their handler runs unless the session
// belongs to an administrator. Handler errors are printed and the loop goes
// on; nothing a command does ends the process.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	users, admins := userCommands(a), adminCommands(a)

	for {
		printlnFn(fmt.Sprintf("classifieds %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printHelp(a)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if cmd, ok := users[name]; ok {
			report(cmd(ctx, args))
			continue
		}
		if cmd, ok := admins[name]; ok {
			if !a.isAdmin() {
				printlnFn("This command requires an administrator login.")
				continue
			}
			report(cmd(ctx, args))
			continue
		}
		printlnFn("Unknown command:", name)
	}
}

func printHelp(a execIface) {
	switch {
	case !a.isLoggedIn():
		printlnFn(helpGuest)
	case a.isAdmin():
		printlnFn(helpUser)
		printlnFn(helpAdmin)
	default:
		printlnFn(helpUser)
	}
}

// report prints a command failure inline.
func report(err error) {
	if err != nil {
		printlnFn("Error:", err.Error())
	}
}

// usage builds the error returned when a command is missing arguments.
func usage(form string) error {
	return fmt.Errorf("usage: %s", form)
}
