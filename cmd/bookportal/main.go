package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/target/mdbook-portal/config"
	"github.com/target/mdbook-portal/internal/bootstrap"
	apperrors "github.com/target/mdbook-portal/internal/errors"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// errUsage marks flag and argument mistakes so they exit with exitUsage.
var errUsage = errors.New("usage")

type commandFn func(cc *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Portal *bootstrap.Portal
	Stdout io.Writer
	Stderr io.Writer
	Output outputOptions
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code) //nolint:forbidigo // CLI must propagate the command status to the shell
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		_ = printUsage(stderr)
		return exitUsage
	}

	cmdName := args[0]
	if cmdName == "help" || cmdName == "-h" || cmdName == "--help" {
		_ = printUsage(stdout)
		return exitOK
	}
	cmd, ok := commands()[cmdName]
	if !ok {
		_ = writef(stderr, "unknown command %q\n\n", cmdName)
		_ = printUsage(stderr)
		return exitUsage
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		_ = writef(stderr, "error: load config: %v\n", err)
		return exitFailure
	}
	logger := bootstrap.InitLogger(stderr, cfg.Log)

	return runCommand(ctx, cmd, cfg, logger, args[1:], stdout, stderr)
}

func runCommand(
	ctx context.Context,
	cmd command,
	cfg config.AppConfig,
	logger *slog.Logger,
	args []string,
	stdout, stderr io.Writer,
) int {
	portal, err := bootstrap.NewPortal(ctx, bootstrap.PortalOptions{Config: cfg, Logger: logger})
	if err != nil {
		_ = writef(stderr, "error: %v\n", err)
		return exitFailure
	}
	defer func() {
		if closeErr := portal.Close(); closeErr != nil {
			logger.WarnContext(ctx, "close portal", "error", closeErr)
		}
	}()

	cc := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Portal: portal,
		Stdout: stdout,
		Stderr: stderr,
	}
	runErr := cmd.run(cc, args)
	switch {
	case runErr == nil:
		return exitOK
	case errors.Is(runErr, pflag.ErrHelp):
		return exitOK
	case errors.Is(runErr, errUsage):
		_ = writef(stderr, "error: %v\n", runErr)
		return exitUsage
	default:
		logger.DebugContext(ctx, "command failed",
			"command", cmd.name,
			"error_class", apperrors.Classify(runErr),
			"error", runErr)
		_ = writef(stderr, "error: %s\n", apperrors.Message(runErr))
		return exitFailure
	}
}

func commands() map[string]command {
	list := []command{
		{"login", "Sign in and store the session", runLogin},
		{"register", "Create a reader account", runRegister},
		{"logout", "Forget the stored session", runLogout},
		{"whoami", "Show the server's view of the current user", runWhoami},
		{"status", "Show the session and load the lists", runStatus},
		{"books", "List books", runBooks},
		{"book-get", "Show one book", runBookGet},
		{"book-create", "Create a book (admin)", runBookCreate},
		{"book-update", "Rename or (de)activate a book (admin)", runBookUpdate},
		{"book-delete", "Delete a book (admin)", runBookDelete},
		{"book-build", "Rebuild a book from its uploaded sources (admin)", runBookBuild},
		{"book-upload", "Upload a .zip of book sources (admin)", runBookUpload},
		{"book-open", "Print the viewer URL of a book", runBookOpen},
		{"users", "List users (admin)", runUsers},
		{"user-create", "Create a user (admin)", runUserCreate},
		{"user-role", "Change a user's role (admin)", runUserRole},
		{"user-activate", "Activate a user (admin)", runUserActivate},
		{"user-deactivate", "Deactivate a user (admin)", runUserDeactivate},
		{"user-delete", "Delete a user (admin)", runUserDelete},
	}
	out := make(map[string]command, len(list))
	for _, c := range list {
		out[c.name] = c
	}
	return out
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: bookportal <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-18s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return writef(w, "\nGlobal flags: -o, --output table|json|yaml   --query <jmespath>\n")
}

// flags returns a flag set for name with the global output flags registered.
func (cc *commandContext) flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(cc.Stderr)
	fs.StringVarP(&cc.Output.Format, "output", "o", formatTable, "Output format: table, json or yaml")
	fs.StringVar(&cc.Output.Query, "query", "", "JMESPath expression applied to json/yaml output")
	return fs
}

// parse parses args and validates the global flags. Positional arguments are rejected.
func (cc *commandContext) parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	return cc.Output.validate()
}

func requireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: --%s is required", errUsage, name)
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
