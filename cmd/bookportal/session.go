package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/target/mdbook-portal/internal/domain/model"
)

type credentialFlags struct {
	Email    string
	Password string
}

func (cc *commandContext) parseCredentials(name string, args []string) (credentialFlags, error) {
	fs := cc.flags(name)
	var opts credentialFlags
	fs.StringVar(&opts.Email, "email", "", "Account email")
	fs.StringVar(&opts.Password, "password", "", "Account password")
	if err := cc.parse(fs, args); err != nil {
		return credentialFlags{}, err
	}
	if err := requireFlag("email", opts.Email); err != nil {
		return credentialFlags{}, err
	}
	if err := requireFlag("password", opts.Password); err != nil {
		return credentialFlags{}, err
	}
	return opts, nil
}

func runLogin(cc *commandContext, args []string) error {
	opts, err := cc.parseCredentials("login", args)
	if err != nil {
		return err
	}

	svc := cc.Portal.Service
	if err := svc.Login(cc.Ctx, opts.Email, opts.Password); err != nil {
		return err
	}
	// The session is stored even if a list could not be loaded.
	if msg := svc.Error(); msg != "" {
		_ = writef(cc.Stderr, "warning: %s\n", msg)
	}

	view := svc.Snapshot()
	return cc.render(sessionOutput{Email: view.Email, Role: string(view.Role)}, func(tw *tabwriter.Writer) error {
		return writef(tw, "Logged in as %s (%s)\n", view.Email, view.Role)
	})
}

func runRegister(cc *commandContext, args []string) error {
	opts, err := cc.parseCredentials("register", args)
	if err != nil {
		return err
	}
	res, err := cc.Portal.Service.Register(cc.Ctx, opts.Email, opts.Password)
	if err != nil {
		return err
	}
	return cc.message(res.Message)
}

func runLogout(cc *commandContext, args []string) error {
	if err := cc.parse(cc.flags("logout"), args); err != nil {
		return err
	}
	if err := cc.Portal.Service.Logout(cc.Ctx); err != nil {
		return err
	}
	return cc.message("logged out")
}

func runWhoami(cc *commandContext, args []string) error {
	if err := cc.parse(cc.flags("whoami"), args); err != nil {
		return err
	}
	id, err := cc.Portal.Service.Identity(cc.Ctx)
	if err != nil {
		return err
	}
	return cc.render(id, func(tw *tabwriter.Writer) error {
		return printUsers(tw, []model.User{id})
	})
}

type sessionOutput struct {
	Email string `json:"email" yaml:"email"`
	Role  string `json:"role"  yaml:"role"`
}

type statusOutput struct {
	Authenticated bool     `json:"authenticated"   yaml:"authenticated"`
	Email         string   `json:"email,omitempty" yaml:"email,omitempty"`
	Role          string   `json:"role,omitempty"  yaml:"role,omitempty"`
	API           string   `json:"api"             yaml:"api"`
	Books         int      `json:"books"           yaml:"books"`
	Users         *int     `json:"users,omitempty" yaml:"users,omitempty"`
	Error         string   `json:"error,omitempty" yaml:"error,omitempty"`
	Modules       []string `json:"modules"         yaml:"modules"`
}

// runStatus performs a page load: it reads the stored session and fetches
// the lists the role is entitled to.
func runStatus(cc *commandContext, args []string) error {
	if err := cc.parse(cc.flags("status"), args); err != nil {
		return err
	}

	svc := cc.Portal.Service
	startErr := svc.Start(cc.Ctx)
	view := svc.Snapshot()

	out := statusOutput{
		Authenticated: view.Authenticated,
		Email:         view.Email,
		Role:          string(view.Role),
		API:           cc.Portal.API.BaseURL(),
		Books:         len(view.Books),
		Error:         view.Error,
		Modules:       []string{"books"},
	}
	if view.Navigation.UsersReachable() {
		n := len(view.Users)
		out.Users = &n
		out.Modules = append(out.Modules, "users")
	}

	if err := cc.render(out, func(tw *tabwriter.Writer) error {
		return printStatus(tw, out)
	}); err != nil {
		return err
	}
	if startErr != nil {
		return fmt.Errorf("load session: %w", startErr)
	}
	return nil
}

func printStatus(tw *tabwriter.Writer, out statusOutput) error {
	if !out.Authenticated {
		return writef(tw, "API:\t%s\nSession:\tnot logged in\n", out.API)
	}
	if err := writef(tw, "API:\t%s\nEmail:\t%s\nRole:\t%s\nBooks:\t%d\n", out.API, out.Email, out.Role, out.Books); err != nil {
		return err
	}
	if out.Users != nil {
		return writef(tw, "Users:\t%d\n", *out.Users)
	}
	return nil
}
