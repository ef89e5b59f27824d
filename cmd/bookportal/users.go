package main

import (
	"strings"
	"text/tabwriter"

	"github.com/target/mdbook-portal/internal/domain/auth"
	"github.com/target/mdbook-portal/internal/domain/model"
)

func runUsers(cc *commandContext, args []string) error {
	if err := cc.parse(cc.flags("users"), args); err != nil {
		return err
	}
	svc := cc.Portal.Service
	if err := svc.RefreshUsers(cc.Ctx); err != nil {
		return err
	}
	users := svc.Users()
	return cc.render(users, func(tw *tabwriter.Writer) error {
		return printUsers(tw, users)
	})
}

func printUsers(tw *tabwriter.Writer, users []model.User) error {
	if err := writeln(tw, "ID\tEMAIL\tROLE\tACTIVE"); err != nil {
		return err
	}
	for _, u := range users {
		if err := writef(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Role, yesNo(u.Active)); err != nil {
			return err
		}
	}
	return nil
}

func runUserCreate(cc *commandContext, args []string) error {
	fs := cc.flags("user-create")
	var email, password, role string
	fs.StringVar(&email, "email", "", "Account email")
	fs.StringVar(&password, "password", "", "Initial password")
	fs.StringVar(&role, "role", string(auth.RoleReader), "Role: admin or reader")
	if err := cc.parse(fs, args); err != nil {
		return err
	}

	r := auth.Role(strings.ToLower(strings.TrimSpace(role)))
	if err := cc.Portal.Service.CreateUser(cc.Ctx, email, password, r); err != nil {
		return err
	}
	return cc.message("created")
}

func runUserRole(cc *commandContext, args []string) error {
	fs := cc.flags("user-role")
	var id, role string
	fs.StringVar(&id, "id", "", "User ID")
	fs.StringVar(&role, "role", "", "Role: admin or reader")
	if err := cc.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlag("id", id); err != nil {
		return err
	}

	if err := cc.Portal.Service.ChangeUserRole(cc.Ctx, model.ID(id), auth.ParseRole(role)); err != nil {
		return err
	}
	return cc.message("updated")
}

func runUserActivate(cc *commandContext, args []string) error {
	return setUserActive(cc, "user-activate", args, true)
}

func runUserDeactivate(cc *commandContext, args []string) error {
	return setUserActive(cc, "user-deactivate", args, false)
}

func setUserActive(cc *commandContext, name string, args []string, active bool) error {
	id, err := cc.parseID(name, args)
	if err != nil {
		return err
	}
	if err := cc.Portal.Service.SetUserActive(cc.Ctx, id, active); err != nil {
		return err
	}
	if active {
		return cc.message("activated")
	}
	return cc.message("deactivated")
}

func runUserDelete(cc *commandContext, args []string) error {
	id, err := cc.parseID("user-delete", args)
	if err != nil {
		return err
	}
	if err := cc.Portal.Service.DeleteUser(cc.Ctx, id); err != nil {
		return err
	}
	return cc.message("deleted")
}
