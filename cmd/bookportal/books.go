package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/target/mdbook-portal/internal/domain/model"
	"github.com/target/mdbook-portal/internal/ports"
)

func runBooks(cc *commandContext, args []string) error {
	if err := cc.parse(cc.flags("books"), args); err != nil {
		return err
	}
	svc := cc.Portal.Service
	if err := svc.RefreshBooks(cc.Ctx); err != nil {
		return err
	}
	books := svc.Books()
	return cc.render(books, func(tw *tabwriter.Writer) error {
		return printBooks(tw, books)
	})
}

func printBooks(tw *tabwriter.Writer, books []model.Book) error {
	if err := writeln(tw, "ID\tTITLE\tSLUG\tACTIVE"); err != nil {
		return err
	}
	for _, b := range books {
		active := "-"
		if b.Active != nil {
			active = yesNo(*b.Active)
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\n", b.ID, b.Title, b.Slug, active); err != nil {
			return err
		}
	}
	return nil
}

// parseID handles commands whose only flag is --id.
func (cc *commandContext) parseID(name string, args []string) (model.ID, error) {
	fs := cc.flags(name)
	var id string
	fs.StringVar(&id, "id", "", "Record ID")
	if err := cc.parse(fs, args); err != nil {
		return "", err
	}
	if err := requireFlag("id", id); err != nil {
		return "", err
	}
	return model.ID(id), nil
}

func runBookGet(cc *commandContext, args []string) error {
	id, err := cc.parseID("book-get", args)
	if err != nil {
		return err
	}
	book, err := cc.Portal.Service.FetchBook(cc.Ctx, id)
	if err != nil {
		return err
	}
	return cc.render(book, func(tw *tabwriter.Writer) error {
		return printBooks(tw, []model.Book{book})
	})
}

func runBookCreate(cc *commandContext, args []string) error {
	fs := cc.flags("book-create")
	var title, slug string
	fs.StringVar(&title, "title", "", "Book title")
	fs.StringVar(&slug, "slug", "", "URL slug (derived from the title when empty)")
	if err := cc.parse(fs, args); err != nil {
		return err
	}

	book, err := cc.Portal.Service.CreateBook(cc.Ctx, title, slug)
	if err != nil {
		return err
	}
	return cc.render(book, func(tw *tabwriter.Writer) error {
		return printBooks(tw, []model.Book{book})
	})
}

func runBookUpdate(cc *commandContext, args []string) error {
	fs := cc.flags("book-update")
	var (
		id     string
		title  string
		active bool
	)
	fs.StringVar(&id, "id", "", "Book ID")
	fs.StringVar(&title, "title", "", "New title")
	fs.BoolVar(&active, "active", true, "Whether the book is listed for readers")
	if err := cc.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlag("id", id); err != nil {
		return err
	}

	var req model.UpdateBookRequest
	if fs.Changed("title") {
		req.Title = &title
	}
	if fs.Changed("active") {
		req.Active = &active
	}
	if err := cc.Portal.Service.UpdateBook(cc.Ctx, model.ID(id), req); err != nil {
		return err
	}
	return cc.message("updated")
}

func runBookDelete(cc *commandContext, args []string) error {
	id, err := cc.parseID("book-delete", args)
	if err != nil {
		return err
	}
	if err := cc.Portal.Service.DeleteBook(cc.Ctx, id); err != nil {
		return err
	}
	return cc.message("deleted")
}

func runBookBuild(cc *commandContext, args []string) error {
	id, err := cc.parseID("book-build", args)
	if err != nil {
		return err
	}
	res, err := cc.Portal.Service.BuildBook(cc.Ctx, id)
	if err != nil {
		return err
	}
	return cc.message(res.Message)
}

func runBookUpload(cc *commandContext, args []string) error {
	fs := cc.flags("book-upload")
	var id, path string
	fs.StringVar(&id, "id", "", "Book ID")
	fs.StringVar(&path, "file", "", "Path to a .zip of the book sources")
	if err := cc.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlag("id", id); err != nil {
		return err
	}

	var upload *ports.Upload
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()
		upload = &ports.Upload{Filename: path, Body: f}
	}

	res, err := cc.Portal.Service.UploadBook(cc.Ctx, model.ID(id), upload)
	if err != nil {
		return err
	}
	if upload == nil {
		return cc.message("no file selected, nothing uploaded")
	}
	return cc.message(res.Message)
}

func runBookOpen(cc *commandContext, args []string) error {
	fs := cc.flags("book-open")
	var id, sub string
	fs.StringVar(&id, "id", "", "Book ID")
	fs.StringVar(&sub, "path", "", "Page inside the built book, e.g. chapter_1.html")
	if err := cc.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlag("id", id); err != nil {
		return err
	}

	svc := cc.Portal.Service
	if err := svc.RefreshBooks(cc.Ctx); err != nil {
		return err
	}
	book, err := svc.OpenBookByID(model.ID(id))
	if err != nil {
		return err
	}
	url := svc.ViewerURL(sub)
	out := struct {
		ID    model.ID `json:"id"    yaml:"id"`
		Title string   `json:"title" yaml:"title"`
		URL   string   `json:"url"   yaml:"url"`
	}{book.ID, book.Title, url}
	return cc.render(out, func(tw *tabwriter.Writer) error {
		return writeln(tw, url)
	})
}
