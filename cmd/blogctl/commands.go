package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const dateLayout = "2006-01-02"

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) postsCmd() *cobra.Command {
	var (
		filter   blog.PostFilter
		status   string
		sortBy   string
		order    string
		featured bool
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter.Status = interfaces.PostStatus(status)
			filter.SortBy = interfaces.SortField(sortBy)
			filter.SortOrder = interfaces.SortOrder(order)
			if cmd.Flags().Changed("featured") {
				filter.Featured = &featured
			}
			page, err := a.module.Posts().List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if asJSON {
				return a.writeJSON(page)
			}
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tSLUG\tCATEGORY\tTITLE")
			for _, p := range page.Posts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.PublishedAt.Format(dateLayout), p.Slug, p.Category.Slug, p.Title)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "page %d/%d, %d posts\n", page.Page, max(page.TotalPages, 1), page.Total)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&filter.Category, "category", "", "category slug")
	f.StringVar(&filter.Tag, "tag", "", "tag slug")
	f.StringVar(&status, "status", "", "published, draft or archived")
	f.BoolVar(&featured, "featured", false, "only featured (or, with =false, non-featured) posts")
	f.StringVar(&sortBy, "sort", "", "date, title, readingTime or wordCount")
	f.StringVar(&order, "order", "", "asc or desc")
	f.IntVar(&filter.Page, "page", 0, "page number")
	f.IntVar(&filter.PageSize, "page-size", 0, "posts per page")
	f.BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (a *app) postCmd() *cobra.Command {
	var html bool
	cmd := &cobra.Command{
		Use:   "post <slug>",
		Short: "Print one post as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			if html {
				rendered, err := a.module.Posts().Render(cmd.Context(), slug)
				if err != nil {
					return err
				}
				if rendered == nil {
					return fmt.Errorf("post %q not found", slug)
				}
				return a.writeJSON(rendered)
			}
			post, err := a.module.PostBySlug(cmd.Context(), slug)
			if err != nil {
				return err
			}
			if post == nil {
				return fmt.Errorf("post %q not found", slug)
			}
			return a.writeJSON(post)
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "include rendered HTML and table of contents")
	return cmd
}

func (a *app) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with post counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tNAME\tPOSTS")
			for _, c := range a.module.Categories(cmd.Context()) {
				fmt.Fprintf(w, "%s\t%s %s\t%d\n", c.Slug, c.Icon, c.Name, c.PostCount)
			}
			return w.Flush()
		},
	}
}

func (a *app) tagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags by usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tNAME\tPOSTS")
			for _, t := range a.module.Tags(cmd.Context()) {
				fmt.Fprintf(w, "%s\t%s\t%d\n", t.Slug, t.Name, t.PostCount)
			}
			return w.Flush()
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print corpus statistics as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.writeJSON(a.module.Posts().Stats(cmd.Context()))
		},
	}
}

var errInvalidFrontMatter = errors.New("front matter validation failed")

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every file's front matter against the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			validator, err := a.module.Container().Validator()
			if err != nil {
				return err
			}
			issues := validator.ValidateAll(cmd.Context())
			for _, issue := range issues {
				location := issue.Location
				if location == "" {
					location = "/"
				}
				fmt.Fprintf(a.out, "%s\t%s\t%s\n", issue.Path, location, issue.Message)
			}
			if len(issues) > 0 {
				return fmt.Errorf("%w: %d issue(s)", errInvalidFrontMatter, len(issues))
			}
			fmt.Fprintln(a.out, "ok")
			return nil
		},
	}
}
