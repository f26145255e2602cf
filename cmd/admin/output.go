package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"go-portfolio-app/internal/admin"
)

// printCollection writes one collection of the snapshot as an aligned table.
func printCollection(out io.Writer, kind admin.Kind, s admin.State) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	defer w.Flush()

	switch kind {
	case admin.KindProject:
		fmt.Fprintf(w, "PROJECTS (%d)\n", len(s.Projects))
		fmt.Fprintln(w, "ID\tSLUG\tCATEGORY\tSTATUS\tFEATURED\tTECHNOLOGIES")
		for _, p := range s.Projects {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t%s\n", p.ID, p.Slug, p.Category, p.Status, p.Featured, strings.Join(p.Technologies, ", "))
		}
	case admin.KindBlog:
		fmt.Fprintf(w, "BLOG POSTS (%d)\n", len(s.Blogs))
		fmt.Fprintln(w, "ID\tSLUG\tCATEGORY\tPUBLISHED\tTAGS")
		for _, b := range s.Blogs {
			published := "draft"
			if b.PublishedAt != nil {
				published = b.PublishedAt.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", b.ID, b.Slug, b.Category, published, strings.Join(b.Tags, ", "))
		}
	case admin.KindSkill:
		fmt.Fprintf(w, "SKILLS (%d)\n", len(s.Skills))
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPROFICIENCY")
		for _, sk := range s.Skills {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", sk.ID, sk.Name, sk.Category, sk.ProficiencyLevel)
		}
	case admin.KindSubscriber:
		fmt.Fprintf(w, "SUBSCRIBERS (%d total, %d active, %d recent)\n",
			s.Stats.TotalSubscribers, s.Stats.ActiveSubscribers, s.Stats.RecentSubscriptions)
		fmt.Fprintln(w, "ID\tEMAIL\tACTIVE\tSUBSCRIBED")
		for _, sub := range s.Subscribers {
			fmt.Fprintf(w, "%d\t%s\t%t\t%s\n", sub.ID, sub.Email, sub.Active, sub.SubscribedAt.Format("2006-01-02"))
		}
	}
}
