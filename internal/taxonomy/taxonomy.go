// Package taxonomy derives category and tag listings from a post corpus.
package taxonomy

import (
	"sort"

	"github.com/goliatone/go-blog/internal/categories"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/slugs"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Categories lists every registry category with its post count, including
// categories without posts, followed by categories synthesized for
// unregistered directories that hold posts. Order is registry order, then
// slug.
func Categories(registry *categories.Registry, posts []*interfaces.Post) []interfaces.Category {
	counts := make(map[string]int, len(posts))
	refs := make(map[string]interfaces.CategoryRef)
	for _, post := range posts {
		counts[post.Category.Slug]++
		if _, ok := refs[post.Category.Slug]; !ok {
			refs[post.Category.Slug] = post.Category
		}
	}

	entries := registry.All()
	out := make([]interfaces.Category, 0, len(entries)+len(refs))
	listed := make(map[string]bool, len(entries))
	for _, entry := range entries {
		category := entry.Category()
		category.PostCount = counts[entry.Slug]
		out = append(out, category)
		listed[entry.Slug] = true
	}

	var extra []interfaces.Category
	for slug, ref := range refs {
		if listed[slug] {
			continue
		}
		extra = append(extra, interfaces.Category{
			ID:        identity.CategoryID(slug),
			Name:      ref.Name,
			Slug:      slug,
			Icon:      ref.Icon,
			Color:     ref.Color,
			Order:     categories.FallbackOrder,
			PostCount: counts[slug],
		})
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Slug < extra[j].Slug })
	return append(out, extra...)
}

// Tags counts tag occurrences across posts. A tag listed twice on one post
// counts twice. Tags are ordered by count descending, then by name.
func Tags(posts []*interfaces.Post) []interfaces.Tag {
	counts := map[string]int{}
	var names []string
	for _, post := range posts {
		for _, name := range post.Tags {
			if _, ok := counts[name]; !ok {
				names = append(names, name)
			}
			counts[name]++
		}
	}

	out := make([]interfaces.Tag, 0, len(names))
	for _, name := range names {
		slug := slugs.TagSlug(name)
		out = append(out, interfaces.Tag{
			ID:        identity.TagID(slug),
			Name:      name,
			Slug:      slug,
			PostCount: counts[name],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PostCount != out[j].PostCount {
			return out[i].PostCount > out[j].PostCount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// FindCategory returns the category with slug from list.
func FindCategory(list []interfaces.Category, slug string) (interfaces.Category, bool) {
	for _, category := range list {
		if category.Slug == slug {
			return category, true
		}
	}
	return interfaces.Category{}, false
}

// FindTag returns the tag with slug from list.
func FindTag(list []interfaces.Tag, slug string) (interfaces.Tag, bool) {
	for _, tag := range list {
		if tag.Slug == slug {
			return tag, true
		}
	}
	return interfaces.Tag{}, false
}
