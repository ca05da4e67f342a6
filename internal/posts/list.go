package posts

import (
	"context"
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/internal/taxonomy"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

func validateFilter(f interfaces.PostFilter) error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.SortBy, validation.In(
			interfaces.SortByDate, interfaces.SortByTitle,
			interfaces.SortByReadingTime, interfaces.SortByWordCount,
		)),
		validation.Field(&f.SortOrder, validation.In(interfaces.SortAsc, interfaces.SortDesc)),
		validation.Field(&f.Status, validation.By(func(value any) error {
			status, _ := value.(interfaces.PostStatus)
			if status == "" || status.Valid() {
				return nil
			}
			return errors.New("must be published, draft or archived")
		})),
		validation.Field(&f.Page, validation.Min(0)),
		validation.Field(&f.PageSize, validation.Min(0)),
	)
	if err == nil {
		return nil
	}
	return goerrors.FromOzzoValidation(err, "invalid post filter").
		WithTextCode(TextCodeInvalidFilter)
}

// List filters, sorts and pages the corpus. Zero values select every post,
// newest first, page 1 of DefaultPageSize. PageSize is capped at MaxPageSize.
// A page past the end is empty.
func (s *service) List(ctx context.Context, filter interfaces.PostFilter) (interfaces.PaginatedPosts, error) {
	if err := validateFilter(filter); err != nil {
		return interfaces.PaginatedPosts{}, err
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	switch {
	case filter.PageSize == 0:
		filter.PageSize = interfaces.DefaultPageSize
	case filter.PageSize > interfaces.MaxPageSize:
		filter.PageSize = interfaces.MaxPageSize
	}

	tagName := ""
	if filter.Tag != "" {
		tag, ok := taxonomy.FindTag(s.store.Tags(ctx), filter.Tag)
		if !ok {
			return paginate(nil, filter), nil
		}
		tagName = tag.Name
	}

	var matched []*interfaces.Post
	for _, post := range s.store.Posts(ctx, false) {
		if filter.Category != "" && post.Category.Slug != filter.Category {
			continue
		}
		if tagName != "" && !post.HasTag(tagName) {
			continue
		}
		if filter.Status != "" && post.Status != filter.Status {
			continue
		}
		if filter.Featured != nil && post.Featured != *filter.Featured {
			continue
		}
		matched = append(matched, post)
	}

	sortPosts(matched, filter.SortBy, filter.SortOrder)
	return paginate(matched, filter), nil
}

func sortPosts(list []*interfaces.Post, by interfaces.SortField, order interfaces.SortOrder) {
	if by == "" {
		by = interfaces.SortByDate
	}
	if order == "" {
		order = interfaces.SortDesc
	}
	compare := func(a, b *interfaces.Post) int {
		switch by {
		case interfaces.SortByTitle:
			return strings.Compare(a.Title, b.Title)
		case interfaces.SortByReadingTime:
			return a.ReadingTime - b.ReadingTime
		case interfaces.SortByWordCount:
			return a.WordCount - b.WordCount
		default:
			return a.PublishedAt.Compare(b.PublishedAt)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		c := compare(list[i], list[j])
		if order == interfaces.SortDesc {
			return c > 0
		}
		return c < 0
	})
}

func paginate(list []*interfaces.Post, filter interfaces.PostFilter) interfaces.PaginatedPosts {
	total := len(list)
	pages := (total + filter.PageSize - 1) / filter.PageSize
	start := (filter.Page - 1) * filter.PageSize
	end := min(start+filter.PageSize, total)

	page := []*interfaces.Post{}
	if start < total {
		page = clonePosts(list[start:end])
	}
	return interfaces.PaginatedPosts{
		Posts:      page,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: pages,
		HasNext:    filter.Page < pages,
		HasPrev:    filter.Page > 1,
	}
}
