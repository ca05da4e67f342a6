package interfaces

import "time"

// PostStatus captures the publication state declared in front matter.
type PostStatus string

const (
	PostStatusPublished PostStatus = "published"
	PostStatusDraft     PostStatus = "draft"
	PostStatusArchived  PostStatus = "archived"
)

// Valid reports whether the status is one of the known publication states.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusPublished, PostStatusDraft, PostStatusArchived:
		return true
	default:
		return false
	}
}

// DefaultAuthor is assigned when a post does not declare one.
const DefaultAuthor = "unknown author"

// CategoryRef is the resolved category embedded in every post.
type CategoryRef struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Post is one normalized Markdown file.
type Post struct {
	ID               string      `json:"id"`
	Slug             string      `json:"slug"`
	FilePath         string      `json:"filePath"`
	Title            string      `json:"title"`
	Excerpt          string      `json:"excerpt"`
	Content          string      `json:"content"`
	Category         CategoryRef `json:"category"`
	DeclaredCategory string      `json:"declaredCategory,omitempty"`
	Tags             []string    `json:"tags"`
	Date             time.Time   `json:"date"`
	PublishedAt      time.Time   `json:"publishedAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
	WordCount        int         `json:"wordCount"`
	ReadingTime      int         `json:"readingTime"`
	Author           string      `json:"author"`
	Status           PostStatus  `json:"status"`
	Featured         bool        `json:"featured"`
	CoverImage       string      `json:"coverImage,omitempty"`
	Views            *int        `json:"views,omitempty"`
	Checksum         string      `json:"checksum,omitempty"`
}

// Clone returns a deep copy so cached posts stay immutable for callers.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	out := *p
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	if p.Views != nil {
		views := *p.Views
		out.Views = &views
	}
	return &out
}

// HasTag reports whether the post declares the named tag.
func (p *Post) HasTag(name string) bool {
	for _, tag := range p.Tags {
		if tag == name {
			return true
		}
	}
	return false
}

// Category is a registry entry enriched with the number of posts filed under it.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Order       int    `json:"order"`
	ShowInNav   bool   `json:"showInNav"`
	PostCount   int    `json:"postCount"`
}

// Ref projects the category onto the shape embedded in posts.
func (c Category) Ref() CategoryRef {
	return CategoryRef{Name: c.Name, Slug: c.Slug, Icon: c.Icon, Color: c.Color}
}

// Tag is derived from the tag lists of the loaded posts.
type Tag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	PostCount   int    `json:"postCount"`
}

// SlotStatus describes one cached value.
type SlotStatus struct {
	Name      string        `json:"name"`
	Populated bool          `json:"populated"`
	StoredAt  time.Time     `json:"storedAt,omitempty"`
	Age       time.Duration `json:"age"`
	Items     int           `json:"items"`
	Fresh     bool          `json:"fresh"`
}

// CacheStatus is the diagnostic view of the corpus cache.
type CacheStatus struct {
	TTL   time.Duration `json:"ttl"`
	Slots []SlotStatus  `json:"slots"`
}

// SortField names the post attribute used to order listings.
type SortField string

const (
	SortByDate        SortField = "date"
	SortByTitle       SortField = "title"
	SortByReadingTime SortField = "readingTime"
	SortByWordCount   SortField = "wordCount"
)

// SortOrder selects ascending or descending listings.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PostFilter narrows and pages a post listing. Category and Tag are slugs.
type PostFilter struct {
	Category  string
	Tag       string
	Status    PostStatus
	Featured  *bool
	SortBy    SortField
	SortOrder SortOrder
	Page      int
	PageSize  int
}

// PaginatedPosts is one page of a filtered listing.
type PaginatedPosts struct {
	Posts      []*Post `json:"posts"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
	HasNext    bool    `json:"hasNext"`
	HasPrev    bool    `json:"hasPrev"`
}

// RelatedPost is a lightweight pointer to a post sharing tags or a category.
type RelatedPost struct {
	Slug        string      `json:"slug"`
	Title       string      `json:"title"`
	Excerpt     string      `json:"excerpt"`
	Category    CategoryRef `json:"category"`
	PublishedAt time.Time   `json:"publishedAt"`
	Score       int         `json:"score"`
}

// BlogStats summarizes the loaded corpus.
type BlogStats struct {
	TotalPosts      int            `json:"totalPosts"`
	TotalWords      int            `json:"totalWords"`
	TotalCategories int            `json:"totalCategories"`
	TotalTags       int            `json:"totalTags"`
	PostsByCategory map[string]int `json:"postsByCategory"`
	PostsByTag      map[string]int `json:"postsByTag"`
	PostsByStatus   map[string]int `json:"postsByStatus"`
	LastUpdated     time.Time      `json:"lastUpdated"`
}

// ArchiveYear groups posts published in one calendar year.
type ArchiveYear struct {
	Year  int     `json:"year"`
	Posts []*Post `json:"posts"`
}
