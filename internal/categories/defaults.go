package categories

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-blog/internal/slugs"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validSlug(value any) error {
	s, _ := value.(string)
	if s == "" || slugs.Valid(s) {
		return nil
	}
	return validation.NewError("validation_category_slug", "must be a valid slug")
}

// DefaultEntries is the built-in category table. The Chinese and English
// project review directories share one category.
func DefaultEntries() []Entry {
	review := Entry{
		Name:        "项目复盘",
		Slug:        "project-review",
		Description: "项目总结与经验分享",
		Icon:        "🔄",
		Color:       "#722ed1",
		Order:       5,
		ShowInNav:   true,
	}
	chineseReview := review
	chineseReview.Key = "项目复盘"
	englishReview := review
	englishReview.Key = "project-review"

	return []Entry{
		{
			Key:         "thinking",
			Name:        "思考笔记",
			Slug:        "thinking",
			Description: "个人思考与感悟",
			Icon:        "🤔",
			Color:       "#1890ff",
			Order:       1,
			ShowInNav:   true,
		},
		{
			Key:         "tech",
			Name:        "技术分享",
			Slug:        "tech",
			Description: "技术文章与教程",
			Icon:        "💻",
			Color:       "#52c41a",
			Order:       2,
			ShowInNav:   true,
		},
		{
			Key:         "life",
			Name:        "生活感悟",
			Slug:        "life",
			Description: "生活点滴与感悟",
			Icon:        "🌱",
			Color:       "#faad14",
			Order:       3,
			ShowInNav:   true,
		},
		{
			Key:         "diary",
			Name:        "个人日记",
			Slug:        "diary",
			Description: "日常记录与心情",
			Icon:        "📝",
			Color:       "#eb2f96",
			Order:       4,
			ShowInNav:   true,
		},
		chineseReview,
		englishReview,
	}
}
