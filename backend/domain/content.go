package domain

type Content struct {
	ID           string `json:"id"`
	ChapterTitle string `json:"chapter_title"`
	Subtitle     string `json:"subtitle"`
	Chapter      int    `json:"chapter"`
	Order        int    `json:"order"`
	Description  string `json:"description"`
	Video        string `json:"video"`
	Image        string `json:"image"`
}

type ContentCreate struct {
	ChapterTitle string `json:"chapter_title" validate:"required"`
	Subtitle     string `json:"subtitle"`
	Chapter      int    `json:"chapter" validate:"gte=0"`
	Order        int    `json:"order" validate:"gte=0"`
	Description  string `json:"description"`
	Video        string `json:"video"`
	Image        string `json:"image"`
}

// ContentUpdate carries a partial update of a content item.
type ContentUpdate struct {
	ChapterTitle *string `json:"chapter_title"`
	Subtitle     *string `json:"subtitle"`
	Chapter      *int    `json:"chapter" validate:"omitempty,gte=0"`
	Order        *int    `json:"order" validate:"omitempty,gte=0"`
	Description  *string `json:"description"`
	Video        *string `json:"video"`
	Image        *string `json:"image"`
	Active       *bool   `json:"active"`
}

// Chapter groups the content items that share a chapter number.
type Chapter struct {
	Chapter int       `json:"chapter"`
	Content []Content `json:"content"`
}

// GroupChapters folds consecutive items with the same chapter number into a
// single chapter, keeping input order. Items must already be sorted by
// (chapter, order).
func GroupChapters(items []Content) []Chapter {
	chapters := make([]Chapter, 0)
	for _, item := range items {
		last := len(chapters) - 1
		if last >= 0 && chapters[last].Chapter == item.Chapter {
			chapters[last].Content = append(chapters[last].Content, item)
			continue
		}
		chapters = append(chapters, Chapter{Chapter: item.Chapter, Content: []Content{item}})
	}
	return chapters
}
