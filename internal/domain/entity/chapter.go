// Package entity 定义领域实体
package entity

// ChapterStatus 章节状态
type ChapterStatus string

const (
	ChapterStatusPending ChapterStatus = "pending"
)

// ChapterRecord 从生成脚本中解析出的章节
// Number 取自标签文本，不保证连续或唯一
type ChapterRecord struct {
	Number  int           `json:"number"`
	Title   string        `json:"title"`
	Content string        `json:"content"`
	Status  ChapterStatus `json:"status"`
}

// NewChapterRecord 创建待处理章节
func NewChapterRecord(number int, title, content string) ChapterRecord {
	return ChapterRecord{
		Number:  number,
		Title:   title,
		Content: content,
		Status:  ChapterStatusPending,
	}
}
