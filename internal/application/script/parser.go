// Package script 生成有声书脚本并拆分章节
package script

import (
	"regexp"
	"strconv"
	"strings"

	"audiobook-ai-api/internal/domain/entity"
)

var (
	chapterLabelRe    = regexp.MustCompile(`(?i)Chapter\s+(\d+):\s*([^\n]+)\n`)
	chapterBoundaryRe = regexp.MustCompile(`(?i)Chapter\s+\d+:`)
)

// ParseChapters 按 "Chapter N: 标题" 标签拆分脚本
// 章节按出现顺序返回，正文到下一个标签或文本末尾为止；没有标签时返回空切片
func ParseChapters(text string) []entity.ChapterRecord {
	chapters := make([]entity.ChapterRecord, 0)

	pos := 0
	for pos < len(text) {
		loc := chapterLabelRe.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		digits := text[pos+loc[2] : pos+loc[3]]
		title := strings.TrimSpace(text[pos+loc[4] : pos+loc[5]])

		bodyStart := pos + loc[1]
		bodyEnd := len(text)
		if next := chapterBoundaryRe.FindStringIndex(text[bodyStart:]); next != nil {
			bodyEnd = bodyStart + next[0]
		}
		pos = bodyEnd

		number, err := strconv.Atoi(digits)
		if err != nil {
			// 超出 int 范围的编号
			continue
		}
		chapters = append(chapters, entity.NewChapterRecord(
			number,
			"Chapter "+digits+": "+title,
			strings.TrimSpace(text[bodyStart:bodyEnd]),
		))
	}
	return chapters
}
