package entity

import "strings"

// EnhancementType 文本增强类型
type EnhancementType string

const (
	EnhanceImprove   EnhancementType = "improve"
	EnhanceSummarize EnhancementType = "summarize"
	EnhanceExpand    EnhancementType = "expand"
	EnhanceChapters  EnhancementType = "chapters"
)

// ParseEnhancementType 解析增强类型，未知值回退为 improve
func ParseEnhancementType(s string) (EnhancementType, bool) {
	switch t := EnhancementType(strings.ToLower(strings.TrimSpace(s))); t {
	case EnhanceImprove, EnhanceSummarize, EnhanceExpand, EnhanceChapters:
		return t, true
	default:
		return EnhanceImprove, false
	}
}
