// Package rewrite 实现语气改写
package rewrite

import (
	"strings"

	"audiobook-ai-api/internal/domain/entity"
)

type replacement struct {
	from string
	to   string
}

// 替换按顺序执行，前面的替换结果可能被后面的规则再次命中
var toneReplacements = map[entity.Tone][]replacement{
	entity.ToneNeutral: {
		{"majestically", "prominently"},
		{"ancient", "old"},
		{"mysterious", "unexplained"},
		{"emerged", "appeared"},
		{"loomed", "stood"},
	},
	entity.ToneSuspenseful: {
		{"stood majestically", "loomed ominously"},
		{"ancient stones", "crumbling stones that seemed to whisper dark secrets"},
		{"emerged", "crept out like a shadow"},
		{"moved with purpose", "moved with sinister, calculated intent"},
		{"discovery", "shocking, spine-chilling revelation"},
		{"mysterious events", "dark, terrifying incidents that defy explanation"},
		{"brave enough", "foolish enough to dare venture"},
		{"within its walls", "trapped within its haunted walls"},
		{"figure", "shadowy figure"},
	},
	entity.ToneInspiring: {
		{"stood majestically", "stood as a magnificent beacon of resilience and hope"},
		{"weathered by", "strengthened and refined by"},
		{"countless stories", "countless tales of triumph, courage, and human spirit"},
		{"emerged", "stepped forth confidently with renewed purpose"},
		{"discovery", "life-changing, magnificent discovery"},
		{"change everything", "transform lives and inspire generations to come"},
		{"brave enough", "courageous and determined enough"},
		{"revelations", "profound, life-changing insights"},
		{"mysterious", "wondrous and awe-inspiring"},
		{"ancient", "timeless and revered"},
	},
}

// Simulate 本地模拟改写：按语气依次做字面替换，未知语气按 neutral 处理
func Simulate(text string, tone entity.Tone) string {
	rules, ok := toneReplacements[tone]
	if !ok {
		rules = toneReplacements[entity.ToneNeutral]
	}
	out := text
	for _, r := range rules {
		out = strings.ReplaceAll(out, r.from, r.to)
	}
	return out
}
