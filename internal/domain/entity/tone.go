package entity

import "strings"

// Tone 改写语气
type Tone string

const (
	ToneNeutral     Tone = "neutral"
	ToneSuspenseful Tone = "suspenseful"
	ToneInspiring   Tone = "inspiring"
)

// Tones 支持的语气
var Tones = []Tone{ToneNeutral, ToneSuspenseful, ToneInspiring}

// ParseTone 解析语气，未知值返回 ToneNeutral 和 false
func ParseTone(s string) (Tone, bool) {
	switch Tone(strings.ToLower(strings.TrimSpace(s))) {
	case ToneNeutral:
		return ToneNeutral, true
	case ToneSuspenseful:
		return ToneSuspenseful, true
	case ToneInspiring:
		return ToneInspiring, true
	default:
		return ToneNeutral, false
	}
}
