// Package analysis 分析文本的有声书适配度
package analysis

import (
	"math"
	"strings"
	"unicode/utf8"
)

// WordsPerMinute 平均朗读语速
const WordsPerMinute = 150

// Metrics 朗读时长估算
type Metrics struct {
	WordCount        int     `json:"word_count"`
	CharacterCount   int     `json:"character_count"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	EstimatedHours   float64 `json:"estimated_hours"`
}

// Estimate 按空白切词估算朗读时长，舍入采用 half-to-even
func Estimate(text string) Metrics {
	words := len(strings.Fields(text))
	minutes := int(math.RoundToEven(float64(words) / WordsPerMinute))
	return Metrics{
		WordCount:        words,
		CharacterCount:   utf8.RuneCountInString(text),
		EstimatedMinutes: minutes,
		EstimatedHours:   math.RoundToEven(float64(minutes)/60*10) / 10,
	}
}
