package entity

import "time"

// Generation 一次文本生成的结果
type Generation struct {
	Text       string        `json:"text"`
	TokensUsed int           `json:"tokens_used"`
	Provider   string        `json:"provider"`
	Model      string        `json:"model,omitempty"`
	Cached     bool          `json:"cached,omitempty"`
	Duration   time.Duration `json:"-"`
}
