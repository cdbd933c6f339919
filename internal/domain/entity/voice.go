package entity

import "strings"

// Voice 朗读音色
type Voice string

const (
	VoiceLisa    Voice = "lisa"
	VoiceMichael Voice = "michael"
	VoiceAllison Voice = "allison"
)

// DefaultVoice 未指定时使用的音色
const DefaultVoice = VoiceLisa

var watsonVoices = map[Voice]string{
	VoiceLisa:    "en-US_LisaV3Voice",
	VoiceMichael: "en-US_MichaelV3Voice",
	VoiceAllison: "en-US_AllisonV3Voice",
}

// ParseVoice 解析音色，空字符串视为默认音色
func ParseVoice(s string) (Voice, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultVoice, true
	}
	v := Voice(s)
	if _, ok := watsonVoices[v]; !ok {
		return "", false
	}
	return v, true
}

// WatsonName 返回 Watson TTS 的音色名
func (v Voice) WatsonName() string {
	return watsonVoices[v]
}
