// Package intent 基于关键词的意图识别
package intent

import (
	"strings"

	"z-novel-ai-agent/internal/application/agent/agentutil"
	"z-novel-ai-agent/internal/domain/entity"
)

// Recognition 意图识别结果
type Recognition struct {
	Intent          entity.Intent        `json:"intent"`
	SettingTypes    []entity.SettingType `json:"setting_types,omitempty"`
	Confidence      float64              `json:"confidence"`
	MatchedKeywords []string             `json:"matched_keywords,omitempty"`
}

// HasSettingType 是否识别到指定设定类别
func (r Recognition) HasSettingType(t entity.SettingType) bool {
	for _, st := range r.SettingTypes {
		if st == t {
			return true
		}
	}
	return false
}

// IntentRecognizer 意图识别能力接口，可替换为统计模型实现
type IntentRecognizer interface {
	Recognize(utterance string) Recognition
}

// intentPriority 固定的匹配优先级，未命中时回落到 chat
var intentPriority = []entity.Intent{
	entity.IntentSetting,
	entity.IntentModify,
	entity.IntentCreate,
	entity.IntentQuery,
}

// Recognizer 关键词意图识别器。
// 关键词表是实例级副本，运行时扩展不会影响其他实例。
type Recognizer struct {
	intentKeywords  map[entity.Intent][]string
	settingKeywords map[entity.SettingType][]string
}

// NewRecognizer 使用默认关键词表创建识别器
func NewRecognizer() *Recognizer {
	r := &Recognizer{
		intentKeywords:  make(map[entity.Intent][]string, len(defaultIntentKeywords)),
		settingKeywords: make(map[entity.SettingType][]string, len(defaultSettingKeywords)),
	}
	for k, v := range defaultIntentKeywords {
		r.intentKeywords[k] = append([]string(nil), v...)
	}
	for k, v := range defaultSettingKeywords {
		r.settingKeywords[k] = append([]string(nil), v...)
	}
	return r
}

// AddIntentKeywords 扩展意图关键词
func (r *Recognizer) AddIntentKeywords(in entity.Intent, keywords ...string) {
	r.intentKeywords[in] = appendKeywords(r.intentKeywords[in], keywords)
}

// AddSettingTypeKeywords 扩展设定类别关键词
func (r *Recognizer) AddSettingTypeKeywords(t entity.SettingType, keywords ...string) {
	r.settingKeywords[t] = appendKeywords(r.settingKeywords[t], keywords)
}

// Recognize 识别意图与涉及的设定类别，纯函数
func (r *Recognizer) Recognize(utterance string) Recognition {
	text := agentutil.Normalize(utterance)
	rec := Recognition{Intent: entity.IntentChat, Confidence: 0.5}
	if text == "" {
		return rec
	}

	for _, in := range intentPriority {
		matched := agentutil.MatchAll(text, r.intentKeywords[in])
		if len(matched) == 0 {
			continue
		}
		rec.Intent = in
		rec.MatchedKeywords = matched
		rec.Confidence = 0.6 + 0.1*float64(len(matched))
		if rec.Confidence > 0.95 {
			rec.Confidence = 0.95
		}
		break
	}

	for _, st := range entity.AllSettingTypes {
		if _, ok := agentutil.ContainsAny(text, r.settingKeywords[st]); ok {
			rec.SettingTypes = append(rec.SettingTypes, st)
		}
	}
	return rec
}

func appendKeywords(list []string, keywords []string) []string {
	for _, kw := range keywords {
		kw = agentutil.Normalize(kw)
		if kw == "" {
			continue
		}
		dup := false
		for _, existing := range list {
			if strings.EqualFold(existing, kw) {
				dup = true
				break
			}
		}
		if !dup {
			list = append(list, kw)
		}
	}
	return list
}
