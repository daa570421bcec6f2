package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"z-novel-ai-agent/internal/domain/entity"
)

func TestRecognize_Intents(t *testing.T) {
	r := NewRecognizer()

	cases := []struct {
		name      string
		utterance string
		want      entity.Intent
	}{
		{"create", "我想写个科幻小说", entity.IntentCreate},
		{"setting beats create", "主角是个黑客，要反抗大公司", entity.IntentSetting},
		{"explicit start", "可以开始了", entity.IntentCreate},
		{"modify", "让Neo更勇敢一点", entity.IntentModify},
		{"query", "现在的设定是什么？", entity.IntentQuery},
		{"full width question mark", "有哪些角色？", entity.IntentQuery},
		{"chat", "你好呀", entity.IntentChat},
		{"empty", "   ", entity.IntentChat},
		{"english", "Let's start writing", entity.IntentCreate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.Recognize(tc.utterance).Intent)
		})
	}
}

func TestRecognize_SettingTypes(t *testing.T) {
	r := NewRecognizer()

	rec := r.Recognize("主角是个黑客，生活在未来的科幻世界，要反抗大公司，风格偏黑暗")
	assert.Equal(t, entity.IntentSetting, rec.Intent)
	assert.Equal(t, []entity.SettingType{
		entity.SettingTypeCharacter,
		entity.SettingTypeWorld,
		entity.SettingTypePlot,
		entity.SettingTypeStyle,
	}, rec.SettingTypes)

	rec = r.Recognize("你好")
	assert.Empty(t, rec.SettingTypes)
	assert.False(t, rec.HasSettingType(entity.SettingTypeWorld))
}

func TestRecognize_Confidence(t *testing.T) {
	r := NewRecognizer()

	chat := r.Recognize("嗯嗯")
	assert.InDelta(t, 0.5, chat.Confidence, 1e-9)

	one := r.Recognize("动笔")
	assert.InDelta(t, 0.7, one.Confidence, 1e-9)
	assert.Equal(t, []string{"动笔"}, one.MatchedKeywords)

	many := r.Recognize("开始写故事吧，生成一篇小说，继续创作")
	assert.InDelta(t, 0.95, many.Confidence, 1e-9)
}

func TestRecognize_Deterministic(t *testing.T) {
	r := NewRecognizer()
	in := "主角叫林风，性格冷静，世界是修仙大陆"
	assert.Equal(t, r.Recognize(in), r.Recognize(in))
}

func TestRecognizer_Extensible(t *testing.T) {
	r := NewRecognizer()
	assert.Equal(t, entity.IntentChat, r.Recognize("来一段").Intent)

	r.AddIntentKeywords(entity.IntentCreate, "来一段", "来一段")
	assert.Equal(t, entity.IntentCreate, r.Recognize("来一段").Intent)
	assert.Len(t, r.intentKeywords[entity.IntentCreate], len(defaultIntentKeywords[entity.IntentCreate])+1)

	r.AddSettingTypeKeywords(entity.SettingTypeWorld, "蒸汽朋克")
	assert.True(t, r.Recognize("蒸汽朋克风").HasSettingType(entity.SettingTypeWorld))

	// 其他实例不受影响
	other := NewRecognizer()
	assert.Equal(t, entity.IntentChat, other.Recognize("来一段").Intent)
}
