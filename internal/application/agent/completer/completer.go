// Package completer 在信息足够时补全剩余设定
package completer

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"z-novel-ai-agent/internal/domain/entity"
)

// Source 补全值的来源
type Source string

const (
	SourceGenreDefault     Source = "genre_default"
	SourceRolePrototype    Source = "role_prototype"
	SourceHistoryInference Source = "history_inference"
	SourceGenerated        Source = "generated"
)

// LogEntry 补全日志，仅供内部诊断，不返回给用户
type LogEntry struct {
	Path   string `json:"path"`
	Value  string `json:"value"`
	Source Source `json:"source"`
}

func (e LogEntry) String() string {
	return fmt.Sprintf("%s=%s (%s)", e.Path, e.Value, e.Source)
}

// CompletionResult 补全结果
type CompletionResult struct {
	Settings entity.ExtractedSettings `json:"settings"`
	Genre    Genre                    `json:"genre"`
	Log      []LogEntry               `json:"log,omitempty"`
	Applied  bool                     `json:"applied"`
}

// Config 补全器配置
type Config struct {
	Seed         uint64
	DefaultGenre string
}

// Completer 设定补全器
type Completer struct {
	seed         uint64
	defaultGenre Genre
}

// New 创建补全器
func New(cfg Config) *Completer {
	g := Genre(cfg.DefaultGenre)
	if _, ok := defaults[g]; !ok {
		g = GenreFantasy
	}
	return &Completer{seed: cfg.Seed, defaultGenre: g}
}

// Complete 补全 missing 中列出的字段，返回新的设定副本。
// 设定与对话都没有任何信号时不做补全，避免凭空编造整个故事。
func (c *Completer) Complete(s entity.ExtractedSettings, missing []entity.MissingInfo, history []string) CompletionResult {
	out := s.Clone()
	if !hasSignal(s, history) {
		return CompletionResult{Settings: out}
	}

	genre := c.resolveGenre(s, history)
	d := defaults[genre]
	res := CompletionResult{Genre: genre}
	log := func(path, value string, src Source) {
		res.Log = append(res.Log, LogEntry{Path: path, Value: value, Source: src})
	}

	for _, m := range missing {
		switch m.SettingType {
		case entity.SettingTypeCharacter:
			if len(out.Characters) == 0 {
				out.Characters = []entity.CharacterProfile{{}}
				log("characters[0]", "新增主角", SourceGenerated)
			}
			c.fillCharacter(&out, 0, m.Field, d, log)
		case entity.SettingTypeWorld:
			fillWorld(&out.World, m.Field, d, log)
		case entity.SettingTypePlot:
			fillPlot(&out.Plot, m.Field, d, history, log)
		case entity.SettingTypeStyle:
			fillStyle(&out.Style, m.Field, d, log)
		}
	}

	res.Settings = out
	res.Applied = len(res.Log) > 0
	return res
}

func hasSignal(s entity.ExtractedSettings, history []string) bool {
	if len(s.Characters) > 0 || !s.World.IsEmpty() || !s.Plot.IsEmpty() {
		return true
	}
	for _, h := range history {
		if strings.TrimSpace(h) != "" {
			return true
		}
	}
	return false
}

// resolveGenre 世界类型 → 文风题材 → 对话推断 → 默认题材
func (c *Completer) resolveGenre(s entity.ExtractedSettings, history []string) Genre {
	if g, ok := inferGenre(s.World.WorldType); ok {
		return g
	}
	if g, ok := inferGenre(strings.Join(s.Style.Genre, " ")); ok {
		return g
	}
	if g, ok := inferGenre(strings.Join(history, " ")); ok {
		return g
	}
	return c.defaultGenre
}

func inferGenre(text string) (Genre, bool) {
	text = strings.ToLower(text)
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	for _, gk := range genreKeywords {
		for _, kw := range gk.keywords {
			if strings.Contains(text, kw) {
				return gk.genre, true
			}
		}
	}
	return "", false
}

// rng 按角色下标派生的确定性随机源，同一 seed 下结果可复现
func (c *Completer) rng(index int) *rand.Rand {
	return rand.New(rand.NewPCG(c.seed, uint64(index)+1))
}

func (c *Completer) fillCharacter(s *entity.ExtractedSettings, idx int, field string, d genreDefaults, log func(string, string, Source)) {
	ch := &s.Characters[idx]
	if strings.TrimSpace(ch.Field(field)) != "" {
		return
	}
	path := fmt.Sprintf("characters[%d].%s", idx, field)
	r := c.rng(idx)
	// 每个字段使用固定的抽取次序，保证与字段补全顺序无关
	nameIdx, appearanceIdx, backgroundIdx, personaIdx := r.IntN(len(d.names)), r.IntN(len(d.appearances)), r.IntN(len(d.backgrounds)), r.IntN(64)

	switch field {
	case entity.FieldName:
		name := ""
		for i := range d.names {
			cand := d.names[(nameIdx+i)%len(d.names)]
			if s.FindCharacter(cand) < 0 {
				name = cand
				break
			}
		}
		if name == "" {
			name = fmt.Sprintf("%s%d", d.names[nameIdx], idx+1)
		}
		ch.Name = name
		log(path, name, SourceGenerated)
	case entity.FieldRole:
		role := "主角"
		if p := s.Protagonist(); p >= 0 && p != idx {
			role = "配角"
		}
		ch.Role = role
		log(path, role, SourceGenerated)
	case entity.FieldPersonality:
		protos, src := fallbackPersonality, SourceGenerated
		for _, rp := range rolePrototypes {
			if containsAny(strings.ToLower(ch.Role), rp.keywords) {
				protos, src = rp.personality, SourceRolePrototype
				break
			}
		}
		ch.Personality = protos[personaIdx%len(protos)]
		log(path, ch.Personality, src)
	case entity.FieldBackground:
		ch.Background = d.backgrounds[backgroundIdx]
		log(path, ch.Background, SourceGenerated)
	case entity.FieldAppearance:
		ch.Appearance = d.appearances[appearanceIdx]
		log(path, ch.Appearance, SourceGenerated)
	}
}

func fillWorld(w *entity.WorldSetting, field string, d genreDefaults, log func(string, string, Source)) {
	if strings.TrimSpace(w.Field(field)) != "" {
		return
	}
	var v string
	switch field {
	case entity.FieldWorldType:
		v = d.worldType
	case entity.FieldEra:
		v = d.era
	case entity.FieldTechnologyLevel:
		v = d.technologyLevel
	case entity.FieldGeography:
		v = d.geography
	default:
		return
	}
	w.SetField(field, v)
	log("world."+field, v, SourceGenreDefault)
}

func fillPlot(p *entity.PlotElement, field string, d genreDefaults, history []string, log func(string, string, Source)) {
	if strings.TrimSpace(p.Field(field)) != "" {
		return
	}
	switch field {
	case entity.FieldConflict:
		joined := strings.Join(history, " ")
		for _, ci := range conflictInference {
			if strings.Contains(joined, ci.keyword) {
				p.Conflict = ci.conflict
				log("plot.conflict", ci.conflict, SourceHistoryInference)
				return
			}
		}
		p.Conflict = d.conflict
		log("plot.conflict", d.conflict, SourceGenreDefault)
	case entity.FieldThemes:
		p.Themes = append([]string(nil), d.themes...)
		log("plot.themes", strings.Join(d.themes, "、"), SourceGenreDefault)
	case entity.FieldIncitingIncident:
		p.IncitingIncident = d.incitingIncident
		log("plot.inciting_incident", d.incitingIncident, SourceGenreDefault)
	case entity.FieldResolution:
		p.Resolution = d.resolution
		log("plot.resolution", d.resolution, SourceGenreDefault)
	}
}

func fillStyle(s *entity.StylePreference, field string, d genreDefaults, log func(string, string, Source)) {
	if strings.TrimSpace(s.Field(field)) != "" {
		return
	}
	var v string
	switch field {
	case entity.FieldPOV:
		v = d.pov
	case entity.FieldTone:
		v = d.tone
	case entity.FieldTense:
		v = d.tense
	case entity.FieldPacing:
		v = d.pacing
	default:
		return
	}
	s.SetField(field, v)
	log("style."+field, v, SourceGenreDefault)
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
