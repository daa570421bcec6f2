package extractor

import (
	"regexp"
	"sort"
	"strings"
)

// lexeme 规范值及其触发词
type lexeme struct {
	value    string
	keywords []string
}

// matchLexicon 返回命中的规范值，按在文本中首次出现的位置排序
func matchLexicon(text string, lex []lexeme) []string {
	type hit struct {
		value string
		pos   int
	}
	var hits []hit
	for _, l := range lex {
		pos := -1
		for _, kw := range l.keywords {
			if i := strings.Index(text, kw); i >= 0 && (pos < 0 || i < pos) {
				pos = i
			}
		}
		if pos >= 0 {
			hits = append(hits, hit{value: l.value, pos: pos})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	out := make([]string, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))
	for _, h := range hits {
		if _, ok := seen[h.value]; ok {
			continue
		}
		seen[h.value] = struct{}{}
		out = append(out, h.value)
	}
	return out
}

// words 把同名词表转为 lexeme
func words(list ...string) []lexeme {
	out := make([]lexeme, len(list))
	for i, w := range list {
		out[i] = lexeme{value: w, keywords: []string{w}}
	}
	return out
}

// 句内终止符，width.Fold 之后中文逗号等已是半角
const term = `[,.!?;:、。\s]`

var (
	reName        = regexp.MustCompile(`(?:名叫|叫做|名字是|叫)(?:他|她)?\s*([A-Za-z][A-Za-z\-]{0,19}|[\p{Han}·]{1,4}?)(?:` + term + `|是|的|$)`)
	reNameEnglish = regexp.MustCompile(`(?i)\bnamed\s+([A-Za-z][A-Za-z\-]*)`)
	reAgeDigits   = regexp.MustCompile(`(\d{1,3})\s*岁`)
	reAgeHan      = regexp.MustCompile(`([零一二两三四五六七八九十百]+)岁`)
	reOccupation  = regexp.MustCompile(`(?:主角|主人公|男主|女主|反派|配角|导师|他|她)(?:是|为)(?:个|一个|一名|一位)([\p{Han}A-Za-z]{1,8}?)(?:` + term + `|$)`)
	rePersonality = regexp.MustCompile(`性格(?:是|为|:|很|比较)?([^,.!?;。]{1,12})`)
	reAbilities   = regexp.MustCompile(`(?:擅长|精通|掌握|会使用|会用|能力是)([^,.!?;。]{1,16})`)
	reAppearance  = regexp.MustCompile(`(?:外貌|长相|外表)(?:是|为|:)?([^,.!?;。]{1,16})`)

	reMagicSystem = regexp.MustCompile(`(?:魔法体系|力量体系|修炼体系)(?:是|为|:)?([^,.!?;。]{1,16})`)
	reGeography   = regexp.MustCompile(`(?:发生在|位于|坐落在)([^,.!?;。]{2,16})`)
	reYear        = regexp.MustCompile(`(\d{2,4})年`)

	reConflictVerb     = regexp.MustCompile(`(反抗|对抗|推翻|复仇|报仇|拯救|寻找|逃离|阻止|揭开|守护|打败|战胜)([^,.!?;。]{1,16})`)
	reConflictExplicit = regexp.MustCompile(`(?:冲突|矛盾)(?:是|为|:)([^,.!?;。]{1,20})`)
	reThemes           = regexp.MustCompile(`主题(?:是|为|:)([^,.!?;。]{1,20})`)
	reResolution       = regexp.MustCompile(`(?:结局|结尾)(?:是|为|:)([^,.!?;。]{1,20})`)
	reInciting         = regexp.MustCompile(`(?:起因是|开端是|故事开始于|始于)([^,.!?;。]{1,20})`)
	reWritingStyle     = regexp.MustCompile(`文风(?:是|为|:)?([^,.!?;。]{1,12})`)
)

var roleLexicon = []lexeme{
	{value: "主角", keywords: []string{"主角", "主人公", "男主", "女主", "protagonist"}},
	{value: "反派", keywords: []string{"反派", "villain", "antagonist"}},
	{value: "配角", keywords: []string{"配角", "sidekick"}},
	{value: "导师", keywords: []string{"导师", "师父", "mentor"}},
}

var personalityLexicon = words(
	"勇敢", "胆小", "善良", "冷静", "冷酷", "热情", "开朗", "内向", "外向",
	"聪明", "机智", "狡猾", "正直", "犹豫", "果断", "温柔", "暴躁", "孤僻",
	"乐观", "悲观", "傲慢", "谦逊", "忠诚", "自私", "懒惰", "勤奋", "冲动",
	"沉稳", "固执", "叛逆", "坚强", "懦弱", "神秘", "天真", "腹黑",
)

// worldTypeLexicon 世界类型规范值，冲突检测按这些规范值分组
var worldTypeLexicon = []lexeme{
	{value: "奇幻", keywords: []string{"奇幻", "魔幻", "魔法世界", "剑与魔法", "fantasy"}},
	{value: "科幻", keywords: []string{"科幻", "赛博朋克", "星际", "太空", "机甲", "sci-fi", "science fiction"}},
	{value: "都市", keywords: []string{"都市", "urban"}},
	{value: "历史", keywords: []string{"历史", "宫廷", "古代王朝"}},
	{value: "武侠", keywords: []string{"武侠", "江湖"}},
	{value: "仙侠", keywords: []string{"仙侠", "修仙", "修真"}},
	{value: "末世", keywords: []string{"末世", "末日", "废土"}},
}

var eraLexicon = []lexeme{
	{value: "远古", keywords: []string{"远古", "上古"}},
	{value: "古代", keywords: []string{"古代", "唐朝", "宋朝", "明朝", "清朝", "秦朝", "汉朝"}},
	{value: "中世纪", keywords: []string{"中世纪", "medieval"}},
	{value: "近代", keywords: []string{"近代", "民国", "维多利亚"}},
	{value: "现代", keywords: []string{"现代", "当代", "modern"}},
	{value: "未来", keywords: []string{"未来", "future"}},
}

var magicLexicon = []lexeme{
	{value: "魔法", keywords: []string{"魔法", "法术", "magic"}},
	{value: "灵力修炼", keywords: []string{"灵力", "修炼", "真气"}},
	{value: "斗气", keywords: []string{"斗气"}},
	{value: "异能", keywords: []string{"异能", "超能力"}},
}

var technologyLexicon = []lexeme{
	{value: "星际航行", keywords: []string{"星际航行", "飞船", "曲速"}},
	{value: "高科技", keywords: []string{"高科技", "人工智能", "义体", "赛博"}},
	{value: "蒸汽时代", keywords: []string{"蒸汽"}},
	{value: "冷兵器", keywords: []string{"冷兵器", "刀剑"}},
	{value: "原始", keywords: []string{"原始部落", "石器"}},
}

var themeLexicon = words(
	"成长", "友情", "爱情", "自由", "救赎", "正义", "牺牲", "家庭",
	"勇气", "背叛", "命运", "人性", "复仇", "觉醒",
)

var resolutionLexicon = []lexeme{
	{value: "大团圆结局", keywords: []string{"大团圆", "happy ending"}},
	{value: "悲剧结局", keywords: []string{"悲剧结局", "be结局"}},
	{value: "开放式结局", keywords: []string{"开放式结局", "开放结局"}},
}

var povLexicon = []lexeme{
	{value: "第一人称", keywords: []string{"第一人称", "first person"}},
	{value: "第二人称", keywords: []string{"第二人称", "second person"}},
	{value: "第三人称", keywords: []string{"第三人称", "third person", "全知视角", "上帝视角"}},
}

var tenseLexicon = []lexeme{
	{value: "过去时", keywords: []string{"过去时", "past tense"}},
	{value: "现在时", keywords: []string{"现在时", "present tense"}},
	{value: "将来时", keywords: []string{"将来时", "future tense"}},
}

var toneLexicon = words(
	"轻松", "幽默", "黑暗", "沉重", "温馨", "悬疑", "热血", "压抑", "浪漫", "治愈", "严肃",
)

var pacingLexicon = []lexeme{
	{value: "快节奏", keywords: []string{"快节奏", "节奏快", "紧凑"}},
	{value: "慢节奏", keywords: []string{"慢节奏", "节奏慢", "舒缓"}},
}

var writingStyleLexicon = words("简洁", "华丽", "细腻", "白描", "诗意")

var genreLexicon = []lexeme{
	{value: "科幻", keywords: []string{"科幻", "sci-fi"}},
	{value: "奇幻", keywords: []string{"奇幻", "魔幻", "fantasy"}},
	{value: "武侠", keywords: []string{"武侠"}},
	{value: "仙侠", keywords: []string{"仙侠", "修仙"}},
	{value: "悬疑", keywords: []string{"悬疑", "推理", "mystery"}},
	{value: "恐怖", keywords: []string{"恐怖", "惊悚", "horror"}},
	{value: "言情", keywords: []string{"言情", "恋爱", "romance"}},
	{value: "喜剧", keywords: []string{"喜剧", "comedy"}},
	{value: "童话", keywords: []string{"童话"}},
	{value: "悲剧", keywords: []string{"悲剧"}},
	{value: "冒险", keywords: []string{"冒险", "adventure"}},
}
