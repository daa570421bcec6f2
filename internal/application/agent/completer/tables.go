package completer

// Genre 补全使用的题材键
type Genre string

const (
	GenreFantasy    Genre = "fantasy"
	GenreSciFi      Genre = "scifi"
	GenreUrban      Genre = "urban"
	GenreHistorical Genre = "historical"
)

// genreDefaults 题材默认值
type genreDefaults struct {
	worldType       string
	era             string
	technologyLevel string
	geography       string

	conflict         string
	themes           []string
	incitingIncident string
	resolution       string

	pov    string
	tone   string
	tense  string
	pacing string

	names       []string
	appearances []string
	backgrounds []string
}

var defaults = map[Genre]genreDefaults{
	GenreFantasy: {
		worldType:        "奇幻",
		era:              "中世纪",
		technologyLevel:  "冷兵器",
		geography:        "群山环绕的艾尔德兰王国",
		conflict:         "黑暗势力的崛起威胁着王国的存亡",
		themes:           []string{"成长", "勇气"},
		incitingIncident: "一次意外让主角卷入了古老的预言",
		resolution:       "主角击败黑暗势力，王国重归和平",
		pov:              "第三人称",
		tone:             "热血",
		tense:            "过去时",
		pacing:           "张弛有度",
		names:            []string{"艾伦", "莉娅", "凯恩", "希尔薇", "罗兰", "艾琳"},
		appearances:      []string{"银发碧眼，身形修长", "黑发及肩，眼神坚定", "金色短发，脸上有一道旧伤疤", "红发披肩，笑容明亮"},
		backgrounds:      []string{"边境村庄长大的孤儿", "没落骑士家族的后人", "法师学院的落榜生", "王都的年轻铁匠学徒"},
	},
	GenreSciFi: {
		worldType:        "科幻",
		era:              "未来",
		technologyLevel:  "高科技",
		geography:        "霓虹笼罩的巨型都市新港",
		conflict:         "人类与失控的人工智能之间的对抗",
		themes:           []string{"人性", "自由"},
		incitingIncident: "一段来源不明的加密信号打破了平静",
		resolution:       "主角揭开真相，人类与机器达成新的平衡",
		pov:              "第三人称",
		tone:             "冷峻",
		tense:            "过去时",
		pacing:           "快节奏",
		names:            []string{"诺瓦", "凯·林", "艾达", "零", "赛恩", "维拉"},
		appearances:      []string{"左臂是银色的机械义肢", "短发染成电光蓝，戴着数据目镜", "身形瘦削，眼底闪着植入体的微光", "总穿一件磨旧的飞行夹克"},
		backgrounds:      []string{"底层街区的自由黑客", "退役的星舰驾驶员", "巨型企业的叛逃研究员", "被抹去记忆的前特工"},
	},
	GenreUrban: {
		worldType:        "都市",
		era:              "现代",
		technologyLevel:  "现代科技",
		geography:        "繁华的沿海城市",
		conflict:         "在现实压力与理想之间的挣扎",
		themes:           []string{"成长", "梦想"},
		incitingIncident: "一次突如其来的失业改变了主角的生活轨迹",
		resolution:       "主角找到属于自己的道路",
		pov:              "第一人称",
		tone:             "轻松",
		tense:            "过去时",
		pacing:           "舒缓",
		names:            []string{"陈默", "林晓", "周然", "苏晴", "许知远", "沈念"},
		appearances:      []string{"戴一副黑框眼镜，衣着朴素", "短发干练，总是行色匆匆", "笑起来有两个酒窝", "个子高挑，喜欢穿白衬衫"},
		backgrounds:      []string{"刚毕业的设计师", "小有名气的自媒体作者", "夜班出租车司机", "经营一家旧书店"},
	},
	GenreHistorical: {
		worldType:        "历史",
		era:              "古代",
		technologyLevel:  "冷兵器",
		geography:        "风云变幻的京城",
		conflict:         "朝堂之争牵动家国命运",
		themes:           []string{"忠义", "家国"},
		incitingIncident: "一封密信揭开了尘封多年的旧案",
		resolution:       "主角力挽狂澜，沉冤得雪",
		pov:              "第三人称",
		tone:             "厚重",
		tense:            "过去时",
		pacing:           "张弛有度",
		names:            []string{"沈慕白", "萧长风", "顾清辞", "楚云", "谢安澜", "温如玉"},
		appearances:      []string{"一袭青衫，眉目清朗", "身披玄甲，目光如炬", "素衣布履，腰悬长剑", "面容清冷，鬓边一支白玉簪"},
		backgrounds:      []string{"蒙冤入狱的将门之后", "隐居山林的落第书生", "江湖出身的捕快", "宫中长大的医女"},
	},
}

// genreKeywords 从世界类型、题材或对话中推断题材
var genreKeywords = []struct {
	genre    Genre
	keywords []string
}{
	{GenreSciFi, []string{"科幻", "赛博", "星际", "太空", "机器人", "人工智能", "黑客", "末世", "sci-fi"}},
	{GenreFantasy, []string{"奇幻", "魔幻", "魔法", "骑士", "龙", "精灵", "仙侠", "修仙", "fantasy"}},
	{GenreHistorical, []string{"历史", "古代", "王朝", "宫廷", "武侠", "江湖"}},
	{GenreUrban, []string{"都市", "现代", "职场", "校园", "urban"}},
}

// rolePrototypes 按角色定位给出的性格原型
var rolePrototypes = []struct {
	keywords    []string
	personality []string
}{
	{[]string{"主角", "主人公", "protagonist", "hero"}, []string{"勇敢，坚韧", "机智，乐观", "冷静，果断"}},
	{[]string{"反派", "villain"}, []string{"狡猾，野心勃勃", "冷酷，偏执"}},
	{[]string{"导师", "师父", "mentor"}, []string{"睿智，沉稳", "严厉，外冷内热"}},
	{[]string{"配角"}, []string{"忠诚，幽默", "温柔，细心"}},
}

var fallbackPersonality = []string{"善良，执着", "内敛，可靠"}

// conflictInference 对话中的动作关键词对应的核心冲突
var conflictInference = []struct {
	keyword  string
	conflict string
}{
	{"反抗", "反抗压迫，争取自由"},
	{"复仇", "为了复仇踏上征途"},
	{"拯救", "拯救陷入危机的世界"},
	{"寻找", "寻找失落的真相"},
	{"逃离", "逃离命运的囚笼"},
}
