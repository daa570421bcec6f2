package conflict

// exclusivePair 互斥的两组关键词，文本同时命中两侧即视为冲突
type exclusivePair struct {
	left, right []string
}

var (
	fantasyWorld  = []string{"奇幻", "魔幻", "fantasy"}
	xianxiaWorld  = []string{"仙侠", "修仙", "修真"}
	scifiWorld    = []string{"科幻", "赛博朋克", "星际", "sci-fi"}
	historyWorld  = []string{"历史", "宫廷"}
	urbanWorld    = []string{"都市", "urban"}
	wuxiaWorld    = []string{"武侠", "江湖"}
	magicalWorlds = [][]string{fantasyWorld, xianxiaWorld}
	mundaneWorlds = [][]string{scifiWorld, historyWorld, urbanWorld}
)

var worldTypePairs = []exclusivePair{
	{fantasyWorld, scifiWorld},
	{xianxiaWorld, scifiWorld},
	{wuxiaWorld, scifiWorld},
	{historyWorld, scifiWorld},
	{historyWorld, urbanWorld},
}

var eraPairs = []exclusivePair{
	{[]string{"古代"}, []string{"未来"}},
	{[]string{"古代"}, []string{"现代", "当代"}},
	{[]string{"中世纪"}, []string{"未来"}},
	{[]string{"远古", "上古"}, []string{"现代", "当代"}},
}

// personalityPairs 互相矛盾的性格特征
var personalityPairs = []exclusivePair{
	{[]string{"勇敢"}, []string{"胆小", "懦弱"}},
	{[]string{"冷静", "沉稳"}, []string{"暴躁", "冲动"}},
	{[]string{"内向"}, []string{"外向"}},
	{[]string{"开朗"}, []string{"孤僻"}},
	{[]string{"乐观"}, []string{"悲观"}},
	{[]string{"谦逊"}, []string{"傲慢"}},
	{[]string{"果断"}, []string{"犹豫"}},
	{[]string{"勤奋"}, []string{"懒惰"}},
	{[]string{"善良"}, []string{"邪恶", "残忍"}},
	{[]string{"忠诚"}, []string{"背叛"}},
}

var povMarkers = [][]string{
	{"第一人称", "first person"},
	{"第二人称", "second person"},
	{"第三人称", "third person", "全知视角", "上帝视角"},
}

var tenseMarkers = [][]string{
	{"过去时", "past tense"},
	{"现在时", "present tense"},
	{"将来时", "future tense"},
}

var magicAbilityWords = []string{"魔法", "法术", "咒语", "灵力", "修炼", "召唤", "御剑", "magic", "spell"}

var (
	lightTones  = []string{"轻松", "幽默", "温馨", "治愈"}
	darkTones   = []string{"黑暗", "压抑", "沉重", "恐怖"}
	darkGenres  = []string{"恐怖", "悲剧", "惊悚"}
	lightGenres = []string{"喜剧", "童话"}
)

// authorityRoles 通常不会由儿童担任的角色
var authorityRoles = []string{"导师", "师父", "国王", "将军", "首领", "族长", "掌门"}

const (
	childAgeLimit  = 12
	mortalAgeLimit = 150
)
