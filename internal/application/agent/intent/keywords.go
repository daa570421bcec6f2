package intent

import "z-novel-ai-agent/internal/domain/entity"

// 关键词均为 agentutil.Normalize 之后的形式（小写、半角）

var defaultIntentKeywords = map[entity.Intent][]string{
	entity.IntentSetting: {
		"主角是", "主角叫", "主人公", "男主", "女主", "反派是", "配角是", "角色是",
		"名叫", "叫做", "名字是", "性格是", "岁",
		"世界观", "世界是", "背景设定", "设定为", "时代是", "发生在", "魔法体系",
		"视角", "人称", "基调是", "风格是", "文风是",
		"named", "protagonist is", "the world is", "set in",
	},
	entity.IntentModify: {
		"修改", "改成", "改为", "换成", "变成", "调整", "改一下", "更加", "更",
		"make", "change", "modify",
	},
	entity.IntentCreate: {
		"写", "创作", "开始", "生成", "动笔", "继续", "故事", "小说",
		"write", "start", "generate", "continue", "story",
	},
	entity.IntentQuery: {
		"什么", "哪些", "多少", "怎么样", "吗", "?", "查看", "看看", "总结", "目前",
		"what", "which", "show me", "summary",
	},
}

var defaultSettingKeywords = map[entity.SettingType][]string{
	entity.SettingTypeCharacter: {
		"主角", "主人公", "角色", "人物", "男主", "女主", "反派", "配角", "导师",
		"名叫", "叫做", "性格", "岁", "外貌", "长相", "能力", "擅长",
		"character", "protagonist", "hero",
	},
	entity.SettingTypeWorld: {
		"世界", "时代", "年代", "魔法", "科技", "地理", "王国", "帝国", "城市", "星球", "大陆",
		"奇幻", "科幻", "都市", "古代", "未来", "武侠", "仙侠", "修仙", "末世",
		"world", "magic",
	},
	entity.SettingTypePlot: {
		"情节", "剧情", "冲突", "矛盾", "高潮", "结局", "结尾", "主题",
		"反抗", "复仇", "拯救", "寻找", "故事线",
		"plot", "ending", "conflict",
	},
	entity.SettingTypeStyle: {
		"风格", "文风", "视角", "人称", "基调", "语气", "氛围", "节奏", "时态",
		"轻松", "幽默", "黑暗",
		"style", "tone", "pov",
	},
}
