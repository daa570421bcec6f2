package modification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-ai-agent/internal/domain/entity"
)

func neoSettings() entity.ExtractedSettings {
	return entity.ExtractedSettings{
		Characters: []entity.CharacterProfile{
			{Name: "Neo", Role: "主角", Personality: "胆小，犹豫"},
			{Name: "Smith", Role: "反派", Personality: "冷酷"},
		},
		World: entity.WorldSetting{WorldType: "科幻", Era: "未来"},
		Plot:  entity.PlotElement{Conflict: "反抗机器统治"},
		Style: entity.StylePreference{Tone: "黑暗"},
	}
}

func TestProcess_TraitAdjustment(t *testing.T) {
	e := New()
	s := neoSettings()
	before := s.Clone()

	res := e.Process("让Neo更勇敢一点", s)
	require.True(t, res.Success)
	assert.Equal(t, entity.ModificationTypeAdjustTrait, res.Instruction.Type)
	assert.Equal(t, "Neo", res.Instruction.Target)
	assert.Equal(t, "勇敢", res.Instruction.NewValue)

	p := res.Settings.Characters[0].Personality
	assert.Contains(t, p, "胆小，犹豫")
	assert.Contains(t, p, "勇敢")
	assert.Equal(t, "胆小，犹豫，变得更加勇敢", p)
	assert.NotEmpty(t, res.Changes)
	assert.InDelta(t, confidenceTrait, res.Confidence, 1e-9)

	// 勇敢与胆小并存是修改后新出现的冲突
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "勇敢")

	assert.Equal(t, before, s)
}

func TestParse_TargetResolution(t *testing.T) {
	e := New()
	s := neoSettings()

	cases := []struct {
		text       string
		target     string
		confidence float64
	}{
		{"让Neo更冷静一点", "Neo", confidenceTrait},
		{"让反派更狡猾一些", "Smith", confidenceTrait * 0.9},
		{"让主角更果断", "Neo", confidenceTrait * 0.8},
		{"让他更乐观一点", "Neo", confidenceTrait * 0.8},
		{"让张三更勇敢一点", "Neo", confidenceTrait * 0.6},
		{"make the protagonist more brave", "Neo", confidenceTrait * 0.8},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			instr := e.Parse(tc.text, s)
			assert.Equal(t, entity.ModificationTypeAdjustTrait, instr.Type)
			assert.Equal(t, tc.target, instr.Target)
			assert.InDelta(t, tc.confidence, instr.Confidence, 1e-9)
		})
	}
}

func TestProcess_FieldAssignment(t *testing.T) {
	e := New()

	res := e.Process("Smith的性格改成温和", neoSettings())
	require.True(t, res.Success)
	assert.Equal(t, "温和", res.Settings.Characters[1].Personality)

	res = e.Process("Neo's age is 30", neoSettings())
	require.True(t, res.Success)
	assert.Equal(t, 30, res.Settings.Characters[0].Age)

	res = e.Process("把Neo的能力改成黑客、格斗", neoSettings())
	require.True(t, res.Success)
	assert.Equal(t, []string{"黑客", "格斗"}, res.Settings.Characters[0].Abilities)
}

func TestProcess_Replacements(t *testing.T) {
	e := New()

	res := e.Process("把冲突改成人与自然的对抗", neoSettings())
	require.True(t, res.Success)
	assert.Equal(t, entity.ModificationScopePlot, res.Instruction.Scope)
	assert.Equal(t, "人与自然的对抗", res.Settings.Plot.Conflict)

	res = e.Process("结局改为开放式结局。", neoSettings())
	require.True(t, res.Success)
	assert.Equal(t, "开放式结局", res.Settings.Plot.Resolution)

	res = e.Process("风格改成幽默", neoSettings())
	require.True(t, res.Success)
	assert.Equal(t, entity.ModificationTypeShiftTone, res.Instruction.Type)
	assert.Equal(t, "幽默", res.Settings.Style.Tone)

	res = e.Process("让故事更轻松一点", neoSettings())
	require.True(t, res.Success)
	assert.Equal(t, "轻松", res.Settings.Style.Tone)

	res = e.Process("魔法体系改成元素魔法", neoSettings())
	require.True(t, res.Success)
	assert.Equal(t, entity.ModificationScopeWorld, res.Instruction.Scope)
	assert.Equal(t, "元素魔法", res.Settings.World.MagicSystem)
}

func TestProcess_GenericFallback(t *testing.T) {
	e := New()

	res := e.Process("我觉得还差点意思", neoSettings())
	require.True(t, res.Success)
	assert.Equal(t, entity.ModificationTypeGeneric, res.Instruction.Type)
	assert.InDelta(t, confidenceGeneric, res.Confidence, 1e-9)
	assert.Contains(t, res.Settings.Characters[0].Background, "我觉得还差点意思")

	res = e.Process("我觉得还差点意思", entity.ExtractedSettings{})
	require.True(t, res.Success)
	assert.Equal(t, []string{"我觉得还差点意思"}, res.Settings.Plot.SubplotPoints)

	// 非法年龄无法落地，降级为通用修改
	res = e.Process("Neo的年龄是很老", neoSettings())
	require.True(t, res.Success)
	assert.Equal(t, entity.ModificationTypeGeneric, res.Instruction.Type)
	assert.Zero(t, res.Settings.Characters[0].Age)

	// 没有角色时的性格调整同样降级
	res = e.Process("让Neo更勇敢一点", entity.ExtractedSettings{})
	require.True(t, res.Success)
	assert.Equal(t, entity.ModificationTypeGeneric, res.Instruction.Type)
}

func TestProcess_AnonymousCharacter(t *testing.T) {
	s := entity.ExtractedSettings{Characters: []entity.CharacterProfile{{Personality: "勇敢"}}}
	res := New().Process("让他更冷静一点", s)
	require.True(t, res.Success)
	assert.Equal(t, "勇敢，变得更加冷静", res.Settings.Characters[0].Personality)
}

func TestProcess_UnnamedCharacterByRole(t *testing.T) {
	s := entity.ExtractedSettings{Characters: []entity.CharacterProfile{
		{Name: "林远", Role: "主角", Personality: "善良"},
		{Role: "反派", Personality: "冷酷"},
	}}

	instr := New().Parse("让反派更狡猾一点", s)
	assert.Equal(t, "反派", instr.Target)
	assert.InDelta(t, confidenceTrait*0.9, instr.Confidence, 1e-9)

	res := New().Process("让反派更狡猾一点", s)
	require.True(t, res.Success)
	assert.Equal(t, "善良", res.Settings.Characters[0].Personality)
	assert.Equal(t, "冷酷，变得更加狡猾", res.Settings.Characters[1].Personality)
	require.NotEmpty(t, res.Changes)
	assert.Contains(t, res.Changes[0], "反派")

	res = New().Process("反派的性格改成阴险", s)
	require.True(t, res.Success)
	assert.Equal(t, "善良", res.Settings.Characters[0].Personality)
	assert.Equal(t, "阴险", res.Settings.Characters[1].Personality)
}

func TestProcess_Empty(t *testing.T) {
	res := New().Process("   ", neoSettings())
	assert.False(t, res.Success)
	assert.Empty(t, res.Changes)
	assert.Equal(t, neoSettings(), res.Settings)
}
