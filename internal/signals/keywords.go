package signals

import "github.com/MikeSquared-Agency/augur/internal/rules"

var (
	griefWords = rules.Any(
		"슬프", "슬퍼", "우울", "외롭", "외로", "속상", "눈물", "서운", "상처", "괴롭", "허무",
	)

	anxietyWords = rules.Any(
		"불안", "걱정", "두렵", "두려", "무섭", "무서", "초조", "긴장", "조마조마",
	)

	planningWords = rules.Any(
		"계획", "분석", "논리", "따져", "정리해", "데이터", "체크리스트", "근거",
	)

	dangerWords = rules.Any(
		"실패", "위험", "망할", "망칠", "잘못되", "잘못될", "틀릴까", "손해", "후회할",
	)

	exploratoryWords = rules.Any(
		"도전", "실험", "시도", "모험", "새로운", "새롭",
	)

	avoidanceWords = rules.Any(
		"내 탓", "내 책임", "책임지기 싫", "누가 대신", "남 탓", "피하고 싶", "도망치고 싶", "회피", "외면",
	)

	ruminationWords = rules.Any(
		"계속 생각", "자꾸 생각", "곱씹", "머릿속", "생각이 많", "생각만", "고민",
	)

	indecisionWords = rules.Any(
		"결정을 못", "결정 못", "선택을 못", "선택 못", "모르겠", "망설", "갈팡질팡", "어떻게 해야 할지",
	)

	priorityWords = rules.Any(
		"해야 할 일", "할 일이 많", "할 일은 많", "뭐부터", "무엇부터", "어디서부터",
		"우선순위", "정신없", "너무 많아", "산더미",
	)

	fatigueWords = rules.Any(
		"피곤", "지쳤", "지친", "지쳐", "무기력", "기운이 없", "기운 없", "힘이 없",
		"손이 안", "손이 잘 안", "안 간다", "엄두가 안", "귀찮", "졸려", "녹초", "번아웃",
	)

	// Drive phrases and readiness to act count as one vitality signal.
	vitalityWords = rules.Any(
		"의욕", "힘이 나", "에너지가", "개운", "상쾌", "활기", "컨디션 좋", "기운이 나",
		"바로", "당장", "시작하", "시작해", "끝내자", "해내자", "해치우", "밀어붙",
	)

	noveltyWords = rules.Any(
		"새로운", "새롭", "처음 해", "실험", "아이디어", "호기심", "배워보", "탐험", "색다른",
	)

	excitementWords = rules.Any(
		"설레", "설렌", "설렘", "신나", "신난", "두근", "재밌", "재미있", "궁금",
	)

	ideaStruckWords = rules.Any(
		"아이디어가 떠올", "생각이 떠올", "아이디어가 생각", "영감이",
	)
)

// defaultRules is the canonical extraction table. All deltas accumulate
// before the single clamp in Extract.
var defaultRules = []rules.Rule[Field]{
	{Name: "grief", Target: EmotionVsLogic, When: griefWords, Delta: 1},
	{Name: "anxiety-emotion", Target: EmotionVsLogic, When: anxietyWords, Delta: 1},
	{Name: "planning", Target: EmotionVsLogic, When: planningWords, Delta: -1},

	{Name: "danger", Target: RiskAvoidance, When: dangerWords, Delta: 2},
	{Name: "anxiety-risk", Target: RiskAvoidance, When: anxietyWords, Delta: 1},
	{Name: "exploratory", Target: RiskAvoidance, When: exploratoryWords, Delta: -1},

	{Name: "avoidance", Target: ResponsibilityAvoidance, When: avoidanceWords, Delta: 2},

	{Name: "rumination", Target: AnalysisParalysis, When: ruminationWords, Delta: 2},
	{Name: "indecision", Target: AnalysisParalysis, When: indecisionWords, Delta: 2},

	{Name: "priority", Target: PriorityConfusion, When: priorityWords, Delta: 2},

	{Name: "fatigue", Target: EnergyLevel, When: fatigueWords, Delta: -1},
	{Name: "vitality", Target: EnergyLevel, When: vitalityWords, Delta: 1},

	{Name: "novelty", Target: NoveltyDrive, When: noveltyWords, Delta: 2},
	{Name: "novelty-excited", Target: NoveltyDrive, When: rules.All(noveltyWords, excitementWords), Delta: 1},
	{Name: "idea-struck", Target: NoveltyDrive, When: ideaStruckWords, Delta: 2},
}

// DefaultRules returns a copy of the canonical extraction table.
func DefaultRules() []rules.Rule[Field] {
	out := make([]rules.Rule[Field], len(defaultRules))
	copy(out, defaultRules)
	return out
}
