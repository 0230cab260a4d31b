package patterns

import "github.com/MikeSquared-Agency/augur/internal/rules"

var (
	ruminationPhrases = rules.Any(
		"계속 생각", "자꾸 생각", "곱씹", "머릿속", "고민", "돌아보", "되돌아", "반성",
	)
	feelingPhrases = rules.Any(
		"슬프", "슬퍼", "우울", "외롭", "속상", "눈물", "서운", "상처", "괴롭", "후회", "마음이",
		"불안", "걱정", "두렵", "두려", "무섭", "무서", "초조",
	)
	anxietyPhrases = rules.Any(
		"불안", "걱정", "두렵", "두려", "무섭", "무서", "초조", "긴장",
	)
	threatPhrases = rules.Any(
		"실패", "위험", "망할", "망칠", "잘못되", "잘못될", "틀릴까", "손해",
	)
	workloadPhrases = rules.Any(
		"해야 할 일", "할 일이 많", "할 일은 많", "밀린", "쌓여", "쌓인",
	)
	inertiaPhrases = rules.Any(
		"손이 안", "손이 잘 안", "안 간다", "미루", "미뤘", "미룬", "엄두가 안", "하기 싫", "귀찮",
	)
	postponePhrases = rules.Any(
		"미루", "미뤘", "미룬", "나중에", "내일 하", "다음에 하",
	)
	restPhrases = rules.Any(
		"쉬고 싶", "쉬어야", "천천히", "평소처럼", "무리하지", "잠깐 멈",
	)
	calmPhrases = rules.Any(
		"안정", "차분", "평온", "유지",
	)
	routinePhrases = rules.Any(
		"루틴", "평소", "꾸준",
	)
	introspectPhrases = rules.Any(
		"왜 그랬", "돌아보", "되돌아", "반성", "의미가",
	)
	overwhelmPhrases = rules.Any(
		"너무 많", "정신없", "산더미", "벅차", "감당이 안",
	)
	prioritySearchPhrases = rules.Any(
		"뭐부터", "무엇부터", "어디서부터", "우선순위",
	)
	narrowPhrases = rules.Any(
		"하나만", "줄이", "단순하게", "간단하게", "덜어",
	)
	nowPhrases = rules.Any(
		"지금", "바로", "당장", "오늘 안에", "오늘 중",
	)
	executePhrases = rules.Any(
		"끝내", "시작", "해치우", "처리하", "마무리",
	)
	commitmentPhrases = rules.Any(
		"결정했", "하기로 했", "정했다", "마음먹", "결심",
	)
	noveltyPhrases = rules.Any(
		"새로운", "새롭", "처음 해", "아이디어", "호기심", "색다른", "탐험",
	)
	excitementPhrases = rules.Any(
		"설레", "설렌", "설렘", "신나", "신난", "두근", "재밌", "재미있", "궁금",
	)
	experimentPhrases = rules.Any(
		"해보고 싶", "시도해보", "실험해", "실험하", "도전해보",
	)
)

// Gates holds every phrase predicate the boost table reads. All gates are
// computed from the text before any boost is applied.
type Gates struct {
	Reflective     bool `json:"reflective"`
	Anxious        bool `json:"anxious"`
	Workload       bool `json:"workload"`
	Inertia        bool `json:"inertia"`
	Postpone       bool `json:"postpone"`
	Rest           bool `json:"rest"`
	Steady         bool `json:"steady"`
	Introspect     bool `json:"introspect"`
	Overwhelm      bool `json:"overwhelm"`
	PrioritySearch bool `json:"priority_search"`
	Narrow         bool `json:"narrow"`
	Now            bool `json:"now"`
	Execute        bool `json:"execute"`
	Commitment     bool `json:"commitment"`
	Novelty        bool `json:"novelty"`
	Excitement     bool `json:"excitement"`
	Experiment     bool `json:"experiment"`
}

// DetectGates evaluates every gate against text.
func DetectGates(text string) Gates {
	t := rules.Normalize(text)
	return Gates{
		Reflective:     rules.All(ruminationPhrases, feelingPhrases).Match(t),
		Anxious:        rules.All(anxietyPhrases, threatPhrases).Match(t),
		Workload:       workloadPhrases.Match(t),
		Inertia:        inertiaPhrases.Match(t),
		Postpone:       postponePhrases.Match(t),
		Rest:           restPhrases.Match(t),
		Steady:         rules.All(calmPhrases, routinePhrases).Match(t),
		Introspect:     introspectPhrases.Match(t),
		Overwhelm:      overwhelmPhrases.Match(t),
		PrioritySearch: prioritySearchPhrases.Match(t),
		Narrow:         narrowPhrases.Match(t),
		Now:            nowPhrases.Match(t),
		Execute:        executePhrases.Match(t),
		Commitment:     commitmentPhrases.Match(t),
		Novelty:        noveltyPhrases.Match(t),
		Excitement:     excitementPhrases.Match(t),
		Experiment:     experimentPhrases.Match(t),
	}
}

// ReflectiveOrAnxious is the suppression gate for assertive boosts.
func (g Gates) ReflectiveOrAnxious() bool {
	return g.Reflective || g.Anxious
}
