package reviewdata

const (
	ScoreWrong   = 0.0
	ScorePartial = 0.5
	ScoreCorrect = 1.0
)

// ValidScore 评分只允许取 0、0.5、1 三档。
func ValidScore(v float64) bool {
	return v == ScoreWrong || v == ScorePartial || v == ScoreCorrect
}

/*
ScoreSet 一次提交携带的四个维度的分数。
*/
type ScoreSet struct {
	PeriodString    float64
	PeriodTimeframe float64
	LocationString  float64
	LocationQID     float64
}

func (s *ScoreSet) Valid() bool {
	return ValidScore(s.PeriodString) &&
		ValidScore(s.PeriodTimeframe) &&
		ValidScore(s.LocationString) &&
		ValidScore(s.LocationQID)
}
