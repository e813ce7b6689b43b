package aggregate

import (
	"math"

	"llm-assessment-backend/repository/reviewdata"
)

/*
Averages 四个维度各自独立的算术平均分，保留两位小数。

每个维度只对有值的评分求平均，某维度一个值都没有时平均为0（而不是NaN）。
Count 是参与统计的评分条数。
*/
type Averages struct {
	PeriodString    float64 `json:"period_string"`
	PeriodTimeframe float64 `json:"period_timeframe"`
	LocationString  float64 `json:"location_string"`
	LocationQID     float64 `json:"location_qid"`
	Count           int     `json:"count"`
}

func averageScores(setting *Setting, reviewerID, batchID uint) (*Averages, error) {
	assessments, err := reviewdata.AssessmentsForBatch(setting.GetDatabase(), batchID, reviewerID)
	if err != nil {
		return nil, err
	}

	var periodString, periodTimeframe, locationString, locationQID dimension
	for _, a := range assessments {
		periodString.add(a.ScorePeriodString)
		periodTimeframe.add(a.ScorePeriodTimeframe)
		locationString.add(a.ScoreLocationString)
		locationQID.add(a.ScoreLocationQID)
	}

	return &Averages{
		PeriodString:    periodString.mean(),
		PeriodTimeframe: periodTimeframe.mean(),
		LocationString:  locationString.mean(),
		LocationQID:     locationQID.mean(),
		Count:           len(assessments),
	}, nil
}

type dimension struct {
	sum   float64
	count int
}

func (d *dimension) add(score *float64) {
	if score == nil {
		return
	}
	d.sum += *score
	d.count++
}

func (d *dimension) mean() float64 {
	if d.count == 0 {
		return 0
	}
	return math.Round(d.sum/float64(d.count)*100) / 100
}
