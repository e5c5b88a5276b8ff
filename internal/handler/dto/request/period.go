package request

import (
	"time"

	"coworking-pos/internal/usecase/queries"
)

// PeriodQuery selects records in [from, to]. Both bounds are RFC 3339.
type PeriodQuery struct {
	From  time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	To    time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit int       `form:"limit" binding:"omitempty,gte=1,lte=200"`
}

func (q *PeriodQuery) ToPeriod() queries.Period {
	return queries.Period{From: q.From, To: q.To}
}
