package attendance

// Summarize counts records by status and averages their percentages.
// Records without sessions are counted but excluded from the average; an empty input yields a zero Summary.
func Summarize(records []Record) Summary {
	s := Summary{
		Total:   len(records),
		Buckets: make(map[Bucket]int, len(AllBuckets)),
	}
	for _, b := range AllBuckets {
		s.Buckets[b] = 0
	}

	var (
		pctSum float64
		pctCnt int
	)
	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			s.PresentCount++
		case StatusAbsent:
			s.AbsentCount++
		case StatusLate:
			s.LateCount++
		case StatusLeave:
			s.LeaveCount++
		}

		s.Sessions.Total += r.Total
		s.Sessions.Present += r.Present
		s.Sessions.Absent += r.Absent
		s.Sessions.Late += r.Late
		s.Sessions.Leave += r.Leave

		if pct, ok := r.Percentage(); ok {
			pctSum += pct
			pctCnt++
			s.Buckets[BucketFor(pct)]++
		}
	}

	if pctCnt > 0 {
		avg := Round1(pctSum / float64(pctCnt))
		s.AveragePercentage = &avg
	}
	return s
}
