package walkforward

import "time"

// Window is one rolling train/test pair. TestStart is always exactly one
// day after TrainEnd: train and test never overlap.
type Window struct {
	ID         int
	TrainStart time.Time
	TrainEnd   time.Time
	TestStart  time.Time
	TestEnd    time.Time
}

// windows slides a fixed [train, test] pair across [start, end] by
// stepDays. A range shorter than train+test days yields no windows.
func windows(start, end time.Time, trainDays, testDays, stepDays int) []Window {
	var out []Window

	cur := start
	for id := 0; ; id++ {
		if cur.AddDate(0, 0, trainDays+testDays).After(end) {
			break
		}

		out = append(out, Window{
			ID:         id,
			TrainStart: cur,
			TrainEnd:   cur.AddDate(0, 0, trainDays-1),
			TestStart:  cur.AddDate(0, 0, trainDays),
			TestEnd:    cur.AddDate(0, 0, trainDays+testDays-1),
		})

		cur = cur.AddDate(0, 0, stepDays)
	}

	return out
}
