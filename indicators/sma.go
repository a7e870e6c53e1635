package indicators

import "fmt"

// SMA is a streaming simple moving average over closing prices.
type SMA struct {
	period int
	window []float64
	sum    float64
}

func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

func (s *SMA) Name() string { return fmt.Sprintf("SMA(%d)", s.period) }

func (s *SMA) Warmup() int { return s.period }

func (s *SMA) Reset() {
	s.window = s.window[:0]
	s.sum = 0
}

func (s *SMA) Update(close float64) {
	s.window = append(s.window, close)
	s.sum += close
	if len(s.window) > s.period {
		s.sum -= s.window[0]
		s.window = s.window[1:]
	}
}

func (s *SMA) Ready() bool { return len(s.window) >= s.period }

func (s *SMA) Value() float64 {
	if len(s.window) == 0 {
		return 0
	}
	return s.sum / float64(len(s.window))
}
