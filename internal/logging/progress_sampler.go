package logging

// ProgressSampler throttles progress logs for a counter climbing toward a
// ceiling, such as comments accepted against max_comments. It fires on the
// first observation and each time the counter enters a new step-sized
// percentage bucket.
type ProgressSampler struct {
	step       float64
	lastBucket int
}

// NewProgressSampler returns a sampler with step-percent buckets (default 10).
func NewProgressSampler(step float64) *ProgressSampler {
	if step <= 0 {
		step = 10
	}
	return &ProgressSampler{step: step, lastBucket: -1}
}

// Observe records done out of ceiling. It returns the percentage reached and
// whether the caller should log. With no ceiling the percentage is -1 and
// the sampler fires at 1, 10, 100, and each further power of ten.
func (s *ProgressSampler) Observe(done, ceiling int) (float64, bool) {
	if ceiling <= 0 {
		return -1, powerOfTen(done)
	}
	percent := min(float64(done)*100/float64(ceiling), 100)
	if s == nil {
		return percent, true
	}
	bucket := int(percent / s.step)
	if bucket <= s.lastBucket {
		return percent, false
	}
	s.lastBucket = bucket
	return percent, true
}

// Reset forgets the last bucket, e.g. before the next video.
func (s *ProgressSampler) Reset() {
	if s != nil {
		s.lastBucket = -1
	}
}

func powerOfTen(n int) bool {
	if n < 1 {
		return false
	}
	for n%10 == 0 {
		n /= 10
	}
	return n == 1
}
