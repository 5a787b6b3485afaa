package runtime

import "time"

// Metrics is a point-in-time snapshot of runtime performance and
// frame-processing counters, grounded on the teacher's ViewerMetrics
// (viewer.go's GetMetrics) but reframed around this pipeline's stages
// instead of the teacher's patch/slot/data-row bookkeeping.
type Metrics struct {
	FramesRendered  int
	EventsProcessed int
	DroppedBatches  uint64
	LastFrameTimeMs float64
	PeakFrameTimeMs float64
	AvgFrameTimeMs  float64
	FrameTimesMs    []float64
}

// frameTimer accumulates the same bounded frame-time history the
// teacher's Viewer keeps, trimmed to the newest 500 samples once 1000
// accumulate.
type frameTimer struct {
	frameTimes      []float64
	lastFrameTimeMs float64
	peakFrameTimeMs float64
	framesRendered  int
}

func newFrameTimer() *frameTimer {
	return &frameTimer{frameTimes: make([]float64, 0, 128)}
}

func (f *frameTimer) track(start time.Time) {
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	f.frameTimes = append(f.frameTimes, elapsed)
	if len(f.frameTimes) > 1000 {
		f.frameTimes = f.frameTimes[len(f.frameTimes)-500:]
	}
	f.lastFrameTimeMs = elapsed
	if elapsed > f.peakFrameTimeMs {
		f.peakFrameTimeMs = elapsed
	}
	f.framesRendered++
}

func (f *frameTimer) average() float64 {
	if len(f.frameTimes) == 0 {
		return 0
	}
	var sum float64
	for _, t := range f.frameTimes {
		sum += t
	}
	return sum / float64(len(f.frameTimes))
}
