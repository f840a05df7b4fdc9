// Package chart derives what the rendering collaborator needs from the
// candle log: the visible window, axis ranges, and assembled frames.
package chart

// Window and zoom bounds. The zoom buffer is the fraction of the visible
// high-low span padded above and below the price range.
const (
	MinWindowSize = 5

	DefaultWindowSize = 30
	DefaultZoomBuffer = 0.05

	MinZoomBuffer = 0.01
	MaxZoomBuffer = 0.5

	zoomInFactor  = 0.8
	zoomOutFactor = 1.2
)

// View tracks the visible window over the candle log: its size, its start
// offset, and the zoom buffer fraction used for the price axis.
//
// The view follows the live edge by position, not by flag: if the window
// currently ends at the newest candle, an append advances it; if the user
// has scrolled back into history, the window stays put until they scroll
// forward again.
type View struct {
	windowSize int
	startIndex int
	zoomBuffer float64
}

// NewView creates a view with the given window size and zoom buffer
// fraction, clamped to their valid bounds. Non-positive arguments fall back
// to the defaults.
func NewView(windowSize int, zoomBuffer float64) *View {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if zoomBuffer <= 0 {
		zoomBuffer = DefaultZoomBuffer
	}
	return &View{
		windowSize: max(windowSize, MinWindowSize),
		zoomBuffer: clampF(zoomBuffer, MinZoomBuffer, MaxZoomBuffer),
	}
}

// WindowSize returns the configured window size. The effective visible span
// is min(windowSize, n) while the log is still shorter than the window.
func (v *View) WindowSize() int { return v.windowSize }

// StartIndex returns the current window start offset.
func (v *View) StartIndex() int { return v.startIndex }

// ZoomBuffer returns the current zoom buffer fraction.
func (v *View) ZoomBuffer() float64 { return v.zoomBuffer }

// maxStart is the largest valid start index for a log of n candles.
func (v *View) maxStart(n int) int {
	return max(0, n-v.windowSize)
}

// Scroll moves the window start to target, clamped to [0, max(0, n-windowSize)]
// for a log of n candles.
func (v *View) Scroll(target, n int) {
	v.startIndex = clamp(target, 0, v.maxStart(n))
}

// Resize sets the window size, clamped to [MinWindowSize, n] (a log shorter
// than the minimum keeps the minimum), then re-clamps the start index.
func (v *View) Resize(size, n int) {
	v.windowSize = max(size, MinWindowSize)
	if n >= MinWindowSize {
		v.windowSize = min(v.windowSize, n)
	}
	v.startIndex = clamp(v.startIndex, 0, v.maxStart(n))
}

// ZoomIn tightens the price-axis buffer. Window size is unaffected.
func (v *View) ZoomIn() {
	v.zoomBuffer = clampF(v.zoomBuffer*zoomInFactor, MinZoomBuffer, MaxZoomBuffer)
}

// ZoomOut widens the price-axis buffer. Window size is unaffected.
func (v *View) ZoomOut() {
	v.zoomBuffer = clampF(v.zoomBuffer*zoomOutFactor, MinZoomBuffer, MaxZoomBuffer)
}

// OnAppend adjusts the window after the log grows from oldN to newN candles.
// A window that was pinned to the live edge advances to stay there; a window
// scrolled into history does not move.
func (v *View) OnAppend(oldN, newN int) {
	if v.startIndex == v.maxStart(oldN) {
		v.startIndex = v.maxStart(newN)
	}
}

// Visible returns the [start, end) candle range for a log of n candles.
func (v *View) Visible(n int) (start, end int) {
	start = clamp(v.startIndex, 0, v.maxStart(n))
	end = min(start+v.windowSize, n)
	return start, end
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clampF(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
