package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"tmdbcli/internal/dataprocessing"
	"tmdbcli/pkg/contracts/domain"
)

// Point is one movie in a scatter plot
type Point struct {
	Title string
	X     float64
	Y     float64
}

// Trend is the least-squares line y = Intercept + Slope*log10(x)
type Trend struct {
	Intercept float64
	Slope     float64
}

// At evaluates the trend at x
func (t Trend) At(x float64) float64 {
	return t.Intercept + t.Slope*math.Log10(x)
}

// Scatter is a plotted relationship between two movie attributes
type Scatter struct {
	Points []Point
	// Correlation is the Pearson coefficient; 0 when undefined.
	Correlation float64
	Trend       *Trend
	// Highlights are the points annotated on the chart.
	Highlights []Point
}

func newPoints(movies []domain.Movie, x, y func(domain.Movie) float64) []Point {
	points := make([]Point, len(movies))
	for i, m := range movies {
		points[i] = Point{Title: m.OriginalTitle, X: x(m), Y: y(m)}
	}
	return points
}

func axes(points []Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

// correlation returns the Pearson coefficient of the points, or 0 when it
// is undefined (fewer than two points or a constant axis)
func correlation(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	xs, ys := axes(points)
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// logTrend fits y against log10(x). It returns nil when the fit is undefined.
func logTrend(points []Point) *Trend {
	if len(points) < 2 {
		return nil
	}
	xs, ys := axes(points)
	distinct := false
	for i := range xs {
		xs[i] = math.Log10(xs[i])
		if xs[i] != xs[0] {
			distinct = true
		}
	}
	if !distinct {
		return nil
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return nil
	}
	return &Trend{Intercept: alpha, Slope: beta}
}

// parsePopularity reads the opaque popularity label as a number
func parsePopularity(m domain.Movie) (float64, bool) {
	return dataprocessing.ParseFloat(m.Popularity)
}
