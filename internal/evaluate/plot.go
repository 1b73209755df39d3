package evaluate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/multierr"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// CurveFrame lays the curve out as one row per training size.
func CurveFrame(points []CurvePoint) dataframe.DataFrame {
	sizes := make([]int, len(points))
	cols := map[string][]float64{}
	names := []string{"train_acc", "test_acc", "train_f1", "test_f1", "train_roc_auc", "test_roc_auc", "train_pr_auc", "test_pr_auc"}
	for _, n := range names {
		cols[n] = make([]float64, len(points))
	}
	for i, p := range points {
		sizes[i] = p.Size
		cols["train_acc"][i], cols["test_acc"][i] = p.TrainAcc, p.TestAcc
		cols["train_f1"][i], cols["test_f1"][i] = p.TrainF1, p.TestF1
		cols["train_roc_auc"][i], cols["test_roc_auc"][i] = p.TrainROC, p.TestROC
		cols["train_pr_auc"][i], cols["test_pr_auc"][i] = p.TrainPR, p.TestPR
	}

	ss := []series.Series{series.New(sizes, series.Int, "size")}
	for _, n := range names {
		ss = append(ss, series.New(cols[n], series.Float, n))
	}
	return dataframe.New(ss...)
}

// WriteCurveCSV writes the curve with a header row, creating parent dirs.
func WriteCurveCSV(path string, points []CurvePoint) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))
	return CurveFrame(points).WriteCSV(f)
}

// PlotLearningCurve renders accuracy and positive-class F1 against training
// size as a PNG.
func PlotLearningCurve(path string, points []CurvePoint) error {
	if len(points) == 0 {
		return fmt.Errorf("plot %s: no curve points", path)
	}
	p := plot.New()
	p.Title.Text = "Learning curve"
	p.X.Label.Text = "Training samples"
	p.Y.Label.Text = "Score"
	p.Y.Min = 0
	p.Y.Max = 1

	toXY := func(y func(CurvePoint) float64) plotter.XYs {
		pts := make(plotter.XYs, len(points))
		for i, c := range points {
			pts[i].X = float64(c.Size)
			pts[i].Y = y(c)
		}
		return pts
	}
	err := plotutil.AddLinePoints(p,
		"Train (acc)", toXY(func(c CurvePoint) float64 { return c.TrainAcc }),
		"Test (acc)", toXY(func(c CurvePoint) float64 { return c.TestAcc }),
		"Train (F1)", toXY(func(c CurvePoint) float64 { return c.TrainF1 }),
		"Test (F1)", toXY(func(c CurvePoint) float64 { return c.TestF1 }),
	)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
