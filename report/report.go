// Package report renders the outcome of a selection run as a bar chart.
//
// Each selected feature gets two bars: its relevance to the class feature and
// the mRMR score it was picked with. Features appear in selection order.
package report

import (
	"io"
	"strconv"

	"github.com/YuminosukeSato/fastmrmr/mrmr"
	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	barWidth      = vg.Length(12)
	widthPerBar   = vg.Length(40)
	minWidth      = 4 * vg.Inch
	defaultHeight = 4 * vg.Inch
)

// NewChart builds the bar chart for res.
func NewChart(res mrmr.Result, title string) (*plot.Plot, error) {
	if len(res.Steps) == 0 {
		return nil, errors.NewValueError("report.NewChart", "selection is empty")
	}

	relevance := make(plotter.Values, len(res.Steps))
	scores := make(plotter.Values, len(res.Steps))
	names := make([]string, len(res.Steps))
	for i, step := range res.Steps {
		relevance[i] = step.Relevance
		scores[i] = step.Score
		names[i] = strconv.Itoa(step.Feature)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "feature (selection order)"
	p.Y.Label.Text = "bits"

	relBars, err := plotter.NewBarChart(relevance, barWidth)
	if err != nil {
		return nil, errors.Wrap(err, "relevance bars")
	}
	relBars.LineStyle.Width = vg.Length(0)
	relBars.Color = plotutil.Color(0)
	relBars.Offset = -barWidth / 2

	scoreBars, err := plotter.NewBarChart(scores, barWidth)
	if err != nil {
		return nil, errors.Wrap(err, "score bars")
	}
	scoreBars.LineStyle.Width = vg.Length(0)
	scoreBars.Color = plotutil.Color(1)
	scoreBars.Offset = barWidth / 2

	p.Add(relBars, scoreBars)
	p.Legend.Add("relevance", relBars)
	p.Legend.Add("score", scoreBars)
	p.Legend.Top = true
	p.NominalX(names...)

	// Scores go negative once redundancy outweighs relevance.
	p.Y.Min = min(0, floats.Min(scores))
	p.Y.Max = max(floats.Max(relevance), floats.Max(scores))
	if p.Y.Max <= p.Y.Min {
		p.Y.Max = p.Y.Min + 1
	}
	return p, nil
}

func chartWidth(bars int) vg.Length {
	return max(minWidth, vg.Length(bars)*widthPerBar)
}

// Write renders the chart in the given format ("png", "svg", "pdf", ...).
func Write(w io.Writer, res mrmr.Result, title, format string) error {
	p, err := NewChart(res, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(chartWidth(len(res.Steps)), defaultHeight, format)
	if err != nil {
		return errors.Wrapf(err, "render %s", format)
	}
	_, err = wt.WriteTo(w)
	return errors.Wrap(err, "write chart")
}

// Save renders the chart to path. The format follows the file extension.
func Save(path string, res mrmr.Result, title string) error {
	p, err := NewChart(res, title)
	if err != nil {
		return err
	}
	if err := p.Save(chartWidth(len(res.Steps)), defaultHeight, path); err != nil {
		return errors.Wrapf(err, "save chart to %s", path)
	}
	return nil
}
