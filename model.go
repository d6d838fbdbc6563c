package curvefit

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aouyang1/go-curvefit/stats"
	"github.com/aouyang1/go-curvefit/util"
)

// Model represents a serializeable format of a fitted curve storing the fit options, fitted
// parameters and fit scores
type Model struct {
	Options      *Options      `json:"options"`
	Coefficients []float64     `json:"coefficients"`
	Equation     string        `json:"equation"`
	Scores       *stats.Scores `json:"scores,omitempty"`
}

// TablePrint writes a human readable summary of the model
func (m Model) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%sCurve:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}
	if m.Options != nil {
		if err := m.Options.TablePrint(w, prefix, indent, 1); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s%sEquation: %s\n", prefix, util.IndentExpand(indent, 1), m.Equation); err != nil {
		return err
	}

	if m.Scores != nil {
		if _, err := fmt.Fprintf(w, "%s%sScores:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%sSSE: %.3f    MSE: %.3f    RMSE: %.3f    R2: %.3f\n",
			prefix, util.IndentExpand(indent, 1),
			m.Scores.SSE,
			m.Scores.MSE,
			m.Scores.RMSE,
			m.Scores.R2,
		); err != nil {
			return err
		}
	}

	return m.tablePrintCoefficients(w, prefix, indent, 0)
}

func (m Model) termLabels() []string {
	if m.Options != nil && m.Options.Model == ModelExponential {
		return []string{"a", "b"}
	}
	labels := make([]string, len(m.Coefficients))
	degree := len(m.Coefficients) - 1
	for i := range labels {
		labels[i] = fmt.Sprintf("x^%d", degree-i)
	}
	return labels
}

func (m Model) tablePrintCoefficients(w io.Writer, prefix, indent string, indentGrowth int) error {
	if _, err := fmt.Fprintf(w, "%s%sCoefficients:\n", prefix, util.IndentExpand(indent, indentGrowth)); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	if _, err := fmt.Fprintf(tbl, "%s%sTerm\tValue\n", prefix, util.IndentExpand(indent, indentGrowth+1)); err != nil {
		return err
	}
	labels := m.termLabels()
	for i, c := range m.Coefficients {
		label := "?"
		if i < len(labels) {
			label = labels[i]
		}
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t%.6g\n",
			prefix, util.IndentExpand(indent, indentGrowth+1),
			label, c); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
