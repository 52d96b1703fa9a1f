package scoringservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/xuri/excelize/v2"
)

// ScoreboardXLSX renders the scoreboard as a spreadsheet for the organizers.
func (s *ScoringService) ScoreboardXLSX(ctx context.Context) ([]byte, error) {
	board, err := s.Scoreboard(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Scoreboard"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoreboard sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, header := range []string{"Rank", "Team", "Score"} {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write scoreboard header: %w", err)
		}
	}
	for i, entry := range board {
		values := []any{i + 1, entry.Team, entry.Total}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write scoreboard row %d: %w", i+1, err)
			}
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize scoreboard workbook: %w", err)
	}
	return buffer.Bytes(), nil
}

// ScoreboardPNG renders the scoreboard as a bar chart, best team first.
func (s *ScoringService) ScoreboardPNG(ctx context.Context) ([]byte, error) {
	board, err := s.Scoreboard(ctx)
	if err != nil {
		return nil, err
	}
	if len(board) == 0 {
		return renderEmptyBoardPlaceholder()
	}

	bars := make([]chart.Value, len(board))
	// An all-zero board (teams registered, nothing scored) has a zero value
	// range, which the renderer rejects. Pad the axis instead.
	yrange := &chart.ContinuousRange{Min: 0, Max: 1}
	for i, entry := range board {
		total := float64(entry.Total)
		bars[i] = chart.Value{Label: entry.Team, Value: total}
		if total > yrange.Max {
			yrange.Max = total
		}
		if total < yrange.Min {
			yrange.Min = total
		}
	}

	graph := chart.BarChart{
		Title:    "Scoreboard",
		Width:    max(len(bars)*80, 400),
		Height:   400,
		BarWidth: 50,
		YAxis:    chart.YAxis{Range: yrange},
		Bars:     bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render scoreboard chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderEmptyBoardPlaceholder() ([]byte, error) {
	const msg = "No teams registered"

	// chart.Chart refuses to render without a visible series, so feed it a
	// transparent one and draw the message on top.
	graph := chart.Chart{
		Width:  400,
		Height: 200,
		XAxis:  chart.XAxis{Style: chart.Hidden()},
		YAxis:  chart.YAxis{Style: chart.Hidden()},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFont(chartDefaults.GetFont())
				r.SetFontColor(chart.DefaultTextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
