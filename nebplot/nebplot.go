/*
 * nebplot.go, part of siesta-sfl.
 *
 * Copyright 2026 The siesta-sfl authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package nebplot draws the energy profile of a NEB path and the
//convergence of a run, using gonum/plot.
package nebplot

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	neb "github.com/siesta-project/siesta-sfl"
)

//Size of the saved plots.
const (
	Width  = 5 * vg.Inch
	Height = 4 * vg.Inch
)

var (
	lineColor  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	pointColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//filename adds the png extension to name if it has none.
func filename(name string) string {
	if filepath.Ext(name) == "" {
		return name + ".png"
	}
	return name
}

//EnergyProfile plots the energy of each image, relative to the initial one, against the
//reaction coordinate in rec, and saves it to name. The format is given by the extension
//of name (png if none). The highest image is marked.
func EnergyProfile(rec *neb.SweepRecord, title, name string) error {
	if rec == nil || len(rec.DeltaE) == 0 {
		return fmt.Errorf("nebplot: empty profile")
	}
	if len(rec.DeltaE) != len(rec.ReactionCoordinate) {
		return fmt.Errorf("nebplot: %d energies for %d coordinates", len(rec.DeltaE), len(rec.ReactionCoordinate))
	}
	p := basicPlot(title, "Reaction coordinate", "Energy")
	pts := make(plotter.XYs, len(rec.DeltaE))
	top := 0
	for i, e := range rec.DeltaE {
		pts[i].X = rec.ReactionCoordinate[i]
		pts[i].Y = e
		if e > rec.DeltaE[top] {
			top = i
		}
	}
	l, s, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	l.LineStyle.Color = lineColor
	s.GlyphStyle.Color = lineColor
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(l, s)
	tops, err := plotter.NewScatter(plotter.XYs{pts[top]})
	if err != nil {
		return err
	}
	tops.GlyphStyle.Color = pointColor
	tops.GlyphStyle.Shape = draw.PyramidGlyph{}
	tops.GlyphStyle.Radius = vg.Points(5)
	p.Add(tops)
	p.Legend.Add(fmt.Sprintf("barrier %.4f", pts[top].Y), tops)
	p.Legend.Top = true
	return save(p, name)
}

//Convergence plots, in log scale, the largest force of each sweep in maxForces,
//and saves it to name. Non-positive values are skipped.
func Convergence(maxForces []float64, title, name string) error {
	pts := make(plotter.XYs, 0, len(maxForces))
	for i, f := range maxForces {
		if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i + 1), Y: f})
	}
	if len(pts) == 0 {
		return fmt.Errorf("nebplot: no positive forces to plot")
	}
	p := basicPlot(title, "Sweep", "Max. force")
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.LineStyle.Color = lineColor
	p.Add(l)
	return save(p, name)
}

func save(p *plot.Plot, name string) error {
	name = filename(name)
	//here I intentionally shadow err.
	if err := p.Save(Width, Height, name); err != nil {
		return fmt.Errorf("nebplot: saving %s: %w", strings.TrimSpace(name), err)
	}
	return nil
}
