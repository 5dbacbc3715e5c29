package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/numtrace/internal/numerics"
)

type point struct{ X, Y float64 }

// WriteODESVG plots the (x, y) records of t as a polyline with a marker per
// grid point.
func WriteODESVG(w io.Writer, t *numerics.ODETrace, width, height int) error {
	points := make([]point, len(t.Steps))
	for i, s := range t.Steps {
		points[i] = point{s.X, s.Y}
	}
	_, err := io.WriteString(w, pathSVG(points, width, height, "#00ccff"))
	return err
}

// WriteRootSVG plots log10 of the step size per iteration. Zero errors
// are left out.
func WriteRootSVG(w io.Writer, t *numerics.RootTrace, width, height int) error {
	points := make([]point, 0, len(t.Steps))
	for _, s := range t.Steps {
		if s.Error > 0 {
			points = append(points, point{float64(s.Iteration), math.Log10(s.Error)})
		}
	}
	_, err := io.WriteString(w, pathSVG(points, width, height, "#ff00ff"))
	return err
}

func pathSVG(points []point, width, height int, strokeColor string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if len(points) == 0 {
		sb.WriteString("</svg>\n")
		return sb.String()
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	project := func(p point) (float64, float64) {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		return x, y
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, strokeColor))
	for i, p := range points {
		x, y := project(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	sb.WriteString(fmt.Sprintf(`<g fill="%s">`+"\n", strokeColor))
	for _, p := range points {
		x, y := project(p)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2.5"/>`+"\n", x, y))
	}
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}
