// Package render draws an arm pose as an SVG plot.
//
// The layout follows the classic matplotlib view of a 2-DOF arm: red first
// link, green second link, joint markers, a blue end effector, coordinate
// labels and an info box with the arm parameters.
package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/roach88/armkin/internal/kinematics"
)

// Options controls the canvas.
type Options struct {
	Width  int     // pixels, default 1000
	Height int     // pixels, default 800
	Title  string  // default "2-DOF Robot Arm"
	Grid   float64 // grid spacing in world units, default 10
}

// DefaultOptions matches a 10x8 inch figure at 100 dpi.
func DefaultOptions() Options {
	return Options{Width: 1000, Height: 800, Title: "2-DOF Robot Arm", Grid: 10}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.Grid <= 0 {
		o.Grid = d.Grid
	}
	return o
}

const (
	margin     = 60 // pixels around the plot area
	plotPad    = 5  // world units kept around every point
	plotExtra  = 10 // world units past full reach
	linkWidth  = 6
	jointR     = 10
	endR       = 12
	labelStyle = "font-family:sans-serif;font-size:13px;fill:black"
)

// Bounds is the square world window of the plot.
type Bounds struct {
	Min, Max float64
}

// PlotBounds returns [-5, L1+L2+10], widened so every point stays at least
// 5 units inside.
func PlotBounds(arm kinematics.Arm, pose kinematics.Pose) Bounds {
	b := Bounds{Min: -plotPad, Max: arm.Reach() + plotExtra}
	for _, p := range []kinematics.Point2D{pose.Joint1, pose.EndEffector} {
		b.Min = math.Min(b.Min, math.Min(p.X, p.Y)-plotPad)
		b.Max = math.Max(b.Max, math.Max(p.X, p.Y)+plotPad)
	}
	return b
}

// viewport maps world coordinates to pixels with equal aspect ratio.
type viewport struct {
	b      Bounds
	scale  float64
	ox, oy float64
}

func newViewport(b Bounds, width, height int) viewport {
	span := b.Max - b.Min
	w := float64(width - 2*margin)
	h := float64(height - 2*margin)
	scale := math.Min(w, h) / span
	return viewport{
		b:     b,
		scale: scale,
		ox:    float64(margin) + (w-span*scale)/2,
		oy:    float64(margin) + (h-span*scale)/2,
	}
}

func (v viewport) px(p kinematics.Point2D) (int, int) {
	x := v.ox + (p.X-v.b.Min)*v.scale
	y := v.oy + (v.b.Max-p.Y)*v.scale
	return int(math.Round(x)), int(math.Round(y))
}

// SVG renders the arm at the given joint angles.
func SVG(w io.Writer, arm kinematics.Arm, angles kinematics.JointAngles, opts Options) error {
	opts = opts.withDefaults()
	pose := arm.Forward(angles)
	vp := newViewport(PlotBounds(arm, pose), opts.Width, opts.Height)

	cw := &errWriter{w: w}
	canvas := svg.New(cw)
	canvas.Start(opts.Width, opts.Height)
	canvas.Title(opts.Title)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:white")

	drawGrid(canvas, vp, opts.Grid)
	drawArm(canvas, vp, pose)
	drawLabels(canvas, vp, pose)
	drawInfo(canvas, arm, angles)

	canvas.Text(opts.Width/2, margin/2, opts.Title, "text-anchor:middle;font-family:sans-serif;font-size:18px")
	canvas.End()
	return cw.err
}

func drawGrid(canvas *svg.SVG, vp viewport, step float64) {
	canvas.Gid("grid")
	start := math.Ceil(vp.b.Min/step) * step
	for v := start; v <= vp.b.Max; v += step {
		x1, y1 := vp.px(kinematics.Point2D{X: v, Y: vp.b.Min})
		x2, y2 := vp.px(kinematics.Point2D{X: v, Y: vp.b.Max})
		canvas.Line(x1, y1, x2, y2, "stroke:#cccccc;stroke-width:1")
		x1, y1 = vp.px(kinematics.Point2D{X: vp.b.Min, Y: v})
		x2, y2 = vp.px(kinematics.Point2D{X: vp.b.Max, Y: v})
		canvas.Line(x1, y1, x2, y2, "stroke:#cccccc;stroke-width:1")
	}
	canvas.Gend()

	canvas.Gid("axes")
	x1, y1 := vp.px(kinematics.Point2D{X: vp.b.Min, Y: 0})
	x2, y2 := vp.px(kinematics.Point2D{X: vp.b.Max, Y: 0})
	canvas.Line(x1, y1, x2, y2, "stroke:black;stroke-width:1")
	x1, y1 = vp.px(kinematics.Point2D{X: 0, Y: vp.b.Min})
	x2, y2 = vp.px(kinematics.Point2D{X: 0, Y: vp.b.Max})
	canvas.Line(x1, y1, x2, y2, "stroke:black;stroke-width:1")

	bx, by := vp.px(kinematics.Point2D{X: vp.b.Max, Y: vp.b.Min})
	canvas.Text(bx, by+30, "X", "text-anchor:end;"+labelStyle)
	tx, ty := vp.px(kinematics.Point2D{X: vp.b.Min, Y: vp.b.Max})
	canvas.Text(tx-30, ty+10, "Y", labelStyle)
	canvas.Gend()
}

func drawArm(canvas *svg.SVG, vp viewport, pose kinematics.Pose) {
	bx, by := vp.px(kinematics.Point2D{})
	jx, jy := vp.px(pose.Joint1)
	ex, ey := vp.px(pose.EndEffector)

	canvas.Gid("arm")
	canvas.Line(bx, by, jx, jy, fmt.Sprintf("stroke:red;stroke-width:%d;stroke-linecap:round", linkWidth))
	canvas.Line(jx, jy, ex, ey, fmt.Sprintf("stroke:green;stroke-width:%d;stroke-linecap:round", linkWidth))
	canvas.Circle(bx, by, jointR, "fill:red")
	canvas.Circle(jx, jy, jointR, "fill:green")
	canvas.Circle(ex, ey, endR, "fill:blue")
	canvas.Gend()
}

func drawLabels(canvas *svg.SVG, vp viewport, pose kinematics.Pose) {
	bx, by := vp.px(kinematics.Point2D{})
	jx, jy := vp.px(pose.Joint1)
	ex, ey := vp.px(pose.EndEffector)

	canvas.Gid("labels")
	canvas.Text(bx+14, by, "Base", labelStyle)
	canvas.Text(jx+14, jy, "Joint 1", labelStyle)
	canvas.Text(jx+14, jy+16, pose.Joint1.String(), labelStyle)
	canvas.Text(ex+16, ey, "End Effector", labelStyle)
	canvas.Text(ex+16, ey+16, pose.EndEffector.String(), labelStyle)
	canvas.Gend()
}

// InfoLines returns the text of the info box.
func InfoLines(arm kinematics.Arm, angles kinematics.JointAngles) []string {
	return []string{
		fmt.Sprintf("DoF: %d", arm.DOF()),
		fmt.Sprintf("θ1=%g°, θ2=%g°", angles.Theta1, angles.Theta2),
		fmt.Sprintf("L1=%g, L2=%g", arm.L1(), arm.L2()),
	}
}

func drawInfo(canvas *svg.SVG, arm kinematics.Arm, angles kinematics.JointAngles) {
	lines := InfoLines(arm, angles)
	x, y := margin+10, margin+10

	canvas.Gid("info")
	canvas.Roundrect(x, y, 220, 22*len(lines)+12, 8, 8, "fill:wheat;fill-opacity:0.5;stroke:#999999")
	for i, line := range lines {
		canvas.Text(x+10, y+24+22*i, line, labelStyle)
	}
	canvas.Gend()
}

// errWriter remembers the first write error; svgo ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
