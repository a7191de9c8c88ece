package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/guttosm/stockr/internal/domain/models"
)

// SVGOptions sizes the SVG output.
type SVGOptions struct {
	Width      int
	Height     int
	Margin     int
	LabelArea  int
	CaptionPx  int
	FontFamily string
}

// DefaultSVGOptions matches the browser canvas of the web client.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:      1000,
		Height:     600,
		Margin:     60,
		LabelArea:  60,
		CaptionPx:  40,
		FontFamily: "sans-serif",
	}
}

// errWriter remembers the first write error; svgo does not report them.
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

// SVGBackend draws the chart as an SVG document.
type SVGBackend struct {
	out    *errWriter
	canvas *svg.SVG
	opts   SVGOptions

	frame  Frame
	framed bool

	// plot area in pixels
	left, right, top, bottom int
}

// NewSVGBackend returns a backend writing SVG to w.
func NewSVGBackend(w io.Writer, opts SVGOptions) *SVGBackend {
	ew := &errWriter{w: w}
	return &SVGBackend{out: ew, canvas: svg.New(ew), opts: opts}
}

func (b *SVGBackend) DrawFrame(f Frame) error {
	if b.opts.Width <= 0 || b.opts.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", b.opts.Width, b.opts.Height)
	}
	if !f.XMax.After(f.XMin) || f.YMax <= f.YMin {
		return errors.New("empty plot range")
	}
	b.frame = f
	b.left = b.opts.Margin + b.opts.LabelArea
	b.right = b.opts.Width - b.opts.Margin
	b.top = b.opts.Margin + b.opts.CaptionPx
	b.bottom = b.opts.Height - b.opts.Margin - b.opts.LabelArea
	if b.right <= b.left || b.bottom <= b.top {
		return fmt.Errorf("canvas %dx%d too small for margins", b.opts.Width, b.opts.Height)
	}

	c := b.canvas
	c.Start(b.opts.Width, b.opts.Height)
	c.Title(f.Caption)
	c.Rect(0, 0, b.opts.Width, b.opts.Height, "fill:"+White.Hex())
	c.Text(b.opts.Width/2, b.opts.Margin, f.Caption,
		fmt.Sprintf("text-anchor:middle;font-family:%s;font-size:%dpx", b.opts.FontFamily, b.opts.CaptionPx))

	label := fmt.Sprintf("font-family:%s;font-size:12px;fill:%s", b.opts.FontFamily, Black.Hex())
	grid := "stroke:#dcdcdc;stroke-width:1"

	c.Gstyle(label)
	for _, t := range f.XTicks {
		x := b.x(t)
		c.Line(x, b.top, x, b.bottom, grid)
		c.Line(x, b.bottom, x, b.bottom+5, "stroke:"+Black.Hex())
		c.Text(x, b.bottom+20, t.Label, "text-anchor:middle")
	}
	for i := 0; i < f.YTicks; i++ {
		v := f.YMin + (f.YMax-f.YMin)*float32(i)/float32(max(f.YTicks-1, 1))
		y := b.y(v)
		c.Line(b.left, y, b.right, y, grid)
		c.Line(b.left-5, y, b.left, y, "stroke:"+Black.Hex())
		c.Text(b.left-8, y+4, strconv.FormatFloat(float64(v), 'f', 2, 32), "text-anchor:end")
	}
	c.Gend()

	c.Line(b.left, b.top, b.left, b.bottom, "stroke:"+Black.Hex())
	c.Line(b.left, b.bottom, b.right, b.bottom, "stroke:"+Black.Hex())

	b.framed = true
	return b.out.err
}

func (b *SVGBackend) DrawCandlestick(cd Candle, style CandleStyle) error {
	if !b.framed {
		return errors.New("candlestick drawn before frame")
	}
	color := style.Bearish
	if cd.Close >= cd.Open {
		color = style.Bullish
	}
	x := b.x(Tick{Date: cd.Date})
	half := style.Width / 2

	bodyTop, bodyBottom := b.y(max(cd.Open, cd.Close)), b.y(min(cd.Open, cd.Close))
	height := max(bodyBottom-bodyTop, 1)

	stroke := "stroke:" + color.Hex() + ";stroke-width:1"
	fill := "fill:none;" + stroke
	if style.Filled {
		fill = "fill:" + color.Hex() + ";" + stroke
	}

	b.canvas.Line(x, b.y(cd.High), x, bodyTop, stroke)
	b.canvas.Line(x, bodyBottom, x, b.y(cd.Low), stroke)
	b.canvas.Rect(x-half, bodyTop, style.Width, height, fill)
	return b.out.err
}

func (b *SVGBackend) DrawLegend(entries []LegendEntry) error {
	if !b.framed {
		return errors.New("legend drawn before frame")
	}
	const (
		rowHeight = 20
		pad       = 10
		marker    = 20
		charWidth = 7
	)
	longest := 0
	for _, e := range entries {
		longest = max(longest, len(e.Label))
	}
	width := pad*3 + marker + longest*charWidth
	height := pad*2 + rowHeight*len(entries)
	x0 := b.right - width - pad
	y0 := b.top + pad

	c := b.canvas
	c.Rect(x0, y0, width, height, "fill:"+White.Hex()+";stroke:"+Black.Hex())
	for i, e := range entries {
		cy := y0 + pad + rowHeight*i + rowHeight/2
		style := "fill:none;stroke:" + Black.Hex() + ";stroke-width:1"
		if e.Filled {
			style = "fill:" + Black.Hex()
		}
		c.Rect(x0+pad, cy-3, marker, 6, style)
		c.Text(x0+pad*2+marker, cy+4, e.Label,
			fmt.Sprintf("font-family:%s;font-size:12px", b.opts.FontFamily))
	}
	return b.out.err
}

func (b *SVGBackend) Finish() error {
	if !b.framed {
		return errors.New("finish before frame")
	}
	b.canvas.End()
	return b.out.err
}

func (b *SVGBackend) x(t Tick) int {
	span := b.frame.XMax.Sub(b.frame.XMin)
	frac := float64(t.Date.Sub(b.frame.XMin)) / float64(span)
	return b.left + int(frac*float64(b.right-b.left))
}

func (b *SVGBackend) y(v float32) int {
	frac := float64(v-b.frame.YMin) / float64(b.frame.YMax-b.frame.YMin)
	return b.bottom - int(frac*float64(b.bottom-b.top))
}

// RenderSVG renders a report to an SVG document.
func RenderSVG(rep *models.AnalysisReport, opts SVGOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewRenderer(NewSVGBackend(&buf, opts)).RenderReport(rep); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
