package chart

import (
	"fmt"
	"time"
)

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// Hex returns the color in #rrggbb form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var (
	BullishColor = Color{R: 98, G: 209, B: 61}
	BearishColor = Color{R: 209, G: 61, B: 61}
	Black        = Color{}
	White        = Color{R: 255, G: 255, B: 255}
)

// Candle is one candlestick in data coordinates.
type Candle struct {
	Date  time.Time
	Open  float32
	High  float32
	Low   float32
	Close float32
}

// CandleStyle controls how a candle is drawn. Bullish is used when
// Close >= Open, Bearish otherwise.
type CandleStyle struct {
	Bullish Color
	Bearish Color
	Width   int
	Filled  bool
}

// Tick is a labeled position on an axis.
type Tick struct {
	Date  time.Time
	Label string
}

// Frame describes the chart area the candles are drawn into.
type Frame struct {
	Caption string
	XMin    time.Time
	XMax    time.Time
	YMin    float32
	YMax    float32
	XTicks  []Tick
	YTicks  int
}

// LegendEntry is a row of the series legend.
type LegendEntry struct {
	Label  string
	Filled bool
}

// Backend is the drawing capability the Renderer draws on.
//
// Calls arrive in order: DrawFrame once, DrawCandlestick per candle,
// DrawLegend once, Finish once. Any error aborts rendering.
type Backend interface {
	DrawFrame(f Frame) error
	DrawCandlestick(c Candle, style CandleStyle) error
	DrawLegend(entries []LegendEntry) error
	Finish() error
}
