package ofs

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// DefaultMaxSpeed is the stroke speed, in position units per second, that
// maps to the hottest color on the ramp.
const DefaultMaxSpeed = 400.0

// HeatmapOptions control speed heatmap rendering.
type HeatmapOptions struct {
	Width    int
	Height   int
	MaxSpeed float64 // units/second mapped to the hottest color; 0 means DefaultMaxSpeed
	Label    bool    // draw the script duration bottom-right
}

// Cold to hot ramp for segment speeds.
var heatmapRamp = []color.RGBA{
	{0x1E, 0x90, 0xFF, 0xFF},
	{0x00, 0xCE, 0xD1, 0xFF},
	{0x00, 0xFA, 0x9A, 0xFF},
	{0xFF, 0xD7, 0x00, 0xFF},
	{0xFF, 0x45, 0x00, 0xFF},
}

func rampColor(norm float64) color.RGBA {
	if norm <= 0 {
		return heatmapRamp[0]
	}
	if norm >= 1 {
		return heatmapRamp[len(heatmapRamp)-1]
	}
	scaled := norm * float64(len(heatmapRamp)-1)
	i := int(scaled)
	frac := scaled - float64(i)
	a, b := heatmapRamp[i], heatmapRamp[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*frac)
	}
	return color.RGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), 0xFF}
}

// segmentSpeed returns the absolute position change per second between two
// consecutive actions.
func segmentSpeed(a, b Action) float64 {
	dt := b.At - a.At
	if dt <= 0 {
		return 0
	}
	dp := b.Pos - a.Pos
	if dp < 0 {
		dp = -dp
	}
	return float64(dp) / (float64(dt) / 1000.0)
}

func formatDuration(ms int64) string {
	secs := ms / 1000
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// RenderHeatmap draws the per-segment stroke speed of the script over its
// time axis and returns the image.
func (f *Funscript) RenderHeatmap(o HeatmapOptions) (image.Image, error) {
	if o.Width <= 0 || o.Height <= 0 {
		return nil, ErrInvalidDimensions
	}
	maxSpeed := o.MaxSpeed
	if maxSpeed <= 0 {
		maxSpeed = DefaultMaxSpeed
	}

	dc := gg.NewContext(o.Width, o.Height)
	dc.SetColor(color.Black)
	dc.Clear()

	actions := f.data.Actions
	if len(actions) >= 2 {
		duration := actions[len(actions)-1].At - actions[0].At
		if duration > 0 {
			origin := actions[0].At
			w := float64(o.Width)
			for i := 1; i < len(actions); i++ {
				x0 := float64(actions[i-1].At-origin) / float64(duration) * w
				x1 := float64(actions[i].At-origin) / float64(duration) * w
				norm := segmentSpeed(actions[i-1], actions[i]) / maxSpeed
				dc.SetColor(rampColor(norm))
				dc.DrawRectangle(x0, 0, x1-x0, float64(o.Height))
				dc.Fill()
			}
		}
	}

	if o.Label && len(actions) > 0 {
		ttfFont, err := truetype.Parse(gomono.TTF)
		if err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
		face := truetype.NewFace(ttfFont, &truetype.Options{
			Size:    12,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		dc.SetFontFace(face)
		label := formatDuration(actions[len(actions)-1].At)
		tw, th := dc.MeasureString(label)
		dc.SetColor(color.White)
		dc.DrawString(label, float64(o.Width)-tw-4, float64(o.Height)-th/2)
	}

	return dc.Image(), nil
}

// SaveHeatmapPNG renders the speed heatmap and writes it to path as PNG.
func (f *Funscript) SaveHeatmapPNG(path string, o HeatmapOptions) error {
	img, err := f.RenderHeatmap(o)
	if err != nil {
		return err
	}
	return gg.NewContextForImage(img).SavePNG(path)
}
