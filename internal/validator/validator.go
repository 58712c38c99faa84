// Package validator gates uploads with cheap pixel statistics so the
// classifier only ever sees plausible retinal fundus photographs.
package validator

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const (
	minDimension  = 100
	minSaturation = 20.0
	minBrightness = 15.0
	maxBrightness = 240.0

	// A fundus photograph is a bright disc on a dark surround. If the
	// image corners carry most of the center's brightness there is no
	// circular structure.
	maxCornerToCenterRatio = 0.60
)

// Decode parses image bytes into an image.Image (JPEG, PNG or GIF).
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Validate reports whether img looks like a retinal fundus photograph.
// The second return value explains a rejection.
func Validate(img image.Image) (bool, string) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width < minDimension || height < minDimension {
		return false, fmt.Sprintf("image resolution too low (%dx%d); retinal images should be at least %dx%d pixels", width, height, minDimension, minDimension)
	}

	stats := collect(img)

	if stats.avgSaturation < minSaturation {
		return false, "image appears to be grayscale or lacks color; retinal images should have visible blood vessels and color"
	}

	if stats.avgBlue > stats.avgRed && stats.avgBlue > stats.avgGreen {
		return false, "image has unusual color distribution; retinal images should have reddish/orange tones, not predominantly blue"
	}

	if stats.avgBrightness < minBrightness {
		return false, "image is too dark; please upload a properly illuminated retinal image"
	}
	if stats.avgBrightness > maxBrightness {
		return false, "image is overexposed; please upload a properly exposed retinal image"
	}

	if stats.centerBrightness > 0 && stats.cornerBrightness/stats.centerBrightness > maxCornerToCenterRatio {
		return false, "image does not show the typical circular structure of a retinal fundus image"
	}

	return true, "valid retinal image"
}

type pixelStats struct {
	avgRed, avgGreen, avgBlue float64
	avgSaturation             float64
	avgBrightness             float64
	centerBrightness          float64
	cornerBrightness          float64
}

func collect(img image.Image) pixelStats {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// Sample on a grid; exact per-pixel statistics are not worth the cost
	// on multi-megapixel uploads.
	step := width / 256
	if s := height / 256; s > step {
		step = s
	}
	if step < 1 {
		step = 1
	}

	var (
		sumR, sumG, sumB, sumSat, sumLum float64
		n                                float64
	)
	cx := float64(bounds.Min.X) + float64(width)/2
	cy := float64(bounds.Min.Y) + float64(height)/2
	radius := float64(width) / 2
	if r := float64(height) / 2; r < radius {
		radius = r
	}
	centerR := radius * 0.5
	cornerSide := radius * 0.25

	var centerSum, centerN, cornerSum, cornerN float64

	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r := float64(r16 >> 8)
			g := float64(g16 >> 8)
			b := float64(b16 >> 8)

			sumR += r
			sumG += g
			sumB += b

			maxC, minC := r, r
			for _, c := range []float64{g, b} {
				if c > maxC {
					maxC = c
				}
				if c < minC {
					minC = c
				}
			}
			if maxC > 0 {
				sumSat += 255 * (maxC - minC) / maxC
			}
			lum := 0.299*r + 0.587*g + 0.114*b
			sumLum += lum
			n++

			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= centerR*centerR {
				centerSum += lum
				centerN++
			}

			fromLeft := float64(x - bounds.Min.X)
			fromRight := float64(bounds.Max.X - 1 - x)
			fromTop := float64(y - bounds.Min.Y)
			fromBottom := float64(bounds.Max.Y - 1 - y)
			if (fromLeft < cornerSide || fromRight < cornerSide) && (fromTop < cornerSide || fromBottom < cornerSide) {
				cornerSum += lum
				cornerN++
			}
		}
	}

	stats := pixelStats{}
	if n > 0 {
		stats.avgRed = sumR / n
		stats.avgGreen = sumG / n
		stats.avgBlue = sumB / n
		stats.avgSaturation = sumSat / n
		stats.avgBrightness = sumLum / n
	}
	if centerN > 0 {
		stats.centerBrightness = centerSum / centerN
	}
	if cornerN > 0 {
		stats.cornerBrightness = cornerSum / cornerN
	}
	return stats
}
