package checkers

import (
	"image"
	"image/color"
	imagedraw "image/draw"
	"math"
)

type pointF struct {
	X float64
	Y float64
}

func drawArrow(img *image.RGBA, start, end image.Point, squareSize int, clr color.Color) {
	if img == nil || start == end {
		return
	}
	dx := float64(end.X - start.X)
	dy := float64(end.Y - start.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}

	dirX := dx / length
	dirY := dy / length
	perpX := -dirY
	perpY := dirX

	baseLength := length - float64(squareSize)*0.45
	if baseLength < float64(squareSize)*0.35 {
		baseLength = length * 0.6
	}
	halfWidth := float64(squareSize) * 0.18
	headWidth := float64(squareSize) * 0.32

	baseX := float64(start.X) + dirX*baseLength
	baseY := float64(start.Y) + dirY*baseLength

	shaftStartLeft := pointF{X: float64(start.X) - perpX*halfWidth, Y: float64(start.Y) - perpY*halfWidth}
	shaftStartRight := pointF{X: float64(start.X) + perpX*halfWidth, Y: float64(start.Y) + perpY*halfWidth}
	shaftEndLeft := pointF{X: baseX - perpX*halfWidth, Y: baseY - perpY*halfWidth}
	shaftEndRight := pointF{X: baseX + perpX*halfWidth, Y: baseY + perpY*halfWidth}
	fillQuad(img, shaftStartLeft, shaftStartRight, shaftEndRight, shaftEndLeft, clr)

	headLeft := pointF{X: baseX - perpX*headWidth/2, Y: baseY - perpY*headWidth/2}
	headRight := pointF{X: baseX + perpX*headWidth/2, Y: baseY + perpY*headWidth/2}
	headTip := pointF{X: float64(end.X), Y: float64(end.Y)}
	fillTriangleF(img, headTip, headLeft, headRight, clr)
}

func drawRoundedPanel(img *image.RGBA, rect image.Rectangle, radius int, clr color.Color) {
	if img == nil || rect.Empty() {
		return
	}
	if radius < 0 {
		radius = 0
	}
	maxRadius := rect.Dx() / 2
	if r := rect.Dy() / 2; r < maxRadius {
		maxRadius = r
	}
	if radius > maxRadius {
		radius = maxRadius
	}
	fill := image.NewUniform(clr)
	if radius == 0 {
		imagedraw.Draw(img, rect, fill, image.Point{}, imagedraw.Over)
		return
	}

	// center column spans the full height; side strips stop short of the corners
	core := image.Rect(rect.Min.X+radius, rect.Min.Y, rect.Max.X-radius, rect.Max.Y)
	if core.Dx() > 0 {
		imagedraw.Draw(img, core, fill, image.Point{}, imagedraw.Over)
	}
	left := image.Rect(rect.Min.X, rect.Min.Y+radius, rect.Min.X+radius, rect.Max.Y-radius)
	if left.Dy() > 0 {
		imagedraw.Draw(img, left, fill, image.Point{}, imagedraw.Over)
	}
	right := image.Rect(rect.Max.X-radius, rect.Min.Y+radius, rect.Max.X, rect.Max.Y-radius)
	if right.Dy() > 0 {
		imagedraw.Draw(img, right, fill, image.Point{}, imagedraw.Over)
	}

	corners := []image.Point{
		{X: rect.Min.X + radius, Y: rect.Min.Y + radius},
		{X: rect.Max.X - radius - 1, Y: rect.Min.Y + radius},
		{X: rect.Min.X + radius, Y: rect.Max.Y - radius - 1},
		{X: rect.Max.X - radius - 1, Y: rect.Max.Y - radius - 1},
	}
	for _, c := range corners {
		drawQuarterDisc(img, c, radius, rect, clr)
	}
}

// drawQuarterDisc fills the corner pixels the straight strips leave uncovered.
func drawQuarterDisc(img *image.RGBA, center image.Point, radius int, rect image.Rectangle, clr color.Color) {
	inner := image.Rect(rect.Min.X+radius, rect.Min.Y, rect.Max.X-radius, rect.Max.Y)
	sides := image.Rect(rect.Min.X, rect.Min.Y+radius, rect.Max.X, rect.Max.Y-radius)
	rSquared := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y > rSquared {
				continue
			}
			p := image.Point{X: center.X + x, Y: center.Y + y}
			if !p.In(rect) || p.In(inner) || p.In(sides) {
				continue
			}
			blendPixel(img, p.X, p.Y, clr)
		}
	}
}

func drawDisc(img *image.RGBA, center image.Point, radius int, clr color.Color) {
	if radius <= 0 {
		blendPixel(img, center.X, center.Y, clr)
		return
	}
	rSquared := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y > rSquared {
				continue
			}
			blendPixel(img, center.X+x, center.Y+y, clr)
		}
	}
}

func blendPixel(img *image.RGBA, x, y int, clr color.Color) {
	if img == nil || !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}

	sr, sg, sb, sa := clr.RGBA()
	srcA := float64(sa) / 65535.0
	if srcA <= 0 {
		return
	}
	// clr.RGBA is alpha-premultiplied
	srcR := float64(sr) / 65535.0
	srcG := float64(sg) / 65535.0
	srcB := float64(sb) / 65535.0

	dst := img.RGBAAt(x, y)
	dstR := float64(dst.R) / 255.0
	dstG := float64(dst.G) / 255.0
	dstB := float64(dst.B) / 255.0
	dstA := float64(dst.A) / 255.0

	inv := 1 - srcA
	img.SetRGBA(x, y, color.RGBA{
		R: floatToUint8((srcR + dstR*inv) * 255.0),
		G: floatToUint8((srcG + dstG*inv) * 255.0),
		B: floatToUint8((srcB + dstB*inv) * 255.0),
		A: floatToUint8((srcA + dstA*inv) * 255.0),
	})
}

func floatToUint8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func fillQuad(img *image.RGBA, p0, p1, p2, p3 pointF, clr color.Color) {
	fillTriangleF(img, p0, p1, p2, clr)
	fillTriangleF(img, p0, p2, p3, clr)
}

func fillTriangleF(img *image.RGBA, a, b, c pointF, clr color.Color) {
	minX := int(math.Floor(math.Min(a.X, math.Min(b.X, c.X))))
	maxX := int(math.Ceil(math.Max(a.X, math.Max(b.X, c.X))))
	minY := int(math.Floor(math.Min(a.Y, math.Min(b.Y, c.Y))))
	maxY := int(math.Ceil(math.Max(a.Y, math.Max(b.Y, c.Y))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if pointInTriangle(float64(x)+0.5, float64(y)+0.5, a, b, c) {
				blendPixel(img, x, y, clr)
			}
		}
	}
}

func pointInTriangle(x, y float64, a, b, c pointF) bool {
	denom := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if denom == 0 {
		return false
	}
	alpha := ((b.Y-c.Y)*(x-c.X) + (c.X-b.X)*(y-c.Y)) / denom
	beta := ((c.Y-a.Y)*(x-c.X) + (a.X-c.X)*(y-c.Y)) / denom
	gamma := 1 - alpha - beta
	return alpha >= 0 && beta >= 0 && gamma >= 0
}
