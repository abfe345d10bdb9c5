package checkers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/park285/justcheckers-go/internal/checkers"
)

const DefaultSquareSize = 64

// MoveHighlight marks the last step played and the piece it removed.
type MoveHighlight struct {
	From     checkers.Point
	To       checkers.Point
	Captured *checkers.Point
	Mover    checkers.Side
}

// PieceScore is the number of pieces each side still has.
type PieceScore struct {
	Light int
	Dark  int
}

func (s PieceScore) Diff() int { return s.Light - s.Dark }

type RenderOptions struct {
	SquareSize int
	ShowCoords bool
	Highlight  *MoveHighlight
	// Chain marks the piece that must continue capturing.
	Chain *checkers.Point
	// Movable marks pieces with a legal move.
	Movable   []checkers.Point
	Score     PieceScore
	HUDHeader string
	HUDTurn   string
}

type BoardRenderer interface {
	RenderPNG(ctx context.Context, board *checkers.Board, opts RenderOptions) ([]byte, error)
}

type svgBoardRenderer struct{}

func NewSVGBoardRenderer() BoardRenderer {
	return &svgBoardRenderer{}
}

func (r *svgBoardRenderer) RenderPNG(ctx context.Context, board *checkers.Board, opts RenderOptions) ([]byte, error) {
	if board == nil {
		return nil, errors.New("board is nil")
	}
	if board.Size() <= 0 {
		return nil, fmt.Errorf("board size %d", board.Size())
	}

	squareSize := opts.SquareSize
	if squareSize <= 0 {
		squareSize = DefaultSquareSize
	}

	const (
		sideMargin           = 36
		topMargin            = 110
		bottomMargin         = 36
		titleHeight          = 40
		secondaryPanelHeight = 32
		gapBetweenPanels     = 14
		gapToBoard           = 22
		panelRadius          = 12
		shadowOffsetY        = 6
	)

	boardPx := squareSize * board.Size()
	totalWidth := boardPx + sideMargin*2
	totalHeight := boardPx + topMargin + bottomMargin
	g := geometry{
		origin:     image.Point{X: sideMargin, Y: topMargin},
		squareSize: squareSize,
		size:       board.Size(),
	}
	boardRect := image.Rect(g.origin.X, g.origin.Y, g.origin.X+boardPx, g.origin.Y+boardPx)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	img := image.NewRGBA(image.Rect(0, 0, totalWidth, totalHeight))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, imagedraw.Src)

	drawHUD(img, opts, boardRect, hudLayout{
		radius:          panelRadius,
		titleHeight:     titleHeight,
		secondaryHeight: secondaryPanelHeight,
		gapBetween:      gapBetweenPanels,
		gapToBoard:      gapToBoard,
		shadowOffsetY:   shadowOffsetY,
	})
	drawBoardShadow(img, boardRect)
	drawSquares(img, board, g)
	drawHighlight(img, opts.Highlight, g)
	if err := drawPieces(img, board, g); err != nil {
		return nil, err
	}
	drawMovable(img, opts.Movable, g)
	if opts.Chain != nil {
		drawSquareOverlay(img, *opts.Chain, g, chainMarkerColor)
	}
	if opts.ShowCoords {
		drawCoordinates(img, g, sideMargin)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return pngBuf.Bytes(), nil
}

var (
	backgroundColor     = color.RGBA{R: 20, G: 22, B: 33, A: 255}
	lightSquare         = color.RGBA{R: 233, G: 207, B: 163, A: 255}
	darkSquare          = color.RGBA{R: 120, G: 84, B: 58, A: 255}
	lightMoveFill       = color.NRGBA{R: 255, G: 228, B: 120, A: 140}
	darkMoveArrow       = color.NRGBA{R: 148, G: 207, B: 255, A: 170}
	capturedFill        = color.NRGBA{R: 230, G: 80, B: 70, A: 120}
	chainMarkerColor    = color.NRGBA{R: 255, G: 140, B: 0, A: 110}
	movableMarkerColor  = color.NRGBA{R: 90, G: 220, B: 140, A: 220}
	hudPanelColor       = color.NRGBA{R: 28, G: 31, B: 46, A: 250}
	hudTurnPanelColor   = color.NRGBA{R: 32, G: 35, B: 52, A: 245}
	hudShadowColor      = color.NRGBA{A: 50}
	hudTextPrimary      = color.NRGBA{R: 236, G: 239, B: 255, A: 255}
	hudTurnTextColor    = color.NRGBA{R: 204, G: 210, B: 236, A: 255}
	boardShadowColor    = color.NRGBA{A: 60}
	coordinateTextColor = color.NRGBA{R: 8, G: 214, B: 120, A: 255}
)

// geometry maps board points to pixels.
type geometry struct {
	origin     image.Point
	squareSize int
	size       int
}

func (g geometry) rect(p checkers.Point) image.Rectangle {
	x := g.origin.X + p.Col*g.squareSize
	y := g.origin.Y + p.Row*g.squareSize
	return image.Rect(x, y, x+g.squareSize, y+g.squareSize)
}

func (g geometry) center(p checkers.Point) image.Point {
	r := g.rect(p)
	return image.Point{X: r.Min.X + g.squareSize/2, Y: r.Min.Y + g.squareSize/2}
}

func captionFace() font.Face { return basicfont.Face7x13 }

func drawBoardShadow(img *image.RGBA, boardRect image.Rectangle) {
	shadowRect := image.Rect(boardRect.Min.X+4, boardRect.Min.Y+8, boardRect.Max.X+10, boardRect.Max.Y+12)
	imagedraw.Draw(img, shadowRect, image.NewUniform(boardShadowColor), image.Point{}, imagedraw.Over)
}

func drawSquares(dst imagedraw.Image, board *checkers.Board, g geometry) {
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			clr := lightSquare
			if board.IsLegalPosition(row, col) {
				clr = darkSquare
			}
			p := checkers.Point{Row: row, Col: col}
			imagedraw.Draw(dst, g.rect(p), image.NewUniform(clr), image.Point{}, imagedraw.Src)
		}
	}
}

func drawPieces(dst imagedraw.Image, board *checkers.Board, g geometry) error {
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			sq := board.At(row, col)
			if !sq.IsPiece() {
				continue
			}
			img, err := renderPieceImage(sq, g.squareSize)
			if err != nil {
				return err
			}
			p := checkers.Point{Row: row, Col: col}
			imagedraw.Draw(dst, g.rect(p), img, image.Point{}, imagedraw.Over)
		}
	}
	return nil
}

// drawHighlight fills the squares of a light move and draws an arrow for a
// dark one.
func drawHighlight(img *image.RGBA, h *MoveHighlight, g geometry) {
	if h == nil {
		return
	}
	if h.Captured != nil {
		drawSquareOverlay(img, *h.Captured, g, capturedFill)
	}
	if h.Mover == checkers.Light {
		drawSquareOverlay(img, h.From, g, lightMoveFill)
		drawSquareOverlay(img, h.To, g, lightMoveFill)
		return
	}
	drawArrow(img, g.center(h.From), g.center(h.To), g.squareSize, darkMoveArrow)
}

func drawMovable(img *image.RGBA, points []checkers.Point, g geometry) {
	radius := g.squareSize / 10
	if radius < 2 {
		radius = 2
	}
	for _, p := range points {
		r := g.rect(p)
		center := image.Point{X: r.Max.X - radius - 3, Y: r.Min.Y + radius + 3}
		drawDisc(img, center, radius, movableMarkerColor)
	}
}

func drawSquareOverlay(img *image.RGBA, p checkers.Point, g geometry, clr color.Color) {
	imagedraw.Draw(img, g.rect(p), image.NewUniform(clr), image.Point{}, imagedraw.Over)
}

type hudLayout struct {
	radius          int
	titleHeight     int
	secondaryHeight int
	gapBetween      int
	gapToBoard      int
	shadowOffsetY   int
}

func drawHUD(img *image.RGBA, opts RenderOptions, boardRect image.Rectangle, l hudLayout) {
	const (
		titlePaddingX = 28
		scorePaddingX = 24
		turnPaddingX  = 20
		titleMinWidth = 200
		scoreMinWidth = 72
		turnMinWidth  = 140
	)

	face := captionFace()
	drawer := &font.Drawer{Dst: img, Face: face}

	title := strings.TrimSpace(opts.HUDHeader)
	if title == "" {
		title = "Light vs Dark"
	}
	scoreText := formatScore(opts.Score)
	turnText := strings.TrimSpace(opts.HUDTurn)
	if turnText == "" {
		turnText = "Turn"
	}

	turnBottom := boardRect.Min.Y - l.gapToBoard
	turnTop := turnBottom - l.secondaryHeight
	titleBottom := turnTop - l.gapBetween
	titleTop := titleBottom - l.titleHeight
	scoreBottom := boardRect.Min.Y - l.gapToBoard
	scoreTop := scoreBottom - l.secondaryHeight

	titleWidth := maxInt(titleMinWidth, drawer.MeasureString(title).Round()+titlePaddingX*2)
	scoreWidth := maxInt(scoreMinWidth, drawer.MeasureString(scoreText).Round()+scorePaddingX*2)
	turnWidth := maxInt(turnMinWidth, drawer.MeasureString(turnText).Round()+turnPaddingX*2)

	if limit := maxInt(titleMinWidth, boardRect.Dx()-scoreWidth-24); titleWidth > limit {
		titleWidth = limit
	}
	if limit := boardRect.Dx() - 40; turnWidth > limit {
		turnWidth = limit
	}

	titleRect := image.Rect(boardRect.Min.X, titleTop, boardRect.Min.X+titleWidth, titleBottom)
	scoreRect := image.Rect(boardRect.Max.X-scoreWidth, scoreTop, boardRect.Max.X, scoreBottom)
	turnLeft := boardRect.Min.X + (boardRect.Dx()-turnWidth)/2
	turnRect := image.Rect(turnLeft, turnTop, turnLeft+turnWidth, turnBottom)

	shadow := image.Pt(0, l.shadowOffsetY)
	drawRoundedPanel(img, titleRect.Add(shadow), l.radius, hudShadowColor)
	drawRoundedPanel(img, scoreRect.Add(shadow), l.radius, hudShadowColor)
	drawRoundedPanel(img, turnRect.Add(shadow), l.radius, hudShadowColor)

	title = truncateWithEllipsis(face, title, titleRect.Dx()-titlePaddingX*2)
	turnText = truncateWithEllipsis(face, turnText, turnRect.Dx()-turnPaddingX*2)

	drawRoundedPanel(img, titleRect, l.radius, hudPanelColor)
	drawRoundedPanel(img, scoreRect, l.radius, hudPanelColor)
	drawRoundedPanel(img, turnRect, l.radius, hudTurnPanelColor)

	drawCenteredString(drawer, titleRect, title, hudTextPrimary)
	drawCenteredString(drawer, scoreRect, scoreText, hudTextPrimary)
	drawCenteredString(drawer, turnRect, turnText, hudTurnTextColor)
}

func formatScore(s PieceScore) string {
	diff := s.Diff()
	if diff == 0 {
		return fmt.Sprintf("%d:%d", s.Light, s.Dark)
	}
	return fmt.Sprintf("%d:%d (%+d)", s.Light, s.Dark, diff)
}

func truncateWithEllipsis(face font.Face, text string, maxWidth int) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || maxWidth <= 0 || face == nil {
		return trimmed
	}
	drawer := font.Drawer{Face: face}
	if drawer.MeasureString(trimmed).Round() <= maxWidth {
		return trimmed
	}
	const ellipsis = "..."
	if drawer.MeasureString(ellipsis).Round() > maxWidth {
		return ""
	}
	runes := []rune(trimmed)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + ellipsis
		if drawer.MeasureString(candidate).Round() <= maxWidth {
			return candidate
		}
	}
	return ellipsis
}

func drawCenteredString(drawer *font.Drawer, rect image.Rectangle, text string, clr color.Color) {
	text = strings.TrimSpace(text)
	if drawer == nil || text == "" {
		return
	}
	metrics := drawer.Face.Metrics()
	width := drawer.MeasureString(text).Round()
	x := rect.Min.X + (rect.Dx()-width)/2
	if x < rect.Min.X {
		x = rect.Min.X
	}
	baseline := rect.Min.Y + (rect.Dy()+metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2
	drawer.Src = image.NewUniform(clr)
	drawer.Dot = fixed.P(x, baseline)
	drawer.DrawString(text)
}

// drawCoordinates labels files along the bottom edge and ranks along the left.
func drawCoordinates(dst imagedraw.Image, g geometry, margin int) {
	face := captionFace()
	drawer := &font.Drawer{Dst: dst, Face: face, Src: image.NewUniform(coordinateTextColor)}
	ascent := face.Metrics().Ascent.Ceil()
	boardEndY := g.origin.Y + g.size*g.squareSize

	for i := 0; i < g.size; i++ {
		c := g.center(checkers.Point{Row: i, Col: i})
		drawCenteredText(drawer, strconv.Itoa(g.size-i), g.origin.X-margin/2, c.Y+ascent/2)
		drawCenteredText(drawer, string(rune('a'+i)), c.X, boardEndY+ascent+4)
	}
}

func drawCenteredText(drawer *font.Drawer, text string, centerX, baseline int) {
	if text == "" {
		return
	}
	width := drawer.MeasureString(text).Round()
	drawer.Dot = fixed.P(centerX-width/2, baseline)
	drawer.DrawString(text)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
