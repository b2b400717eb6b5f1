package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	sheetMargin  = 48
	sheetGap     = 16
	sheetColumns = 5
	sheetThumbW  = 216
	sheetThumbH  = 384
	sheetQRSize  = 240
)

// SheetThumbnail reduces a rendered card to the size ComposeSheet tiles.
func SheetThumbnail(card image.Image) image.Image {
	return imaging.Fill(card, sheetThumbW, sheetThumbH, imaging.Center, imaging.Lanczos)
}

// ComposeSheet tiles rendered cards into a preview sheet, five per row,
// with an optional QR code in the top-right corner.
func ComposeSheet(cards []image.Image, qr image.Image) *image.NRGBA {
	cols := sheetColumns
	if len(cards) < cols {
		cols = len(cards)
	}
	if cols == 0 {
		cols = 1
	}
	rows := (len(cards) + sheetColumns - 1) / sheetColumns

	top := sheetMargin
	if qr != nil {
		top += sheetQRSize + sheetGap
	}
	w := 2*sheetMargin + cols*sheetThumbW + (cols-1)*sheetGap
	if minW := 2*sheetMargin + sheetQRSize; w < minW {
		w = minW
	}
	h := top + rows*sheetThumbH + max(rows-1, 0)*sheetGap + sheetMargin

	sheet := imaging.New(w, h, color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff})
	if qr != nil {
		q := imaging.Resize(qr, sheetQRSize, sheetQRSize, imaging.NearestNeighbor)
		sheet = imaging.Paste(sheet, q, image.Pt(w-sheetMargin-sheetQRSize, sheetMargin))
	}
	for i, card := range cards {
		thumb := card
		if b := card.Bounds(); b.Dx() != sheetThumbW || b.Dy() != sheetThumbH {
			thumb = SheetThumbnail(card)
		}
		x := sheetMargin + (i%sheetColumns)*(sheetThumbW+sheetGap)
		y := top + (i/sheetColumns)*(sheetThumbH+sheetGap)
		sheet = imaging.Paste(sheet, thumb, image.Pt(x, y))
	}
	return sheet
}
