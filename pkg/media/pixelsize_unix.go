//go:build unix

package media

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// queryCellSize reads terminal pixel dimensions via TIOCGWINSZ and
// derives the size of one cell.
func queryCellSize() (pixelW, pixelH int, err error) {
	f, err := os.Open("/dev/tty")
	if err != nil {
		return 0, 0, fmt.Errorf("open /dev/tty: %w", err)
	}
	defer f.Close()

	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("TIOCGWINSZ: %w", err)
	}
	if ws.Xpixel == 0 || ws.Ypixel == 0 || ws.Col == 0 || ws.Row == 0 {
		return 0, 0, fmt.Errorf("TIOCGWINSZ reported zero dimensions")
	}

	cellW := int(ws.Xpixel) / int(ws.Col)
	cellH := int(ws.Ypixel) / int(ws.Row)
	if cellW <= 0 || cellH <= 0 {
		return 0, 0, fmt.Errorf("degenerate cell size %dx%d", cellW, cellH)
	}
	return cellW, cellH, nil
}
