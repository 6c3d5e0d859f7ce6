//go:build !unix

package media

import "fmt"

func queryCellSize() (pixelW, pixelH int, err error) {
	return 0, 0, fmt.Errorf("cell size query not supported on this platform")
}
