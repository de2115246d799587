//go:build !linux

package headless

import (
	"fmt"

	"github.com/richinsley/shader2video/graphics"
)

func NewHeadless() (graphics.Context, error) {
	return nil, fmt.Errorf("egl headless rendering is not supported on this platform")
}
