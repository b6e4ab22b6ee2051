// Example renders 60 frames of an animated shader into output/ using the
// library directly, without a job file.
//
// Prerequisites: libEGL and a GLES 3 capable driver (Mesa works headless).
//
//	cd example && go run .
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-theft-auto/offscreen"
	"github.com/go-theft-auto/offscreen/backend/egl"
	"github.com/go-theft-auto/offscreen/backend/gogl"
)

const (
	width  = 800
	height = 600
	frames = 60
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, err := egl.New(width, height)
	if err != nil {
		return err
	}
	drv, err := gogl.New(nil)
	if err != nil {
		ctx.Destroy()
		return err
	}
	surface, err := offscreen.NewSurface(drv, ctx, "OpenGLES Offscreen Renderer")
	if err != nil {
		return err
	}
	defer surface.Destroy()

	mat, err := offscreen.NewMaterial(drv, "example", "shaders/vp.vert", "shaders/fp.frag")
	if err != nil {
		return err
	}
	defer mat.Delete()

	uTime := offscreen.NewFloatUniform("uTime", 0)
	uColor := offscreen.NewVec4Uniform("uColor", offscreen.Vec4{1, 1, 1, 1})
	uTex, err := offscreen.NewSamplerUniform(drv, "uTex", "shaders/image.png", 0, offscreen.DefaultTextureOptions())
	if err != nil {
		return err
	}
	defer uTex.Delete()

	for i := 0; i < frames; i++ {
		uTime.SetFloat(float32(i) * 0.1)
		if err := surface.DrawQuad(mat, uTime, uColor, uTex); err != nil {
			return err
		}
		name := fmt.Sprintf("output/frame_%03d.png", i)
		if err := surface.SaveFrame(name); err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println("Saved", name)
	}
	return nil
}
