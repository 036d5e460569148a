// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package animation

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"os/exec"
	"strings"

	"github.com/tomtom215/starchart/internal/logging"
	"github.com/tomtom215/starchart/internal/models"
)

// Output formats.
const (
	FormatGIF = "gif"
	FormatMP4 = "mp4"
)

var greyPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}()

// EncodeGIF writes anim as an animated GIF. A LoopCount of 0 loops forever.
func EncodeGIF(w io.Writer, anim *Animation) error {
	const op = "animation.EncodeGIF"

	delay := int(anim.FrameDuration.Milliseconds() / 10)
	if delay < 2 {
		delay = 2
	}

	out := &gif.GIF{LoopCount: anim.LoopCount}
	for _, f := range anim.Frames {
		if f.Image == nil || len(f.Image.PNG) == 0 {
			return models.Errorf(models.KindRender, op, "frame %d has no image", f.Index)
		}
		// Decode one frame at a time; only the paletted copy outlives the loop.
		img, err := png.Decode(bytes.NewReader(f.Image.PNG))
		if err != nil {
			return models.Errorf(models.KindRender, op, "decode frame %d: %w", f.Index, err)
		}
		out.Image = append(out.Image, toGrey(img))
		out.Delay = append(out.Delay, delay)
	}

	if err := gif.EncodeAll(w, out); err != nil {
		return models.Errorf(models.KindRender, op, "encode gif: %w", err)
	}
	return nil
}

// toGrey maps img onto the 256-level grey palette by luma.
func toGrey(img image.Image) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, greyPalette)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			luma := (19595*r + 38470*g + 7471*bl + 1<<15) >> 24
			p.SetColorIndex(x, y, uint8(luma))
		}
	}
	return p
}

// EncodeMP4 writes anim to dest as H.264 video by piping PNG frames through
// ffmpeg.
func EncodeMP4(ctx context.Context, ffmpegPath, dest string, anim *Animation) error {
	const op = "animation.EncodeMP4"

	ms := anim.FrameDuration.Milliseconds()
	if ms <= 0 {
		ms = MinFrameDuration.Milliseconds()
	}

	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-y",
		"-loglevel", "error",
		"-f", "image2pipe",
		"-framerate", fmt.Sprintf("1000/%d", ms),
		"-i", "-",
		"-vf", "scale=trunc(iw/2)*2:trunc(ih/2)*2",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-f", "mp4",
		dest,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return models.Errorf(models.KindRender, op, "open ffmpeg stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return models.Errorf(models.KindRender, op, "start ffmpeg: %w", err)
	}

	var writeErr error
	for _, f := range anim.Frames {
		if f.Image == nil {
			writeErr = fmt.Errorf("frame %d has no image", f.Index)
			break
		}
		if _, err := stdin.Write(f.Image.PNG); err != nil {
			writeErr = fmt.Errorf("write frame %d: %w", f.Index, err)
			break
		}
	}
	closeErr := stdin.Close()

	if err := cmd.Wait(); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("stderr", strings.TrimSpace(stderr.String())).Msg("ffmpeg failed")
		return models.Errorf(models.KindRender, op, "ffmpeg: %w", err)
	}
	if writeErr != nil {
		return models.Errorf(models.KindRender, op, "pipe frames: %w", writeErr)
	}
	if closeErr != nil {
		return models.Errorf(models.KindRender, op, "close ffmpeg stdin: %w", closeErr)
	}
	return nil
}
