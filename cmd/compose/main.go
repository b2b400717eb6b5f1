package main

import (
	"flag"
	"log/slog"
	"os"

	imagepkg "github.com/youruser/thumbcard/internal/image"
	"github.com/youruser/thumbcard/internal/logx"
	"github.com/youruser/thumbcard/internal/util"
)

func main() {
	in := flag.String("in", "", "Source image (any format imaging decodes)")
	out := flag.String("out", "card.png", "Output PNG path")
	title := flag.String("title", "", "Title text")
	provider := flag.String("provider", "", "Provider text")
	width := flag.Int("width", imagepkg.DefaultWidth, "Card width")
	height := flag.Int("height", imagepkg.DefaultHeight, "Card height")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level, _ := logx.ParseLevel("info")
	if *verbose {
		level, _ = logx.ParseLevel("debug")
	}
	logx.SetDefault(os.Stderr, level)

	if *in == "" {
		slog.Error("please provide the source image using the -in flag")
		os.Exit(2)
	}
	data, err := os.ReadFile(*in)
	if err != nil {
		slog.Error("read source", "path", *in, "err", err)
		os.Exit(1)
	}

	comp, err := imagepkg.NewCompositor()
	if err != nil {
		slog.Error("compositor", "err", err)
		os.Exit(1)
	}
	png, err := comp.Compose(imagepkg.CompositionRequest{
		Data:     data,
		Title:    *title,
		Provider: *provider,
		Width:    *width,
		Height:   *height,
	})
	if err != nil {
		slog.Error("compose", "err", err)
		os.Exit(1)
	}
	if err := util.WriteFileAtomic(*out, png); err != nil {
		slog.Error("write card", "path", *out, "err", err)
		os.Exit(1)
	}
	slog.Info("card written", "path", *out, "bytes", len(png))
}
