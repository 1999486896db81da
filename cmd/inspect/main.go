package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"asset-preview/internal/obj"
	"asset-preview/internal/wav"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect <asset.obj | asset.wav>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		err = inspectWAV(path)
	case ".obj":
		err = inspectOBJ(path)
	default:
		err = fmt.Errorf("unrecognized asset type: %s", path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func inspectWAV(path string) error {
	clip, err := wav.Decode(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", path)
	fmt.Printf("  format tag:      %d\n", clip.Format.FormatTag)
	fmt.Printf("  channels:        %d\n", clip.Format.Channels)
	fmt.Printf("  sample rate:     %d Hz\n", clip.Format.SampleRate)
	fmt.Printf("  bits per sample: %d\n", clip.Format.BitsPerSample)
	fmt.Printf("  block align:     %d\n", clip.Format.BlockAlign)
	fmt.Printf("  data:            %d bytes (%s)\n", len(clip.Data), clip.Duration().Round(time.Millisecond))
	return nil
}

func inspectOBJ(path string) error {
	dir := filepath.ToSlash(filepath.Dir(path))
	model, err := obj.Load(dir, filepath.Base(path))
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", path)
	fmt.Printf("  triangles: %d\n", model.TriangleCount())
	fmt.Printf("  vertices:  %d\n", len(model.Vertices))
	if model.Material.TexturePath != "" {
		fmt.Printf("  texture:   %s\n", model.Material.TexturePath)
	} else {
		fmt.Printf("  texture:   (none)\n")
	}
	return nil
}
