package main

import (
	"bytes"
	"flag"
	"fmt"
	"time"

	"asset-preview/internal/wav"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	file := flag.String("file", "", "Path to a .wav file")
	flag.Parse()

	if *file == "" {
		logrus.Fatal("usage: play -file <clip.wav>")
	}

	clip, err := wav.Decode(*file)
	if err != nil {
		logrus.WithError(err).Fatal("decoding clip")
	}

	format, err := sampleFormat(clip.Format)
	if err != nil {
		logrus.WithError(err).Fatal("unsupported clip format")
	}

	logrus.WithFields(logrus.Fields{
		"channels": clip.Format.Channels,
		"rate":     clip.Format.SampleRate,
		"bits":     clip.Format.BitsPerSample,
		"duration": clip.Duration().Round(time.Millisecond),
	}).Info("playing")

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(clip.Format.SampleRate),
		ChannelCount: int(clip.Format.Channels),
		Format:       format,
	})
	if err != nil {
		logrus.WithError(err).Fatal("opening audio device")
	}
	<-ready

	player := ctx.NewPlayer(bytes.NewReader(clip.Data))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	if err := player.Close(); err != nil {
		logrus.WithError(err).Warn("closing player")
	}
}

// sampleFormat maps the decoded stream format to an oto sample layout.
// Only integer PCM clips are playable.
func sampleFormat(f wav.Format) (oto.Format, error) {
	if f.FormatTag != wav.FormatPCM {
		return 0, fmt.Errorf("format tag %d is not PCM", f.FormatTag)
	}
	switch f.BitsPerSample {
	case 8:
		return oto.FormatUnsignedInt8, nil
	case 16:
		return oto.FormatSignedInt16LE, nil
	default:
		return 0, fmt.Errorf("%d bits per sample not supported", f.BitsPerSample)
	}
}
