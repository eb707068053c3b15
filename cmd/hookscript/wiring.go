package main

import (
	"log/slog"

	"hookscript/internal/config"
	"hookscript/internal/pipeline"
	"hookscript/internal/services/ytdlp"
	"hookscript/internal/transcribe"
)

func buildPipeline(cfg *config.Config, logger *slog.Logger) (*pipeline.Pipeline, error) {
	transcriber, err := transcribe.New(cfg)
	if err != nil {
		return nil, err
	}
	downloader := ytdlp.New(ytdlp.Config{
		Binary:       cfg.Download.YTDLPBinary,
		FFmpegBinary: cfg.Download.FFmpegBinary,
	})
	source := pipeline.NewMediaSource(downloader, transcriber, cfg.Paths.WorkDir,
		pipeline.WithDownloadTimeout(cfg.DownloadTimeout()),
		pipeline.WithSourceLogger(logger),
	)
	return pipeline.New(source, cfg.SegmentConfig(), logger), nil
}
