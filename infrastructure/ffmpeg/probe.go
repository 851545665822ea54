package ffmpeg

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"background-band/domain/band"
)

// probeResult represents the JSON output of ffprobe -show_entries stream
type probeResult struct {
	Streams []probeStream `json:"streams"`
}

type probeStream struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	NbFrames     string `json:"nb_frames"`
	Duration     string `json:"duration"`
}

// probeArgs builds the ffprobe arguments for the first video stream of path
func probeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate,avg_frame_rate,nb_frames,duration",
		"-of", "json",
		path,
	}
}

// parseProbe turns ffprobe output into stream info. The frame count comes
// from nb_frames when the container records it, otherwise from duration * fps.
func parseProbe(output []byte) (band.SourceInfo, error) {
	var result probeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return band.SourceInfo{}, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if len(result.Streams) == 0 {
		return band.SourceInfo{}, fmt.Errorf("no video stream found")
	}

	s := result.Streams[0]
	if s.Width <= 0 || s.Height <= 0 {
		return band.SourceInfo{}, fmt.Errorf("invalid video geometry %dx%d", s.Width, s.Height)
	}

	fps := parseRate(s.AvgFrameRate)
	if fps <= 0 {
		fps = parseRate(s.RFrameRate)
	}

	total, err := strconv.Atoi(s.NbFrames)
	if err != nil || total <= 0 {
		total = 0
		if d, err := strconv.ParseFloat(s.Duration, 64); err == nil && fps > 0 {
			total = int(math.Round(d * fps))
		}
	}

	return band.SourceInfo{
		Width:       s.Width,
		Height:      s.Height,
		FPS:         fps,
		TotalFrames: total,
	}, nil
}

// parseRate parses ffprobe rationals such as "30000/1001"
func parseRate(s string) float64 {
	num, den, found := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
