package probe

import "fmt"

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename   string
	NbStreams  int
	FormatName string
	Duration   float64
	Size       int64
	BitRate    int64
}

// VideoStream holds the parsed properties of the first video stream.
type VideoStream struct {
	Index        int
	Codec        string
	CodecTag     string
	PixFmt       string
	Width        int
	Height       int
	AvgFrameRate string
	RFrameRate   string
	Duration     float64
	NbFrames     int64
	ReadPackets  int64
}

// ProbeResult is the parsed output of a single ffprobe JSON call. Video is
// the first non-attached-pic video stream (nil if none).
type ProbeResult struct {
	Format FormatInfo
	Video  *VideoStream
}

// Frames returns the video frame count: the container's nb_frames when
// present, otherwise the counted packets.
func (p *ProbeResult) Frames() int64 {
	if p.Video == nil {
		return 0
	}
	if p.Video.NbFrames > 0 {
		return p.Video.NbFrames
	}
	return p.Video.ReadPackets
}

// FPS returns the average frame rate, falling back to the stream's base
// rate.
func (p *ProbeResult) FPS() float64 {
	if p.Video == nil {
		return 0
	}
	if r := ParseRate(p.Video.AvgFrameRate); r > 0 {
		return r
	}
	return ParseRate(p.Video.RFrameRate)
}

// Duration returns the stream duration in seconds, falling back to the
// container duration.
func (p *ProbeResult) Duration() float64 {
	if p.Video != nil && p.Video.Duration > 0 {
		return p.Video.Duration
	}
	return p.Format.Duration
}

// Resolution returns "WxH" for the video stream, or "unknown".
func (p *ProbeResult) Resolution() string {
	if p.Video == nil || p.Video.Width <= 0 || p.Video.Height <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", p.Video.Width, p.Video.Height)
}
