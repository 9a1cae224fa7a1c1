package probe

import (
	"context"
	"math"
	"os/exec"
	"path/filepath"
	"testing"
)

// ffprobe JSON for a seq2vid mp4: cover art first, then an odd-sized source
// padded to 1920x1080 H.264 at 24 fps.
const sampleMP4 = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "width": 600,
      "height": 900,
      "disposition": { "default": 0, "attached_pic": 1 }
    },
    {
      "index": 1,
      "codec_name": "h264",
      "codec_type": "video",
      "codec_tag_string": "avc1",
      "pix_fmt": "yuv420p",
      "width": 1920,
      "height": 1080,
      "avg_frame_rate": "24/1",
      "r_frame_rate": "24/1",
      "duration": "6.250000",
      "nb_frames": "150",
      "nb_read_packets": "150",
      "disposition": { "default": 1, "attached_pic": 0 }
    }
  ],
  "format": {
    "filename": "/photos/output_video.mp4",
    "nb_streams": 2,
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "6.250000",
    "size": "812345",
    "bit_rate": "1039801"
  }
}`

// Matroska has no nb_frames or stream duration; the counted packets and
// container duration stand in.
const sampleMKV = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "hevc",
      "codec_type": "video",
      "pix_fmt": "yuv420p",
      "width": 640,
      "height": 480,
      "avg_frame_rate": "0/0",
      "r_frame_rate": "30000/1001",
      "nb_read_packets": "300",
      "disposition": { "default": 1, "attached_pic": 0 }
    }
  ],
  "format": {
    "filename": "out.mkv",
    "nb_streams": 1,
    "format_name": "matroska,webm",
    "duration": "10.010000",
    "size": "500000",
    "bit_rate": "400000"
  }
}`

func TestParseJSON_MP4(t *testing.T) {
	pr, err := ParseJSON([]byte(sampleMP4))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	if pr.Format.Filename != "/photos/output_video.mp4" {
		t.Errorf("filename: got %q", pr.Format.Filename)
	}
	if pr.Format.Size != 812345 || pr.Format.BitRate != 1039801 {
		t.Errorf("size/bitrate: got %d/%d", pr.Format.Size, pr.Format.BitRate)
	}

	// The cover art stream must be skipped.
	if pr.Video == nil {
		t.Fatal("Video is nil")
	}
	if pr.Video.Index != 1 || pr.Video.Codec != "h264" || pr.Video.CodecTag != "avc1" {
		t.Errorf("video: got %+v", pr.Video)
	}
	if pr.Frames() != 150 {
		t.Errorf("Frames() = %d, want 150", pr.Frames())
	}
	if pr.FPS() != 24 {
		t.Errorf("FPS() = %v, want 24", pr.FPS())
	}
	if pr.Duration() != 6.25 {
		t.Errorf("Duration() = %v, want 6.25", pr.Duration())
	}
	if pr.Resolution() != "1920x1080" {
		t.Errorf("Resolution() = %q", pr.Resolution())
	}
}

func TestParseJSON_MKVFallbacks(t *testing.T) {
	pr, err := ParseJSON([]byte(sampleMKV))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if pr.Frames() != 300 {
		t.Errorf("Frames() = %d, want 300 from packet count", pr.Frames())
	}
	if math.Abs(pr.FPS()-29.97) > 0.01 {
		t.Errorf("FPS() = %v, want ~29.97 from r_frame_rate", pr.FPS())
	}
	if pr.Duration() != 10.01 {
		t.Errorf("Duration() = %v, want container duration", pr.Duration())
	}
}

func TestParseJSON_NoVideo(t *testing.T) {
	pr, err := ParseJSON([]byte(`{"streams":[{"index":0,"codec_type":"audio"}],"format":{"duration":"3.0"}}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if pr.Video != nil {
		t.Errorf("Video should be nil, got %+v", pr.Video)
	}
	if pr.Frames() != 0 || pr.FPS() != 0 {
		t.Errorf("Frames/FPS without video: %d/%v", pr.Frames(), pr.FPS())
	}
	if pr.Duration() != 3 {
		t.Errorf("Duration() = %v", pr.Duration())
	}
	if pr.Resolution() != "unknown" {
		t.Errorf("Resolution() = %q", pr.Resolution())
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	if _, err := ParseJSON([]byte(`{not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"24/1", 24},
		{"30000/1001", 30000.0 / 1001},
		{"25", 25},
		{"0/0", 0},
		{"", 0},
		{"abc/1", 0},
		{"1/x", 0},
	}
	for _, tt := range tests {
		if got := ParseRate(tt.in); got != tt.want {
			t.Errorf("ParseRate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestProbe_MissingFile(t *testing.T) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not on PATH")
	}
	_, err := Probe(context.Background(), "ffprobe", filepath.Join(t.TempDir(), "missing.mp4"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
