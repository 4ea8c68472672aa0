package server

import (
	"fmt"
	"image"
	"image/color"
	"net/http"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
)

// PreviewHandler serves the camera feed as an MJPEG stream with a status
// HUD: the current finger count in the top bar and the remaining cooldown.
type PreviewHandler struct {
	camera capture.Camera
	status Status
}

// NewPreviewHandler creates a PreviewHandler. A nil status disables the HUD.
func NewPreviewHandler(camera capture.Camera, status Status) *PreviewHandler {
	return &PreviewHandler{camera: camera, status: status}
}

// ServeHTTP streams multipart JPEG frames until the client disconnects.
func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	ticker := time.NewTicker(100 * time.Millisecond) // 10 FPS preview
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			frame, err := h.camera.ReadFrame()
			if err != nil {
				continue
			}

			h.drawHUD(frame)

			buf, err := gocv.IMEncode(".jpg", *frame)
			frame.Close()
			if err != nil {
				continue
			}

			fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(buf.GetBytes()))
			w.Write(buf.GetBytes())
			fmt.Fprint(w, "\r\n")
			buf.Close()
			flusher.Flush()
		}
	}
}

// drawHUD overlays the status bar on the frame.
func (h *PreviewHandler) drawHUD(frame *gocv.Mat) {
	if h.status == nil {
		return
	}

	width := frame.Cols()
	black := color.RGBA{}
	white := color.RGBA{R: 255, G: 255, B: 255}
	gray := color.RGBA{R: 200, G: 200, B: 200}

	gocv.Rectangle(frame, image.Rect(0, 0, width, 30), black, -1)

	text := "No hand"
	if count, ok := h.status.LastCount(); ok {
		text = fmt.Sprintf("Fingers: %d", count)
	}
	gocv.PutText(frame, text, image.Pt(8, 20), gocv.FontHersheySimplex, 0.6, white, 2)

	cooldown := fmt.Sprintf("Cooldown: %.1fs", h.status.CooldownRemaining().Seconds())
	gocv.PutText(frame, cooldown, image.Pt(width-200, 20), gocv.FontHersheySimplex, 0.5, gray, 1)
}
