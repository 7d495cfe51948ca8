// tracker-demo drives a pkg/tracking Supervisor against a video file or
// camera device, drawing the tracked window and its PSR over the live
// feed. It owns every external collaborator the core explicitly
// excludes (spec §1): video capture, luminance conversion, overlay
// drawing, and CLI flag handling.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"os/signal"
	"syscall"

	cv "gocv.io/x/gocv"

	. "github.com/itohio/mosse/pkg/logger"
	"github.com/itohio/mosse/pkg/tracking"
	trackingconfig "github.com/itohio/mosse/pkg/tracking/config"
)

var (
	source       = flag.String("source", "0", "Video source: a camera device index or a video file path")
	windowSize   = flag.Int("window", 64, "Tracking window edge length in pixels")
	learningRate = flag.Float64("eta", 0.125, "Online update learning rate")
	psrThreshold = flag.Float64("psr", 7.0, "PSR threshold below which a tracker is considered unreliable")
	epsilon      = flag.Float64("eps", 0.00001, "Regularization added to H during training")
	desperation  = flag.Int("desperation", 10, "Consecutive low-PSR frames tolerated before eviction")
	configPath   = flag.String("config", "", "Load tracking settings from a YAML or JSON file instead of -window, -eta, -psr, -eps and the video's frame size")
	headless     = flag.Bool("headless", false, "Do not open a display window; log predictions instead")
)

func main() {
	flag.Parse()

	cap, err := openSource(*source)
	if err != nil {
		Log.Error().Err(err).Msg("tracker-demo: failed to open video source")
		os.Exit(1)
	}
	defer cap.Close()

	frameW := int(cap.Get(cv.VideoCaptureFrameWidth))
	frameH := int(cap.Get(cv.VideoCaptureFrameHeight))
	if frameW == 0 || frameH == 0 {
		Log.Error().Msg("tracker-demo: video source reported zero-sized frames")
		os.Exit(1)
	}

	settings, err := loadSettings(frameW, frameH)
	if err != nil {
		Log.Error().Err(err).Msg("tracker-demo: invalid tracking settings")
		os.Exit(1)
	}

	sup, err := tracking.NewSupervisor(settings, *desperation)
	if err != nil {
		Log.Error().Err(err).Msg("tracker-demo: failed to construct supervisor")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var win *cv.Window
	if !*headless {
		win = cv.NewWindow("tracker-demo")
		defer win.Close()
	}

	bgr := cv.NewMat()
	defer bgr.Close()
	gray := cv.NewMat()
	defer gray.Close()

	var nextID uint32
	selecting := false
	var selectOrigin image.Point

	if win != nil {
		win.SetMouseHandler(func(event, x, y, flags int) {
			switch event {
			case cv.MouseEventLeftButtonDown:
				selecting = true
				selectOrigin = image.Pt(x, y)
			case cv.MouseEventLeftButtonUp:
				if selecting {
					selecting = false
					id := nextID
					nextID++
					if err := sup.AddOrReplaceTarget(id, selectOrigin.X, selectOrigin.Y, frameFromGray(gray)); err != nil {
						Log.Warn().Err(err).Uint32("id", id).Msg("tracker-demo: failed to add target")
					}
				}
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if ok := cap.Read(&bgr); !ok || bgr.Empty() {
			Log.Info().Msg("tracker-demo: video source exhausted")
			return
		}
		if err := cv.CvtColor(bgr, &gray, cv.ColorBGRToGray); err != nil {
			Log.Warn().Err(err).Msg("tracker-demo: color conversion failed")
			continue
		}

		preds, err := sup.Track(frameFromGray(gray))
		if err != nil {
			Log.Error().Err(err).Msg("tracker-demo: track failed")
			return
		}

		for _, p := range preds {
			half := settings.WindowSize / 2
			rect := image.Rect(p.X-half, p.Y-half, p.X+half, p.Y+half)
			cv.Rectangle(&bgr, rect, color.RGBA{R: 0, G: 255, B: 0, A: 0}, 2)
			label := fmt.Sprintf("#%d psr=%.1f", p.ID, p.PSR)
			cv.PutText(&bgr, label, image.Pt(rect.Min.X, rect.Min.Y-6), cv.FontHersheyPlain, 1.2, color.RGBA{R: 0, G: 255, B: 0, A: 0}, 1)
		}

		if win != nil {
			win.IMShow(bgr)
			if win.WaitKey(1) == 27 { // Esc
				return
			}
		}
	}
}

func frameFromGray(gray cv.Mat) tracking.Frame {
	data, err := gray.DataPtrUint8()
	if err != nil {
		return tracking.Frame{}
	}
	pixels := make([]uint8, len(data))
	copy(pixels, data)
	return tracking.Frame{Width: gray.Cols(), Height: gray.Rows(), Pixels: pixels}
}

func loadSettings(frameW, frameH int) (tracking.Settings, error) {
	if *configPath != "" {
		return trackingconfig.Load(*configPath)
	}
	return tracking.NewSettings(frameW, frameH, *windowSize, float32(*learningRate), float32(*psrThreshold), float32(*epsilon))
}

func openSource(source string) (*cv.VideoCapture, error) {
	if id, ok := deviceID(source); ok {
		return cv.VideoCaptureDevice(id)
	}
	return cv.VideoCaptureFile(source)
}

func deviceID(s string) (int, bool) {
	if len(s) == 0 {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id := 0
	for _, r := range s {
		id = id*10 + int(r-'0')
	}
	return id, true
}
