package main

import (
	"FractalRasterizer/coordinator"
	"FractalRasterizer/misc"
	"FractalRasterizer/rpc"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"github.com/BrugadaSyndrome/bslogger"
	"github.com/BrugadaSyndrome/multirpc"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"
)

var (
	mode         string
	outputFile   string
	serverURL    string
	settingsFile string
)

func parseArguments() {
	flag.StringVar(&mode, "mode", "render", "One of render, transition, serve or fetch")
	flag.StringVar(&outputFile, "output", "fractal.png", "Image file written by render and fetch")
	flag.StringVar(&serverURL, "server", "ws://localhost:51000/ws", "Server used by fetch, a websocket url or tcp://host:port")
	flag.StringVar(&settingsFile, "settings", "", "Json file with run settings")
	flag.Parse()
}

func main() {
	parseArguments()
	logger := bslogger.NewLogger("Main", bslogger.Normal, nil)

	s, err := newSettings(settingsFile)
	misc.CheckError(err, &logger, misc.Fatal)

	switch mode {
	case "render":
		err = renderFrame(s, &logger)
	case "transition":
		err = renderTransitions(s, &logger)
	case "serve":
		err = serve(s, &logger)
	case "fetch":
		err = fetch(s, &logger)
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}
	misc.CheckError(err, &logger, misc.Fatal)
}

func runPath(s settings) (string, error) {
	path := filepath.Join(s.SavePath, s.RunName)
	return path, misc.EnsureDirectory(path)
}

func renderFrame(s settings, logger *bslogger.Logger) error {
	path, err := runPath(s)
	if err != nil {
		return err
	}

	c := coordinator.NewCoordinator(s.CoordinatorSettings)
	startTime := time.Now()
	c.Render()
	logger.Infof("Rendered %s in %s", s.CoordinatorSettings.Fractal, time.Since(startTime))

	return saveFrame(c.Frame(), filepath.Join(path, outputFile), s.Thumbnail, logger)
}

func renderTransitions(s settings, logger *bslogger.Logger) error {
	path, err := runPath(s)
	if err != nil {
		return err
	}

	// Copy the settings to the directory so the run can be duplicated in the future
	bytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if _, err := misc.WriteFile(filepath.Join(path, "settings.json"), bytes); err != nil {
		return err
	}

	c := coordinator.NewCoordinator(s.CoordinatorSettings)
	imageNumber := 1
	startTime := time.Now()
	for i := range s.TransitionSettings {
		transition := s.TransitionSettings[i]
		for frame := uint(1); frame <= transition.FrameCount; frame++ {
			view := transition.view(frame)
			c.SetView(view.CenterX, view.CenterY, view.Zoom)
			c.Render()

			name := filepath.Join(path, fmt.Sprintf("%d.jpg", imageNumber))
			if err := saveFrame(c.Frame(), name, 0, logger); err != nil {
				return err
			}
			imageNumber++
		}
	}
	logger.Infof("Done rendering %d images in %s", imageNumber-1, time.Since(startTime))
	return nil
}

// serve exposes one coordinator over websocket at ServerAddress and over net/rpc at TcpAddress.
func serve(s settings, logger *bslogger.Logger) error {
	c := coordinator.NewCoordinator(s.CoordinatorSettings)
	server := rpc.NewServer(c, s.ServerAddress, "FractalServer")
	if err := server.Run(); err != nil {
		return err
	}
	tcpServer := multirpc.NewTcpServer(rpc.NewCoordinatorService(c), s.TcpAddress, "FractalTcpServer")
	if err := tcpServer.Run(); err != nil {
		misc.CheckError(server.Stop(), logger, misc.Warning)
		return err
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
	logger.Info("Shutting down")
	misc.CheckError(tcpServer.Stop(), logger, misc.Warning)
	return server.Stop()
}

// fetch pushes the configured view to a running server, renders remotely and saves the result.
func fetch(s settings, logger *bslogger.Logger) error {
	path, err := runPath(s)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := rpc.NewHost(serverURL, "FractalClient")
	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer client.Disconnect()

	cs := s.CoordinatorSettings
	if err := client.SelectFractal(ctx, int(cs.Variant())); err != nil {
		return err
	}
	if err := client.SetView(ctx, cs.CenterX, cs.CenterY, cs.Zoom); err != nil {
		return err
	}
	if err := client.SetQuality(ctx, cs.HighQuality); err != nil {
		return err
	}
	if err := client.SetRotation(ctx, cs.Rotation()); err != nil {
		return err
	}
	if err := client.SetParameter(ctx, cs.Parameter()); err != nil {
		return err
	}
	frame, err := client.Render(ctx)
	if err != nil {
		return err
	}
	logger.Infof("Fetched %dx%d frame %d from %s", frame.Width, frame.Height, frame.Render, serverURL)

	return saveFrame(frame, filepath.Join(path, outputFile), s.Thumbnail, logger)
}

// saveFrame writes the frame as png or jpeg depending on the file extension, plus a scaled copy
// next to it when thumbnail is positive.
func saveFrame(frame coordinator.Frame, name string, thumbnail int, logger *bslogger.Logger) error {
	if err := saveImage(frame.RGBA(), name); err != nil {
		return err
	}
	logger.Infof("Saved image to %s", name)

	if thumbnail > 0 {
		ext := filepath.Ext(name)
		thumbName := strings.TrimSuffix(name, ext) + "_thumb" + ext
		if err := saveImage(frame.Thumbnail(thumbnail), thumbName); err != nil {
			return err
		}
		logger.Infof("Saved thumbnail to %s", thumbName)
	}
	return nil
}

func saveImage(img image.Image, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("unable to create image %s - %s", name, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("unable to save image %s - %s", name, err)
	}
	return f.Close()
}
