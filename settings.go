package main

import (
	"FractalRasterizer/coordinator"
	"FractalRasterizer/misc"
	"encoding/json"
	"fmt"
	"github.com/BrugadaSyndrome/bslogger"
	"os"
	"time"
)

type settings struct {
	logger bslogger.Logger

	CoordinatorSettings coordinator.Settings
	RunName             string
	SavePath            string
	ServerAddress       string
	TcpAddress          string
	Thumbnail           int
	TransitionSettings  []transitionSettings
}

// newSettings reads settingsFile, or starts from defaults when no file is given.
func newSettings(settingsFile string) (settings, error) {
	s := settings{
		CoordinatorSettings: coordinator.DefaultSettings(),
	}
	if settingsFile != "" {
		fileBytes, err := misc.ReadFile(settingsFile)
		if err != nil {
			return s, err
		}
		if err := json.Unmarshal(fileBytes, &s); err != nil {
			return s, fmt.Errorf("unable to parse %s - %s", settingsFile, err)
		}
	}
	if err := s.Verify(); err != nil {
		return s, err
	}
	s.logger.Debug(s.String())
	return s, nil
}

func (s *settings) String() string {
	output := "\nRun settings\n"
	output += fmt.Sprintf("Run Name: %s\n", s.RunName)
	output += fmt.Sprintf("Save Path: %s\n", s.SavePath)
	output += fmt.Sprintf("Server Address: %s\n", s.ServerAddress)
	output += fmt.Sprintf("Tcp Address: %s\n", s.TcpAddress)
	output += fmt.Sprintf("Thumbnail: %d\n", s.Thumbnail)
	output += fmt.Sprintf("Transitions: %d\n", len(s.TransitionSettings))
	output += s.CoordinatorSettings.String()
	return output
}

func (s *settings) Verify() error {
	s.logger = bslogger.NewLogger("RunSettings", bslogger.Normal, nil)

	if err := s.CoordinatorSettings.Verify(); err != nil {
		return err
	}
	if s.RunName == "" {
		s.RunName = "run_" + time.Now().Format("2006_01_02-03_04_05")
	}
	if s.SavePath == "" {
		s.SavePath, _ = os.Getwd()
	}
	if s.ServerAddress == "" || s.TcpAddress == "" {
		address, err := misc.GetLocalAddress()
		if misc.CheckError(err, &s.logger, misc.Warning) {
			address = "localhost"
		}
		if s.ServerAddress == "" {
			s.ServerAddress = fmt.Sprintf("%s:%s", address, "51000")
		}
		if s.TcpAddress == "" {
			s.TcpAddress = fmt.Sprintf("%s:%s", address, "51001")
		}
	}
	if s.Thumbnail < 0 {
		s.Thumbnail = 0
	}
	if len(s.TransitionSettings) == 0 {
		s.TransitionSettings = []transitionSettings{
			{
				EndX:               s.CoordinatorSettings.CenterX,
				EndY:               s.CoordinatorSettings.CenterY,
				MagnificationStart: s.CoordinatorSettings.Zoom,
				MagnificationEnd:   s.CoordinatorSettings.Zoom * 8,
				MagnificationStep:  1.1,
				StartX:             s.CoordinatorSettings.CenterX,
				StartY:             s.CoordinatorSettings.CenterY,
			},
		}
	}

	// Verify each of the transition settings objects
	for i := range s.TransitionSettings {
		misc.CheckError(s.TransitionSettings[i].Verify(), &s.logger, misc.Warning)
	}

	return nil
}
