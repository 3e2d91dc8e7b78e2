package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON config files.
// Command and inputs are only taken from the command line.
type StructuredJSONConfig struct {
	Log struct {
		Level string `json:"level"`
		File  string `json:"file"`
	} `json:"log,omitempty"`

	Output struct {
		Mode       string `json:"mode"`
		Copy       bool   `json:"copy"`
		QRFile     string `json:"qr_file"`
		QRSize     int    `json:"qr_size"`
		PerPayload int    `json:"per_payload"`
	} `json:"output,omitempty"`

	Scanner struct {
		Workers int      `json:"workers"`
		Timeout Duration `json:"timeout"`
	} `json:"scanner,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Log: Log{
			Level: jsonCfg.Log.Level,
			File:  jsonCfg.Log.File,
		},
		Output: Output{
			Mode:       jsonCfg.Output.Mode,
			Copy:       jsonCfg.Output.Copy,
			QRFile:     jsonCfg.Output.QRFile,
			QRSize:     jsonCfg.Output.QRSize,
			PerPayload: jsonCfg.Output.PerPayload,
		},
		Scanner: Scanner{
			Workers: jsonCfg.Scanner.Workers,
			Timeout: time.Duration(jsonCfg.Scanner.Timeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
