package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"github.com/RaggarDK/ArcadeRaycastVehicle/logging"
	"github.com/RaggarDK/ArcadeRaycastVehicle/utils"
	"github.com/RaggarDK/ArcadeRaycastVehicle/vehicle"
)

// DefaultAntiRollForce is the axle force used when an axle omits one.
const DefaultAntiRollForce = 10000

// fileConfig is the raw shape of a config file. Sections are decoded over the demo car's values
// so a file only needs to carry what it changes.
type fileConfig struct {
	Vehicle       map[string]interface{}   `json:"vehicle"`
	WheelTemplate map[string]interface{}   `json:"wheel_template"`
	Wheels        []map[string]interface{} `json:"wheels"`
	Axles         []map[string]interface{} `json:"axles"`
	Chassis       map[string]interface{}   `json:"chassis"`
	World         map[string]interface{}   `json:"world"`
	Driver        map[string]interface{}   `json:"driver"`
}

// Read reads a config from the given file. ${VAR} references are substituted from the
// environment first.
func Read(filePath string, logger logging.Logger) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader, logger logging.Logger) (*Config, error) {
	var raw fileConfig
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "cannot parse config")
	}

	cfg := Default()
	cfg.ConfigFilePath = originalPath
	if err := raw.decodeInto(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(""); err != nil {
		return nil, err
	}
	if logger != nil {
		for _, warning := range cfg.Warnings() {
			logger.Warnw(warning, "config", originalPath)
		}
	}
	return cfg, nil
}

func (raw *fileConfig) decodeInto(cfg *Config) error {
	sections := []struct {
		name  string
		attrs map[string]interface{}
		out   interface{}
	}{
		{"vehicle", raw.Vehicle, &cfg.Vehicle},
		{"wheel_template", raw.WheelTemplate, &cfg.WheelTemplate},
		{"chassis", raw.Chassis, &cfg.Chassis},
		{"world", raw.World, &cfg.World},
		{"driver", raw.Driver, &cfg.Driver},
	}
	for _, s := range sections {
		if s.attrs == nil {
			continue
		}
		if err := decodeAttributes(s.name, s.attrs, s.out); err != nil {
			return err
		}
	}

	if raw.Wheels != nil {
		cfg.Wheels = make([]vehicle.WheelConfig, 0, len(raw.Wheels))
		for i, attrs := range raw.Wheels {
			wheel := cfg.WheelTemplate
			if err := decodeAttributes(fmt.Sprintf("wheels.%d", i), attrs, &wheel); err != nil {
				return err
			}
			cfg.Wheels = append(cfg.Wheels, wheel)
		}
	}
	if raw.Axles != nil {
		cfg.Axles = make([]vehicle.AntiRollAxle, 0, len(raw.Axles))
		for i, attrs := range raw.Axles {
			var axle struct {
				WheelA *int     `json:"wheel_a"`
				WheelB *int     `json:"wheel_b"`
				Force  *float64 `json:"force"`
			}
			path := fmt.Sprintf("axles.%d", i)
			if err := decodeAttributes(path, attrs, &axle); err != nil {
				return err
			}
			if axle.WheelA == nil {
				return utils.NewConfigValidationFieldRequiredError(path, "wheel_a")
			}
			if axle.WheelB == nil {
				return utils.NewConfigValidationFieldRequiredError(path, "wheel_b")
			}
			a := vehicle.AntiRollAxle{WheelA: *axle.WheelA, WheelB: *axle.WheelB, Force: DefaultAntiRollForce}
			if axle.Force != nil {
				a.Force = *axle.Force
			}
			cfg.Axles = append(cfg.Axles, a)
		}
	}
	return nil
}

// decodeAttributes decodes attrs over the current value of out, rejecting unknown keys.
func decodeAttributes(path string, attrs map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      out,
		ErrorUnused: true,
		ZeroFields:  true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(attrs); err != nil {
		return errors.Wrapf(err, "cannot decode %q", path)
	}
	return nil
}
