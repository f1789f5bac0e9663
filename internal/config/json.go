// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	FAPI struct {
		PublishableKey string   `json:"publishable_key"`
		ProxyURL       string   `json:"proxy_url"`
		Domain         string   `json:"domain"`
		Kind           string   `json:"kind"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"fapi,omitempty"`

	Storage struct {
		Kind       string `json:"kind"`
		DSN        string `json:"dsn"`
		Prefix     string `json:"prefix"`
		Passphrase string `json:"passphrase"`
	} `json:"storage,omitempty"`

	Workers struct {
		PollInterval Duration `json:"poll_interval"`
	} `json:"workers,omitempty"`

	Log struct {
		File  string `json:"file"`
		Debug bool   `json:"debug"`
	} `json:"log,omitempty"`

	Dev bool `json:"dev"`
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
		FAPI: FAPI{
			PublishableKey: jsonCfg.FAPI.PublishableKey,
			ProxyURL:       jsonCfg.FAPI.ProxyURL,
			Domain:         jsonCfg.FAPI.Domain,
			Kind:           jsonCfg.FAPI.Kind,
			RequestTimeout: time.Duration(jsonCfg.FAPI.RequestTimeout),
		},
		Storage: Storage{
			Kind:       jsonCfg.Storage.Kind,
			DSN:        jsonCfg.Storage.DSN,
			Prefix:     jsonCfg.Storage.Prefix,
			Passphrase: jsonCfg.Storage.Passphrase,
		},
		Workers: Workers{
			PollInterval: time.Duration(jsonCfg.Workers.PollInterval),
		},
		Log: Log{
			File:  jsonCfg.Log.File,
			Debug: jsonCfg.Log.Debug,
		},
		Dev: jsonCfg.Dev,
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
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
