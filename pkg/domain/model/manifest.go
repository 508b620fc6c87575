package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// Dataset is one manifest entry: where to download a dataset archive from and
// where to land its contents in the raw layer.
type Dataset struct {
	URL              string `toml:"url"`
	ExtractDir       string `toml:"extract_dir"`
	OmitVerification bool   `toml:"omit_verification"`
}

// Manifest maps dataset names to their acquisition parameters
type Manifest struct {
	Datasets map[string]Dataset `toml:"datasets"`
}

// ParseManifest parses and validates a TOML manifest
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, goerr.Wrap(err, "failed to parse manifest")
	}

	if len(m.Datasets) == 0 {
		return nil, goerr.New("manifest has no datasets")
	}

	for name, ds := range m.Datasets {
		if err := ds.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid dataset in manifest", goerr.V("dataset", name))
		}
	}

	return &m, nil
}

// Validate checks that the dataset has a usable URL and extract directory
func (d Dataset) Validate() error {
	return d.Request().Validate()
}

// Request converts a dataset entry into an acquisition request
func (d Dataset) Request() *AcquisitionRequest {
	return &AcquisitionRequest{
		URL:              d.URL,
		ExtractDir:       d.ExtractDir,
		OmitVerification: d.OmitVerification,
	}
}
