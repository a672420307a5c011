package config

// OCRProfile holds the tunable parameters for one OCR pass.
// Contrast is a percentage passed to the preprocessor (80 roughly matches a
// 1.8x enhancement, 25 a 1.25x one), SharpenSigma controls unsharp masking.
type OCRProfile struct {
	Contrast     float64 `yaml:"contrast"`
	SharpenSigma float64 `yaml:"sharpen_sigma"`
	Binarize     bool    `yaml:"binarize"`
}

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DataConfig holds paths to the reference data stores
type DataConfig struct {
	ProvinceList string `yaml:"province_list"`
	Registry     string `yaml:"registry"`
}

// ValidationConfig holds the decision thresholds
type ValidationConfig struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	FuzzyThreshold      float64 `yaml:"fuzzy_threshold"`
}

// OCRConfig holds the OCR engine settings and both parameter profiles
type OCRConfig struct {
	Language       string     `yaml:"language"`
	HighConfidence float64    `yaml:"high_confidence"`
	Aggressive     OCRProfile `yaml:"aggressive"`
	Standard       OCRProfile `yaml:"standard"`
}

// Config is the top-level application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Data       DataConfig       `yaml:"data"`
	Validation ValidationConfig `yaml:"validation"`
	OCR        OCRConfig        `yaml:"ocr"`
}

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":5000",
		},
		Data: DataConfig{
			ProvinceList: "data/province_list.txt",
			Registry:     "data/license_plate_database.csv",
		},
		Validation: ValidationConfig{
			ConfidenceThreshold: 0.2,
			FuzzyThreshold:      0.8,
		},
		OCR: OCRConfig{
			Language:       "tha",
			HighConfidence: 0.3,
			Aggressive: OCRProfile{
				Contrast:     80,
				SharpenSigma: 2.0,
				Binarize:     true,
			},
			Standard: OCRProfile{
				Contrast:     25,
				SharpenSigma: 1.0,
				Binarize:     true,
			},
		},
	}
}
