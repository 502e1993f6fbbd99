package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

type Config struct {
	OutputDir       string  `json:"output_dir,omitempty"`
	Language        string  `json:"language,omitempty"`
	DPI             float64 `json:"dpi,omitempty"`
	SaveOcrText     bool    `json:"save_ocr_text,omitempty"`
	SaveDebugImages bool    `json:"save_debug_images,omitempty"`

	// Raw sections handed to other packages (echo-middleware etc.)
	Server json.RawMessage `json:"server,omitempty"`
}

func DefaultValueConfig() Config {
	return Config{
		OutputDir: "results",
		Language:  "eng",
		DPI:       200,
	}
}

// create config with default values before config gets initialized
var Cfg Config = DefaultValueConfig()

func GetPackageName() string {
	return "transcript-ocr"
}

/*
InitializeConfig reads the JSON config file at configPath and merges it over
the defaults. A missing file is not an error: the defaults are kept.

Any other failure (unreadable file, invalid JSON) stops the program.
*/
func InitializeConfig(configPath string) {
	localConfig, e := LoadConfig(configPath)
	e.QuitIf(xerr.ErrorTypeError)

	if localConfig == nil {
		tl.Log(tl.Info, palette.Purple, "%s config is %s at '%s', keeping %s", GetPackageName(), "not provided", configPath, "default config")
		Cfg = DefaultValueConfig()
		return
	}

	Cfg = MergeWithDefaults(*localConfig)

	tl.Log(tl.Info, palette.Green, "%s config was %s, using %s", GetPackageName(), "provided", configPath)
	tl.LogJSON(tl.Verbose, palette.CyanDim, fmt.Sprintf("%s configuration", GetPackageName()), Cfg)
}

/*
LoadConfig reads and decodes configPath. It returns a nil config (and no
error) when the file does not exist.
*/
func LoadConfig(configPath string) (localConfig *Config, e *xerr.Error) {
	trimmedPath := strings.TrimSpace(configPath)
	if trimmedPath == "" {
		return nil, nil
	}

	fileBytes, readErr := os.ReadFile(trimmedPath)
	if errors.Is(readErr, fs.ErrNotExist) {
		return nil, nil
	}
	if readErr != nil {
		e = xerr.NewError(readErr, "read config file", trimmedPath)
		return nil, e
	}

	localConfig = &Config{}
	parseErr := json.Unmarshal(fileBytes, localConfig)
	if parseErr != nil {
		e = xerr.NewError(parseErr, "parse config file JSON", trimmedPath)
		return nil, e
	}

	return localConfig, nil
}

// MergeWithDefaults replaces every zero-valued field of localConfig with its default.
func MergeWithDefaults(localConfig Config) (merged Config) {
	merged = localConfig
	tl.ApplyDefaults(&merged, DefaultValueConfig(), func(field string, defVal any) {
		tl.Log(
			tl.Info, palette.Purple,
			"%s field is %s in %s configuration. Using default value: %v",
			field, "missing", GetPackageName(), tl.PrettyForStderr(defVal),
		)
	})
	return merged
}

/*
CheckIfEnvVarsPresent loads a .env file from the working directory when there
is one, then exits if any of the given variables is unset or empty.
*/
func CheckIfEnvVarsPresent(names ...string) {
	loadErr := godotenv.Load()
	if loadErr != nil && !errors.Is(loadErr, fs.ErrNotExist) {
		tl.Log(tl.Warning, palette.PurpleBright, "Unable to load %s file: '%s'", ".env", loadErr)
	}

	missing := MissingEnvVars(names...)
	for _, name := range missing {
		tl.Log(tl.Warning, palette.YellowBold, "%s environment variable is %s", name, "required")
	}
	if len(missing) > 0 {
		os.Exit(1)
	}
}

func MissingEnvVars(names ...string) (missing []string) {
	for _, name := range names {
		if strings.TrimSpace(os.Getenv(name)) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
