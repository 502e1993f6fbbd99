package util

import (
	"encoding/json"
	"os"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
EnsureOutputDirectory creates the target directory (and parents) if needed.

It uses os.MkdirAll, so calling it on an existing directory is a no-op.
Returns a *xerr.Error if creation fails.
*/
func EnsureOutputDirectory(outputDirPath string) (e *xerr.Error) {
	err := os.MkdirAll(outputDirPath, 0o755)
	if err != nil {
		e = xerr.NewError(err, "create output directory", outputDirPath)
		return e
	}

	tl.Log(
		tl.Info1, palette.Blue, "Ensured output directory '%s'",
		outputDirPath,
	)

	return e
}

/*
FileExists reports whether path names an existing file or directory.
Permission errors count as existing; the later open will report them.
*/
func FileExists(path string) bool {
	_, statErr := os.Stat(path)
	return statErr == nil || !os.IsNotExist(statErr)
}

/*
SaveTextToFile writes text into a file at the given path.

It overwrites any existing file at that location. If writing fails, it
returns a *xerr.Error.
*/
func SaveTextToFile(destinationPath string, text string) (e *xerr.Error) {
	writeErr := os.WriteFile(destinationPath, []byte(text), 0o644)
	if writeErr != nil {
		e = xerr.NewError(writeErr, "write text file", destinationPath)
		return e
	}

	tl.Log(
		tl.Info1, palette.Green, "Saved text to '%s'",
		destinationPath,
	)

	return e
}

/*
SaveJSONToFile marshals the given value to pretty-printed JSON and writes it
to a .json file at the given path.

It overwrites any existing file at that location. If marshalling or writing
fails, it returns a *xerr.Error.
*/
func SaveJSONToFile(destinationPath string, value any) (e *xerr.Error) {
	jsonBytes, marshalErr := json.MarshalIndent(value, "", "  ")
	if marshalErr != nil {
		e = xerr.NewError(marshalErr, "marshal value to JSON", destinationPath)
		return e
	}

	writeErr := os.WriteFile(destinationPath, jsonBytes, 0o644)
	if writeErr != nil {
		e = xerr.NewError(writeErr, "write JSON file", destinationPath)
		return e
	}

	tl.Log(
		tl.Info1, palette.Green, "Saved JSON data to '%s'",
		destinationPath,
	)

	return e
}
