package main

import (
	"encoding/json"
	"flag"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"transcript-ocr/src/pkg/config"
	echomw "transcript-ocr/src/pkg/echo-middleware"
	"transcript-ocr/src/pkg/intake"
	"transcript-ocr/src/pkg/ocr"
)

/*
main starts the HTTP intake for transcripts.

	curl -H "Authorization: Bearer $TRANSCRIPT_INTAKE_BEARER_TOKEN" \
	     -F file=@transcript.pdf -o result.xlsx http://127.0.0.1:8401/transcripts
*/
func main() {
	config.CheckIfEnvVarsPresent(echomw.EnvIntakeBearerToken)

	// Common flags.
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")

	flag.Parse()
	config.InitializeConfig(*configPath)

	var serverConfig *echomw.Config
	if len(config.Cfg.Server) > 0 {
		serverConfig = &echomw.Config{}
		xerr.QuitIfError(json.Unmarshal(config.Cfg.Server, serverConfig), "parse 'server' config section")
	}
	echomw.InitializeConfig(serverConfig)

	server := intake.NewServer(&intake.Handler{
		Source:         ocr.Rasterizer{DPI: config.Cfg.DPI},
		Recognizer:     ocr.TesseractRecognizer{Settings: ocr.TesseractSettings{Language: config.Cfg.Language}},
		MaxUploadBytes: echomw.Cfg.MaxUploadBytes,
	})

	address := echomw.Cfg.ListenAddress()
	tl.Log(tl.Notice, palette.BlueBold, "%s transcript intake on '%s'", "Starting", address)

	xerr.QuitIfError(server.Start(address), "start transcript intake server")
}
