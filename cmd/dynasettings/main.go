package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/okatkov/dynasettings/internal/logging"
	"github.com/okatkov/dynasettings/settings"
)

func main() {
	app := kingpin.New("dynasettings", "Inspect effective client settings and probe AWS session construction")
	configFile := app.Flag("config", "Path to a YAML override settings file").String()
	probeSession := app.Flag("probe-session", "Construct an AWS session and report the resolved region").Bool()
	verbose := app.Flag("verbose", "Enable debug logging").Short('v').Bool()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := logging.NewConsole(*verbose)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	opts := []settings.Option{settings.WithLogger(logger)}
	if *configFile != "" {
		opts = append(opts, settings.WithPath(*configFile))
	}

	s, err := settings.New(opts...)
	if err != nil {
		logger.Fatal("failed to load settings", zap.Error(err))
	}

	rendered, err := renderEffective(s)
	if err != nil {
		logger.Fatal("failed to render settings", zap.Error(err))
	}
	fmt.Print(rendered)

	if *probeSession {
		ctx, cancel := context.WithTimeout(context.Background(), s.ConnectTimeout())
		defer cancel()

		sess, err := s.NewSession(ctx)
		if err != nil {
			logger.Fatal("failed to construct session", zap.Error(err))
		}
		logger.Info("session constructed", zap.String("region", sess.Region()))
	}
}

// renderEffective marshals the effective value of every recognized setting key
// as a YAML document.
func renderEffective(s *settings.Settings) (string, error) {
	keys := settings.Keys()
	effective := make(map[string]any, len(keys))
	for _, key := range keys {
		effective[key] = s.Get(key)
	}

	data, err := yaml.Marshal(effective)
	if err != nil {
		return "", fmt.Errorf("marshal effective settings: %w", err)
	}
	return string(data), nil
}
