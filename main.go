package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mordilloSan/modloader/internal/config"
	"github.com/mordilloSan/modloader/loader"
	"github.com/mordilloSan/modloader/logger"
)

// Host simulation: boot a scene, load the mod, run a few frames, change the
// scene once and unload.
//
// Usage:
//
//	./modloader --frames 5
//	./modloader --dev --log-file ./mod_log.txt
//	MODLOADER_LEVEL=info ./modloader
func main() {
	rootCmd := &cobra.Command{
		Use:          "modloader",
		Short:        "Load a mod into a simulated game scene and log its lifecycle",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}
	config.RegisterFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	logCfg, err := settings.LoggerConfig()
	if err != nil {
		return err
	}

	log := logger.Default()
	opts := []loader.Option{loader.WithName(settings.Name)}
	if settings.DevMode {
		// The loader initializes the logger itself in dev mode.
		opts = append(opts, loader.WithDevMode(logCfg))
	} else {
		log.Init(logCfg)
	}

	scene := loader.NewScene(log)
	ld := loader.New(scene, log, opts...)
	if err := ld.Load(); err != nil {
		return err
	}

	for i := 0; i < settings.Frames; i++ {
		scene.Step()
	}
	scene.ChangeScene()

	return ld.Unload()
}
