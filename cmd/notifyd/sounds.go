package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notifyd/notifyd/internal/audio"
	"github.com/notifyd/notifyd/internal/sounds"
)

var soundsFlags struct {
	play   string
	volume float64
	asJSON bool
}

var soundsCmd = &cobra.Command{
	Use:   "sounds",
	Short: "List available notification sounds, optionally playing one",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if soundsFlags.volume < 0.0 || soundsFlags.volume > 1.0 {
			return fmt.Errorf("volume must be between 0.0 and 1.0 (got %.2f)", soundsFlags.volume)
		}

		available := sounds.Discover(sounds.DiscoverOptions{
			SoundDir:      cfg.Notifications.Desktop.SoundDir,
			IncludeCustom: true,
			IncludeSystem: true,
		})

		if soundsFlags.play != "" {
			return playSound(soundsFlags.play, available)
		}

		if soundsFlags.asJSON {
			if available == nil {
				available = []sounds.SoundInfo{}
			}
			data, err := json.MarshalIndent(available, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		printGrouped(available)
		return nil
	},
}

func playSound(name string, available []sounds.SoundInfo) error {
	s, found := sounds.FindByName(name, available)
	if !found {
		return fmt.Errorf("sound %q not found (run without --play to list)", name)
	}

	fmt.Printf("Playing: %s (volume: %d%%)\n", s.Name, int(soundsFlags.volume*100))

	player, err := audio.NewPlayer("", soundsFlags.volume)
	if err != nil {
		return fmt.Errorf("failed to create audio player: %w", err)
	}
	defer player.Close()

	if err := player.Play(s.Path); err != nil {
		return fmt.Errorf("failed to play sound: %w", err)
	}
	return nil
}

func printGrouped(available []sounds.SoundInfo) {
	if len(available) == 0 {
		fmt.Println("No sounds found.")
		return
	}

	var custom, system []sounds.SoundInfo
	for _, s := range available {
		switch s.Source {
		case "custom":
			custom = append(custom, s)
		case "system":
			system = append(system, s)
		}
	}

	if len(custom) > 0 {
		fmt.Println("Custom sounds:")
		for _, s := range custom {
			fmt.Printf("  %s.%s\n", s.Name, s.Format)
		}
	}
	if len(system) > 0 {
		if len(custom) > 0 {
			fmt.Println()
		}
		fmt.Println("System sounds:")
		for _, s := range system {
			desc := ""
			if s.Description != "" {
				desc = " - " + s.Description
			}
			fmt.Printf("  %s.%s%s\n", s.Name, s.Format, desc)
		}
	}

	fmt.Println()
	fmt.Println("Preview a sound with: notifyd sounds --play <name>")
}

func init() {
	soundsCmd.Flags().StringVar(&soundsFlags.play, "play", "", "play a sound by name")
	soundsCmd.Flags().Float64Var(&soundsFlags.volume, "volume", 0.3, "playback volume (0.0 to 1.0)")
	soundsCmd.Flags().BoolVar(&soundsFlags.asJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(soundsCmd)
}
