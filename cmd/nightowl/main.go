// nightowl - A wallpaper driven desktop theme generator
//
// nightowl extracts a palette from a wallpaper, maps it onto theme roles and
// renders configuration files for alacritty, hyprland, waybar and friends.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/nightowl/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
