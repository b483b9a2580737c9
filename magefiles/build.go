//go:build mage

package main

import (
	"context"
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/spectrum"
)

type Build mg.Namespace

// SpectrumTable regenerates sRGBSpectrumTable.dat from scratch and writes it
// to the default scene config's persistence path - the offline step
// engine.Engine's file watcher expects to observe.
func (Build) SpectrumTable() error {
	cfg := core.DefaultSceneConfig()
	fmt.Printf("Fitting spectrum table (resolution=%d)...\n", cfg.SpectrumTableResolution)

	table, err := spectrum.BuildTable(context.Background(), cfg.SpectrumTableResolution)
	if err != nil {
		return err
	}
	if err := table.Save(cfg.SpectrumTablePath); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", cfg.SpectrumTablePath)
	return nil
}
