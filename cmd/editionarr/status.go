package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/editionarr/internal/radarr"
)

func init() {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Check Radarr connectivity and library visibility",
		RunE:  runStatus,
	}
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var status *radarr.SystemStatus
	var total, onDisk int

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := a.client.SystemStatus(ctx)
		if err != nil {
			return err
		}
		status = s
		return nil
	})
	g.Go(func() error {
		movies, err := a.client.Movies(ctx)
		if err != nil {
			return err
		}
		total = len(movies)
		for i := range movies {
			if movies[i].Path == "" {
				continue
			}
			if _, err := os.Stat(movies[i].Path); err == nil {
				onDisk++
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("Server:  %s %s (%s)\n", status.AppName, status.Version, a.cfg.Radarr.URL)
	fmt.Printf("Library: %d movies, %d folders visible on disk\n", total, onDisk)
	if missing := total - onDisk; missing > 0 {
		fmt.Printf("Warning: %d movie folders not visible from here; sync would skip them\n", missing)
	}
	return nil
}
