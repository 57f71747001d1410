package utils

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/picogrid/mdp-sim/pkg/logger"
	"github.com/picogrid/mdp-sim/pkg/mdp"
	"github.com/picogrid/mdp-sim/pkg/simulation"
)

// MDPFileInfo describes an MDP file found on disk
type MDPFileInfo struct {
	Path      string
	Keys      int
	Kind      simulation.Kind
	KnownKind bool
	// Missing lists required options absent for Kind; empty when KnownKind is false
	Missing   []string
}

// DiscoverMDPFiles finds every *.mdp file below root, sorted by path
func DiscoverMDPFiles(root string) ([]MDPFileInfo, error) {
	var files []MDPFileInfo

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".mdp") {
			return nil
		}

		settings, err := mdp.ReadFile(path)
		if err != nil {
			// Log error but continue scanning
			logger.Warnf("skipping %s: %v", path, err)
			return nil
		}

		info := MDPFileInfo{
			Path: path,
			Keys: settings.Len(),
		}
		if kind, ok := simulation.KindFromFileName(path); ok {
			info.Kind = kind
			info.KnownKind = true
			info.Missing = settings.Missing(kind.Required())
		}
		files = append(files, info)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan for mdp files: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
