package devhost

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// knownApp is a well-known sim racing tool and where it installs itself,
// relative to a search root.
type knownApp struct {
	name     string
	patterns []string
}

var knownApps = []knownApp{
	{"SimHub", []string{"**/SimHub/SimHub.exe"}},
	{"CrewChief", []string{"**/CrewChiefV4/CrewChiefV4.exe", "**/CrewChief/CrewChiefV4.exe"}},
	{"JoyToKey", []string{"**/JoyToKey/JoyToKey.exe"}},
	{"TrackIR", []string{"**/NaturalPoint/TrackIR 5/TrackIR5.exe", "**/NaturalPoint/SmartNav3/TrackIR.exe"}},
	{"VoiceAttack", []string{"**/VoiceAttack/VoiceAttack.exe"}},
	{"MoTeC i2", []string{"**/MoTeC/i2 Pro/I2Pro.exe"}},
	{"RaceLab Apps", []string{"**/RaceLabApps/RaceLabApps.exe"}},
	{"Sim Commander", []string{"**/Next Level Racing/Sim Commander 4/Sim Commander 4.exe"}},
	{"Fanatec Control Panel", []string{"**/Fanatec/Fanatec Software/FanatecApp.exe", "**/Fanatec/FanatecApp.exe"}},
	{"OBS Studio", []string{"**/obs-studio/bin/64bit/obs64.exe"}},
	{"Logitech G HUB", []string{"**/LGHUB/lghub.exe"}},
	{"RTSS (RivaTuner Statistics Server)", []string{"**/RivaTuner Statistics Server/RTSS.exe"}},
	{"Helicorsa", []string{"**/Helicorsa/Helicorsa.exe"}},
	{"Sim Dashboard Server", []string{"**/Sim Dashboard Server/Sim Dashboard Server.exe"}},
	{"Garage 61", []string{"**/Garage61/garage61.exe"}},
	{"Pitskill", []string{"**/Pitskill/Pitskill.exe"}},
	{"SRS (Simulated Racing System)", []string{"**/SRS/SRS.exe"}},
}

// Scanner looks for installed tools under a set of directories.
type Scanner struct {
	roots  []string
	logger *zap.Logger
}

// NewScanner creates a scanner. Environment references in roots are
// expanded.
func NewScanner(roots []string, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	expanded := make([]string, 0, len(roots))
	for _, r := range roots {
		if r = os.ExpandEnv(r); r != "" {
			expanded = append(expanded, r)
		}
	}
	return &Scanner{roots: expanded, logger: logger}
}

// CommonApps returns each known tool found, at most once, in table order.
// Roots are searched in order and the first match wins.
func (s *Scanner) CommonApps() []types.CommonApp {
	found := []types.CommonApp{}
	for _, known := range knownApps {
		if path, ok := s.locate(known); ok {
			found = append(found, types.CommonApp{Name: known.name, ExecutablePath: path})
		}
	}
	return found
}

func (s *Scanner) locate(known knownApp) (string, bool) {
	for _, root := range s.roots {
		fsys := os.DirFS(root)
		for _, pattern := range known.patterns {
			matches, err := doublestar.Glob(fsys, pattern,
				doublestar.WithCaseInsensitive(),
				doublestar.WithFilesOnly(),
			)
			if err != nil {
				s.logger.Debug("scan failed",
					zap.String("root", root),
					zap.String("pattern", pattern),
					zap.Error(err),
				)
				continue
			}
			if len(matches) == 0 {
				continue
			}
			sort.Strings(matches)
			return filepath.Join(root, filepath.FromSlash(matches[0])), true
		}
	}
	return "", false
}
