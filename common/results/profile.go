package results

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	PlaceholderPrefix   = "{prefix}"
	PlaceholderEpisodes = "{episodes}"
	PlaceholderAgent    = "{agent}"
	PlaceholderSeed     = "{seed}"
)

// Profile names result files and the series read from them.
type Profile struct {
	Prefix          string `yaml:"prefix"`
	VanillaSurvival string `yaml:"vanilla_survival"`
	AgentSurvival   string `yaml:"agent_survival"`
	RandTraining    string `yaml:"rand_training"`
	NoRandTraining  string `yaml:"norand_training"`

	VanillaLabel string `yaml:"vanilla_label"`
	RandLabel    string `yaml:"rand_label"`
	NoRandLabel  string `yaml:"norand_label"`

	// Names used in the printed summary. Empty names fall back to the labels.
	VanillaSummary string `yaml:"vanilla_summary"`
	RandSummary    string `yaml:"rand_summary"`
	NoRandSummary  string `yaml:"norand_summary"`
}

// DefaultProfile matches the files written by the ARS training and evaluation scripts.
func DefaultProfile() Profile {
	return Profile{
		Prefix:          "spot_ars_",
		VanillaSurvival: "{prefix}vanilla_survival_{episodes}",
		AgentSurvival:   "{prefix}agent_{agent}_survival_{episodes}",
		RandTraining:    "{prefix}rand_seed{seed}.npy",
		NoRandTraining:  "{prefix}norand_seed{seed}.npy",
		VanillaLabel:    "Vanilla",
		RandLabel:       "GMBC Rand",
		NoRandLabel:     "GMBC NoRand",
		VanillaSummary:  "Vanilla",
		RandSummary:     "RANDOM",
		NoRandSummary:   "NOT RANDOM",
	}
}

// LoadProfile overlays the YAML file at path on the default profile.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()
	data, err := os.ReadFile(path)
	if err != nil {
		return profile, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&profile); err != nil {
		return profile, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return profile, profile.Validate()
}

// Validate checks that every template is set.
func (p Profile) Validate() error {
	templates := map[string]string{
		"vanilla_survival": p.VanillaSurvival,
		"agent_survival":   p.AgentSurvival,
		"rand_training":    p.RandTraining,
		"norand_training":  p.NoRandTraining,
	}
	for name, tmpl := range templates {
		if strings.TrimSpace(tmpl) == "" {
			return fmt.Errorf("profile template %s is empty", name)
		}
	}
	return nil
}

// SummaryName returns the summary name of a series, or its label when unset.
func SummaryName(summary string, label string) string {
	if summary == "" {
		return label
	}
	return summary
}

// Locator resolves result file names under a results directory.
type Locator struct {
	Dir     string
	Profile Profile
}

func NewLocator(dir string, profile Profile) *Locator {
	return &Locator{Dir: dir, Profile: profile}
}

func (l *Locator) VanillaSurvival(episodes int64) string {
	return l.Name(l.Profile.VanillaSurvival, episodes, 0, 0)
}

func (l *Locator) AgentSurvival(agent int64, episodes int64) string {
	return l.Name(l.Profile.AgentSurvival, episodes, agent, 0)
}

func (l *Locator) RandTraining(seed int64) string {
	return l.Name(l.Profile.RandTraining, 0, 0, seed)
}

func (l *Locator) NoRandTraining(seed int64) string {
	return l.Name(l.Profile.NoRandTraining, 0, 0, seed)
}

// Name expands a template to a file name relative to the results directory.
func (l *Locator) Name(tmpl string, episodes, agent, seed int64) string {
	return strings.NewReplacer(
		PlaceholderPrefix, l.Profile.Prefix,
		PlaceholderEpisodes, strconv.FormatInt(episodes, 10),
		PlaceholderAgent, strconv.FormatInt(agent, 10),
		PlaceholderSeed, strconv.FormatInt(seed, 10),
	).Replace(tmpl)
}

// Path joins a name produced by Name with the results directory.
func (l *Locator) Path(name string) string {
	return filepath.Join(l.Dir, name)
}
