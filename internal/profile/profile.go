// Package profile loads the built-in notification profiles.
package profile

import (
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/dshills/envnotify/internal/broadcast"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Environment is the profile sent by the envnotify command.
const Environment = "environment"

// Profile describes one notification in symbolic form.
type Profile struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Target      string   `yaml:"target"`
	Message     string   `yaml:"message"`
	Param       string   `yaml:"param"`
	Flags       []string `yaml:"flags"`
	TimeoutMS   int      `yaml:"timeout_ms"`
}

var targets = map[string]uintptr{
	"broadcast": broadcast.HWNDBroadcast,
}

var messages = map[string]uintptr{
	"WM_SETTINGCHANGE": broadcast.WMSettingChange,
}

var flags = map[string]uint32{
	"normal":                 broadcast.SMTONormal,
	"block":                  broadcast.SMTOBlock,
	"abort_if_hung":          broadcast.SMTOAbortIfHung,
	"no_timeout_if_not_hung": broadcast.SMTONoTimeoutIfNotHung,
	"error_on_exit":          broadcast.SMTOErrorOnExit,
}

// LoadBuiltin loads a built-in profile by name.
func LoadBuiltin(name string) (*Profile, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: unknown profile %q: %w", name, err)
	}
	return parse(name, data)
}

func parse(name string, data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: parse %q: %w", name, err)
	}
	return &p, nil
}

// BroadcastMessage resolves the symbolic names in p.
func (p *Profile) BroadcastMessage() (broadcast.Message, error) {
	target, ok := targets[p.Target]
	if !ok {
		return broadcast.Message{}, fmt.Errorf("profile %q: unknown target %q", p.Name, p.Target)
	}
	msg, ok := messages[strings.ToUpper(p.Message)]
	if !ok {
		return broadcast.Message{}, fmt.Errorf("profile %q: unknown message %q", p.Name, p.Message)
	}

	var mask uint32
	for _, f := range p.Flags {
		v, ok := flags[strings.ToLower(f)]
		if !ok {
			return broadcast.Message{}, fmt.Errorf("profile %q: unknown flag %q", p.Name, f)
		}
		mask |= v
	}

	m := broadcast.Message{
		Target:  target,
		Msg:     msg,
		Param:   p.Param,
		Flags:   mask,
		Timeout: time.Duration(p.TimeoutMS) * time.Millisecond,
	}
	if err := m.Validate(); err != nil {
		return broadcast.Message{}, fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return m, nil
}
