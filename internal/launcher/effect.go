package launcher

import (
	"fmt"
	"strings"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/funnel"
)

// EffectKind classifies an Effect.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectLaunched
	EffectOpened
	EffectNotice
	EffectDialog
	EffectOpenDrawer
	EffectOpenSettings
	EffectAssigned
)

// Effect is the outcome of a user interaction.
type Effect struct {
	Kind EffectKind

	// EffectLaunched
	Package  string
	Activity string
	Profile  apps.Profile

	// EffectOpened: a system target, URL or web search.
	Target string

	// EffectNotice
	Notice string

	// EffectDialog
	Dialog funnel.Dialog

	// EffectOpenDrawer
	Intent        Intent
	Category      string
	IncludeHidden bool
	Rename        bool

	// EffectAssigned
	Slot apps.Slot

	// Suggestion accompanies a web search for a query with no matches.
	Suggestion string
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectNone:
		return "none"
	case EffectLaunched:
		return fmt.Sprintf("launched %s/%s as %s", e.Package, e.Activity, e.Profile)
	case EffectOpened:
		if e.Suggestion != "" {
			return fmt.Sprintf("opened %s (did you mean %q)", e.Target, e.Suggestion)
		}
		return "opened " + e.Target
	case EffectNotice:
		return "notice: " + e.Notice
	case EffectDialog:
		return "dialog: " + e.Dialog.String()
	case EffectOpenDrawer:
		parts := []string{"drawer " + e.Intent.String()}
		if e.Category != "" {
			parts = append(parts, "category="+e.Category)
		}
		if e.IncludeHidden {
			parts = append(parts, "include-hidden")
		}
		if e.Rename {
			parts = append(parts, "rename")
		}
		return strings.Join(parts, " ")
	case EffectOpenSettings:
		return "settings"
	case EffectAssigned:
		return "assigned " + string(e.Slot)
	}
	return fmt.Sprintf("EffectKind(%d)", int(e.Kind))
}

func launched(pkg, class string, profile apps.Profile) Effect {
	return Effect{Kind: EffectLaunched, Package: pkg, Activity: class, Profile: profile}
}

func opened(target string) Effect {
	return Effect{Kind: EffectOpened, Target: target}
}

func notice(msg string) Effect {
	return Effect{Kind: EffectNotice, Notice: msg}
}

func drawer(intent Intent) Effect {
	return Effect{Kind: EffectOpenDrawer, Intent: intent}
}
