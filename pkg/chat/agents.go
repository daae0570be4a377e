package chat

import (
	"errors"
	"fmt"
	"strings"
)

const (
	AgentTafseer      = "tafseer"
	AgentStoryTelling = "story-telling"
)

var ErrUnknownAgent = errors.New("unknown agent")

// AgentProfile holds the greeting and compose placeholder shown for an agent.
type AgentProfile struct {
	Name        string
	Greeting    string
	Placeholder string
}

var agentProfiles = []AgentProfile{
	{
		Name:        AgentTafseer,
		Greeting:    "Assalam O Alaykum, I am Tadabbur, how may I help you today?",
		Placeholder: "Let's learn about the Quran",
	},
	{
		Name:        AgentStoryTelling,
		Greeting:    "Generate any Islamic story with the finest AI Models.",
		Placeholder: "Generate an Islamic story",
	},
}

// AgentProfiles lists the agents the backend can switch between.
func AgentProfiles() []AgentProfile {
	result := make([]AgentProfile, len(agentProfiles))
	copy(result, agentProfiles)
	return result
}

func FindAgentProfile(name string) (AgentProfile, error) {
	for _, p := range agentProfiles {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return AgentProfile{}, fmt.Errorf("%w: %q", ErrUnknownAgent, name)
}

// DefaultAgentProfile is the tafseer profile.
func DefaultAgentProfile() AgentProfile {
	return agentProfiles[0]
}
