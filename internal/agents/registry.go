package agents

import (
	"github.com/Kedhareswer/interviewai-navigator/internal/llm"
	"github.com/Kedhareswer/interviewai-navigator/internal/rag"
)

// Registry holds the experts keyed by routing domain. Unknown domains
// resolve to the generic expert so routing can never strand a question.
type Registry struct {
	agents  map[Domain]Agent
	generic Agent
}

// NewRegistry builds the standard agent set: one expert per domain profile
// plus the behavioral interviewer.
func NewRegistry(client llm.Client, retriever rag.Retriever) *Registry {
	generic := NewExpert(GenericProfile, client, retriever)
	r := &Registry{
		agents:  make(map[Domain]Agent),
		generic: generic,
	}
	r.Register(NewExpert(BackendProfile, client, retriever))
	r.Register(NewExpert(FrontendProfile, client, retriever))
	r.Register(NewExpert(MLProfile, client, retriever))
	r.Register(NewBehavioralAgent(client, retriever))
	r.Register(generic)
	return r
}

// Register adds or replaces the agent for its domain.
func (r *Registry) Register(agent Agent) {
	r.agents[agent.Domain()] = agent
}

// Get returns the agent for a domain, falling back to the generic expert.
func (r *Registry) Get(domain Domain) Agent {
	if agent, ok := r.agents[domain]; ok {
		return agent
	}
	return r.generic
}

// Domains lists the registered routing domains.
func (r *Registry) Domains() []Domain {
	out := make([]Domain, 0, len(r.agents))
	for _, d := range domainOrder {
		if _, ok := r.agents[d]; ok {
			out = append(out, d)
		}
	}
	return out
}
