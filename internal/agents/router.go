package agents

import (
	"strings"

	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// RouteInput is everything the router considers. Routing is a pure function
// of its input: no state, no randomness, no model calls.
type RouteInput struct {
	Competency string
	AgentType  types.AgentType
	JobDomain  string
	TechStack  []string

	// SelectedAgents narrows routing for one interview; it takes precedence
	// over the job-level PreferredAgents list. Empty lists mean no restriction.
	SelectedAgents  []string
	PreferredAgents []string
}

// domainOrder is the deterministic fallback order when an allow-list
// excludes the resolved domain.
var domainOrder = []Domain{DomainBackend, DomainFrontend, DomainML, DomainBehavioral, DomainGeneric}

// jobDomainMap maps normalized job domain labels to routing domains.
var jobDomainMap = map[string]Domain{
	"backend":  DomainBackend,
	"devops":   DomainBackend,
	"frontend": DomainFrontend,
	"ml":       DomainML,
	"data":     DomainML,
}

// competencyKeywords routes by substring match on the competency name,
// checked in this order. First match wins.
var competencyKeywords = []struct {
	keyword string
	domain  Domain
}{
	{"machine learning", DomainML},
	{"deep learning", DomainML},
	{"system design", DomainBackend},
	{"distributed", DomainBackend},
	{"database", DomainBackend},
	{"sql", DomainBackend},
	{"api", DomainBackend},
	{"microservice", DomainBackend},
	{"caching", DomainBackend},
	{"concurrency", DomainBackend},
	{"backend", DomainBackend},
	{"react", DomainFrontend},
	{"css", DomainFrontend},
	{"accessibility", DomainFrontend},
	{"browser", DomainFrontend},
	{"frontend", DomainFrontend},
	{"ui", DomainFrontend},
	{"nlp", DomainML},
	{"model", DomainML},
	{"statistics", DomainML},
	{"data", DomainML},
	{"ml", DomainML},
}

// techLexicon votes on a domain per technology in the job's stack.
var techLexicon = map[string]Domain{
	"go":         DomainBackend,
	"java":       DomainBackend,
	"postgres":   DomainBackend,
	"postgresql": DomainBackend,
	"redis":      DomainBackend,
	"kafka":      DomainBackend,
	"grpc":       DomainBackend,
	"kubernetes": DomainBackend,
	"docker":     DomainBackend,
	"react":      DomainFrontend,
	"vue":        DomainFrontend,
	"angular":    DomainFrontend,
	"typescript": DomainFrontend,
	"css":        DomainFrontend,
	"nextjs":     DomainFrontend,
	"next.js":    DomainFrontend,
	"pytorch":    DomainML,
	"tensorflow": DomainML,
	"sklearn":    DomainML,
	"pandas":     DomainML,
	"spark":      DomainML,
	"python":     DomainML,
}

// Route resolves which domain expert should handle the next question.
// Precedence: behavioral agent type, then the job's explicit domain, then
// competency keywords, then tech-stack votes, then the generic expert.
// An allow-list that excludes the resolved domain forces the closest
// permitted fallback.
func Route(in RouteInput) Domain {
	resolved := resolve(in)
	return applyAllowList(resolved, allowList(in))
}

func resolve(in RouteInput) Domain {
	if in.AgentType == types.AgentHR {
		return DomainBehavioral
	}

	if d, ok := jobDomainMap[strings.ToLower(in.JobDomain)]; ok {
		return d
	}

	competency := strings.ToLower(in.Competency)
	for _, entry := range competencyKeywords {
		if strings.Contains(competency, entry.keyword) {
			return entry.domain
		}
	}

	votes := map[Domain]int{}
	for _, tech := range in.TechStack {
		if d, ok := techLexicon[strings.ToLower(tech)]; ok {
			votes[d]++
		}
	}
	best, bestVotes := DomainGeneric, 0
	for _, d := range domainOrder {
		if votes[d] > bestVotes {
			best, bestVotes = d, votes[d]
		}
	}
	return best
}

func allowList(in RouteInput) map[Domain]bool {
	source := in.SelectedAgents
	if len(source) == 0 {
		source = in.PreferredAgents
	}
	if len(source) == 0 {
		return nil
	}
	allowed := make(map[Domain]bool, len(source))
	for _, name := range source {
		allowed[Domain(strings.ToLower(name))] = true
	}
	return allowed
}

func applyAllowList(resolved Domain, allowed map[Domain]bool) Domain {
	if allowed == nil || allowed[resolved] {
		return resolved
	}
	if allowed[DomainGeneric] {
		return DomainGeneric
	}
	for _, d := range domainOrder {
		if allowed[d] {
			return d
		}
	}
	return resolved
}
