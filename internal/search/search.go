package search

import (
	"sort"
	"strings"

	"github.com/computeruseprotocol/go-sdk/internal/model"
)

// Request selects and ranks nodes. Query is free-form; Role, Name, and
// State constrain directly. Zero Limit and Threshold take the defaults.
type Request struct {
	Query     string
	Role      string
	Name      string
	State     string
	Limit     int
	Threshold float64
}

// Defaults for Request.
const (
	DefaultLimit     = 5
	DefaultThreshold = 0.15
)

// Result is one ranked match. Node is a copy with children stripped.
type Result struct {
	Node  *model.Node
	Score float64
}

// Score weights.
const (
	roleWeight        = 0.35
	nameWeight        = 0.5
	nameOnlyRoleHit   = 0.15
	stateBonus        = 0.1
	ancestorNameBonus = 0.1
	ancestorRoleBonus = 0.1
	actionBonus       = 0.05
	onscreenBonus     = 0.05
	focusBonus        = 0.02
	secondaryBoostMax = 0.15
)

// Run searches the unpruned forest and returns ranked matches.
func Run(roots []*model.Node, req Request) []Result {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	threshold := req.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	queryTokens := Tokenize(req.Query)
	targetRoles, nameTokens := splitQuery(queryTokens)
	if req.Role != "" {
		targetRoles = ResolveRoles(req.Role)
	}
	if req.Name != "" {
		nameTokens = append(nameTokens, dropNoise(Tokenize(req.Name))...)
	}

	roleSet := make(map[string]bool, len(targetRoles))
	for _, r := range targetRoles {
		roleSet[r] = true
	}

	scorer := &scorer{
		nameTokens: nameTokens,
		roleSet:    roleSet,
		state:      req.State,
	}

	var results []Result
	var walk func(nodes []*model.Node, ancestors []*model.Node)
	walk = func(nodes []*model.Node, ancestors []*model.Node) {
		for _, n := range nodes {
			if score := scorer.score(n, ancestors); score >= threshold {
				stripped := *n
				stripped.Children = nil
				results = append(results, Result{Node: &stripped, Score: score})
			}
			walk(n.Children, append(ancestors, n))
		}
	}
	walk(roots, nil)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

type scorer struct {
	nameTokens []string
	roleSet    map[string]bool
	state      string
}

func (s *scorer) score(n *model.Node, ancestors []*model.Node) float64 {
	if s.state != "" && !n.HasState(s.state) {
		return 0
	}

	total := 0.0
	if len(s.roleSet) > 0 {
		if !s.roleSet[n.Role] {
			return 0
		}
		total += roleWeight
	}

	if len(s.nameTokens) > 0 {
		nameScore := s.nameScore(n)
		if nameScore == 0 {
			return 0
		}
		total += nameScore * nameWeight
	} else if len(s.roleSet) > 0 {
		total += nameOnlyRoleHit
	}

	if s.state != "" {
		total += stateBonus
	}

	for _, anc := range ancestors {
		if s.sharesToken(anc.Name) {
			total += ancestorNameBonus
			break
		}
	}
	for _, anc := range ancestors {
		if s.roleSet[anc.Role] {
			total += ancestorRoleBonus
			break
		}
	}
	if n.HasMeaningfulAction() {
		total += actionBonus
	}
	if !n.HasState(model.StateOffscreen) {
		total += onscreenBonus
	}
	if n.HasState(model.StateFocused) {
		total += focusBonus
	}
	return total
}

// nameScore rates the node name against the query tokens in [0, 1].
func (s *scorer) nameScore(n *model.Node) float64 {
	lowName := fold(n.Name)
	nameTokens := Tokenize(n.Name)
	joined := strings.Join(s.nameTokens, " ")

	full := 0.0
	if joined != "" && lowName != "" {
		if lowName == joined {
			full = 1.0
		} else if strings.Contains(lowName, joined) {
			full = 0.85
		}
	}

	tokenScore := 0.0
	if len(nameTokens) > 0 {
		sum := 0.0
		for _, qt := range s.nameTokens {
			best := 0.0
			for _, nt := range nameTokens {
				switch {
				case qt == nt:
					best = maxf(best, 1.0)
				case strings.HasPrefix(nt, qt):
					best = maxf(best, 0.7)
				case strings.Contains(nt, qt):
					best = maxf(best, 0.6)
				case strings.HasPrefix(qt, nt):
					best = maxf(best, 0.5)
				}
			}
			sum += best
		}
		tokenScore = sum / float64(len(s.nameTokens))
	}

	score := maxf(full, tokenScore)
	if score > 0 && len(nameTokens) > 0 {
		overlap := float64(s.overlapCount(nameTokens)) / float64(len(nameTokens))
		score *= 0.85 + 0.15*overlap
	}

	score += s.secondaryBoost(n)
	if score > 1 {
		score = 1
	}
	return score
}

// secondaryBoost rewards token overlap with description, value, and
// placeholder, up to a small cap.
func (s *scorer) secondaryBoost(n *model.Node) float64 {
	var secondary []string
	secondary = append(secondary, Tokenize(n.Description)...)
	secondary = append(secondary, Tokenize(n.Value)...)
	if n.Attributes != nil {
		secondary = append(secondary, Tokenize(n.Attributes.Placeholder)...)
	}
	if len(secondary) == 0 {
		return 0
	}
	set := make(map[string]bool, len(secondary))
	for _, t := range secondary {
		set[t] = true
	}
	matched := 0
	for _, qt := range s.nameTokens {
		if set[qt] {
			matched++
		}
	}
	return secondaryBoostMax * float64(matched) / float64(len(s.nameTokens))
}

func (s *scorer) overlapCount(nameTokens []string) int {
	set := make(map[string]bool, len(s.nameTokens))
	for _, t := range s.nameTokens {
		set[t] = true
	}
	count := 0
	for _, nt := range nameTokens {
		if set[nt] {
			count++
		}
	}
	return count
}

func (s *scorer) sharesToken(name string) bool {
	if name == "" {
		return false
	}
	tokens := s.nameTokens
	if len(tokens) == 0 {
		return false
	}
	for _, nt := range Tokenize(name) {
		for _, qt := range tokens {
			if nt == qt {
				return true
			}
		}
	}
	return false
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
