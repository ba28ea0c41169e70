package device

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/camnotes/pkg/core"
)

// Policy decides how a permission is answered.
type Policy string

const (
	PolicyGranted Policy = "granted"
	PolicyDenied  Policy = "denied"
	PolicyPrompt  Policy = "prompt"
)

// ParsePolicy parses a policy name. An empty string means prompt.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyGranted, PolicyDenied, PolicyPrompt:
		return p, nil
	case "":
		return PolicyPrompt, nil
	default:
		return "", fmt.Errorf("unknown permission policy %q", s)
	}
}

// Prompter asks the user to grant kind.
type Prompter func(ctx context.Context, kind core.PermissionKind) (bool, error)

// Grants implements core.Permissions from per-kind policies.
// Prompted answers, refusals included, are remembered for the lifetime of
// the Grants.
type Grants struct {
	policies map[core.PermissionKind]Policy
	prompt   Prompter

	mu       sync.Mutex
	answered map[core.PermissionKind]bool
}

// NewGrants creates Grants. Kinds without a policy are prompted; a nil
// prompter refuses every prompt.
func NewGrants(policies map[core.PermissionKind]Policy, prompt Prompter) *Grants {
	p := make(map[core.PermissionKind]Policy, len(policies))
	for k, v := range policies {
		p[k] = v
	}
	return &Grants{
		policies: p,
		prompt:   prompt,
		answered: make(map[core.PermissionKind]bool),
	}
}

func (g *Grants) policy(kind core.PermissionKind) Policy {
	if p, ok := g.policies[kind]; ok {
		return p
	}
	return PolicyPrompt
}

// Status implements core.Permissions.
func (g *Grants) Status(ctx context.Context, kind core.PermissionKind) (bool, error) {
	switch g.policy(kind) {
	case PolicyGranted:
		return true, nil
	case PolicyDenied:
		return false, nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.answered[kind], nil
}

// Request implements core.Permissions.
func (g *Grants) Request(ctx context.Context, kind core.PermissionKind) (bool, error) {
	switch g.policy(kind) {
	case PolicyGranted:
		return true, nil
	case PolicyDenied:
		return false, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if granted, ok := g.answered[kind]; ok {
		return granted, nil
	}
	if g.prompt == nil {
		return false, nil
	}

	granted, err := g.prompt(ctx, kind)
	if err != nil {
		return false, err
	}
	g.answered[kind] = granted
	return granted, nil
}

var _ core.Permissions = (*Grants)(nil)
