package eldin

import "context"

// Scopes understood by the default provider policy.
const (
	ScopeReadMetadata = "read:metadata"
	ScopeReadExcerpts = "read:excerpts"
)

// LicenseRequest asks whether a user may exercise a scope within a tenant.
type LicenseRequest struct {
	User   string `json:"user"`
	Scope  string `json:"scope"`
	Tenant string `json:"tenant"`
}

// LicenseDecision is the outcome of a policy check.
type LicenseDecision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

// Licensor checks whether an operation is licensed. The production system
// would back this with a real entitlement service; the in-tree
// implementation is a static allow-list.
type Licensor interface {
	Check(ctx context.Context, req LicenseRequest) (LicenseDecision, error)
}

// Ensure AllowList implements Licensor at compile time.
var _ Licensor = (*AllowList)(nil)

// AllowList is a Licensor that permits a fixed set of scopes regardless of
// user or tenant.
type AllowList struct {
	scopes map[string]struct{}
}

// NewAllowList creates an AllowList permitting the given scopes.
func NewAllowList(scopes ...string) *AllowList {
	m := make(map[string]struct{}, len(scopes))
	for _, s := range scopes {
		m[s] = struct{}{}
	}
	return &AllowList{scopes: m}
}

// Check reports whether the requested scope is on the allow-list.
func (a *AllowList) Check(_ context.Context, req LicenseRequest) (LicenseDecision, error) {
	_, ok := a.scopes[req.Scope]
	return LicenseDecision{Allowed: ok, Reason: "static-policy"}, nil
}
