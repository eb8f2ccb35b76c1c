// Package authz is the single source of truth for who may do what in the
// panel. Every request handler asks this package before touching the
// database; no role check lives anywhere else.
//
// Authorize is a pure function: no I/O, no hidden state, safe under any
// request-handling model.
package authz

import "finanzas-ui/database/model"

// Action identifies an API operation the engine knows how to judge.
type Action string

const (
	ListUsers  Action = "users:list"
	CreateUser Action = "users:create"
	ReadUser   Action = "users:read"
	UpdateUser Action = "users:update"
	DeleteUser Action = "users:delete"

	ListMovements  Action = "movements:list"
	CreateMovement Action = "movements:create"
	ReadMovement   Action = "movements:read"
	UpdateMovement Action = "movements:update"
	DeleteMovement Action = "movements:delete"

	// Panel operations outside the CRUD resources.
	ExportMovements  Action = "movements:export"
	ReadUserReport   Action = "reports:users"
	ReadServerStatus Action = "server:status"
	ReadServerLogs   Action = "server:logs"
)

// Principal is the authenticated actor making a request. A nil *Principal
// means the request is anonymous.
type Principal struct {
	Id   int
	Role string
}

// IsAdmin reports whether the principal carries the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == model.RoleAdmin
}

// Descriptor identifies the resource an action targets. Zero values mean
// "not applicable": list actions need no target, user-scoped actions set
// TargetUserId, movement-scoped actions set OwnerUserId (resolved from
// the store before the engine runs) and, for create/update payloads that
// name an owner, ProposedOwnerId.
type Descriptor struct {
	TargetUserId    int
	OwnerUserId     int
	ProposedOwnerId int
}

// Code classifies a denial for HTTP status mapping.
type Code string

const (
	CodeUnauthenticated Code = "unauthenticated" // 401
	CodeForbidden       Code = "forbidden"       // 403
)

// Scope is the result-set filter a list operation must apply.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeAll
	ScopeOwned
)

// Decision is the engine's verdict. For ListMovements an Allow carries
// the visibility scope; for CreateMovement it carries the owner id the
// write must use, regardless of what the payload asked for.
type Decision struct {
	Allowed bool
	Code    Code
	Reason  string

	VisibilityScope Scope
	ScopeOwnerId    int

	EffectiveOwnerId int
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(code Code, reason string) Decision {
	return Decision{Code: code, Reason: reason}
}

func validRole(role string) bool {
	return role == model.RoleAdmin || role == model.RoleUser
}

// Authorize decides whether principal may perform action on the resource
// described by d. Rules are evaluated in precedence order; the first
// match wins, and anything not explicitly allowed is denied.
func Authorize(principal *Principal, action Action, d Descriptor) Decision {
	if principal == nil {
		return deny(CodeUnauthenticated, "authentication required")
	}
	if !validRole(principal.Role) {
		return deny(CodeForbidden, "missing role")
	}

	switch action {
	case ListUsers:
		// Read-only roster visibility for every authenticated principal.
		return allow()

	case ReadUser:
		if principal.IsAdmin() || d.TargetUserId == principal.Id {
			return allow()
		}
		return deny(CodeForbidden, "admin required")

	case CreateUser, UpdateUser, DeleteUser,
		ExportMovements, ReadUserReport, ReadServerStatus, ReadServerLogs:
		if principal.IsAdmin() {
			return allow()
		}
		return deny(CodeForbidden, "admin required")

	case ListMovements:
		decision := allow()
		if principal.IsAdmin() {
			decision.VisibilityScope = ScopeAll
		} else {
			decision.VisibilityScope = ScopeOwned
			decision.ScopeOwnerId = principal.Id
		}
		return decision

	case CreateMovement:
		decision := allow()
		if principal.IsAdmin() {
			// Admin may create on behalf of any user; default to self
			// when the payload names nobody.
			decision.EffectiveOwnerId = d.ProposedOwnerId
			if decision.EffectiveOwnerId == 0 {
				decision.EffectiveOwnerId = principal.Id
			}
		} else {
			// Payload owner is ignored, not rejected.
			decision.EffectiveOwnerId = principal.Id
		}
		return decision

	case ReadMovement, DeleteMovement:
		if principal.IsAdmin() || d.OwnerUserId == principal.Id {
			return allow()
		}
		return deny(CodeForbidden, "not resource owner")

	case UpdateMovement:
		if principal.IsAdmin() {
			return allow()
		}
		if d.OwnerUserId != principal.Id {
			return deny(CodeForbidden, "not resource owner")
		}
		if d.ProposedOwnerId != 0 && d.ProposedOwnerId != d.OwnerUserId {
			return deny(CodeForbidden, "cannot reassign movement owner")
		}
		return allow()
	}

	return deny(CodeForbidden, "unrecognized action")
}
