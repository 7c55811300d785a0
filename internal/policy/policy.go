// Package policy decides whether an actor may perform an action on a resource.
// Both the event catalog and the comment ledger consult it before mutating.
package policy

import "github.com/townboard/townboard/internal/model"

// Action identifies an operation being authorized.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// CanAct reports whether actor may perform action on a resource owned by
// ownerID. A nil actor is anonymous. Reads are always allowed, creation
// requires any authenticated actor, and update/delete require the actor to
// be the owner.
func CanAct(actor *model.User, ownerID string, action Action) bool {
	switch action {
	case ActionRead:
		return true
	case ActionCreate:
		return actor != nil
	case ActionUpdate, ActionDelete:
		return actor != nil && actor.ID == ownerID
	}
	return false
}
