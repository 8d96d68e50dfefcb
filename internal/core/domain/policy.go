package domain

// Action names a mutating operation guarded by Authorize.
type Action string

const (
	ActionUpdateSelf Action = "update_self"
	ActionDeleteSelf Action = "delete_self"
	ActionUpdateUser Action = "update_user"
	ActionDeleteUser Action = "delete_user"
	ActionCreateCat  Action = "create_cat"
	ActionUpdateCat  Action = "update_cat"
	ActionDeleteCat  Action = "delete_cat"
)

type scope int

const (
	scopeAdminOnly scope = iota
	scopeSelf
	scopeOwner
)

// actionScopes decides which non-admin rule applies to each action.
// Actions missing from the map are admin-only.
var actionScopes = map[Action]scope{
	ActionUpdateSelf: scopeSelf,
	ActionDeleteSelf: scopeSelf,
	ActionUpdateUser: scopeAdminOnly,
	ActionDeleteUser: scopeAdminOnly,
	ActionCreateCat:  scopeOwner,
	ActionUpdateCat:  scopeOwner,
	ActionDeleteCat:  scopeOwner,
}

// Target is the record an action is applied to. OwnerID is zero when the
// record has no explicit owner.
type Target struct {
	ID      int64
	OwnerID int64
}

// Authorize decides whether principal may perform action on target.
// A nil return is an allow; otherwise the error is ErrUnauthenticated or
// ErrForbidden. Rules are evaluated in order:
//
//  1. no principal            → ErrUnauthenticated
//  2. admin                   → allow
//  3. self-scoped action      → allow iff target.ID == principal.ID
//  4. owner-scoped action     → allow iff target.OwnerID == principal.ID
//  5. anything else           → ErrForbidden
func Authorize(principal *Identity, action Action, target *Target) error {
	if principal == nil {
		return ErrUnauthenticated
	}
	if principal.IsAdmin() {
		return nil
	}

	sc, ok := actionScopes[action]
	if !ok || target == nil {
		return ErrForbidden
	}

	switch sc {
	case scopeSelf:
		if target.ID == principal.ID {
			return nil
		}
	case scopeOwner:
		if target.OwnerID != 0 && target.OwnerID == principal.ID {
			return nil
		}
	}
	return ErrForbidden
}
