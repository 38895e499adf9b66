package friendboard

import "strings"

// AdminPathPrefix is the route prefix that marks a navigation as admin.
const AdminPathPrefix = "/admin"

// ResolveIdentity derives the viewer role from a navigation path. The rule is
// purely lexical so server- and client-computed identity are provably
// identical: the admin prefix yields admin, anything else (including an empty
// path, as seen before hydration) yields the least-privileged friend role.
func ResolveIdentity(path string) Identity {
	if path == AdminPathPrefix || strings.HasPrefix(path, AdminPathPrefix+"/") {
		return IdentityAdmin
	}
	return IdentityFriend
}
