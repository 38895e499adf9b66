package friendboard

// ComposeDashboard assembles the renderable per-friend page. Pure: it merges
// the friend record, its ordered instances, and the viewer's identity/mode
// into slots, where a slot is editable only for an admin in edit mode. It is
// recomputed on every relevant state change and never mutates its inputs.
func ComposeDashboard(friend FriendRecord, instances []WidgetInstance, identity Identity, mode Mode) DashboardPage {
	editable := identity == IdentityAdmin && mode == ModeEdit
	slots := make([]WidgetSlot, 0, len(instances))
	for _, inst := range instances {
		slots = append(slots, WidgetSlot{Instance: inst, Editable: editable})
	}
	return DashboardPage{
		Friend:   friend,
		Slots:    slots,
		Identity: identity,
		Mode:     mode,
	}
}
