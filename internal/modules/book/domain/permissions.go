package domain

// Permission strings checked against the identity/permission host. The
// values are opaque to this module; policy lives host-side.
const (
	PermRoot    = "questbook"
	PermOpen    = "questbook.open"
	PermViewAll = "questbook.view.all"
	PermEdit    = "questbook.edit"
	PermCreate  = "questbook.create"
	PermDelete  = "questbook.delete"
)

// PermView names the per-record visibility permission.
func PermView(questID string) string {
	return "questbook.view." + questID
}
